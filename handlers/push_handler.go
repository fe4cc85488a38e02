package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/power-play/services"
	"github.com/Dosada05/power-play/web"
)

type PushHandler struct {
	notificationService services.NotificationService
}

func NewPushHandler(ns services.NotificationService) *PushHandler {
	return &PushHandler{notificationService: ns}
}

// VAPIDPublicKey godoc
// @Summary Публичный VAPID-ключ для PushManager.subscribe
// @Tags push
// @Produce json
// @Success 200 {object} map[string]string
// @Router /push/vapid-public-key [get]
func (h *PushHandler) VAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"public_key": h.notificationService.VAPIDPublicKey()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Subscribe godoc
// @Summary Сохранить push-подписку браузера
// @Tags push
// @Accept json
// @Produce json
// @Param body body services.SubscribeInput true "PushSubscription.toJSON()"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /push/subscriptions [post]
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.SubscribeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	sub, err := h.notificationService.Subscribe(r.Context(), actor.ID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"subscription": sub}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Unsubscribe godoc
// @Summary Удалить push-подписку по endpoint
// @Tags push
// @Accept json
// @Param body body object true "{\"endpoint\": \"...\"}"
// @Success 204
// @Security BearerAuth
// @Router /push/subscriptions [delete]
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Endpoint string `json:"endpoint"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Endpoint == "" {
		badRequestResponse(w, r, errors.New("endpoint is required"))
		return
	}
	if err := h.notificationService.Unsubscribe(r.Context(), input.Endpoint); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServiceWorker отдаёт /sw.js. Service-Worker-Allowed разрешает scope "/".
func (h *PushHandler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Service-Worker-Allowed", "/")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(web.ServiceWorker)
}
