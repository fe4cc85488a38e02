package handlers

import (
	"net/http"
	"strings"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/services"
)

type PointHandler struct {
	pointService services.PointService
}

func NewPointHandler(ps services.PointService) *PointHandler {
	return &PointHandler{pointService: ps}
}

// RequestCharge godoc
// @Summary Заявка на пополнение очков банковским переводом
// @Tags points
// @Accept json
// @Produce json
// @Param body body services.ChargeRequestInput true "Сумма и имя отправителя"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /points/charges [post]
func (h *PointHandler) RequestCharge(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.ChargeRequestInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	req, err := h.pointService.RequestCharge(r.Context(), actor.ID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"charge": req}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMyCharges godoc
// @Summary Мои заявки на пополнение
// @Tags points
// @Produce json
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /points/charges [get]
func (h *PointHandler) ListMyCharges(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	page, limit := readPaging(r)
	charges, err := h.pointService.ListMyCharges(r.Context(), actor.ID, page, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"charges": charges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMyTransactions godoc
// @Summary История движения очков
// @Tags points
// @Produce json
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /points/transactions [get]
func (h *PointHandler) ListMyTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	page, limit := readPaging(r)
	txs, err := h.pointService.ListMyTransactions(r.Context(), actor.ID, page, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"transactions": txs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCharges godoc
// @Summary Заявки на пополнение (админ)
// @Tags admin
// @Produce json
// @Param status query string false "pending | confirmed | rejected"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/charges [get]
func (h *PointHandler) ListCharges(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var status *models.ChargeStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		s := models.ChargeStatus(raw)
		status = &s
	}
	page, limit := readPaging(r)
	charges, err := h.pointService.ListCharges(r.Context(), actor, status, page, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"charges": charges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ConfirmCharge godoc
// @Summary Подтвердить пополнение и оплатить ожидающие заявки
// @Tags admin
// @Produce json
// @Param chargeID path int true "Charge request ID"
// @Success 200 {object} models.Settlement
// @Failure 409 {object} map[string]string "Заявка уже обработана"
// @Security BearerAuth
// @Router /admin/charges/{chargeID}/confirm [post]
func (h *PointHandler) ConfirmCharge(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	chargeID, err := getIDFromURL(r, "chargeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	settlement, err := h.pointService.ConfirmCharge(r.Context(), actor, chargeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, settlement, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RejectCharge godoc
// @Summary Отклонить заявку на пополнение
// @Tags admin
// @Produce json
// @Param chargeID path int true "Charge request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Заявка уже обработана"
// @Security BearerAuth
// @Router /admin/charges/{chargeID}/reject [post]
func (h *PointHandler) RejectCharge(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	chargeID, err := getIDFromURL(r, "chargeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	req, err := h.pointService.RejectCharge(r.Context(), actor, chargeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"charge": req}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdjustPoints godoc
// @Summary Ручная корректировка баланса (суперпользователь)
// @Tags admin
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Param body body services.AdjustPointsInput true "Изменение и причина"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{userID}/points [post]
func (h *PointHandler) AdjustPoints(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.AdjustPointsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	entry, err := h.pointService.AdjustPoints(r.Context(), actor, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"transaction": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
