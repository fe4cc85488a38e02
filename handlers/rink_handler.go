package handlers

import (
	"net/http"

	"github.com/Dosada05/power-play/services"
)

type RinkHandler struct {
	rinkService services.RinkService
}

func NewRinkHandler(rs services.RinkService) *RinkHandler {
	return &RinkHandler{rinkService: rs}
}

// ListRinks godoc
// @Summary Список катков (display_name на языке запроса)
// @Tags rinks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /rinks [get]
func (h *RinkHandler) ListRinks(w http.ResponseWriter, r *http.Request) {
	rinks, err := h.rinkService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rinks": rinks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRink godoc
// @Summary Каток по ID
// @Tags rinks
// @Produce json
// @Param rinkID path int true "Rink ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /rinks/{rinkID} [get]
func (h *RinkHandler) GetRink(w http.ResponseWriter, r *http.Request) {
	rinkID, err := getIDFromURL(r, "rinkID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rink, err := h.rinkService.GetByID(r.Context(), rinkID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rink": rink}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateRink godoc
// @Summary Создать каток (админ)
// @Tags rinks
// @Accept json
// @Produce json
// @Param body body services.RinkInput true "Данные катка"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/rinks [post]
func (h *RinkHandler) CreateRink(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.RinkInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rink, err := h.rinkService.Create(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"rink": rink}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateRink godoc
// @Summary Обновить каток (админ)
// @Tags rinks
// @Accept json
// @Produce json
// @Param rinkID path int true "Rink ID"
// @Param body body services.RinkInput true "Данные катка"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/rinks/{rinkID} [put]
func (h *RinkHandler) UpdateRink(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	rinkID, err := getIDFromURL(r, "rinkID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.RinkInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	rink, err := h.rinkService.Update(r.Context(), actor, rinkID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rink": rink}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteRink godoc
// @Summary Удалить каток (админ)
// @Tags rinks
// @Param rinkID path int true "Rink ID"
// @Success 204
// @Failure 409 {object} map[string]string "Каток используется матчами"
// @Security BearerAuth
// @Router /admin/rinks/{rinkID} [delete]
func (h *RinkHandler) DeleteRink(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	rinkID, err := getIDFromURL(r, "rinkID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.rinkService.Delete(r.Context(), actor, rinkID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
