package handlers

import (
	"net/http"

	"github.com/Dosada05/power-play/services"
)

type ParticipantHandler struct {
	participantService services.ParticipantService
}

func NewParticipantHandler(ps services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: ps,
	}
}

// Join godoc
// @Summary Записаться на матч на позицию
// @Tags participants
// @Description Место оплачивается очками сразу; при нехватке баланса заявка получает статус pending_payment.
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param body body services.JoinMatchInput true "Позиция и лист ожидания"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Набор закрыт или матч начался"
// @Failure 403 {object} map[string]string "Онбординг не завершён"
// @Failure 409 {object} map[string]string "Уже записан или позиция заполнена"
// @Security BearerAuth
// @Router /matches/{matchID}/participants [post]
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.JoinMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Join(r.Context(), actor.ID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByMatch godoc
// @Summary Состав матча
// @Tags participants
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /matches/{matchID}/participants [get]
func (h *ParticipantHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participants, err := h.participantService.ListByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMine godoc
// @Summary Мои записи на матчи
// @Tags participants
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /me/participations [get]
func (h *ParticipantHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	participants, err := h.participantService.ListMine(r.Context(), actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Cancel godoc
// @Summary Отменить запись (возврат оплаты, продвижение листа ожидания)
// @Tags participants
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /participants/{participantID} [delete]
func (h *ParticipantHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participant, err := h.participantService.Cancel(r.Context(), actor, participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetStatus godoc
// @Summary Изменить статус заявки (админ)
// @Tags participants
// @Accept json
// @Produce json
// @Param participantID path int true "Participant ID"
// @Param body body services.SetParticipantStatusInput true "Статус и оплата"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/participants/{participantID} [put]
func (h *ParticipantHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.SetParticipantStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participant, err := h.participantService.SetStatus(r.Context(), actor, participantID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
