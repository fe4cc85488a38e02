package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ListMatches godoc
// @Summary Список матчей
// @Tags matches
// @Produce json
// @Param from query string false "Начало периода (RFC3339)"
// @Param to query string false "Конец периода (RFC3339)"
// @Param club_id query int false "Клуб"
// @Param rink_id query int false "Каток"
// @Param status query string false "open | closed | canceled"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMatchFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matches, err := h.matchService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseMatchFilter(r *http.Request) (models.MatchFilter, error) {
	var filter models.MatchFilter
	q := r.URL.Query()

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid %s query parameter: expected RFC3339 time", name)
		}
		*dst = &t
	}

	var err error
	if filter.ClubID, err = optionalIntQuery(r, "club_id"); err != nil {
		return filter, err
	}
	if filter.RinkID, err = optionalIntQuery(r, "rink_id"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		status := models.MatchStatus(raw)
		switch status {
		case models.MatchStatusOpen, models.MatchStatusClosed, models.MatchStatusCanceled:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("invalid status query parameter: %q", raw)
		}
	}
	filter.Page, filter.Limit = readPaging(r)
	return filter, nil
}

// GetMatch godoc
// @Summary Матч с катком, клубом, составом и оставшимися местами
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Создать матч (админ или администратор клуба)
// @Tags matches
// @Accept json
// @Produce json
// @Param body body services.CreateMatchInput true "Данные матча"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.Create(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMatch godoc
// @Summary Изменить матч
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param body body services.UpdateMatchInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /matches/{matchID} [patch]
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
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
	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.matchService.Update(r.Context(), actor, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CancelMatch godoc
// @Summary Отменить матч с возвратом оплат
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /matches/{matchID}/cancel [post]
func (h *MatchHandler) CancelMatch(w http.ResponseWriter, r *http.Request) {
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
	match, err := h.matchService.Cancel(r.Context(), actor, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CloseMatch godoc
// @Summary Закрыть набор на матч
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /matches/{matchID}/close [post]
func (h *MatchHandler) CloseMatch(w http.ResponseWriter, r *http.Request) {
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
	match, err := h.matchService.Close(r.Context(), actor, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
