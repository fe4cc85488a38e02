package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Dosada05/power-play/i18n"
)

// Pinger - проверка доступности БД для /healthz (*sql.DB подходит).
type Pinger interface {
	PingContext(ctx context.Context) error
}

type MetaHandler struct {
	db         Pinger
	translator *i18n.Translator
}

func NewMetaHandler(db Pinger, translator *i18n.Translator) *MetaHandler {
	return &MetaHandler{db: db, translator: translator}
}

// Health godoc
// @Summary Проверка живости сервиса и БД
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Messages godoc
// @Summary Каталог сообщений на языке запроса
// @Tags meta
// @Produce json
// @Param lang query string false "ko | en"
// @Success 200 {object} map[string]interface{}
// @Router /i18n/messages [get]
func (h *MetaHandler) Messages(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())
	resp := jsonResponse{"lang": lang, "messages": h.translator.Messages(lang)}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetLanguage godoc
// @Summary Запомнить язык в cookie
// @Tags meta
// @Accept json
// @Param body body object true "{\"lang\": \"en\"}"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /i18n/lang [post]
func (h *MetaHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Lang string `json:"lang"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if !i18n.IsSupported(input.Lang) {
		errorResponse(w, r, http.StatusBadRequest, "lang must be ko or en")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    input.Lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
