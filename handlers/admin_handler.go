package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/services"
)

type AdminHandler struct {
	adminService services.AdminService
	auditService services.AuditService
}

func NewAdminHandler(as services.AdminService, audit services.AuditService) *AdminHandler {
	return &AdminHandler{adminService: as, auditService: audit}
}

// Dashboard godoc
// @Summary Сводка для главной страницы админки
// @Tags admin
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	stats, err := h.adminService.Dashboard(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListUsers godoc
// @Summary Пользователи (поиск, фильтр по роли)
// @Tags admin
// @Produce json
// @Param search query string false "Имя или email"
// @Param role query string false "user | admin | superuser"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} models.ProfileListResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	q := r.URL.Query()
	filter := models.ProfileFilter{Search: strings.TrimSpace(q.Get("search"))}
	filter.Page, filter.Limit = readPaging(r)
	if role := q.Get("role"); role != "" {
		userRole := models.UserRole(role)
		filter.Role = &userRole
	}
	res, err := h.adminService.ListUsers(r.Context(), actor, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetRole godoc
// @Summary Изменить роль пользователя (суперпользователь)
// @Tags admin
// @Accept json
// @Param userID path int true "User ID"
// @Param body body object true "{\"role\": \"admin\"}"
// @Success 204
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{userID}/role [put]
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
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
	var input struct {
		Role models.UserRole `json:"role"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Role == "" {
		badRequestResponse(w, r, errors.New("role is required"))
		return
	}
	if err := h.adminService.SetRole(r.Context(), actor, userID, input.Role); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser godoc
// @Summary Удалить пользователя (мягкое удаление)
// @Tags admin
// @Param userID path int true "User ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users/{userID} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
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
	if err := h.adminService.DeleteUser(r.Context(), actor, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAuditLogs godoc
// @Summary Журнал действий администраторов
// @Tags admin
// @Produce json
// @Param action query string false "Фильтр по действию"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} services.AuditListResponse
// @Security BearerAuth
// @Router /admin/audit [get]
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := models.AuditFilter{}
	filter.Page, filter.Limit = readPaging(r)
	if action := strings.TrimSpace(r.URL.Query().Get("action")); action != "" {
		filter.Action = &action
	}
	res, err := h.auditService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
