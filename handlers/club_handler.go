package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/power-play/services"
)

type ClubHandler struct {
	clubService services.ClubService
}

func NewClubHandler(cs services.ClubService) *ClubHandler {
	return &ClubHandler{clubService: cs}
}

// CreateClub godoc
// @Summary Создать клуб (создатель становится администратором клуба)
// @Tags clubs
// @Accept json
// @Produce json
// @Param body body services.CreateClubInput true "Данные клуба"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Имя занято"
// @Security BearerAuth
// @Router /clubs [post]
func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.CreateClubInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	club, err := h.clubService.Create(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"club": club}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListClubs godoc
// @Summary Список клубов
// @Tags clubs
// @Produce json
// @Param search query string false "Поиск по имени"
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clubs [get]
func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	page, limit := readPaging(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	clubs, err := h.clubService.List(r.Context(), search, page, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"clubs": clubs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMyClubs godoc
// @Summary Клубы текущего пользователя
// @Tags clubs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /me/clubs [get]
func (h *ClubHandler) ListMyClubs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubs, err := h.clubService.ListMy(r.Context(), actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"clubs": clubs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetClub godoc
// @Summary Клуб по ID
// @Tags clubs
// @Produce json
// @Param clubID path int true "Club ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /clubs/{clubID} [get]
func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	club, err := h.clubService.GetByID(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"club": club}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateClub godoc
// @Summary Обновить клуб (администратор клуба)
// @Tags clubs
// @Accept json
// @Produce json
// @Param clubID path int true "Club ID"
// @Param body body services.UpdateClubInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /clubs/{clubID} [put]
func (h *ClubHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.UpdateClubInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == nil && input.Description == nil && input.ContactInfo == nil && input.OpenChatURL == nil {
		badRequestResponse(w, r, errors.New("no fields provided for update"))
		return
	}
	club, err := h.clubService.Update(r.Context(), actor, clubID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"club": club}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogo godoc
// @Summary Загрузить логотип клуба
// @Tags clubs
// @Accept multipart/form-data
// @Produce json
// @Param clubID path int true "Club ID"
// @Param logo formData file true "Изображение"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /clubs/{clubID}/logo [post]
func (h *ClubHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	file, contentType, err := readImageUpload(w, r, "logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	club, err := h.clubService.UploadLogo(r.Context(), actor, clubID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"club": club}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Apply godoc
// @Summary Подать заявку на вступление в клуб
// @Tags clubs
// @Produce json
// @Param clubID path int true "Club ID"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Уже участник или заявка подана"
// @Security BearerAuth
// @Router /clubs/{clubID}/apply [post]
func (h *ClubHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	member, err := h.clubService.Apply(r.Context(), actor.ID, clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"member": member}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMembers godoc
// @Summary Участники клуба (администраторы клуба видят и заявки)
// @Tags clubs
// @Produce json
// @Param clubID path int true "Club ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /clubs/{clubID}/members [get]
func (h *ClubHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	members, err := h.clubService.ListMembers(r.Context(), actor, clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"members": members}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReviewMember godoc
// @Summary Одобрить или отклонить заявку в клуб
// @Tags clubs
// @Accept json
// @Produce json
// @Param clubID path int true "Club ID"
// @Param userID path int true "User ID"
// @Param body body services.ReviewMemberInput true "Новый статус (и роль)"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /clubs/{clubID}/members/{userID} [put]
func (h *ClubHandler) ReviewMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.ReviewMemberInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	member, err := h.clubService.ReviewMember(r.Context(), actor, clubID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"member": member}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Leave godoc
// @Summary Выйти из клуба
// @Tags clubs
// @Param clubID path int true "Club ID"
// @Success 204
// @Failure 400 {object} map[string]string "Последний администратор не может выйти"
// @Security BearerAuth
// @Router /clubs/{clubID}/members/me [delete]
func (h *ClubHandler) Leave(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	clubID, err := getIDFromURL(r, "clubID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.clubService.Leave(r.Context(), actor.ID, clubID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
