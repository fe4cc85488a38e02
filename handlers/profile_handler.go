package handlers

import (
	"net/http"

	"github.com/Dosada05/power-play/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(ps services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// GetMe godoc
// @Summary Профиль текущего пользователя
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /me [get]
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	profile, err := h.profileService.GetMe(r.Context(), actor.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMe godoc
// @Summary Обновить свой профиль
// @Tags profile
// @Accept json
// @Produce json
// @Param body body services.UpdateProfileInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /me [patch]
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.UpdateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	profile, err := h.profileService.UpdateMe(r.Context(), actor.ID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CompleteOnboarding godoc
// @Summary Завершить онбординг (имя, позиция, язык)
// @Tags profile
// @Accept json
// @Produce json
// @Param body body services.OnboardingInput true "Данные профиля"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /me/onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.OnboardingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	profile, err := h.profileService.CompleteOnboarding(r.Context(), actor.ID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadAvatar godoc
// @Summary Загрузить аватар
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Изображение (jpeg, png, webp, gif)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /me/avatar [post]
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	file, contentType, err := readImageUpload(w, r, "avatar")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	profile, err := h.profileService.UploadAvatar(r.Context(), actor.ID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMe godoc
// @Summary Удалить свой аккаунт (мягкое удаление)
// @Tags profile
// @Success 204
// @Security BearerAuth
// @Router /me [delete]
func (h *ProfileHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	if err := h.profileService.DeleteMe(r.Context(), actor.ID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPublic godoc
// @Summary Публичный профиль игрока
// @Tags profile
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} services.PublicProfile
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *ProfileHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	profile, err := h.profileService.GetPublic(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
