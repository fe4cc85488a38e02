package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/services"
	"github.com/Dosada05/power-play/utils"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
	now         func() time.Time
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
		now:         time.Now,
	}
}

// Register godoc
// @Summary Регистрация по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Email и пароль"
// @Success 201 {object} map[string]interface{} "token и user"
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Email уже занят"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login godoc
// @Summary Вход, возвращает JWT на 24 часа
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Email и пароль"
// @Success 200 {object} map[string]interface{} "token и user"
// @Failure 401 {object} map[string]string "Неверные данные или аккаунт удалён"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Смена пароля текущего пользователя
// @Tags auth
// @Accept json
// @Param body body services.ChangePasswordInput true "Текущий и новый пароль"
// @Success 204
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	var input services.ChangePasswordInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.authService.ChangePassword(r.Context(), actor.ID, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *models.Profile) {
	token, err := utils.GenerateJWT(h.jwtSecret, user.ID, string(user.Role), h.now())
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to sign token: %w", err))
		return
	}
	user.PasswordHash = ""
	if err := writeJSON(w, status, jsonResponse{"token": token, "user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
