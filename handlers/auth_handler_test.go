package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/services"
)

type stubAuthService struct {
	services.AuthService
	profile *models.Profile
	err     error
}

func (s *stubAuthService) Register(context.Context, services.RegisterInput) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubAuthService) Login(context.Context, services.LoginInput) (*models.Profile, error) {
	return s.profile, s.err
}

func TestRegisterHandler_IssuesToken(t *testing.T) {
	stub := &stubAuthService{profile: &models.Profile{ID: 42, Email: "kim@example.com", Role: models.RoleUser}}
	h := NewAuthHandler(stub, "test-secret")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"kim@example.com","password":"longenough"}`))
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 42, body.User.ID)

	token, err := jwt.Parse(body.Token, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
}

func TestRegisterHandler_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrEmailConflict}, "test-secret")

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"kim@example.com"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"kim@example.com","password":"longenough"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: services.ErrInvalidCredentials}, "test-secret")

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"kim@example.com","password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
