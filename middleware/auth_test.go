package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
)

var testSecret = []byte("middleware-secret")

type profileMap map[int]*models.Profile

func (m profileMap) GetByID(_ context.Context, id int) (*models.Profile, error) {
	p, ok := m[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims(userID interface{}) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("X-User-Role", string(user.Role))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	deletedAt := time.Now()
	profiles := profileMap{
		1: {ID: 1, Role: models.RoleAdmin, OnboardingCompleted: true},
		2: {ID: 2, Role: models.RoleUser, DeletedAt: &deletedAt},
	}
	handler := Authenticate(testSecret, profiles)(echoUser())

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		path   string
		status int
	}{
		{
			name:   "no token",
			status: http.StatusUnauthorized,
		},
		{
			name: "valid bearer token uses role from database",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(1)))
			},
			status: http.StatusOK,
		},
		{
			name:   "query token is ignored outside websocket routes",
			path:   "/?token=" + signToken(t, testSecret, validClaims("1")),
			status: http.StatusUnauthorized,
		},
		{
			name: "malformed authorization header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other"), validClaims(1)))
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			setup: func(r *http.Request) {
				claims := validClaims(1)
				claims["exp"] = time.Now().Add(-time.Minute).Unix()
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "deleted account",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(2)))
			},
			status: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(99)))
			},
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = "/"
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tt.setup != nil {
				tt.setup(req)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, string(models.RoleAdmin), rec.Header().Get("X-User-Role"))
			}
		})
	}
}

func TestRoleGates(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name   string
		gate   func(http.Handler) http.Handler
		user   *AuthUser
		status int
	}{
		{"admin gate without user", RequireAdmin, nil, http.StatusUnauthorized},
		{"admin gate for user", RequireAdmin, &AuthUser{ID: 1, Role: models.RoleUser}, http.StatusForbidden},
		{"admin gate for admin", RequireAdmin, &AuthUser{ID: 1, Role: models.RoleAdmin}, http.StatusOK},
		{"admin gate for superuser", RequireAdmin, &AuthUser{ID: 1, Role: models.RoleSuperuser}, http.StatusOK},
		{"superuser gate for admin", RequireSuperuser, &AuthUser{ID: 1, Role: models.RoleAdmin}, http.StatusForbidden},
		{"onboarding gate before onboarding", RequireOnboarded, &AuthUser{ID: 1, Role: models.RoleUser}, http.StatusForbidden},
		{"onboarding gate after onboarding", RequireOnboarded, &AuthUser{ID: 1, Role: models.RoleUser, OnboardingCompleted: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tt.user))
			}
			rec := httptest.NewRecorder()
			tt.gate(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestUserIDFromClaims(t *testing.T) {
	id, err := userIDFromClaims(jwt.MapClaims{"user_id": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	id, err = userIDFromClaims(jwt.MapClaims{"user_id": "8"})
	require.NoError(t, err)
	assert.Equal(t, 8, id)

	for _, claims := range []jwt.MapClaims{
		{},
		{"user_id": 1.5},
		{"user_id": "abc"},
		{"user_id": float64(0)},
		{"user_id": true},
	} {
		_, err := userIDFromClaims(claims)
		assert.Error(t, err)
	}
}

func TestAuthenticateWS_QueryTokenIsStrippedFromURL(t *testing.T) {
	profiles := profileMap{1: {ID: 1, Role: models.RoleAdmin, OnboardingCompleted: true}}
	token := signToken(t, testSecret, validClaims("1"))

	var seenURI, seenQuery string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenURI, seenQuery = r.RequestURI, r.URL.RawQuery
		echoUser().ServeHTTP(w, r)
	})
	handler := StripQueryToken(AuthenticateWS(testSecret, profiles)(inner))

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/5?token="+token+"&since=3", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/ws/chat/5?since=3", seenURI)
	assert.Equal(t, "since=3", seenQuery)
	assert.NotContains(t, seenURI, token)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ws/chat/5", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/chat/5", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStripQueryToken_LeavesOtherRequestsAlone(t *testing.T) {
	var seen *http.Request
	handler := StripQueryToken(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { seen = r }))

	req := httptest.NewRequest(http.MethodGet, "/api/matches?page=2", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Same(t, req, seen)
	assert.Equal(t, "/api/matches?page=2", seen.RequestURI)
}
