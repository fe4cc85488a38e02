package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/power-play/models"
)

type contextKey string

const (
	userContextKey       contextKey = "user"
	queryTokenContextKey contextKey = "query_token"
)

// ProfileLookup - то, что нужно middleware от репозитория профилей.
type ProfileLookup interface {
	GetByID(ctx context.Context, id int) (*models.Profile, error)
}

// AuthUser - данные текущего пользователя, которые кладутся в контекст запроса.
type AuthUser struct {
	ID                  int
	Role                models.UserRole
	OnboardingCompleted bool
}

// Authenticate проверяет JWT из заголовка Authorization, загружает профиль и отклоняет
// удалённые аккаунты. Роль берётся из БД, а не из токена, чтобы смена роли действовала сразу.
func Authenticate(secret []byte, profiles ProfileLookup) func(http.Handler) http.Handler {
	return authenticate(secret, profiles, bearerToken)
}

// AuthenticateWS - то же для websocket: браузер не умеет передавать заголовки при апгрейде,
// поэтому дополнительно принимается ?token=, который StripQueryToken убрал из URL.
func AuthenticateWS(secret []byte, profiles ProfileLookup) func(http.Handler) http.Handler {
	return authenticate(secret, profiles, func(r *http.Request) string {
		if r.Header.Get("Authorization") != "" {
			return bearerToken(r)
		}
		token, _ := r.Context().Value(queryTokenContextKey).(string)
		return token
	})
}

// StripQueryToken убирает token из query до логирования запроса и кладёт его в контекст.
// Должен стоять перед chi Logger.
func StripQueryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if !query.Has("token") {
			next.ServeHTTP(w, r)
			return
		}
		token := query.Get("token")
		query.Del("token")

		u := *r.URL
		u.RawQuery = query.Encode()
		stripped := r.WithContext(context.WithValue(r.Context(), queryTokenContextKey, token))
		stripped.URL = &u
		stripped.RequestURI = u.RequestURI()
		next.ServeHTTP(w, stripped)
	})
}

func authenticate(secret []byte, profiles ProfileLookup, extract func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extract(r)
			if tokenString == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := parseToken(secret, tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			profile, err := profiles.GetByID(r.Context(), userID)
			if err != nil || profile.IsDeleted() {
				writeError(w, http.StatusUnauthorized, "account not found")
				return
			}

			user := AuthUser{
				ID:                  profile.ID,
				Role:                profile.Role,
				OnboardingCompleted: profile.OnboardingCompleted,
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole пропускает только пользователей с одной из перечисленных ролей.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin, models.RoleSuperuser)(next)
}

func RequireSuperuser(next http.Handler) http.Handler {
	return RequireRole(models.RoleSuperuser)(next)
}

// RequireOnboarded закрывает маршруты для пользователей, не заполнивших профиль.
func RequireOnboarded(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.OnboardingCompleted {
			writeError(w, http.StatusForbidden, "onboarding required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func parseToken(secret []byte, tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	return userIDFromClaims(claims)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
