package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/power-play/models"
)

const jwtClaimUserID = "user_id"

var ErrNoUserInContext = errors.New("user not found in context")

func WithUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(AuthUser)
	return user, ok
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	user, ok := UserFromContext(ctx)
	if !ok || user.ID <= 0 {
		return 0, ErrNoUserInContext
	}
	return user.ID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return "", ErrNoUserInContext
	}
	if !user.Role.Valid() {
		return "", fmt.Errorf("invalid role value in context: %q", user.Role)
	}
	return user.Role, nil
}

func userIDFromClaims(claims jwt.MapClaims) (int, error) {
	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}

	var userID int
	switch v := userIDClaim.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("'%s' claim is not an integer: %f", jwtClaimUserID, v)
		}
		userID = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid '%s' claim: %q", jwtClaimUserID, v)
		}
		userID = parsed
	default:
		return 0, fmt.Errorf("invalid type for '%s' claim: expected float64 or string, got %T", jwtClaimUserID, userIDClaim)
	}

	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}
	return userID, nil
}
