package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/i18n"
)

func TestRegisterAndLogin(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := NewAuthService(profiles)
	ctx := i18n.WithLang(context.Background(), i18n.LangEn)

	_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, RegisterInput{Email: "kim@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	profile, err := svc.Register(ctx, RegisterInput{Email: " Kim@Example.com ", Password: "longenough", FullName: "Kim"})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", profile.Email)
	assert.Equal(t, i18n.LangEn, profile.PreferredLang)
	assert.Empty(t, profile.PasswordHash)
	assert.False(t, profile.OnboardingCompleted)

	_, err = svc.Register(ctx, RegisterInput{Email: "kim@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrEmailConflict)

	_, err = svc.Login(ctx, LoginInput{Email: "kim@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loggedIn, err := svc.Login(ctx, LoginInput{Email: "KIM@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestLogin_DeletedAccount(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := NewAuthService(profiles)

	profile, err := svc.Register(context.Background(), RegisterInput{Email: "lee@example.com", Password: "longenough"})
	require.NoError(t, err)
	deletedAt := time.Now()
	profiles.profiles[profile.ID].DeletedAt = &deletedAt

	_, err = svc.Login(context.Background(), LoginInput{Email: "lee@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrAccountDeleted)
}

func TestChangePassword(t *testing.T) {
	profiles := newFakeProfileRepo()
	svc := NewAuthService(profiles)

	profile, err := svc.Register(context.Background(), RegisterInput{Email: "park@example.com", Password: "old-password"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), profile.ID, ChangePasswordInput{CurrentPassword: "old-password", NewPassword: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.ChangePassword(context.Background(), profile.ID, ChangePasswordInput{CurrentPassword: "bad-password", NewPassword: "new-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), profile.ID,
		ChangePasswordInput{CurrentPassword: "old-password", NewPassword: "new-password"}))

	_, err = svc.Login(context.Background(), LoginInput{Email: "park@example.com", Password: "old-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), LoginInput{Email: "park@example.com", Password: "new-password"})
	assert.NoError(t, err)
}
