package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
	"github.com/Dosada05/power-play/utils"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Profile, error)
	Login(ctx context.Context, input LoginInput) (*models.Profile, error)
	ChangePassword(ctx context.Context, userID int, input ChangePasswordInput) error
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type authService struct {
	profileRepo repositories.ProfileRepository
}

func NewAuthService(profileRepo repositories.ProfileRepository) AuthService {
	return &authService{
		profileRepo: profileRepo,
	}
}

// Register создаёт профиль с ролью user. Язык берётся из контекста запроса (i18n.Middleware).
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Profile, error) {
	email := utils.NormalizeEmail(input.Email)
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < utils.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Email:         email,
		PasswordHash:  hashedPassword,
		FullName:      input.FullName,
		Role:          models.RoleUser,
		PreferredLang: i18n.FromContext(ctx),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, wrapRepoError("failed to create profile", err)
	}

	profile.PasswordHash = ""
	return profile, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if profile.IsDeleted() {
		return nil, ErrAccountDeleted
	}

	profile.PasswordHash = ""
	return profile, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int, input ChangePasswordInput) error {
	if len(input.NewPassword) < utils.MinPasswordLength {
		return ErrPasswordTooShort
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return wrapRepoError("failed to get profile", err)
	}
	if !utils.CheckPasswordHash(input.CurrentPassword, profile.PasswordHash) {
		return ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	profile.PasswordHash = hashedPassword
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return wrapRepoError("failed to update password", err)
	}
	return nil
}
