package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
	"github.com/Dosada05/power-play/storage"
)

const avatarPrefix = "avatars"

type ProfileService interface {
	GetMe(ctx context.Context, userID int) (*models.Profile, error)
	GetPublic(ctx context.Context, userID int) (*PublicProfile, error)
	UpdateMe(ctx context.Context, userID int, input UpdateProfileInput) (*models.Profile, error)
	CompleteOnboarding(ctx context.Context, userID int, input OnboardingInput) (*models.Profile, error)
	UploadAvatar(ctx context.Context, userID int, file io.Reader, contentType string) (*models.Profile, error)
	DeleteMe(ctx context.Context, userID int) error
}

// PublicProfile - то, что видят другие пользователи (без email, телефона и баланса).
type PublicProfile struct {
	ID        int              `json:"id"`
	FullName  string           `json:"full_name"`
	Position  *models.Position `json:"position,omitempty"`
	AvatarURL *string          `json:"avatar_url,omitempty"`
}

type UpdateProfileInput struct {
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	Position      *string `json:"position"`
	PreferredLang *string `json:"preferred_lang"`
}

type OnboardingInput struct {
	FullName      string  `json:"full_name"`
	Phone         *string `json:"phone"`
	Position      string  `json:"position"`
	PreferredLang string  `json:"preferred_lang"`
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileService{
		profileRepo: profileRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

func (s *profileService) GetMe(ctx context.Context, userID int) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get profile", err)
	}
	if profile.IsDeleted() {
		return nil, ErrAccountDeleted
	}
	populateProfileAvatarURL(profile, s.uploader)
	return profile, nil
}

func (s *profileService) GetPublic(ctx context.Context, userID int) (*PublicProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get profile", err)
	}
	if profile.IsDeleted() {
		return nil, ErrUserNotFound
	}
	populateProfileAvatarURL(profile, s.uploader)
	return &PublicProfile{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Position:  profile.Position,
		AvatarURL: profile.AvatarURL,
	}, nil
}

func parsePosition(raw string) (*models.Position, error) {
	pos := models.Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !pos.Valid() {
		return nil, ErrInvalidPosition
	}
	return &pos, nil
}

func (s *profileService) UpdateMe(ctx context.Context, userID int, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: full_name must not be empty", ErrValidationFailed)
		}
		profile.FullName = name
	}
	if input.Phone != nil {
		profile.Phone = trimmedOrNil(input.Phone)
	}
	if input.Position != nil {
		if strings.TrimSpace(*input.Position) == "" {
			profile.Position = nil
		} else {
			pos, err := parsePosition(*input.Position)
			if err != nil {
				return nil, err
			}
			profile.Position = pos
		}
	}
	if input.PreferredLang != nil {
		if !i18n.IsSupported(*input.PreferredLang) {
			return nil, fmt.Errorf("%w: preferred_lang must be ko or en", ErrValidationFailed)
		}
		profile.PreferredLang = *input.PreferredLang
	}

	// GetMe очищает хеш пароля, поэтому перечитываем его перед сохранением.
	stored, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get profile", err)
	}
	profile.PasswordHash = stored.PasswordHash
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, wrapRepoError("failed to update profile", err)
	}
	populateProfileAvatarURL(profile, s.uploader)
	return profile, nil
}

func (s *profileService) CompleteOnboarding(ctx context.Context, userID int, input OnboardingInput) (*models.Profile, error) {
	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrValidationFailed)
	}
	pos, err := parsePosition(input.Position)
	if err != nil {
		return nil, err
	}
	lang := input.PreferredLang
	if lang == "" {
		lang = i18n.FromContext(ctx)
	}
	if !i18n.IsSupported(lang) {
		return nil, fmt.Errorf("%w: preferred_lang must be ko or en", ErrValidationFailed)
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get profile", err)
	}
	if profile.IsDeleted() {
		return nil, ErrAccountDeleted
	}

	profile.FullName = name
	profile.Phone = trimmedOrNil(input.Phone)
	profile.Position = pos
	profile.PreferredLang = lang
	profile.OnboardingCompleted = true
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, wrapRepoError("failed to complete onboarding", err)
	}
	populateProfileAvatarURL(profile, s.uploader)
	return profile, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, userID int, file io.Reader, contentType string) (*models.Profile, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get profile", err)
	}

	key, err := storage.ImageKey(avatarPrefix, userID, contentType)
	if err != nil {
		return nil, err
	}
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	oldKey := profile.AvatarKey
	profile.AvatarKey = &key
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up uploaded avatar", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, wrapRepoError("failed to save avatar", err)
	}
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous avatar", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	populateProfileAvatarURL(profile, s.uploader)
	return profile, nil
}

func (s *profileService) DeleteMe(ctx context.Context, userID int) error {
	if err := s.profileRepo.SoftDelete(ctx, userID, time.Now().UTC()); err != nil {
		return wrapRepoError("failed to delete profile", err)
	}
	return nil
}
