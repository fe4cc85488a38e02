package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
	"github.com/Dosada05/power-play/storage"
)

const clubLogoPrefix = "club-logos"

type ClubService interface {
	Create(ctx context.Context, actor Actor, input CreateClubInput) (*models.Club, error)
	Update(ctx context.Context, actor Actor, clubID int, input UpdateClubInput) (*models.Club, error)
	UploadLogo(ctx context.Context, actor Actor, clubID int, file io.Reader, contentType string) (*models.Club, error)
	GetByID(ctx context.Context, clubID int) (*models.Club, error)
	List(ctx context.Context, search string, page, limit int) ([]*models.Club, error)
	ListMy(ctx context.Context, userID int) ([]*models.Club, error)

	Apply(ctx context.Context, userID, clubID int) (*models.ClubMember, error)
	ListMembers(ctx context.Context, actor Actor, clubID int) ([]models.ClubMember, error)
	ReviewMember(ctx context.Context, actor Actor, clubID, userID int, input ReviewMemberInput) (*models.ClubMember, error)
	Leave(ctx context.Context, userID, clubID int) error
}

type CreateClubInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ContactInfo *string `json:"contact_info"`
	OpenChatURL *string `json:"open_chat_url"`
}

type UpdateClubInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ContactInfo *string `json:"contact_info"`
	OpenChatURL *string `json:"open_chat_url"`
}

type ReviewMemberInput struct {
	Status models.ClubMemberStatus `json:"status"`
	Role   *models.ClubMemberRole  `json:"role,omitempty"`
}

type clubService struct {
	clubRepo    repositories.ClubRepository
	profileRepo repositories.ProfileRepository
	tx          repositories.Transactor
	uploader    storage.FileUploader
	notifier    Notifier
	audit       AuditService
	logger      *slog.Logger
}

func NewClubService(
	clubRepo repositories.ClubRepository,
	profileRepo repositories.ProfileRepository,
	tx repositories.Transactor,
	uploader storage.FileUploader,
	notifier Notifier,
	audit AuditService,
	logger *slog.Logger,
) ClubService {
	if logger == nil {
		logger = slog.Default()
	}
	return &clubService{
		clubRepo:    clubRepo,
		profileRepo: profileRepo,
		tx:          tx,
		uploader:    uploader,
		notifier:    notifier,
		audit:       audit,
		logger:      logger,
	}
}

// makeClubSlug транслитерирует название (в том числе хангыль); для пустого результата
// генерируется случайный slug.
func makeClubSlug(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "club-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	}
	return s
}

func (s *clubService) Create(ctx context.Context, actor Actor, input CreateClubInput) (*models.Club, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClubNameRequired
	}

	club := &models.Club{
		Name:        name,
		Slug:        makeClubSlug(name),
		Description: trimmedOrNil(input.Description),
		ContactInfo: trimmedOrNil(input.ContactInfo),
		OpenChatURL: trimmedOrNil(input.OpenChatURL),
		CreatedBy:   actor.ID,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.clubRepo.Create(ctx, exec, club); err != nil {
			return err
		}
		return s.clubRepo.AddMember(ctx, exec, &models.ClubMember{
			ClubID: club.ID,
			UserID: actor.ID,
			Role:   models.ClubRoleAdmin,
			Status: models.ClubMemberApproved,
		})
	})
	if err != nil {
		return nil, wrapRepoError("failed to create club", err)
	}
	club.MemberCount = 1

	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionClubCreated,
		TargetType: "club",
		TargetID:   &club.ID,
		Details:    map[string]interface{}{"name": club.Name},
	})
	return club, nil
}

// requireClubAdmin пропускает одобренных админов клуба и администраторов сайта.
func (s *clubService) requireClubAdmin(ctx context.Context, actor Actor, clubID int) error {
	if actor.IsAdmin() {
		return nil
	}
	member, err := s.clubRepo.GetMember(ctx, clubID, actor.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubMemberNotFound) {
			return ErrClubAdminRequired
		}
		return err
	}
	if !member.IsApprovedAdmin() {
		return ErrClubAdminRequired
	}
	return nil
}

func (s *clubService) Update(ctx context.Context, actor Actor, clubID int, input UpdateClubInput) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, wrapRepoError("failed to get club", err)
	}
	if err := s.requireClubAdmin(ctx, actor, clubID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrClubNameRequired
		}
		if name != club.Name {
			club.Name = name
			club.Slug = makeClubSlug(name)
		}
	}
	if input.Description != nil {
		club.Description = trimmedOrNil(input.Description)
	}
	if input.ContactInfo != nil {
		club.ContactInfo = trimmedOrNil(input.ContactInfo)
	}
	if input.OpenChatURL != nil {
		club.OpenChatURL = trimmedOrNil(input.OpenChatURL)
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, wrapRepoError("failed to update club", err)
	}
	populateClubLogoURL(club, s.uploader)
	return club, nil
}

func (s *clubService) UploadLogo(ctx context.Context, actor Actor, clubID int, file io.Reader, contentType string) (*models.Club, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, wrapRepoError("failed to get club", err)
	}
	if err := s.requireClubAdmin(ctx, actor, clubID); err != nil {
		return nil, err
	}

	key, err := storage.ImageKey(clubLogoPrefix, clubID, contentType)
	if err != nil {
		return nil, err
	}
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload club logo: %w", err)
	}

	oldKey := club.LogoKey
	club.LogoKey = &key
	if err := s.clubRepo.Update(ctx, club); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up uploaded logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, wrapRepoError("failed to save club logo", err)
	}
	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous club logo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	populateClubLogoURL(club, s.uploader)
	return club, nil
}

func (s *clubService) GetByID(ctx context.Context, clubID int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, wrapRepoError("failed to get club", err)
	}
	populateClubLogoURL(club, s.uploader)
	return club, nil
}

func (s *clubService) List(ctx context.Context, search string, page, limit int) ([]*models.Club, error) {
	clubs, err := s.clubRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, err
	}
	for _, c := range clubs {
		populateClubLogoURL(c, s.uploader)
	}
	return clubs, nil
}

func (s *clubService) ListMy(ctx context.Context, userID int) ([]*models.Club, error) {
	clubs, err := s.clubRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range clubs {
		populateClubLogoURL(c, s.uploader)
	}
	return clubs, nil
}

// Apply подаёт заявку в клуб. Отклонённый ранее пользователь может подать её повторно.
func (s *clubService) Apply(ctx context.Context, userID, clubID int) (*models.ClubMember, error) {
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, wrapRepoError("failed to get club", err)
	}

	member, err := s.clubRepo.GetMember(ctx, clubID, userID)
	switch {
	case err == nil:
		if member.Status != models.ClubMemberRejected {
			return nil, ErrAlreadyClubMember
		}
		member.Status = models.ClubMemberPending
		member.Role = models.ClubRoleMember
		if err := s.clubRepo.UpdateMember(ctx, member); err != nil {
			return nil, wrapRepoError("failed to reapply to club", err)
		}
	case errors.Is(err, repositories.ErrClubMemberNotFound):
		member = &models.ClubMember{
			ClubID: clubID,
			UserID: userID,
			Role:   models.ClubRoleMember,
			Status: models.ClubMemberPending,
		}
		if err := s.clubRepo.AddMember(ctx, nil, member); err != nil {
			return nil, wrapRepoError("failed to apply to club", err)
		}
	default:
		return nil, err
	}

	applicantName := ""
	if profile, err := s.profileRepo.GetByID(ctx, userID); err == nil {
		applicantName = profile.FullName
	}
	approved := models.ClubMemberApproved
	admins, err := s.clubRepo.ListMembers(ctx, clubID, &approved)
	if err != nil {
		s.logger.Warn("failed to load club admins for notification", slog.Int("club_id", clubID), slog.Any("error", err))
		return member, nil
	}
	for _, admin := range admins {
		if admin.Role != models.ClubRoleAdmin {
			continue
		}
		s.notifier.NotifyUser(ctx, admin.UserID, Notification{
			TitleKey: i18n.MsgClubApplyTitle,
			BodyKey:  i18n.MsgClubApplyBody,
			BodyArgs: []interface{}{applicantName, club.Name},
			URL:      fmt.Sprintf("/clubs/%d/members", clubID),
		})
	}
	return member, nil
}

func (s *clubService) ListMembers(ctx context.Context, actor Actor, clubID int) ([]models.ClubMember, error) {
	if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		return nil, wrapRepoError("failed to get club", err)
	}
	if err := s.requireClubAdmin(ctx, actor, clubID); err != nil {
		if !errors.Is(err, ErrClubAdminRequired) {
			return nil, err
		}
		approved := models.ClubMemberApproved
		return s.clubRepo.ListMembers(ctx, clubID, &approved)
	}
	return s.clubRepo.ListMembers(ctx, clubID, nil)
}

func (s *clubService) ReviewMember(ctx context.Context, actor Actor, clubID, userID int, input ReviewMemberInput) (*models.ClubMember, error) {
	if input.Status != models.ClubMemberApproved && input.Status != models.ClubMemberRejected {
		return nil, ErrInvalidStatus
	}
	if input.Role != nil && *input.Role != models.ClubRoleMember && *input.Role != models.ClubRoleAdmin {
		return nil, ErrInvalidRole
	}
	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, wrapRepoError("failed to get club", err)
	}
	if err := s.requireClubAdmin(ctx, actor, clubID); err != nil {
		return nil, err
	}

	member, err := s.clubRepo.GetMember(ctx, clubID, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get club member", err)
	}
	wasAdmin := member.IsApprovedAdmin()
	previous := member.Status
	member.Status = input.Status
	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.Status == models.ClubMemberRejected {
		member.Role = models.ClubRoleMember
	}
	if wasAdmin && !member.IsApprovedAdmin() {
		if err := s.ensureAnotherClubAdmin(ctx, clubID); err != nil {
			return nil, err
		}
	}
	if err := s.clubRepo.UpdateMember(ctx, member); err != nil {
		return nil, wrapRepoError("failed to update club member", err)
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionClubMemberUpdated,
		TargetType: "club",
		TargetID:   &clubID,
		Details:    map[string]interface{}{"user_id": userID, "status": member.Status, "role": member.Role},
	})

	if previous != member.Status {
		body := i18n.MsgClubApprovedBody
		if member.Status == models.ClubMemberRejected {
			body = i18n.MsgClubRejectedBody
		}
		s.notifier.NotifyUser(ctx, userID, Notification{
			TitleKey: i18n.MsgClubReviewedTitle,
			BodyKey:  body,
			BodyArgs: []interface{}{club.Name},
			URL:      fmt.Sprintf("/clubs/%d", clubID),
		})
	}
	return member, nil
}

// Leave удаляет членство. Последний админ клуба уйти не может.
func (s *clubService) Leave(ctx context.Context, userID, clubID int) error {
	member, err := s.clubRepo.GetMember(ctx, clubID, userID)
	if err != nil {
		return wrapRepoError("failed to get club member", err)
	}
	if member.IsApprovedAdmin() {
		if err := s.ensureAnotherClubAdmin(ctx, clubID); err != nil {
			return err
		}
	}
	if err := s.clubRepo.RemoveMember(ctx, clubID, userID); err != nil {
		return wrapRepoError("failed to leave club", err)
	}
	return nil
}

// ensureAnotherClubAdmin возвращает ErrLastClubAdmin, если в клубе только один одобренный админ.
func (s *clubService) ensureAnotherClubAdmin(ctx context.Context, clubID int) error {
	approved := models.ClubMemberApproved
	members, err := s.clubRepo.ListMembers(ctx, clubID, &approved)
	if err != nil {
		return err
	}
	admins := 0
	for _, m := range members {
		if m.Role == models.ClubRoleAdmin {
			admins++
		}
	}
	if admins <= 1 {
		return ErrLastClubAdmin
	}
	return nil
}
