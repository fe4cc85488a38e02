package services

import (
	"context"
	"time"

	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

type AdminService interface {
	ListUsers(ctx context.Context, actor Actor, filter models.ProfileFilter) (*models.ProfileListResponse, error)
	SetRole(ctx context.Context, actor Actor, userID int, role models.UserRole) error
	DeleteUser(ctx context.Context, actor Actor, userID int) error
	Dashboard(ctx context.Context, actor Actor) (*models.DashboardStats, error)
}

type adminService struct {
	profileRepo repositories.ProfileRepository
	matchRepo   repositories.MatchRepository
	pointRepo   repositories.PointRepository
	clubRepo    repositories.ClubRepository
	audit       AuditService
	now         func() time.Time
}

func NewAdminService(
	profileRepo repositories.ProfileRepository,
	matchRepo repositories.MatchRepository,
	pointRepo repositories.PointRepository,
	clubRepo repositories.ClubRepository,
	audit AuditService,
) AdminService {
	return &adminService{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		pointRepo:   pointRepo,
		clubRepo:    clubRepo,
		audit:       audit,
		now:         time.Now,
	}
}

func (s *adminService) ListUsers(ctx context.Context, actor Actor, filter models.ProfileFilter) (*models.ProfileListResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &models.ProfileListResponse{
		Users:      users,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// SetRole доступен только суперпользователю; свою роль понизить нельзя.
func (s *adminService) SetRole(ctx context.Context, actor Actor, userID int, role models.UserRole) error {
	if actor.Role != models.RoleSuperuser {
		return ErrSuperuserRequired
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	if userID == actor.ID && role != models.RoleSuperuser {
		return ErrForbiddenOperation
	}
	if err := s.profileRepo.SetRole(ctx, userID, role); err != nil {
		return wrapRepoError("failed to set role", err)
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionRoleChanged,
		TargetType: "profile",
		TargetID:   &userID,
		Details:    map[string]interface{}{"role": role},
	})
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, actor Actor, userID int) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	if userID == actor.ID {
		return ErrForbiddenOperation
	}
	target, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return wrapRepoError("failed to get profile", err)
	}
	// Администратор не может удалить суперпользователя.
	if target.Role == models.RoleSuperuser && actor.Role != models.RoleSuperuser {
		return ErrSuperuserRequired
	}
	if err := s.profileRepo.SoftDelete(ctx, userID, s.now().UTC()); err != nil {
		return wrapRepoError("failed to delete user", err)
	}
	s.audit.Record(ctx, AuditEntry{ActorID: &actor.ID, Action: ActionUserDeleted, TargetType: "profile", TargetID: &userID})
	return nil
}

func (s *adminService) Dashboard(ctx context.Context, actor Actor) (*models.DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	var (
		stats models.DashboardStats
		err   error
	)
	if stats.UsersTotal, err = s.profileRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OpenMatches, err = s.matchRepo.CountByStatus(ctx, models.MatchStatusOpen); err != nil {
		return nil, err
	}
	if stats.PendingCharges, err = s.pointRepo.CountCharges(ctx, models.ChargePending); err != nil {
		return nil, err
	}
	if stats.ClubsTotal, err = s.clubRepo.Count(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
