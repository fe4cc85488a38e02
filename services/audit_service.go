package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

// Действия, которые пишутся в журнал аудита.
const (
	ActionChargeRequested   = "point_charge_requested"
	ActionChargeConfirmed   = "point_charge_confirmed"
	ActionChargeRejected    = "point_charge_rejected"
	ActionPointsAdjusted    = "points_adjusted"
	ActionMatchCreated      = "match_created"
	ActionMatchUpdated      = "match_updated"
	ActionMatchCanceled     = "match_canceled"
	ActionMatchClosed       = "match_closed"
	ActionParticipantStatus = "participant_status_changed"
	ActionClubCreated       = "club_created"
	ActionClubMemberUpdated = "club_member_reviewed"
	ActionRinkCreated       = "rink_created"
	ActionRinkUpdated       = "rink_updated"
	ActionRinkDeleted       = "rink_deleted"
	ActionRoleChanged       = "user_role_changed"
	ActionUserDeleted       = "user_deleted"
)

// Эти действия дополнительно уходят push-уведомлением всем суперпользователям.
var notableActions = map[string]string{
	ActionPointsAdjusted: i18n.MsgAuditPointsAdjusted,
	ActionRoleChanged:    i18n.MsgAuditRoleChanged,
	ActionUserDeleted:    i18n.MsgAuditUserDeleted,
	ActionMatchCanceled:  i18n.MsgAuditMatchCanceled,
}

type AuditEntry struct {
	ActorID    *int
	Action     string
	TargetType string
	TargetID   *int
	Details    map[string]interface{}
	// Notify заменяет стандартный текст уведомления суперпользователям.
	Notify *Notification
}

type AuditListResponse struct {
	Logs       []models.AuditLog `json:"logs"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type AuditService interface {
	// Record никогда не возвращает ошибку вызывающему: сбой аудита не должен ломать операцию.
	Record(ctx context.Context, entry AuditEntry)
	List(ctx context.Context, filter models.AuditFilter) (*AuditListResponse, error)
}

type auditService struct {
	auditRepo repositories.AuditRepository
	notifier  Notifier
	logger    *slog.Logger
}

func NewAuditService(auditRepo repositories.AuditRepository, notifier Notifier, logger *slog.Logger) AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	return &auditService{auditRepo: auditRepo, notifier: notifier, logger: logger}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	log := &models.AuditLog{
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
	}
	if len(entry.Details) > 0 {
		details, err := json.Marshal(entry.Details)
		if err != nil {
			s.logger.Error("failed to marshal audit details", slog.String("action", entry.Action), slog.Any("error", err))
		} else {
			log.Details = details
		}
	}
	if err := s.auditRepo.Create(ctx, log); err != nil {
		s.logger.Error("failed to write audit log", slog.String("action", entry.Action), slog.Any("error", err))
	}

	if s.notifier == nil {
		return
	}
	if entry.Notify != nil {
		s.notifier.NotifyRole(ctx, models.RoleSuperuser, *entry.Notify)
		return
	}
	if bodyKey, ok := notableActions[entry.Action]; ok {
		targetID := 0
		if entry.TargetID != nil {
			targetID = *entry.TargetID
		}
		s.notifier.NotifyRole(ctx, models.RoleSuperuser, Notification{
			TitleKey: i18n.MsgAuditTitle,
			BodyKey:  bodyKey,
			BodyArgs: []interface{}{targetID},
			URL:      "/admin/audit",
		})
	}
}

func (s *auditService) List(ctx context.Context, filter models.AuditFilter) (*AuditListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	logs, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &AuditListResponse{Logs: logs, TotalCount: total, Page: filter.Page, Limit: filter.Limit}, nil
}
