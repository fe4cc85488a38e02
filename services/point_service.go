package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

type PointService interface {
	RequestCharge(ctx context.Context, userID int, input ChargeRequestInput) (*models.PointChargeRequest, error)
	ConfirmCharge(ctx context.Context, actor Actor, requestID int) (*models.Settlement, error)
	RejectCharge(ctx context.Context, actor Actor, requestID int) (*models.PointChargeRequest, error)
	ListCharges(ctx context.Context, actor Actor, status *models.ChargeStatus, page, limit int) ([]models.PointChargeRequest, error)
	ListMyCharges(ctx context.Context, userID, page, limit int) ([]models.PointChargeRequest, error)
	ListMyTransactions(ctx context.Context, userID, page, limit int) ([]models.PointTransaction, error)
	AdjustPoints(ctx context.Context, actor Actor, userID int, input AdjustPointsInput) (*models.PointTransaction, error)
}

type ChargeRequestInput struct {
	Amount        int    `json:"amount"`
	DepositorName string `json:"depositor_name"`
}

type AdjustPointsInput struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

type pointService struct {
	pointRepo       repositories.PointRepository
	profileRepo     repositories.ProfileRepository
	participantRepo repositories.ParticipantRepository
	tx              repositories.Transactor
	ledger          ledger
	notifier        Notifier
	audit           AuditService
	logger          *slog.Logger
	now             func() time.Time
}

func NewPointService(
	pointRepo repositories.PointRepository,
	profileRepo repositories.ProfileRepository,
	participantRepo repositories.ParticipantRepository,
	tx repositories.Transactor,
	notifier Notifier,
	audit AuditService,
	logger *slog.Logger,
) PointService {
	if logger == nil {
		logger = slog.Default()
	}
	return &pointService{
		pointRepo:       pointRepo,
		profileRepo:     profileRepo,
		participantRepo: participantRepo,
		tx:              tx,
		ledger:          ledger{profileRepo: profileRepo, pointRepo: pointRepo},
		notifier:        notifier,
		audit:           audit,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *pointService) RequestCharge(ctx context.Context, userID int, input ChargeRequestInput) (*models.PointChargeRequest, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	depositor := strings.TrimSpace(input.DepositorName)
	if depositor == "" {
		return nil, ErrDepositorNameRequired
	}

	req := &models.PointChargeRequest{
		UserID:        userID,
		Amount:        input.Amount,
		DepositorName: depositor,
		Status:        models.ChargePending,
	}
	if err := s.pointRepo.CreateCharge(ctx, req); err != nil {
		return nil, wrapRepoError("failed to create charge request", err)
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    &userID,
		Action:     ActionChargeRequested,
		TargetType: "point_charge_request",
		TargetID:   &req.ID,
		Details:    map[string]interface{}{"amount": req.Amount, "depositor_name": req.DepositorName},
		Notify: &Notification{
			TitleKey: i18n.MsgChargeRequestedTitle,
			BodyKey:  i18n.MsgChargeRequestedBody,
			BodyArgs: []interface{}{depositor, req.Amount},
			URL:      "/admin/points",
		},
	})
	return req, nil
}

// ConfirmCharge в одной транзакции зачисляет пополнение и оплачивает ожидающие заявки
// пользователя в порядке подачи, пока хватает баланса. Заявки, которые не помещаются
// в остаток, пропускаются. Повторное подтверждение возвращает ErrChargeAlreadyProcessed.
func (s *pointService) ConfirmCharge(ctx context.Context, actor Actor, requestID int) (*models.Settlement, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	settlement := &models.Settlement{ConfirmedParticipants: []int{}}
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		req, err := s.pointRepo.GetChargeForUpdate(ctx, exec, requestID)
		if err != nil {
			return err
		}
		if req.Status != models.ChargePending {
			return ErrChargeAlreadyProcessed
		}

		// Заявки блокируются раньше баланса: порядок тот же, что в Join и Cancel.
		fees, err := s.participantRepo.ListPendingFees(ctx, exec, req.UserID)
		if err != nil {
			return err
		}
		balance, err := s.profileRepo.LockPoints(ctx, exec, req.UserID)
		if err != nil {
			return err
		}
		credit, err := s.ledger.apply(ctx, exec, req.UserID, balance, req.Amount, models.PointTxCharge, &req.ID)
		if err != nil {
			return err
		}
		balance = credit.BalanceAfter

		processedAt := s.now().UTC()
		if err := s.pointRepo.UpdateChargeStatus(ctx, exec, req.ID, models.ChargeConfirmed, actor.ID, processedAt); err != nil {
			return err
		}
		req.Status = models.ChargeConfirmed
		req.ProcessedBy = &actor.ID
		req.ProcessedAt = &processedAt

		for _, fee := range fees {
			if fee.Fee > balance {
				continue
			}
			if fee.Fee > 0 {
				matchID := fee.MatchID
				debit, err := s.ledger.apply(ctx, exec, req.UserID, balance, -fee.Fee, models.PointTxUse, &matchID)
				if err != nil {
					return err
				}
				balance = debit.BalanceAfter
			}
			if err := s.participantRepo.UpdateStatus(ctx, exec, fee.ParticipantID, models.ParticipantConfirmed, true); err != nil {
				return err
			}
			settlement.ConfirmedParticipants = append(settlement.ConfirmedParticipants, fee.ParticipantID)
		}

		settlement.Request = req
		settlement.Balance = balance
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to confirm charge request", err)
	}

	req := settlement.Request
	s.logger.Info("point charge confirmed",
		slog.Int("request_id", req.ID),
		slog.Int("user_id", req.UserID),
		slog.Int("amount", req.Amount),
		slog.Int("settled", len(settlement.ConfirmedParticipants)))

	s.notifier.NotifyUser(ctx, req.UserID, Notification{
		TitleKey: i18n.MsgChargeConfirmedTitle,
		BodyKey:  i18n.MsgChargeConfirmedBody,
		BodyArgs: []interface{}{req.Amount, settlement.Balance},
		URL:      "/points",
	})
	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionChargeConfirmed,
		TargetType: "point_charge_request",
		TargetID:   &req.ID,
		Details: map[string]interface{}{
			"user_id":                req.UserID,
			"amount":                 req.Amount,
			"balance":                settlement.Balance,
			"confirmed_participants": settlement.ConfirmedParticipants,
		},
	})
	return settlement, nil
}

func (s *pointService) RejectCharge(ctx context.Context, actor Actor, requestID int) (*models.PointChargeRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}

	var req *models.PointChargeRequest
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		r, err := s.pointRepo.GetChargeForUpdate(ctx, exec, requestID)
		if err != nil {
			return err
		}
		if r.Status != models.ChargePending {
			return ErrChargeAlreadyProcessed
		}
		processedAt := s.now().UTC()
		if err := s.pointRepo.UpdateChargeStatus(ctx, exec, r.ID, models.ChargeRejected, actor.ID, processedAt); err != nil {
			return err
		}
		r.Status = models.ChargeRejected
		r.ProcessedBy = &actor.ID
		r.ProcessedAt = &processedAt
		req = r
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to reject charge request", err)
	}

	s.notifier.NotifyUser(ctx, req.UserID, Notification{
		TitleKey: i18n.MsgChargeRejectedTitle,
		BodyKey:  i18n.MsgChargeRejectedBody,
		BodyArgs: []interface{}{req.Amount},
		URL:      "/points",
	})
	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionChargeRejected,
		TargetType: "point_charge_request",
		TargetID:   &req.ID,
		Details:    map[string]interface{}{"user_id": req.UserID, "amount": req.Amount},
	})
	return req, nil
}

func (s *pointService) ListCharges(ctx context.Context, actor Actor, status *models.ChargeStatus, page, limit int) ([]models.PointChargeRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if status != nil {
		switch *status {
		case models.ChargePending, models.ChargeConfirmed, models.ChargeRejected:
		default:
			return nil, ErrInvalidStatus
		}
	}
	return s.pointRepo.ListCharges(ctx, status, nil, page, limit)
}

func (s *pointService) ListMyCharges(ctx context.Context, userID, page, limit int) ([]models.PointChargeRequest, error) {
	return s.pointRepo.ListCharges(ctx, nil, &userID, page, limit)
}

func (s *pointService) ListMyTransactions(ctx context.Context, userID, page, limit int) ([]models.PointTransaction, error) {
	return s.pointRepo.ListTransactions(ctx, userID, page, limit)
}

// AdjustPoints - ручная корректировка баланса суперпользователем.
func (s *pointService) AdjustPoints(ctx context.Context, actor Actor, userID int, input AdjustPointsInput) (*models.PointTransaction, error) {
	if actor.Role != models.RoleSuperuser {
		return nil, ErrSuperuserRequired
	}
	if input.Delta == 0 {
		return nil, ErrInvalidAmount
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidationFailed)
	}

	var entry *models.PointTransaction
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		current, err := s.profileRepo.LockPoints(ctx, exec, userID)
		if err != nil {
			return err
		}
		entry, err = s.ledger.apply(ctx, exec, userID, current, input.Delta, models.PointTxAdjust, &actor.ID)
		return err
	})
	if err != nil {
		return nil, wrapRepoError("failed to adjust points", err)
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionPointsAdjusted,
		TargetType: "profile",
		TargetID:   &userID,
		Details:    map[string]interface{}{"delta": input.Delta, "reason": reason, "balance": entry.BalanceAfter},
	})
	return entry, nil
}
