package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
)

type ParticipantService interface {
	Join(ctx context.Context, userID, matchID int, input JoinMatchInput) (*models.Participant, error)
	Cancel(ctx context.Context, actor Actor, participantID int) (*models.Participant, error)
	SetStatus(ctx context.Context, actor Actor, participantID int, input SetParticipantStatusInput) (*models.Participant, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Participant, error)
	ListMine(ctx context.Context, userID int) ([]*models.Participant, error)
}

type JoinMatchInput struct {
	Position string `json:"position"`
	// Waitlist: встать в лист ожидания, если позиция заполнена.
	Waitlist bool `json:"waitlist"`
}

type SetParticipantStatusInput struct {
	Status models.ParticipantStatus `json:"status"`
	Paid   *bool                    `json:"paid,omitempty"`
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	profileRepo     repositories.ProfileRepository
	tx              repositories.Transactor
	ledger          ledger
	notifier        Notifier
	audit           AuditService
	logger          *slog.Logger
	now             func() time.Time
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	profileRepo repositories.ProfileRepository,
	pointRepo repositories.PointRepository,
	tx repositories.Transactor,
	notifier Notifier,
	audit AuditService,
	logger *slog.Logger,
) ParticipantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &participantService{
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		profileRepo:     profileRepo,
		tx:              tx,
		ledger:          ledger{profileRepo: profileRepo, pointRepo: pointRepo},
		notifier:        notifier,
		audit:           audit,
		logger:          logger,
		now:             time.Now,
	}
}

// Join записывает пользователя на матч. Строка матча блокируется до подсчёта мест,
// поэтому две параллельные записи не превысят лимит позиции.
func (s *participantService) Join(ctx context.Context, userID, matchID int, input JoinMatchInput) (*models.Participant, error) {
	pos, err := parsePosition(input.Position)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapRepoError("failed to get profile", err)
	}
	if profile.IsDeleted() {
		return nil, ErrAccountDeleted
	}
	if !profile.OnboardingCompleted {
		return nil, ErrOnboardingRequired
	}

	var participant *models.Participant
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}
		if match.Status != models.MatchStatusOpen {
			return ErrMatchNotOpen
		}
		if !match.StartTime.After(s.now()) {
			return ErrMatchAlreadyStarted
		}

		existing, err := s.participantRepo.FindByMatchAndUser(ctx, exec, matchID, userID)
		switch {
		case err == nil:
			if existing.Status != models.ParticipantCanceled {
				return ErrAlreadyRegistered
			}
		case errors.Is(err, repositories.ErrParticipantNotFound):
			existing = nil
		default:
			return err
		}

		taken, err := s.participantRepo.CountSeats(ctx, exec, matchID)
		if err != nil {
			return err
		}

		p := &models.Participant{MatchID: matchID, UserID: userID, Position: *pos}
		capacity := match.Capacity(*pos)
		if taken[*pos] >= capacity {
			if !input.Waitlist || capacity == 0 {
				return ErrPositionFull
			}
			p.Status = models.ParticipantWaiting
			p.Paid = false
		} else if err := s.ledger.settleSeat(ctx, exec, p, match); err != nil {
			return err
		}

		if existing != nil {
			p.ID = existing.ID
			if err := s.participantRepo.Reapply(ctx, exec, p); err != nil {
				return err
			}
		} else if err := s.participantRepo.Create(ctx, exec, p); err != nil {
			return err
		}
		participant = p
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to join match", err)
	}

	participant.FullName = profile.FullName
	s.logger.Info("participant joined match",
		slog.Int("match_id", matchID),
		slog.Int("user_id", userID),
		slog.String("position", string(participant.Position)),
		slog.String("status", string(participant.Status)))
	return participant, nil
}

// Cancel отменяет заявку (владелец или админ). Оплаченный взнос возвращается,
// первый из листа ожидания на ту же позицию занимает освободившееся место.
func (s *participantService) Cancel(ctx context.Context, actor Actor, participantID int) (*models.Participant, error) {
	current, err := s.participantRepo.GetByID(ctx, nil, participantID)
	if err != nil {
		return nil, wrapRepoError("failed to get participant", err)
	}
	if current.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbiddenOperation
	}

	var (
		participant *models.Participant
		promoted    *models.Participant
		match       *models.Match
	)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// Порядок блокировок как в Join: матч, затем заявка, затем баланс.
		m, err := s.matchRepo.GetForUpdate(ctx, exec, current.MatchID)
		if err != nil {
			return err
		}
		match = m
		p, err := s.participantRepo.GetByID(ctx, exec, participantID)
		if err != nil {
			return err
		}
		if p.Status == models.ParticipantCanceled {
			return fmt.Errorf("%w: registration is already canceled", ErrInvalidStatus)
		}
		if !actor.IsAdmin() && (match.Status != models.MatchStatusOpen || !match.StartTime.After(s.now())) {
			return ErrMatchNotOpen
		}

		heldSeat := p.Status.HoldsSeat()
		if err := s.ledger.refund(ctx, exec, p, match); err != nil {
			return err
		}
		p.Status = models.ParticipantCanceled
		p.Paid = false
		if err := s.participantRepo.UpdateStatus(ctx, exec, p.ID, p.Status, p.Paid); err != nil {
			return err
		}
		participant = p

		if heldSeat && match.Status == models.MatchStatusOpen {
			promoted, err = promoteWaiting(ctx, exec, s.participantRepo, s.ledger, s.logger, match, p.Position)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to cancel participation", err)
	}

	if promoted != nil && promoted.Status == models.ParticipantConfirmed {
		s.notifier.NotifyUser(ctx, promoted.UserID, Notification{
			TitleKey: i18n.MsgMatchConfirmedTitle,
			BodyKey:  i18n.MsgMatchConfirmedBody,
			BodyArgs: []interface{}{formatMatchTime(match.StartTime)},
			URL:      fmt.Sprintf("/matches/%d", match.ID),
		})
	}
	if actor.ID != participant.UserID {
		s.audit.Record(ctx, AuditEntry{
			ActorID:    &actor.ID,
			Action:     ActionParticipantStatus,
			TargetType: "participant",
			TargetID:   &participant.ID,
			Details:    map[string]interface{}{"status": participant.Status, "match_id": participant.MatchID},
		})
	}
	return participant, nil
}

// promoteWaiting переводит первого ожидающего на позиции в состав по тем же правилам оплаты, что и Join.
// nil без ошибки - очередь пуста. Матч должен быть заблокирован в exec.
func promoteWaiting(ctx context.Context, exec repositories.SQLExecutor, participantRepo repositories.ParticipantRepository,
	l ledger, logger *slog.Logger, match *models.Match, position models.Position) (*models.Participant, error) {
	next, err := participantRepo.FirstWaiting(ctx, exec, match.ID, position)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := l.settleSeat(ctx, exec, next, match); err != nil {
		return nil, err
	}
	if err := participantRepo.UpdateStatus(ctx, exec, next.ID, next.Status, next.Paid); err != nil {
		return nil, err
	}
	logger.Info("waiting participant promoted",
		slog.Int("match_id", match.ID),
		slog.Int("participant_id", next.ID),
		slog.String("status", string(next.Status)))
	return next, nil
}

// SetStatus - ручное изменение статуса администратором. Отмена идёт через Cancel, чтобы вернуть взнос;
// смена paid списывает или возвращает взнос через ledger.
func (s *participantService) SetStatus(ctx context.Context, actor Actor, participantID int, input SetParticipantStatusInput) (*models.Participant, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Status == models.ParticipantCanceled {
		return s.Cancel(ctx, actor, participantID)
	}

	current, err := s.participantRepo.GetByID(ctx, nil, participantID)
	if err != nil {
		return nil, wrapRepoError("failed to get participant", err)
	}

	var participant *models.Participant
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		match, err := s.matchRepo.GetForUpdate(ctx, exec, current.MatchID)
		if err != nil {
			return err
		}
		p, err := s.participantRepo.GetByID(ctx, exec, participantID)
		if err != nil {
			return err
		}
		// Флаг оплаты меняется только вместе с проводкой: списание или возврат взноса.
		if input.Paid != nil && *input.Paid != p.Paid {
			if *input.Paid {
				err = s.ledger.charge(ctx, exec, p, match)
			} else {
				err = s.ledger.refund(ctx, exec, p, match)
			}
			if err != nil {
				return err
			}
			p.Paid = *input.Paid
		}
		p.Status = input.Status
		if err := s.participantRepo.UpdateStatus(ctx, exec, p.ID, p.Status, p.Paid); err != nil {
			return err
		}
		participant = p
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to update participant status", err)
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionParticipantStatus,
		TargetType: "participant",
		TargetID:   &participant.ID,
		Details:    map[string]interface{}{"status": participant.Status, "paid": participant.Paid, "match_id": participant.MatchID},
	})
	return participant, nil
}

func (s *participantService) ListByMatch(ctx context.Context, matchID int) ([]*models.Participant, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, wrapRepoError("failed to get match", err)
	}
	return s.participantRepo.ListByMatch(ctx, nil, matchID)
}

func (s *participantService) ListMine(ctx context.Context, userID int) ([]*models.Participant, error) {
	return s.participantRepo.ListByUser(ctx, userID)
}
