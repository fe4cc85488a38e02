package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/power-play/i18n"
	"github.com/Dosada05/power-play/models"
	"github.com/Dosada05/power-play/repositories"
	"github.com/Dosada05/power-play/storage"
)

type MatchService interface {
	Create(ctx context.Context, actor Actor, input CreateMatchInput) (*models.Match, error)
	Update(ctx context.Context, actor Actor, matchID int, input UpdateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, matchID int) (*models.Match, error)
	List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error)
	Cancel(ctx context.Context, actor Actor, matchID int) (*models.Match, error)
	Close(ctx context.Context, actor Actor, matchID int) (*models.Match, error)
	// CloseStarted закрывает открытые матчи, которые уже начались. Вызывается планировщиком.
	CloseStarted(ctx context.Context) (int, error)
}

type CreateMatchInput struct {
	RinkID      int       `json:"rink_id"`
	ClubID      *int      `json:"club_id"`
	StartTime   time.Time `json:"start_time"`
	EntryPoints int       `json:"entry_points"`
	GoalieFree  bool      `json:"goalie_free"`
	MaxForward  int       `json:"max_fw"`
	MaxDefense  int       `json:"max_df"`
	MaxGoalie   int       `json:"max_g"`
	Description *string   `json:"description"`
}

type UpdateMatchInput struct {
	RinkID      *int       `json:"rink_id"`
	StartTime   *time.Time `json:"start_time"`
	EntryPoints *int       `json:"entry_points"`
	GoalieFree  *bool      `json:"goalie_free"`
	MaxForward  *int       `json:"max_fw"`
	MaxDefense  *int       `json:"max_df"`
	MaxGoalie   *int       `json:"max_g"`
	Description *string    `json:"description"`
}

type matchService struct {
	matchRepo       repositories.MatchRepository
	participantRepo repositories.ParticipantRepository
	rinkRepo        repositories.RinkRepository
	clubRepo        repositories.ClubRepository
	tx              repositories.Transactor
	ledger          ledger
	uploader        storage.FileUploader
	notifier        Notifier
	audit           AuditService
	logger          *slog.Logger
	now             func() time.Time
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	participantRepo repositories.ParticipantRepository,
	rinkRepo repositories.RinkRepository,
	clubRepo repositories.ClubRepository,
	profileRepo repositories.ProfileRepository,
	pointRepo repositories.PointRepository,
	tx repositories.Transactor,
	uploader storage.FileUploader,
	notifier Notifier,
	audit AuditService,
	logger *slog.Logger,
) MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		matchRepo:       matchRepo,
		participantRepo: participantRepo,
		rinkRepo:        rinkRepo,
		clubRepo:        clubRepo,
		tx:              tx,
		ledger:          ledger{profileRepo: profileRepo, pointRepo: pointRepo},
		uploader:        uploader,
		notifier:        notifier,
		audit:           audit,
		logger:          logger,
		now:             time.Now,
	}
}

// canManage: администраторы сайта управляют любыми матчами, админы клуба - матчами своего клуба.
func (s *matchService) canManage(ctx context.Context, actor Actor, clubID *int) error {
	if actor.IsAdmin() {
		return nil
	}
	if clubID == nil {
		return ErrAdminRequired
	}
	member, err := s.clubRepo.GetMember(ctx, *clubID, actor.ID)
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

func validateMatch(m *models.Match) error {
	if m.EntryPoints < 0 {
		return ErrMatchInvalidFee
	}
	if m.MaxForward < 0 || m.MaxDefense < 0 || m.MaxGoalie < 0 || m.MaxForward+m.MaxDefense+m.MaxGoalie == 0 {
		return ErrMatchInvalidCapacity
	}
	if m.RinkID <= 0 {
		return fmt.Errorf("%w: rink_id is required", ErrValidationFailed)
	}
	return nil
}

func (s *matchService) Create(ctx context.Context, actor Actor, input CreateMatchInput) (*models.Match, error) {
	if err := s.canManage(ctx, actor, input.ClubID); err != nil {
		return nil, err
	}
	if !input.StartTime.After(s.now()) {
		return nil, ErrMatchInvalidStartTime
	}

	match := &models.Match{
		RinkID:      input.RinkID,
		ClubID:      input.ClubID,
		StartTime:   input.StartTime.UTC(),
		EntryPoints: input.EntryPoints,
		GoalieFree:  input.GoalieFree,
		MaxForward:  input.MaxForward,
		MaxDefense:  input.MaxDefense,
		MaxGoalie:   input.MaxGoalie,
		Status:      models.MatchStatusOpen,
		Description: trimmedOrNil(input.Description),
		CreatedBy:   actor.ID,
	}
	if err := validateMatch(match); err != nil {
		return nil, err
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, wrapRepoError("failed to create match", err)
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionMatchCreated,
		TargetType: "match",
		TargetID:   &match.ID,
		Details:    map[string]interface{}{"start_time": match.StartTime, "entry_points": match.EntryPoints},
	})
	match.RemainingSeats = remainingSeats(match, nil)
	return match, nil
}

// Update меняет параметры матча. Цену нельзя менять, пока в составе есть оплатившие игроки:
// возврат считается по текущей цене.
func (s *matchService) Update(ctx context.Context, actor Actor, matchID int, input UpdateMatchInput) (*models.Match, error) {
	current, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, wrapRepoError("failed to get match", err)
	}
	if err := s.canManage(ctx, actor, current.ClubID); err != nil {
		return nil, err
	}
	if input.StartTime != nil && !input.StartTime.After(s.now()) {
		return nil, ErrMatchInvalidStartTime
	}

	var (
		match    *models.Match
		promoted []*models.Participant
	)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}
		if m.Status != models.MatchStatusOpen {
			return ErrMatchNotOpen
		}
		previous := *m

		priceChanged := (input.EntryPoints != nil && *input.EntryPoints != m.EntryPoints) ||
			(input.GoalieFree != nil && *input.GoalieFree != m.GoalieFree)
		if priceChanged {
			participants, err := s.participantRepo.ListByMatch(ctx, exec, matchID)
			if err != nil {
				return err
			}
			for _, p := range participants {
				if p.Paid && p.Status != models.ParticipantCanceled {
					return fmt.Errorf("%w: entry fee cannot change after players have paid", ErrValidationFailed)
				}
			}
		}

		input.applyTo(m)
		if err := validateMatch(m); err != nil {
			return err
		}
		if err := s.matchRepo.Update(ctx, exec, m); err != nil {
			return err
		}
		match = m

		promoted, err = s.fillOpenedSeats(ctx, exec, m, &previous)
		return err
	})
	if err != nil {
		return nil, wrapRepoError("failed to update match", err)
	}

	for _, p := range promoted {
		if p.Status != models.ParticipantConfirmed {
			continue
		}
		s.notifier.NotifyUser(ctx, p.UserID, Notification{
			TitleKey: i18n.MsgMatchConfirmedTitle,
			BodyKey:  i18n.MsgMatchConfirmedBody,
			BodyArgs: []interface{}{formatMatchTime(match.StartTime)},
			URL:      fmt.Sprintf("/matches/%d", match.ID),
		})
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionMatchUpdated,
		TargetType: "match",
		TargetID:   &match.ID,
		Details:    map[string]interface{}{"promoted": len(promoted)},
	})
	return s.GetByID(ctx, matchID)
}

func (input UpdateMatchInput) applyTo(m *models.Match) {
	if input.RinkID != nil {
		m.RinkID = *input.RinkID
	}
	if input.StartTime != nil {
		m.StartTime = input.StartTime.UTC()
	}
	if input.EntryPoints != nil {
		m.EntryPoints = *input.EntryPoints
	}
	if input.GoalieFree != nil {
		m.GoalieFree = *input.GoalieFree
	}
	if input.MaxForward != nil {
		m.MaxForward = *input.MaxForward
	}
	if input.MaxDefense != nil {
		m.MaxDefense = *input.MaxDefense
	}
	if input.MaxGoalie != nil {
		m.MaxGoalie = *input.MaxGoalie
	}
	if input.Description != nil {
		m.Description = trimmedOrNil(input.Description)
	}
}

// fillOpenedSeats переводит ожидающих в состав на позициях, где вместимость выросла.
func (s *matchService) fillOpenedSeats(ctx context.Context, exec repositories.SQLExecutor, match, previous *models.Match) ([]*models.Participant, error) {
	var (
		promoted []*models.Participant
		taken    map[models.Position]int
	)
	for _, pos := range models.AllPositions {
		if match.Capacity(pos) <= previous.Capacity(pos) {
			continue
		}
		if taken == nil {
			seats, err := s.participantRepo.CountSeats(ctx, exec, match.ID)
			if err != nil {
				return nil, err
			}
			taken = seats
		}
		for free := match.Capacity(pos) - taken[pos]; free > 0; free-- {
			next, err := promoteWaiting(ctx, exec, s.participantRepo, s.ledger, s.logger, match, pos)
			if err != nil {
				return nil, err
			}
			if next == nil {
				break
			}
			promoted = append(promoted, next)
		}
	}
	return promoted, nil
}

// GetByID собирает карточку матча: каток, клуб, состав и свободные места грузятся параллельно.
func (s *matchService) GetByID(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, wrapRepoError("failed to get match", err)
	}

	var (
		rink         *models.Rink
		club         *models.Club
		participants []*models.Participant
		taken        map[models.Position]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.rinkRepo.GetByID(gctx, match.RinkID)
		if err != nil && !errors.Is(err, repositories.ErrRinkNotFound) {
			return err
		}
		rink = r
		return nil
	})
	if match.ClubID != nil {
		g.Go(func() error {
			c, err := s.clubRepo.GetByID(gctx, *match.ClubID)
			if err != nil && !errors.Is(err, repositories.ErrClubNotFound) {
				return err
			}
			club = c
			return nil
		})
	}
	g.Go(func() error {
		var err error
		participants, err = s.participantRepo.ListByMatch(gctx, nil, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		taken, err = s.participantRepo.CountSeats(gctx, nil, matchID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load match details: %w", err)
	}

	if rink != nil {
		rink.DisplayName = rink.LocalizedName(i18n.FromContext(ctx))
	}
	populateClubLogoURL(club, s.uploader)
	match.Rink = rink
	match.Club = club
	match.Participants = make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		match.Participants = append(match.Participants, *p)
	}
	match.RemainingSeats = remainingSeats(match, taken)
	return match, nil
}

func (s *matchService) List(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	if filter.Status != nil {
		switch *filter.Status {
		case models.MatchStatusOpen, models.MatchStatusClosed, models.MatchStatusCanceled:
		default:
			return nil, ErrInvalidStatus
		}
	}

	var (
		matches []*models.Match
		rinks   []*models.Rink
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		rinks, err = s.rinkRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	lang := i18n.FromContext(ctx)
	rinkByID := make(map[int]*models.Rink, len(rinks))
	for _, r := range rinks {
		r.DisplayName = r.LocalizedName(lang)
		rinkByID[r.ID] = r
	}
	for _, m := range matches {
		m.Rink = rinkByID[m.RinkID]
	}
	return matches, nil
}

// Cancel отменяет матч: всем оплатившим возвращается взнос, все участники получают уведомление.
func (s *matchService) Cancel(ctx context.Context, actor Actor, matchID int) (*models.Match, error) {
	current, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, wrapRepoError("failed to get match", err)
	}
	if err := s.canManage(ctx, actor, current.ClubID); err != nil {
		return nil, err
	}

	var (
		match    *models.Match
		affected []int
	)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}
		if m.Status == models.MatchStatusCanceled {
			return ErrMatchNotOpen
		}
		participants, err := s.participantRepo.ListByMatch(ctx, exec, matchID)
		if err != nil {
			return err
		}
		for _, p := range participants {
			if p.Status == models.ParticipantCanceled {
				continue
			}
			if err := s.ledger.refund(ctx, exec, p, m); err != nil {
				return err
			}
			if err := s.participantRepo.UpdateStatus(ctx, exec, p.ID, models.ParticipantCanceled, false); err != nil {
				return err
			}
			affected = append(affected, p.UserID)
		}
		if err := s.matchRepo.UpdateStatus(ctx, exec, matchID, models.MatchStatusCanceled); err != nil {
			return err
		}
		m.Status = models.MatchStatusCanceled
		match = m
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to cancel match", err)
	}

	for _, userID := range affected {
		s.notifier.NotifyUser(ctx, userID, Notification{
			TitleKey: i18n.MsgMatchCanceledTitle,
			BodyKey:  i18n.MsgMatchCanceledBody,
			BodyArgs: []interface{}{formatMatchTime(match.StartTime)},
			URL:      fmt.Sprintf("/matches/%d", match.ID),
		})
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:    &actor.ID,
		Action:     ActionMatchCanceled,
		TargetType: "match",
		TargetID:   &match.ID,
		Details:    map[string]interface{}{"refunded_participants": len(affected)},
	})
	return match, nil
}

func (s *matchService) Close(ctx context.Context, actor Actor, matchID int) (*models.Match, error) {
	current, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, wrapRepoError("failed to get match", err)
	}
	if err := s.canManage(ctx, actor, current.ClubID); err != nil {
		return nil, err
	}
	match, err := s.closeMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{ActorID: &actor.ID, Action: ActionMatchClosed, TargetType: "match", TargetID: &match.ID})
	return match, nil
}

// closeMatch закрывает запись на матч и отменяет неоплаченные заявки и лист ожидания.
func (s *matchService) closeMatch(ctx context.Context, matchID int) (*models.Match, error) {
	var match *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}
		if m.Status != models.MatchStatusOpen {
			return ErrMatchNotOpen
		}
		if err := s.matchRepo.UpdateStatus(ctx, exec, matchID, models.MatchStatusClosed); err != nil {
			return err
		}
		if _, err := s.participantRepo.CancelOutstanding(ctx, exec, matchID); err != nil {
			return err
		}
		m.Status = models.MatchStatusClosed
		match = m
		return nil
	})
	if err != nil {
		return nil, wrapRepoError("failed to close match", err)
	}
	return match, nil
}

func (s *matchService) CloseStarted(ctx context.Context) (int, error) {
	matches, err := s.matchRepo.ListStartedOpen(ctx, s.now())
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, m := range matches {
		if _, err := s.closeMatch(ctx, m.ID); err != nil {
			if errors.Is(err, ErrMatchNotOpen) {
				continue
			}
			s.logger.Error("failed to auto-close match", slog.Int("match_id", m.ID), slog.Any("error", err))
			continue
		}
		closed++
	}
	return closed, nil
}
