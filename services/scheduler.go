package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const matchCloseInterval = 1 * time.Minute

// MatchScheduler раз в минуту закрывает открытые матчи, время которых уже наступило.
type MatchScheduler struct {
	sched        gocron.Scheduler
	matchService MatchService
	logger       *slog.Logger
}

func NewMatchScheduler(matchService MatchService, logger *slog.Logger) (*MatchScheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &MatchScheduler{sched: sched, matchService: matchService, logger: logger}, nil
}

// Start регистрирует задачу и запускает планировщик. ctx ограничивает время жизни задач.
func (m *MatchScheduler) Start(ctx context.Context) error {
	_, err := m.sched.NewJob(
		gocron.DurationJob(matchCloseInterval),
		gocron.NewTask(func() {
			m.closeStartedMatches(ctx)
		}),
		gocron.WithName("close-started-matches"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register match close job: %w", err)
	}
	m.sched.Start()
	m.logger.Info("match scheduler started", slog.Duration("interval", matchCloseInterval))
	return nil
}

func (m *MatchScheduler) closeStartedMatches(ctx context.Context) {
	closed, err := m.matchService.CloseStarted(ctx)
	if err != nil {
		m.logger.Error("scheduler: failed to close started matches", slog.Any("error", err))
		return
	}
	if closed > 0 {
		m.logger.Info("scheduler: closed started matches", slog.Int("count", closed))
	}
}

func (m *MatchScheduler) Shutdown() error {
	return m.sched.Shutdown()
}
