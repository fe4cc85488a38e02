package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMatchService struct {
	MatchService
	calls atomic.Int32
	err   error
}

func (s *countingMatchService) CloseStarted(context.Context) (int, error) {
	s.calls.Add(1)
	return 2, s.err
}

func TestMatchScheduler_ClosesStartedMatches(t *testing.T) {
	svc := &countingMatchService{}
	sched, err := NewMatchScheduler(svc, discardLogger())
	require.NoError(t, err)

	sched.closeStartedMatches(context.Background())
	svc.err = errors.New("db down")
	sched.closeStartedMatches(context.Background())

	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestMatchScheduler_StartAndShutdown(t *testing.T) {
	sched, err := NewMatchScheduler(&countingMatchService{}, nil)
	require.NoError(t, err)

	require.NoError(t, sched.Start(context.Background()))
	assert.NoError(t, sched.Shutdown())
}
