package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScorer struct {
	calls atomic.Int32
	err   error
}

func (c *countingScorer) ScorePendingGameweeks(ctx context.Context) ([]usecase.ScoringRun, error) {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a bounded context")
	}
	if c.err != nil {
		return nil, c.err
	}
	return []usecase.ScoringRun{{Gameweek: 1}}, nil
}

func TestScheduler_RunsJobRepeatedly(t *testing.T) {
	scorer := &countingScorer{}
	s, err := New(scorer, Config{Interval: 20 * time.Millisecond}, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })

	require.Eventually(t, func() bool {
		return scorer.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	scorer := &countingScorer{err: errors.New("db down")}
	s, err := New(scorer, Config{Interval: 20 * time.Millisecond}, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })

	require.Eventually(t, func() bool {
		return scorer.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(&countingScorer{}, Config{}, nil)
	assert.Error(t, err)

	_, err = New(nil, Config{Interval: time.Minute}, nil)
	assert.Error(t, err)
}
