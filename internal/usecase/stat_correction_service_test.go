package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-admin/internal/infrastructure/repository/memory"
	fixturemock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/fixture"
	playermock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func newTestCorrectionService(t *testing.T) (*StatCorrectionService, *fixturemock.Repository, *playermock.Repository, *playerstatsmock.Repository) {
	t.Helper()

	fixtureRepo := fixturemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	statsRepo := playerstatsmock.NewRepository(t)
	svc := NewStatCorrectionService(fixtureRepo, playerRepo, statsRepo, fixedIDGenerator{id: "corr-1"}, metrics.New(), nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, fixtureRepo, playerRepo, statsRepo
}

func TestStatCorrectionService_Preview(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestCorrectionService(t)

	got, err := svc.Preview(context.Background(), PreviewInput{
		Position: "Goalkeeper",
		Stat: scoring.MatchStat{
			MinutesPlayed:  90,
			CleanSheet:     1,
			ShotsSaved:     6,
			PenaltiesSaved: 1,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 13, got.Total)
	assert.Equal(t, player.PositionGoalkeeper, got.Position)
}

func TestStatCorrectionService_PreviewLastInputWins(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestCorrectionService(t)
	ctx := context.Background()

	edits := []scoring.MatchStat{
		{MinutesPlayed: 90, GoalsScored: 1},
		{MinutesPlayed: 90, GoalsScored: 2},
		{MinutesPlayed: 90, GoalsScored: 2, YellowCards: 1},
	}
	var last scoring.Breakdown
	for _, stat := range edits {
		var err error
		last, err = svc.Preview(ctx, PreviewInput{Position: "FWD", Stat: stat})
		require.NoError(t, err)
	}

	assert.Equal(t, scoring.ComputePoints(edits[2], player.PositionForward), last.Total)
}

func TestStatCorrectionService_PreviewRejectsBadInput(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestCorrectionService(t)

	_, err := svc.Preview(context.Background(), PreviewInput{Position: "Sweeper", Stat: scoring.MatchStat{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, player.ErrUnknownPosition))

	_, err = svc.Preview(context.Background(), PreviewInput{Position: "MID", Stat: scoring.MatchStat{GoalsScored: -1}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, scoring.ErrInvalidStat))
}

func TestStatCorrectionService_PreviewForPlayerUsesStoredPosition(t *testing.T) {
	t.Parallel()

	svc, _, _, statsRepo := newTestCorrectionService(t)
	ctx := context.Background()

	statsRepo.
		On("GetFixtureStat", ctx, "fx-1", "pl-1").
		Return(playerstats.FixtureStat{
			FixtureID:     "fx-1",
			PlayerID:      "pl-1",
			Position:      player.PositionDefender,
			FantasyPoints: 2,
		}, true, nil).
		Once()

	got, err := svc.PreviewForPlayer(ctx, "fx-1", "pl-1", scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 1})
	require.NoError(t, err)
	assert.True(t, got.HasCurrent)
	assert.Equal(t, 2, got.CurrentPoints)
	assert.Equal(t, 8, got.Breakdown.Total)
}

func TestStatCorrectionService_PreviewForPlayerFallsBackToPlayer(t *testing.T) {
	t.Parallel()

	svc, _, playerRepo, statsRepo := newTestCorrectionService(t)
	ctx := context.Background()

	statsRepo.On("GetFixtureStat", ctx, "fx-1", "pl-9").Return(playerstats.FixtureStat{}, false, nil).Once()
	playerRepo.On("GetByID", ctx, "pl-9").Return(player.Player{ID: "pl-9", Position: player.PositionMidfielder}, true, nil).Once()

	got, err := svc.PreviewForPlayer(ctx, "fx-1", "pl-9", scoring.MatchStat{MinutesPlayed: 30, CleanSheet: 1})
	require.NoError(t, err)
	assert.False(t, got.HasCurrent)
	assert.Equal(t, 2, got.Breakdown.Total)
}

func TestStatCorrectionService_ApplyCorrection(t *testing.T) {
	t.Parallel()

	svc, _, _, statsRepo := newTestCorrectionService(t)
	ctx := context.Background()

	current := playerstats.FixtureStat{
		FixtureID:     "fx-1",
		PlayerID:      "pl-1",
		Gameweek:      3,
		Position:      player.PositionForward,
		Stat:          scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 1},
		FantasyPoints: 6,
	}
	corrected := scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 2, Assists: 1, YellowCards: 1}

	statsRepo.On("GetFixtureStat", ctx, "fx-1", "pl-1").Return(current, true, nil).Once()
	statsRepo.
		On("ApplyCorrection", ctx,
			mock.MatchedBy(func(v playerstats.FixtureStat) bool {
				return v.Stat == corrected && v.FantasyPoints == 12 && v.Gameweek == 3
			}),
			mock.MatchedBy(func(v playerstats.Correction) bool {
				return v.ID == "corr-1" && v.PointsBefore == 6 && v.PointsAfter == 12 && v.Operator == "ops@club" && v.Before == current.Stat
			}),
		).
		Return(nil).
		Once()

	got, err := svc.ApplyCorrection(ctx, CorrectionInput{
		FixtureID: " fx-1 ",
		PlayerID:  "pl-1",
		Stat:      corrected,
		Operator:  "ops@club",
		Reason:    "assist awarded after review",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stat.FantasyPoints)
	assert.Equal(t, 12, got.Breakdown.Total)
	assert.Equal(t, "assist awarded after review", got.Correction.Reason)

	const wantCorrections = `
# HELP fantasy_admin_scoring_corrections_applied_total Number of admin stat corrections persisted.
# TYPE fantasy_admin_scoring_corrections_applied_total counter
fantasy_admin_scoring_corrections_applied_total 1
`
	require.NoError(t, testutil.GatherAndCompare(svc.metrics.Registry(), strings.NewReader(wantCorrections), "fantasy_admin_scoring_corrections_applied_total"))
}

func TestStatCorrectionService_ApplyCorrectionErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stat := scoring.MatchStat{MinutesPlayed: 90}

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()
		svc, _, _, statsRepo := newTestCorrectionService(t)
		statsRepo.On("GetFixtureStat", ctx, "fx-1", "pl-1").Return(playerstats.FixtureStat{}, false, nil).Once()

		_, err := svc.ApplyCorrection(ctx, CorrectionInput{FixtureID: "fx-1", PlayerID: "pl-1", Stat: stat, Operator: "ops"})
		assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	})

	t.Run("unchanged stat", func(t *testing.T) {
		t.Parallel()
		svc, _, _, statsRepo := newTestCorrectionService(t)
		statsRepo.
			On("GetFixtureStat", ctx, "fx-1", "pl-1").
			Return(playerstats.FixtureStat{Position: player.PositionMidfielder, Stat: stat, FantasyPoints: 2}, true, nil).
			Once()

		_, err := svc.ApplyCorrection(ctx, CorrectionInput{FixtureID: "fx-1", PlayerID: "pl-1", Stat: stat, Operator: "ops"})
		assert.True(t, errors.Is(err, ErrConflict), "got %v", err)
	})

	t.Run("stat changed after read", func(t *testing.T) {
		t.Parallel()
		svc, _, _, statsRepo := newTestCorrectionService(t)
		statsRepo.
			On("GetFixtureStat", ctx, "fx-1", "pl-1").
			Return(playerstats.FixtureStat{Position: player.PositionMidfielder, Stat: scoring.MatchStat{MinutesPlayed: 45}, FantasyPoints: 1}, true, nil).
			Once()
		statsRepo.
			On("ApplyCorrection", ctx, mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: fixture=fx-1 player=pl-1", playerstats.ErrStaleStat)).
			Once()

		_, err := svc.ApplyCorrection(ctx, CorrectionInput{FixtureID: "fx-1", PlayerID: "pl-1", Stat: stat, Operator: "ops"})
		assert.True(t, errors.Is(err, ErrConflict), "got %v", err)
	})

	t.Run("invalid stat never reaches repository", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newTestCorrectionService(t)

		_, err := svc.ApplyCorrection(ctx, CorrectionInput{FixtureID: "fx-1", PlayerID: "pl-1", Stat: scoring.MatchStat{RedCards: 2}, Operator: "ops"})
		assert.True(t, errors.Is(err, scoring.ErrInvalidStat), "got %v", err)
	})

	t.Run("operator required", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newTestCorrectionService(t)

		_, err := svc.ApplyCorrection(ctx, CorrectionInput{FixtureID: "fx-1", PlayerID: "pl-1", Stat: stat})
		assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
	})
}

// readBarrierStatsRepo holds every GetFixtureStat caller until all expected
// readers have loaded the row, so their writes race on the same snapshot.
type readBarrierStatsRepo struct {
	*memory.PlayerStatsRepository
	reads *sync.WaitGroup
}

func (r readBarrierStatsRepo) GetFixtureStat(ctx context.Context, fixtureID, playerID string) (playerstats.FixtureStat, bool, error) {
	item, ok, err := r.PlayerStatsRepository.GetFixtureStat(ctx, fixtureID, playerID)
	r.reads.Done()
	r.reads.Wait()
	return item, ok, err
}

func TestStatCorrectionService_ConcurrentCorrectionsKeepAuditChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stats := memory.NewPlayerStatsRepository(memory.SeedPlayerStats())
	reads := &sync.WaitGroup{}
	reads.Add(2)
	svc := NewStatCorrectionService(
		fixturemock.NewRepository(t),
		playermock.NewRepository(t),
		readBarrierStatsRepo{PlayerStatsRepository: stats, reads: reads},
		fixedIDGenerator{id: "corr"},
		metrics.New(),
		nil,
	)

	original, _, err := stats.GetFixtureStat(ctx, "fx-idn-001", "idn-fwd-01")
	require.NoError(t, err)

	errs := make([]error, 2)
	var done sync.WaitGroup
	for i, goals := range []int{3, 5} {
		done.Add(1)
		go func() {
			defer done.Done()
			stat := original.Stat
			stat.GoalsScored = goals
			_, errs[i] = svc.ApplyCorrection(ctx, CorrectionInput{
				FixtureID: "fx-idn-001",
				PlayerID:  "idn-fwd-01",
				Stat:      stat,
				Operator:  fmt.Sprintf("ops-%d", i),
				Reason:    "goal recount",
			})
		}()
	}
	done.Wait()

	var applied, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			applied++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, conflicts)

	corrections, err := stats.ListCorrections(ctx, "fx-idn-001", "idn-fwd-01")
	require.NoError(t, err)
	require.Len(t, corrections, 1)
	assert.Equal(t, original.Stat, corrections[0].Before)

	stored, _, err := stats.GetFixtureStat(ctx, "fx-idn-001", "idn-fwd-01")
	require.NoError(t, err)
	assert.Equal(t, corrections[0].After, stored.Stat)
}

func TestStatCorrectionService_ListFixtureStatsUnknownFixture(t *testing.T) {
	t.Parallel()

	svc, fixtureRepo, _, _ := newTestCorrectionService(t)
	ctx := context.Background()
	fixtureRepo.On("GetByID", ctx, "fx-missing").Return(fixture.Fixture{}, false, nil).Once()

	_, err := svc.ListFixtureStats(ctx, "fx-missing")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}
