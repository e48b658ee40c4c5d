package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	fixturemock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/fixture"
	playermock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/playerstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubStatsFeed struct {
	mu     sync.Mutex
	byRef  map[int64][]ExternalPlayerStat
	errRef map[int64]error
	calls  []int64
}

func (s *stubStatsFeed) FetchFixtureStats(_ context.Context, ref int64) ([]ExternalPlayerStat, error) {
	s.mu.Lock()
	s.calls = append(s.calls, ref)
	s.mu.Unlock()
	if err := s.errRef[ref]; err != nil {
		return nil, err
	}
	return s.byRef[ref], nil
}

func TestIngestionService_IngestFixtureStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	statsRepo := playerstatsmock.NewRepository(t)
	svc := NewIngestionService(fixtureRepo, playerRepo, statsRepo, nil, 1, nil, nil)

	fixtureRepo.On("GetByID", ctx, "fx-1").Return(fixture.Fixture{ID: "fx-1", Gameweek: 3}, true, nil).Once()
	playerRepo.
		On("GetByIDs", ctx, []string{"def-1", "mid-1"}).
		Return([]player.Player{
			{ID: "def-1", Position: player.PositionDefender},
			{ID: "mid-1", Position: player.PositionMidfielder},
		}, nil).
		Once()
	statsRepo.
		On("UpsertFixtureStats", ctx, mock.MatchedBy(func(rows []playerstats.FixtureStat) bool {
			if len(rows) != 2 {
				return false
			}
			return rows[0].FantasyPoints == 2 && rows[0].Gameweek == 3 &&
				rows[1].Position == player.PositionMidfielder && rows[1].FantasyPoints == 1
		})).
		Return(nil).
		Once()

	got, err := svc.IngestFixtureStats(ctx, "fx-1", []IngestStatInput{
		{PlayerID: "def-1", Stat: scoring.MatchStat{MinutesPlayed: 90, GoalsConceded: 1, ShotsSaved: 1}},
		{PlayerID: " mid-1 ", Position: "Midfielder", Stat: scoring.MatchStat{MinutesPlayed: 45, GoalsConceded: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rows)
	assert.Equal(t, 3, got.TotalPoints)
}

func TestIngestionService_IngestFixtureStatsValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cases := []struct {
		name string
		rows []IngestStatInput
		want error
	}{
		{name: "empty", rows: nil, want: ErrInvalidInput},
		{name: "missing player id", rows: []IngestStatInput{{PlayerID: " "}}, want: ErrInvalidInput},
		{name: "duplicate player", rows: []IngestStatInput{{PlayerID: "a"}, {PlayerID: "a"}}, want: ErrInvalidInput},
		{name: "invalid stat", rows: []IngestStatInput{{PlayerID: "a", Stat: scoring.MatchStat{MinutesPlayed: 121}}}, want: scoring.ErrInvalidStat},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fixtureRepo := fixturemock.NewRepository(t)
			svc := NewIngestionService(fixtureRepo, playermock.NewRepository(t), playerstatsmock.NewRepository(t), nil, 1, nil, nil)
			fixtureRepo.On("GetByID", ctx, "fx-1").Return(fixture.Fixture{ID: "fx-1", Gameweek: 1}, true, nil).Once()

			_, err := svc.IngestFixtureStats(ctx, "fx-1", tc.rows)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestIngestionService_IngestRejectsUnknownPosition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	svc := NewIngestionService(fixtureRepo, playerRepo, playerstatsmock.NewRepository(t), nil, 1, nil, nil)

	fixtureRepo.On("GetByID", ctx, "fx-1").Return(fixture.Fixture{ID: "fx-1", Gameweek: 1}, true, nil).Once()
	playerRepo.On("GetByIDs", ctx, []string{"a"}).Return([]player.Player{{ID: "a", Position: player.PositionForward}}, nil).Once()

	_, err := svc.IngestFixtureStats(ctx, "fx-1", []IngestStatInput{{PlayerID: "a", Position: "winger"}})
	assert.True(t, errors.Is(err, player.ErrUnknownPosition), "got %v", err)
}

func TestIngestionService_IngestRejectsPositionChange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	svc := NewIngestionService(fixtureRepo, playerRepo, playerstatsmock.NewRepository(t), nil, 1, nil, nil)

	fixtureRepo.On("GetByID", ctx, "fx-1").Return(fixture.Fixture{ID: "fx-1", Gameweek: 1}, true, nil).Once()
	playerRepo.On("GetByIDs", ctx, []string{"a"}).Return([]player.Player{{ID: "a", Position: player.PositionDefender}}, nil).Once()

	_, err := svc.IngestFixtureStats(ctx, "fx-1", []IngestStatInput{
		{PlayerID: "a", Position: "FWD", Stat: scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
	assert.Contains(t, err.Error(), "does not match registered position DEF")
}

func TestIngestionService_SyncFixtureFromFeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := fixturemock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	statsRepo := playerstatsmock.NewRepository(t)
	feed := &stubStatsFeed{
		byRef: map[int64][]ExternalPlayerStat{
			101: {{PlayerID: "gk-1", Stat: scoring.MatchStat{MinutesPlayed: 90, CleanSheet: 1}}},
		},
		errRef: map[int64]error{
			102: errors.New("upstream 503"),
		},
	}
	svc := NewIngestionService(fixtureRepo, playerRepo, statsRepo, feed, 2, nil, nil)

	fixtureRepo.On("GetByID", ctx, "fx-1").Return(fixture.Fixture{ID: "fx-1", Gameweek: 2, FeedRefID: 101}, true, nil).Once()
	fixtureRepo.On("GetByID", ctx, "fx-2").Return(fixture.Fixture{ID: "fx-2", Gameweek: 2, FeedRefID: 102}, true, nil).Once()
	playerRepo.On("GetByIDs", mock.Anything, []string{"gk-1"}).Return([]player.Player{{ID: "gk-1", Position: player.PositionGoalkeeper}}, nil).Once()
	statsRepo.
		On("UpsertFixtureStats", mock.Anything, mock.MatchedBy(func(rows []playerstats.FixtureStat) bool {
			return len(rows) == 1 && rows[0].FixtureID == "fx-1" && rows[0].FantasyPoints == 6
		})).
		Return(nil).
		Once()

	got, err := svc.SyncFixtureFromFeed(ctx, "fx-1", "fx-2", "fx-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyUnavailable), "got %v", err)
	require.Len(t, got.Fixtures, 1)
	assert.Equal(t, "fx-1", got.Fixtures[0].FixtureID)
	assert.Equal(t, 1, got.Rows)
	assert.Len(t, feed.calls, 2)
}

func TestIngestionService_SyncFixtureFromFeedRequiresFeed(t *testing.T) {
	t.Parallel()

	svc := NewIngestionService(fixturemock.NewRepository(t), playermock.NewRepository(t), playerstatsmock.NewRepository(t), nil, 1, nil, nil)

	_, err := svc.SyncFixtureFromFeed(context.Background(), "fx-1")
	assert.True(t, errors.Is(err, ErrDependencyUnavailable), "got %v", err)
}
