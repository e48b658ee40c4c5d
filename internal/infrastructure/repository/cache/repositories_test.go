package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	fixturemock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/fixture"
	playermock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/fantasy-admin/internal/mocks/domain/playerstats"
	basecache "github.com/riskibarqy/fantasy-admin/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CachesLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore[any](time.Minute))

	next.On("GetByID", ctx, "p-1").Return(player.Player{ID: "p-1", Position: player.PositionForward}, true, nil).Once()
	next.On("GetByIDs", ctx, []string{"b", "a"}).Return([]player.Player{{ID: "a"}, {ID: "b"}}, nil).Once()

	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetByID(ctx, "p-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, player.PositionForward, got.Position)
	}

	first, err := repo.GetByIDs(ctx, []string{"b", "a"})
	require.NoError(t, err)
	second, err := repo.GetByIDs(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFixtureRepository_CachesMissingFixture(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := fixturemock.NewRepository(t)
	repo := NewFixtureRepository(next, basecache.NewStore[any](time.Minute))

	next.On("GetByID", ctx, "nope").Return(fixture.Fixture{}, false, nil).Once()

	for i := 0; i < 2; i++ {
		_, ok, err := repo.GetByID(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestPlayerStatsRepository_WritesInvalidateFixtureList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := playerstatsmock.NewRepository(t)
	repo := NewPlayerStatsRepository(next, basecache.NewStore[any](time.Minute))

	before := []playerstats.FixtureStat{{FixtureID: "fx-1", PlayerID: "p-1", FantasyPoints: 2}}
	after := []playerstats.FixtureStat{{FixtureID: "fx-1", PlayerID: "p-1", FantasyPoints: 6}}
	updates := []playerstats.PointsUpdate{{FixtureID: "fx-1", PlayerID: "p-1", FantasyPoints: 6}}

	next.On("ListByFixture", ctx, "fx-1").Return(before, nil).Once()
	next.On("UpdateFantasyPoints", ctx, updates).Return(nil).Once()
	next.On("ListByFixture", ctx, "fx-1").Return(after, nil).Once()

	got, err := repo.ListByFixture(ctx, "fx-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].FantasyPoints)

	got, err = repo.ListByFixture(ctx, "fx-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].FantasyPoints)

	require.NoError(t, repo.UpdateFantasyPoints(ctx, updates))

	got, err = repo.ListByFixture(ctx, "fx-1")
	require.NoError(t, err)
	assert.Equal(t, 6, got[0].FantasyPoints)
}
