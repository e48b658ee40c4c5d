package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	basecache "github.com/riskibarqy/fantasy-admin/internal/platform/cache"
)

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[any]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[any]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:id:"+playerID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := "player:ids:" + strings.Join(ids, ",")

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store[any]
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store[any]) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "fixture:id:"+fixtureID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	key := "fixture:gameweek:" + strconv.Itoa(gameweek)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGameweek(ctx, gameweek)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}

// PlayerStatsRepository caches per-fixture stat lists and drops them on every
// write that touches the fixture. Point lookups and corrections always hit
// the underlying store.
type PlayerStatsRepository struct {
	next  playerstats.Repository
	cache *basecache.Store[any]
}

func NewPlayerStatsRepository(next playerstats.Repository, cache *basecache.Store[any]) *PlayerStatsRepository {
	return &PlayerStatsRepository{next: next, cache: cache}
}

func (r *PlayerStatsRepository) GetFixtureStat(ctx context.Context, fixtureID, playerID string) (playerstats.FixtureStat, bool, error) {
	return r.next.GetFixtureStat(ctx, fixtureID, playerID)
}

func (r *PlayerStatsRepository) ListByFixture(ctx context.Context, fixtureID string) ([]playerstats.FixtureStat, error) {
	v, err := r.cache.GetOrLoad(ctx, fixtureStatsKey(fixtureID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByFixture(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return append([]playerstats.FixtureStat(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]playerstats.FixtureStat)
	return append([]playerstats.FixtureStat(nil), items...), nil
}

func (r *PlayerStatsRepository) ListByGameweek(ctx context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	return r.next.ListByGameweek(ctx, gameweek)
}

func (r *PlayerStatsRepository) UpsertFixtureStats(ctx context.Context, stats []playerstats.FixtureStat) error {
	if err := r.next.UpsertFixtureStats(ctx, stats); err != nil {
		return err
	}
	for _, item := range stats {
		r.cache.Delete(ctx, fixtureStatsKey(item.FixtureID))
	}
	return nil
}

func (r *PlayerStatsRepository) UpdateFantasyPoints(ctx context.Context, updates []playerstats.PointsUpdate) error {
	if err := r.next.UpdateFantasyPoints(ctx, updates); err != nil {
		return err
	}
	for _, item := range updates {
		r.cache.Delete(ctx, fixtureStatsKey(item.FixtureID))
	}
	return nil
}

func (r *PlayerStatsRepository) ApplyCorrection(ctx context.Context, stat playerstats.FixtureStat, correction playerstats.Correction) error {
	if err := r.next.ApplyCorrection(ctx, stat, correction); err != nil {
		return err
	}
	r.cache.Delete(ctx, fixtureStatsKey(stat.FixtureID))
	return nil
}

func (r *PlayerStatsRepository) ListCorrections(ctx context.Context, fixtureID, playerID string) ([]playerstats.Correction, error) {
	return r.next.ListCorrections(ctx, fixtureID, playerID)
}

func fixtureStatsKey(fixtureID string) string {
	return "playerstats:fixture:" + fixtureID
}
