package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
)

type statKey struct {
	fixtureID string
	playerID  string
}

// PlayerStatsRepository keeps stat rows and their correction log in memory.
type PlayerStatsRepository struct {
	mu          sync.RWMutex
	stats       map[statKey]playerstats.FixtureStat
	corrections map[statKey][]playerstats.Correction
}

func NewPlayerStatsRepository(seed []playerstats.FixtureStat) *PlayerStatsRepository {
	stats := make(map[statKey]playerstats.FixtureStat, len(seed))
	for _, item := range seed {
		stats[statKey{fixtureID: item.FixtureID, playerID: item.PlayerID}] = item
	}
	return &PlayerStatsRepository{
		stats:       stats,
		corrections: make(map[statKey][]playerstats.Correction),
	}
}

func (r *PlayerStatsRepository) GetFixtureStat(_ context.Context, fixtureID, playerID string) (playerstats.FixtureStat, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.stats[statKey{fixtureID: fixtureID, playerID: playerID}]
	return item, ok, nil
}

func (r *PlayerStatsRepository) ListByFixture(_ context.Context, fixtureID string) ([]playerstats.FixtureStat, error) {
	return r.filter(func(item playerstats.FixtureStat) bool { return item.FixtureID == fixtureID }), nil
}

func (r *PlayerStatsRepository) ListByGameweek(_ context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	return r.filter(func(item playerstats.FixtureStat) bool { return item.Gameweek == gameweek }), nil
}

func (r *PlayerStatsRepository) UpsertFixtureStats(_ context.Context, stats []playerstats.FixtureStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range stats {
		r.stats[statKey{fixtureID: item.FixtureID, playerID: item.PlayerID}] = item
	}
	return nil
}

func (r *PlayerStatsRepository) UpdateFantasyPoints(_ context.Context, updates []playerstats.PointsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		key := statKey{fixtureID: u.FixtureID, playerID: u.PlayerID}
		item, ok := r.stats[key]
		if !ok {
			continue
		}
		item.FantasyPoints = u.FantasyPoints
		r.stats[key] = item
	}
	return nil
}

func (r *PlayerStatsRepository) ApplyCorrection(_ context.Context, stat playerstats.FixtureStat, correction playerstats.Correction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statKey{fixtureID: stat.FixtureID, playerID: stat.PlayerID}
	existing, ok := r.stats[key]
	if !ok {
		return fmt.Errorf("stat row not found fixture=%s player=%s", stat.FixtureID, stat.PlayerID)
	}
	if existing.Stat != correction.Before {
		return fmt.Errorf("%w: fixture=%s player=%s", playerstats.ErrStaleStat, stat.FixtureID, stat.PlayerID)
	}
	r.stats[key] = stat
	r.corrections[key] = append(r.corrections[key], correction)
	return nil
}

// ListCorrections returns the newest correction first.
func (r *PlayerStatsRepository) ListCorrections(_ context.Context, fixtureID, playerID string) ([]playerstats.Correction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.corrections[statKey{fixtureID: fixtureID, playerID: playerID}]
	out := make([]playerstats.Correction, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out, nil
}

func (r *PlayerStatsRepository) filter(keep func(playerstats.FixtureStat) bool) []playerstats.FixtureStat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.FixtureStat, 0)
	for _, item := range r.stats {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FixtureID == out[j].FixtureID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	return out
}
