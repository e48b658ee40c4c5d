package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
)

type FixtureRepository struct {
	mu         sync.RWMutex
	byID       map[string]fixture.Fixture
	byGameweek map[int][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	byID := make(map[string]fixture.Fixture, len(fixtures))
	byGameweek := make(map[int][]fixture.Fixture)
	for _, item := range fixtures {
		byID[item.ID] = item
		byGameweek[item.Gameweek] = append(byGameweek[item.Gameweek], item)
	}
	for gw := range byGameweek {
		items := byGameweek[gw]
		sort.Slice(items, func(i, j int) bool {
			if items[i].KickoffAt.Equal(items[j].KickoffAt) {
				return items[i].ID < items[j].ID
			}
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		})
	}

	return &FixtureRepository{byID: byID, byGameweek: byGameweek}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, gameweek int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byGameweek[gameweek]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}
