package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu        sync.RWMutex
	gameweeks map[int]gameweek.Gameweek
}

func NewGameweekRepository(items []gameweek.Gameweek) *GameweekRepository {
	gameweeks := make(map[int]gameweek.Gameweek, len(items))
	for _, item := range items {
		gameweeks[item.Number] = item
	}
	return &GameweekRepository{gameweeks: gameweeks}
}

func (r *GameweekRepository) List(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.gameweeks))
	for _, item := range r.gameweeks {
		out = append(out, cloneGameweek(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *GameweekRepository) GetByNumber(_ context.Context, number int) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.gameweeks[number]
	if !ok {
		return gameweek.Gameweek{}, false, nil
	}
	return cloneGameweek(item), true, nil
}

func (r *GameweekRepository) MarkDone(_ context.Context, number int, doneAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.gameweeks[number]
	if !ok {
		return fmt.Errorf("gameweek %d not found", number)
	}
	item.Status = gameweek.StatusDone
	item.DoneAt = &doneAt
	r.gameweeks[number] = item
	return nil
}

func (r *GameweekRepository) MarkScored(_ context.Context, number int, scoredAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.gameweeks[number]
	if !ok {
		return fmt.Errorf("gameweek %d not found", number)
	}
	item.ScoredAt = &scoredAt
	r.gameweeks[number] = item
	return nil
}

func cloneGameweek(item gameweek.Gameweek) gameweek.Gameweek {
	if item.DoneAt != nil {
		v := *item.DoneAt
		item.DoneAt = &v
	}
	if item.ScoredAt != nil {
		v := *item.ScoredAt
		item.ScoredAt = &v
	}
	return item
}
