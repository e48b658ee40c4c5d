package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
)

type gameweekScorer interface {
	ScoreGameweek(ctx context.Context, number int) (ScoringRun, error)
}

// GameweekService drives the gameweek orchestration page.
type GameweekService struct {
	gameweekRepo gameweek.Repository
	fixtureRepo  fixture.Repository
	scorer       gameweekScorer
	logger       *logging.Logger
	now          func() time.Time
}

type GameweekStatus struct {
	Gameweek         gameweek.Gameweek
	Fixtures         int
	ScorableFixtures int
	Scored           bool
	PendingScore     bool
}

type MarkDoneResult struct {
	Gameweek gameweek.Gameweek
	Run      *ScoringRun
}

func NewGameweekService(
	gameweekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	scorer gameweekScorer,
	logger *logging.Logger,
) *GameweekService {
	return &GameweekService{
		gameweekRepo: gameweekRepo,
		fixtureRepo:  fixtureRepo,
		scorer:       scorer,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GameweekService) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.List")
	defer span.End()

	items, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items, nil
}

func (s *GameweekService) Get(ctx context.Context, number int) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Get")
	defer span.End()

	return s.get(ctx, number)
}

// MarkDone closes the gameweek and runs authoritative scoring when its
// points are stale. Calling it again on a scored gameweek changes nothing.
func (s *GameweekService) MarkDone(ctx context.Context, number int) (MarkDoneResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.MarkDone")
	defer span.End()

	gw, err := s.get(ctx, number)
	if err != nil {
		return MarkDoneResult{}, err
	}

	if gw.Status != gameweek.StatusDone {
		if err := s.gameweekRepo.MarkDone(ctx, number, s.now().UTC()); err != nil {
			return MarkDoneResult{}, fmt.Errorf("mark gameweek done: %w", err)
		}
		s.logger.InfoContext(ctx, "gameweek marked done", "gameweek", number)

		gw, err = s.get(ctx, number)
		if err != nil {
			return MarkDoneResult{}, err
		}
	}

	out := MarkDoneResult{Gameweek: gw}
	if !gw.PendingScore() {
		return out, nil
	}

	run, err := s.scorer.ScoreGameweek(ctx, number)
	if err != nil {
		return MarkDoneResult{}, fmt.Errorf("score gameweek: %w", err)
	}
	out.Run = &run

	gw, err = s.get(ctx, number)
	if err != nil {
		return MarkDoneResult{}, err
	}
	out.Gameweek = gw
	return out, nil
}

func (s *GameweekService) Status(ctx context.Context, number int) (GameweekStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.Status")
	defer span.End()

	gw, err := s.get(ctx, number)
	if err != nil {
		return GameweekStatus{}, err
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, number)
	if err != nil {
		return GameweekStatus{}, fmt.Errorf("list fixtures by gameweek: %w", err)
	}

	out := GameweekStatus{
		Gameweek:     gw,
		Fixtures:     len(fixtures),
		Scored:       gw.ScoredAt != nil,
		PendingScore: gw.PendingScore(),
	}
	for _, fx := range fixtures {
		if fixture.IsScorable(fx.Status) {
			out.ScorableFixtures++
		}
	}
	return out, nil
}

func (s *GameweekService) get(ctx context.Context, number int) (gameweek.Gameweek, error) {
	if number <= 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	gw, ok, err := s.gameweekRepo.GetByNumber(ctx, number)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !ok {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%d", ErrNotFound, number)
	}
	return gw, nil
}
