package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-admin/internal/platform/resilience"
)

const defaultScoringWorkers = 8

// ScoringService produces the authoritative fantasy points stored for each
// player stat line.
type ScoringService struct {
	fixtureRepo  fixture.Repository
	gameweekRepo gameweek.Repository
	statsRepo    playerstats.Repository
	metrics      *metrics.Metrics
	logger       *logging.Logger
	workers      int
	now          func() time.Time
	flight       resilience.SingleFlight
}

// ScoringRun summarises one scoring pass.
type ScoringRun struct {
	Gameweek        int
	FixtureID       string
	Fixtures        int
	SkippedFixtures int
	Players         int
	SkippedPlayers  int
	Changed         int
	TotalPoints     int
	StartedAt       time.Time
	Duration        time.Duration
}

type fixtureScore struct {
	players     int
	skipped     int
	totalPoints int
	updates     []playerstats.PointsUpdate
}

func NewScoringService(
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	statsRepo playerstats.Repository,
	workers int,
	m *metrics.Metrics,
	logger *logging.Logger,
) *ScoringService {
	if workers < 1 {
		workers = defaultScoringWorkers
	}
	return &ScoringService{
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
		statsRepo:    statsRepo,
		metrics:      m,
		logger:       logger,
		workers:      workers,
		now:          time.Now,
	}
}

func (s *ScoringService) ScoreFixture(ctx context.Context, fixtureID string) (ScoringRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreFixture")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return ScoringRun{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}

	fx, ok, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return ScoringRun{}, fmt.Errorf("get fixture: %w", err)
	}
	if !ok {
		return ScoringRun{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	if !fixture.IsScorable(fx.Status) {
		return ScoringRun{}, fmt.Errorf("%w: fixture=%s has status %s", ErrConflict, fixtureID, fixture.NormalizeStatus(fx.Status))
	}

	started := s.now()
	run := ScoringRun{Gameweek: fx.Gameweek, FixtureID: fx.ID, Fixtures: 1, StartedAt: started.UTC()}

	score, err := s.scoreFixture(ctx, fx.ID)
	if err != nil {
		return ScoringRun{}, err
	}
	if err := s.persist(ctx, score.updates); err != nil {
		return ScoringRun{}, err
	}

	run.Players = score.players
	run.SkippedPlayers = score.skipped
	run.Changed = len(score.updates)
	run.TotalPoints = score.totalPoints
	run.Duration = s.now().Sub(started)
	return run, nil
}

// ScoreGameweek rescores every scorable fixture of a gameweek on a bounded
// worker pool, writes changed totals in one batch and stamps ScoredAt.
// Concurrent calls for the same gameweek share a single run.
func (s *ScoringService) ScoreGameweek(ctx context.Context, number int) (ScoringRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreGameweek")
	defer span.End()

	if number <= 0 {
		return ScoringRun{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	key := "scoring:gameweek:" + strconv.Itoa(number)
	v, err, shared := s.flight.Do(key, func() (any, error) {
		return s.scoreGameweekOnce(ctx, number)
	})
	if err != nil {
		return ScoringRun{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight gameweek scoring", "gameweek", number)
	}

	run, _ := v.(ScoringRun)
	return run, nil
}

// ScorePendingGameweeks scores every gameweek that was marked done after its
// last scoring run. A failing gameweek does not stop the others.
func (s *ScoringService) ScorePendingGameweeks(ctx context.Context) ([]ScoringRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScorePendingGameweeks")
	defer span.End()

	items, err := s.gameweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	var (
		runs []ScoringRun
		errs []error
	)
	for _, gw := range items {
		if !gw.PendingScore() {
			continue
		}
		run, runErr := s.ScoreGameweek(ctx, gw.Number)
		if runErr != nil {
			s.logger.WarnContext(ctx, "score pending gameweek failed", "gameweek", gw.Number, "error", runErr)
			errs = append(errs, fmt.Errorf("gameweek %d: %w", gw.Number, runErr))
			continue
		}
		runs = append(runs, run)
	}

	return runs, errors.Join(errs...)
}

func (s *ScoringService) scoreGameweekOnce(ctx context.Context, number int) (run ScoringRun, err error) {
	started := s.now()
	defer func() {
		s.metrics.ObserveScoringRun(s.now().Sub(started), err)
	}()

	gw, ok, err := s.gameweekRepo.GetByNumber(ctx, number)
	if err != nil {
		return ScoringRun{}, fmt.Errorf("get gameweek: %w", err)
	}
	if !ok {
		return ScoringRun{}, fmt.Errorf("%w: gameweek=%d", ErrNotFound, number)
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, gw.Number)
	if err != nil {
		return ScoringRun{}, fmt.Errorf("list fixtures by gameweek: %w", err)
	}

	run = ScoringRun{Gameweek: gw.Number, StartedAt: started.UTC()}
	scorable := make([]fixture.Fixture, 0, len(fixtures))
	for _, fx := range fixtures {
		if !fixture.IsScorable(fx.Status) {
			run.SkippedFixtures++
			continue
		}
		scorable = append(scorable, fx)
	}
	run.Fixtures = len(scorable)

	scores, err := s.scoreFixtures(ctx, scorable)
	if err != nil {
		return ScoringRun{}, err
	}

	updates := make([]playerstats.PointsUpdate, 0)
	for _, score := range scores {
		run.Players += score.players
		run.SkippedPlayers += score.skipped
		run.TotalPoints += score.totalPoints
		updates = append(updates, score.updates...)
	}
	sort.Slice(updates, func(i, j int) bool {
		if updates[i].FixtureID != updates[j].FixtureID {
			return updates[i].FixtureID < updates[j].FixtureID
		}
		return updates[i].PlayerID < updates[j].PlayerID
	})

	if err := s.persist(ctx, updates); err != nil {
		return ScoringRun{}, err
	}
	run.Changed = len(updates)

	if err := s.gameweekRepo.MarkScored(ctx, gw.Number, s.now().UTC()); err != nil {
		return ScoringRun{}, fmt.Errorf("mark gameweek scored: %w", err)
	}

	run.Duration = s.now().Sub(started)
	s.logger.InfoContext(ctx, "gameweek scored",
		"gameweek", run.Gameweek,
		"fixtures", run.Fixtures,
		"skipped_fixtures", run.SkippedFixtures,
		"players", run.Players,
		"changed", run.Changed,
		"total_points", run.TotalPoints,
		"duration", run.Duration,
	)
	return run, nil
}

func (s *ScoringService) scoreFixtures(ctx context.Context, fixtures []fixture.Fixture) ([]fixtureScore, error) {
	if len(fixtures) == 0 {
		return nil, nil
	}

	workerCount := s.workers
	if workerCount > len(fixtures) {
		workerCount = len(fixtures)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		scores  = make([]fixtureScore, 0, len(fixtures))
		errs    []error
		workers sync.WaitGroup
	)
	for _, fx := range fixtures {
		fixtureID := fx.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			score, scoreErr := s.scoreFixture(ctx, fixtureID)
			mu.Lock()
			defer mu.Unlock()
			if scoreErr != nil {
				errs = append(errs, scoreErr)
				return
			}
			scores = append(scores, score)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return scores, nil
}

// scoreFixture recomputes points for every stored stat line of a fixture and
// returns only the rows whose total changed.
func (s *ScoringService) scoreFixture(ctx context.Context, fixtureID string) (fixtureScore, error) {
	rows, err := s.statsRepo.ListByFixture(ctx, fixtureID)
	if err != nil {
		return fixtureScore{}, fmt.Errorf("list stats for fixture=%s: %w", fixtureID, err)
	}

	var out fixtureScore
	for _, row := range rows {
		if !row.Position.Valid() {
			out.skipped++
			s.logger.WarnContext(ctx, "skip stat row with unknown position",
				"fixture_id", fixtureID,
				"player_id", row.PlayerID,
				"position", string(row.Position),
			)
			continue
		}

		points := scoring.ComputePoints(row.Stat, row.Position)
		out.players++
		out.totalPoints += points
		if points != row.FantasyPoints {
			out.updates = append(out.updates, playerstats.PointsUpdate{
				FixtureID:     row.FixtureID,
				PlayerID:      row.PlayerID,
				FantasyPoints: points,
			})
		}
	}

	s.metrics.AddPointsComputed(metrics.ModeAuthoritative, out.players)
	return out, nil
}

func (s *ScoringService) persist(ctx context.Context, updates []playerstats.PointsUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := s.statsRepo.UpdateFantasyPoints(ctx, updates); err != nil {
		return fmt.Errorf("update fantasy points: %w", err)
	}
	return nil
}
