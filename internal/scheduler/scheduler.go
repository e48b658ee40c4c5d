package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/usecase"
)

const scorePendingJobName = "score-pending-gameweeks"

type pendingScorer interface {
	ScorePendingGameweeks(ctx context.Context) ([]usecase.ScoringRun, error)
}

type Config struct {
	Interval time.Duration
	// RunTimeout bounds a single pass. Zero means the interval.
	RunTimeout time.Duration
	Location   *time.Location
}

// Scheduler periodically recomputes points for gameweeks marked done whose
// stored points are stale.
type Scheduler struct {
	s       gocron.Scheduler
	scorer  pendingScorer
	logger  *logging.Logger
	cfg     Config
	baseCtx context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	started bool
}

func New(scorer pendingScorer, cfg Config, logger *logging.Logger) (*Scheduler, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scheduler requires a scorer")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("scheduler interval must be positive, got %s", cfg.Interval)
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = cfg.Interval
	}
	if logger == nil {
		logger = logging.Default()
	}

	opts := []gocron.SchedulerOption{}
	if cfg.Location != nil {
		opts = append(opts, gocron.WithLocation(cfg.Location))
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		s:       s,
		scorer:  scorer,
		logger:  logger.Named("scheduler"),
		cfg:     cfg,
		baseCtx: ctx,
		cancel:  cancel,
	}, nil
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	_, err := s.s.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(s.scorePending),
		gocron.WithName(scorePendingJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", scorePendingJobName, err)
	}

	s.s.Start()
	s.started = true
	s.logger.Info("scheduler started", "job", scorePendingJobName, "interval", s.cfg.Interval)
	return nil
}

// Stop cancels a running pass and waits for the job to return.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.s.Shutdown()
}

func (s *Scheduler) scorePending() {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.cfg.RunTimeout)
	defer cancel()

	runs, err := s.scorer.ScorePendingGameweeks(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "score pending gameweeks failed", "scored", len(runs), "error", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	gameweeks := make([]int, 0, len(runs))
	for _, run := range runs {
		gameweeks = append(gameweeks, run.Gameweek)
	}
	s.logger.InfoContext(ctx, "pending gameweeks scored", "gameweeks", gameweeks)
}
