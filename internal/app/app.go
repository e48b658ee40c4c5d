package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-admin/external/statsfeed"
	"github.com/riskibarqy/fantasy-admin/internal/config"
	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	cacherepo "github.com/riskibarqy/fantasy-admin/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-admin/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-admin/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-admin/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-admin/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-admin/internal/platform/id"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-admin/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-admin/internal/scheduler"
	"github.com/riskibarqy/fantasy-admin/internal/usecase"
)

// App is the assembled service: the admin HTTP server plus the background
// scoring job.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler
	Metrics   *metrics.Metrics

	closers []func() error
}

type repositories struct {
	players   player.Repository
	fixtures  fixture.Repository
	gameweeks gameweek.Repository
	stats     playerstats.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	if cfg.MetricsEnabled {
		a.Metrics = metrics.New(metrics.WithProcessMetrics())
	}

	repos, err := a.buildRepositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var feed usecase.StatsFeed
	if cfg.StatsFeedEnabled {
		feed = statsfeed.NewClient(statsfeed.ClientConfig{
			BaseURL:    cfg.StatsFeedBaseURL,
			Token:      cfg.StatsFeedToken,
			Timeout:    cfg.StatsFeedTimeout,
			MaxRetries: cfg.StatsFeedMaxRetries,
			Logger:     logger.Named("statsfeed"),
			Metrics:    a.Metrics,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsFeedCircuitEnabled,
				FailureThreshold: cfg.StatsFeedCircuitFailureCount,
				OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
			},
		})
	}

	scoringSvc := usecase.NewScoringService(repos.fixtures, repos.gameweeks, repos.stats, cfg.ScoringWorkers, a.Metrics, logger)
	correctionSvc := usecase.NewStatCorrectionService(repos.fixtures, repos.players, repos.stats, idgen.NewUUIDGenerator(), a.Metrics, logger)
	ingestionSvc := usecase.NewIngestionService(repos.fixtures, repos.players, repos.stats, feed, cfg.StatsFeedConcurrency, a.Metrics, logger)
	gameweekSvc := usecase.NewGameweekService(repos.gameweeks, repos.fixtures, scoringSvc, logger)

	handler := httpapi.NewHandler(correctionSvc, scoringSvc, ingestionSvc, gameweekSvc, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		AdminToken:         cfg.AdminToken,
		InternalJobToken:   cfg.InternalJobToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            a.Metrics,
		Logger:             logger,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.ScoringJobEnabled {
		a.Scheduler, err = scheduler.New(scoringSvc, scheduler.Config{Interval: cfg.ScoringJobInterval}, logger)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		repos = repositories{
			players:   postgres.NewPlayerRepository(db),
			fixtures:  postgres.NewFixtureRepository(db),
			gameweeks: postgres.NewGameweekRepository(db),
			stats:     postgres.NewPlayerStatsRepository(db),
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "database", dbNameFromURL(cfg.DBURL))
	default:
		repos = repositories{
			players:   memory.NewPlayerRepository(memory.SeedPlayers()),
			fixtures:  memory.NewFixtureRepository(memory.SeedFixtures()),
			gameweeks: memory.NewGameweekRepository(memory.SeedGameweeks()),
			stats:     memory.NewPlayerStatsRepository(memory.SeedPlayerStats()),
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	// Gameweeks are not cached: mark-done and scoring flip their state and the
	// orchestration page polls it.
	if cfg.CacheEnabled {
		store := basecache.NewStore[any](cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
		repos.stats = cacherepo.NewPlayerStatsRepository(repos.stats, store)
	}
	return repos, nil
}

func (a *App) Start() error {
	if a.Scheduler == nil {
		return nil
	}
	return a.Scheduler.Start()
}

// Close stops the background job and releases storage handles. The HTTP
// server is shut down by the caller.
func (a *App) Close() error {
	var errs []error
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
