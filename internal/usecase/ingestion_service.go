package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
	"github.com/sourcegraph/conc/pool"
)

const defaultFeedConcurrency = 4

// IngestionService stores raw player stat lines together with their
// computed points.
type IngestionService struct {
	fixtureRepo     fixture.Repository
	playerRepo      player.Repository
	statsRepo       playerstats.Repository
	feed            StatsFeed
	feedConcurrency int
	metrics         *metrics.Metrics
	logger          *logging.Logger
	now             func() time.Time
}

// IngestStatInput is one stat line to store. Position overrides the player's
// registered position when set.
type IngestStatInput struct {
	PlayerID string
	Position string
	Stat     scoring.MatchStat
}

type IngestResult struct {
	FixtureID   string
	Gameweek    int
	Rows        int
	TotalPoints int
}

type SyncResult struct {
	Fixtures []IngestResult
	Rows     int
}

func NewIngestionService(
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	feed StatsFeed,
	feedConcurrency int,
	m *metrics.Metrics,
	logger *logging.Logger,
) *IngestionService {
	if feedConcurrency < 1 {
		feedConcurrency = defaultFeedConcurrency
	}
	return &IngestionService{
		fixtureRepo:     fixtureRepo,
		playerRepo:      playerRepo,
		statsRepo:       statsRepo,
		feed:            feed,
		feedConcurrency: feedConcurrency,
		metrics:         m,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *IngestionService) IngestFixtureStats(ctx context.Context, fixtureID string, rows []IngestStatInput) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestFixtureStats")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return IngestResult{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}

	fx, ok, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("get fixture: %w", err)
	}
	if !ok {
		return IngestResult{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	return s.ingest(ctx, fx, rows)
}

// SyncFixtureFromFeed pulls stats for several fixtures from the stats feed
// concurrently and ingests each fixture's lines. Fixtures that fail do not
// stop the rest; their errors are returned together.
func (s *IngestionService) SyncFixtureFromFeed(ctx context.Context, fixtureIDs ...string) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncFixtureFromFeed")
	defer span.End()

	if s.feed == nil {
		return SyncResult{}, fmt.Errorf("%w: stats feed is not configured", ErrDependencyUnavailable)
	}

	fixtures, err := s.resolveFeedFixtures(ctx, fixtureIDs)
	if err != nil {
		return SyncResult{}, err
	}

	p := pool.NewWithResults[IngestResult]().
		WithContext(ctx).
		WithMaxGoroutines(s.feedConcurrency)
	for _, fx := range fixtures {
		fx := fx
		p.Go(func(ctx context.Context) (IngestResult, error) {
			external, fetchErr := s.feed.FetchFixtureStats(ctx, fx.FeedRefID)
			if fetchErr != nil {
				return IngestResult{}, fmt.Errorf("fetch stats for fixture=%s: %w: %w", fx.ID, ErrDependencyUnavailable, fetchErr)
			}

			rows := make([]IngestStatInput, 0, len(external))
			for _, item := range external {
				rows = append(rows, IngestStatInput{
					PlayerID: item.PlayerID,
					Position: item.Position,
					Stat:     item.Stat,
				})
			}
			result, ingestErr := s.ingest(ctx, fx, rows)
			if ingestErr != nil {
				return IngestResult{}, fmt.Errorf("ingest stats for fixture=%s: %w", fx.ID, ingestErr)
			}
			return result, nil
		})
	}

	results, err := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].FixtureID < results[j].FixtureID })

	out := SyncResult{Fixtures: results}
	for _, item := range results {
		out.Rows += item.Rows
	}
	if err != nil {
		s.logger.WarnContext(ctx, "stats feed sync finished with errors",
			"requested", len(fixtures),
			"synced", len(results),
			"error", err,
		)
		return out, err
	}

	s.logger.InfoContext(ctx, "stats feed sync finished", "fixtures", len(results), "rows", out.Rows)
	return out, nil
}

func (s *IngestionService) resolveFeedFixtures(ctx context.Context, fixtureIDs []string) ([]fixture.Fixture, error) {
	seen := make(map[string]struct{}, len(fixtureIDs))
	out := make([]fixture.Fixture, 0, len(fixtureIDs))
	for _, raw := range fixtureIDs {
		fixtureID := strings.TrimSpace(raw)
		if fixtureID == "" {
			continue
		}
		if _, dup := seen[fixtureID]; dup {
			continue
		}
		seen[fixtureID] = struct{}{}

		fx, ok, err := s.fixtureRepo.GetByID(ctx, fixtureID)
		if err != nil {
			return nil, fmt.Errorf("get fixture: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
		}
		if fx.FeedRefID <= 0 {
			return nil, fmt.Errorf("%w: fixture=%s has no feed reference", ErrInvalidInput, fixtureID)
		}
		out = append(out, fx)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one fixture_id is required", ErrInvalidInput)
	}
	return out, nil
}

func (s *IngestionService) ingest(ctx context.Context, fx fixture.Fixture, rows []IngestStatInput) (IngestResult, error) {
	if len(rows) == 0 {
		return IngestResult{}, fmt.Errorf("%w: stats are required", ErrInvalidInput)
	}

	playerIDs := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for idx := range rows {
		rows[idx].PlayerID = strings.TrimSpace(rows[idx].PlayerID)
		if rows[idx].PlayerID == "" {
			return IngestResult{}, fmt.Errorf("%w: stats[%d].player_id is required", ErrInvalidInput, idx)
		}
		if _, dup := seen[rows[idx].PlayerID]; dup {
			return IngestResult{}, fmt.Errorf("%w: duplicate player_id=%s", ErrInvalidInput, rows[idx].PlayerID)
		}
		seen[rows[idx].PlayerID] = struct{}{}
		if err := rows[idx].Stat.Validate(); err != nil {
			return IngestResult{}, fmt.Errorf("%w: stats[%d]: %w", ErrInvalidInput, idx, err)
		}
		playerIDs = append(playerIDs, rows[idx].PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return IngestResult{}, fmt.Errorf("get players: %w", err)
	}
	positionByPlayer := make(map[string]player.Position, len(players))
	for _, p := range players {
		positionByPlayer[p.ID] = p.Position
	}

	now := s.now().UTC()
	result := IngestResult{FixtureID: fx.ID, Gameweek: fx.Gameweek}
	stats := make([]playerstats.FixtureStat, 0, len(rows))
	for idx, row := range rows {
		pos, known := positionByPlayer[row.PlayerID]
		if !known {
			return IngestResult{}, fmt.Errorf("%w: unknown player_id=%s", ErrInvalidInput, row.PlayerID)
		}
		if strings.TrimSpace(row.Position) != "" {
			rowPos, err := player.ParsePosition(row.Position)
			if err != nil {
				return IngestResult{}, fmt.Errorf("%w: stats[%d]: %w", ErrInvalidInput, idx, err)
			}
			// Position is fixed per player for the season; a row may only
			// repeat it, or fill it in for a player registered without one.
			if pos.Valid() && rowPos != pos {
				return IngestResult{}, fmt.Errorf("%w: stats[%d]: position %s does not match registered position %s for player_id=%s",
					ErrInvalidInput, idx, rowPos, pos, row.PlayerID)
			}
			pos = rowPos
		}
		if !pos.Valid() {
			return IngestResult{}, fmt.Errorf("%w: %w: player_id=%s", ErrInvalidInput, player.ErrUnknownPosition, row.PlayerID)
		}

		points := scoring.ComputePoints(row.Stat, pos)
		result.TotalPoints += points
		stats = append(stats, playerstats.FixtureStat{
			FixtureID:     fx.ID,
			PlayerID:      row.PlayerID,
			Gameweek:      fx.Gameweek,
			Position:      pos,
			Stat:          row.Stat,
			FantasyPoints: points,
			UpdatedAt:     now,
		})
	}

	if err := s.statsRepo.UpsertFixtureStats(ctx, stats); err != nil {
		return IngestResult{}, fmt.Errorf("upsert player fixture stats: %w", err)
	}

	result.Rows = len(stats)
	s.metrics.AddPointsComputed(metrics.ModeAuthoritative, result.Rows)
	s.logger.InfoContext(ctx, "fixture stats ingested",
		"fixture_id", fx.ID,
		"gameweek", fx.Gameweek,
		"rows", result.Rows,
	)
	return result, nil
}
