package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-admin/internal/platform/id"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/riskibarqy/fantasy-admin/internal/platform/metrics"
)

const maxCorrectionReasonLength = 500

// StatCorrectionService backs the admin stat correction form: live previews
// while editing and the authoritative write on confirm.
type StatCorrectionService struct {
	fixtureRepo fixture.Repository
	playerRepo  player.Repository
	statsRepo   playerstats.Repository
	idGen       id.Generator
	metrics     *metrics.Metrics
	logger      *logging.Logger
	now         func() time.Time
}

type PreviewInput struct {
	Position string
	Stat     scoring.MatchStat
}

// PlayerPreview pairs a recomputed breakdown with the currently stored points
// so the form can show both side by side.
type PlayerPreview struct {
	FixtureID     string
	PlayerID      string
	Breakdown     scoring.Breakdown
	CurrentPoints int
	HasCurrent    bool
}

type CorrectionInput struct {
	FixtureID string
	PlayerID  string
	Stat      scoring.MatchStat
	Operator  string
	Reason    string
}

type CorrectionResult struct {
	Stat       playerstats.FixtureStat
	Correction playerstats.Correction
	Breakdown  scoring.Breakdown
}

func NewStatCorrectionService(
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	idGen id.Generator,
	m *metrics.Metrics,
	logger *logging.Logger,
) *StatCorrectionService {
	return &StatCorrectionService{
		fixtureRepo: fixtureRepo,
		playerRepo:  playerRepo,
		statsRepo:   statsRepo,
		idGen:       idGen,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Preview recomputes points from the full stat set on every call, so the
// latest form state always wins.
func (s *StatCorrectionService) Preview(ctx context.Context, input PreviewInput) (scoring.Breakdown, error) {
	_, span := startUsecaseSpan(ctx, "usecase.StatCorrectionService.Preview")
	defer span.End()

	pos, err := player.ParsePosition(input.Position)
	if err != nil {
		return scoring.Breakdown{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := input.Stat.Validate(); err != nil {
		return scoring.Breakdown{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.metrics.AddPointsComputed(metrics.ModePreview, 1)
	return scoring.Explain(input.Stat, pos), nil
}

func (s *StatCorrectionService) PreviewForPlayer(ctx context.Context, fixtureID, playerID string, stat scoring.MatchStat) (PlayerPreview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatCorrectionService.PreviewForPlayer")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	playerID = strings.TrimSpace(playerID)
	if fixtureID == "" || playerID == "" {
		return PlayerPreview{}, fmt.Errorf("%w: fixture_id and player_id are required", ErrInvalidInput)
	}
	if err := stat.Validate(); err != nil {
		return PlayerPreview{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	current, hasCurrent, err := s.statsRepo.GetFixtureStat(ctx, fixtureID, playerID)
	if err != nil {
		return PlayerPreview{}, fmt.Errorf("get fixture stat: %w", err)
	}

	pos := current.Position
	if !hasCurrent || !pos.Valid() {
		pos, err = s.resolvePosition(ctx, playerID)
		if err != nil {
			return PlayerPreview{}, err
		}
	}

	s.metrics.AddPointsComputed(metrics.ModePreview, 1)
	out := PlayerPreview{
		FixtureID:  fixtureID,
		PlayerID:   playerID,
		Breakdown:  scoring.Explain(stat, pos),
		HasCurrent: hasCurrent,
	}
	if hasCurrent {
		out.CurrentPoints = current.FantasyPoints
	}
	return out, nil
}

// ApplyCorrection overwrites a stored stat line, recomputes its points and
// writes the audit row in the same repository call.
func (s *StatCorrectionService) ApplyCorrection(ctx context.Context, input CorrectionInput) (CorrectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatCorrectionService.ApplyCorrection")
	defer span.End()

	input.FixtureID = strings.TrimSpace(input.FixtureID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.Operator = strings.TrimSpace(input.Operator)
	input.Reason = strings.TrimSpace(input.Reason)
	if input.FixtureID == "" || input.PlayerID == "" {
		return CorrectionResult{}, fmt.Errorf("%w: fixture_id and player_id are required", ErrInvalidInput)
	}
	if input.Operator == "" {
		return CorrectionResult{}, fmt.Errorf("%w: operator is required", ErrInvalidInput)
	}
	if len(input.Reason) > maxCorrectionReasonLength {
		return CorrectionResult{}, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, maxCorrectionReasonLength)
	}
	if err := input.Stat.Validate(); err != nil {
		return CorrectionResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	current, ok, err := s.statsRepo.GetFixtureStat(ctx, input.FixtureID, input.PlayerID)
	if err != nil {
		return CorrectionResult{}, fmt.Errorf("get fixture stat: %w", err)
	}
	if !ok {
		return CorrectionResult{}, fmt.Errorf("%w: no stats for player=%s in fixture=%s", ErrNotFound, input.PlayerID, input.FixtureID)
	}
	if current.Stat == input.Stat {
		return CorrectionResult{}, fmt.Errorf("%w: stat line is unchanged", ErrConflict)
	}

	pos := current.Position
	if !pos.Valid() {
		pos, err = s.resolvePosition(ctx, input.PlayerID)
		if err != nil {
			return CorrectionResult{}, err
		}
	}

	correctionID, err := s.idGen.NewID()
	if err != nil {
		return CorrectionResult{}, fmt.Errorf("generate correction id: %w", err)
	}

	now := s.now().UTC()
	breakdown := scoring.Explain(input.Stat, pos)
	updated := current
	updated.Position = pos
	updated.Stat = input.Stat
	updated.FantasyPoints = breakdown.Total
	updated.UpdatedAt = now

	correction := playerstats.Correction{
		ID:           correctionID,
		FixtureID:    input.FixtureID,
		PlayerID:     input.PlayerID,
		Before:       current.Stat,
		After:        input.Stat,
		PointsBefore: current.FantasyPoints,
		PointsAfter:  breakdown.Total,
		Operator:     input.Operator,
		Reason:       input.Reason,
		CreatedAt:    now,
	}

	if err := s.statsRepo.ApplyCorrection(ctx, updated, correction); err != nil {
		if errors.Is(err, playerstats.ErrStaleStat) {
			return CorrectionResult{}, fmt.Errorf("%w: stat line was changed concurrently, reload and retry", ErrConflict)
		}
		return CorrectionResult{}, fmt.Errorf("apply stat correction: %w", err)
	}

	s.metrics.IncCorrections()
	s.metrics.AddPointsComputed(metrics.ModeAuthoritative, 1)
	s.logger.InfoContext(ctx, "stat correction applied",
		"fixture_id", input.FixtureID,
		"player_id", input.PlayerID,
		"operator", input.Operator,
		"points_before", correction.PointsBefore,
		"points_after", correction.PointsAfter,
	)

	return CorrectionResult{Stat: updated, Correction: correction, Breakdown: breakdown}, nil
}

func (s *StatCorrectionService) ListCorrections(ctx context.Context, fixtureID, playerID string) ([]playerstats.Correction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatCorrectionService.ListCorrections")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	playerID = strings.TrimSpace(playerID)
	if fixtureID == "" || playerID == "" {
		return nil, fmt.Errorf("%w: fixture_id and player_id are required", ErrInvalidInput)
	}

	items, err := s.statsRepo.ListCorrections(ctx, fixtureID, playerID)
	if err != nil {
		return nil, fmt.Errorf("list stat corrections: %w", err)
	}
	return items, nil
}

func (s *StatCorrectionService) ListFixtureStats(ctx context.Context, fixtureID string) ([]playerstats.FixtureStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatCorrectionService.ListFixtureStats")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return nil, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}

	_, ok, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("get fixture: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	items, err := s.statsRepo.ListByFixture(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("list fixture stats: %w", err)
	}
	return items, nil
}

func (s *StatCorrectionService) resolvePosition(ctx context.Context, playerID string) (player.Position, error) {
	p, ok, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return "", fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if !p.Position.Valid() {
		return "", fmt.Errorf("%w: %w: player=%s position=%q", ErrInvalidInput, player.ErrUnknownPosition, playerID, p.Position)
	}
	return p.Position, nil
}
