package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-admin/internal/platform/querybuilder"
)

const (
	tablePlayerFixtureStats = "player_fixture_stats"
	tableStatCorrections    = "player_stat_corrections"
)

var statColumns = []string{
	"minutes_played",
	"goals_scored",
	"assists",
	"clean_sheet",
	"shots_saved",
	"penalties_saved",
	"yellow_cards",
	"red_cards",
	"own_goals",
	"penalties_missed",
	"goals_conceded",
}

var fixtureStatSelectColumns = append([]string{
	"fixture_public_id",
	"player_public_id",
	"gameweek",
	"position",
	"fantasy_points",
	"updated_at",
}, statColumns...)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) GetFixtureStat(ctx context.Context, fixtureID, playerID string) (playerstats.FixtureStat, bool, error) {
	query, args, err := qb.Select(fixtureStatSelectColumns...).From(tablePlayerFixtureStats).
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.Eq("player_public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return playerstats.FixtureStat{}, false, fmt.Errorf("build get fixture stat query: %w", err)
	}

	var row fixtureStatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.FixtureStat{}, false, nil
		}
		return playerstats.FixtureStat{}, false, fmt.Errorf("get fixture stat: %w", err)
	}
	return fixtureStatToDomain(row), true, nil
}

func (r *PlayerStatsRepository) ListByFixture(ctx context.Context, fixtureID string) ([]playerstats.FixtureStat, error) {
	return r.list(ctx, "fixture", qb.Eq("fixture_public_id", fixtureID))
}

func (r *PlayerStatsRepository) ListByGameweek(ctx context.Context, gameweek int) ([]playerstats.FixtureStat, error) {
	return r.list(ctx, "gameweek", qb.Eq("gameweek", gameweek))
}

func (r *PlayerStatsRepository) list(ctx context.Context, scope string, cond qb.Condition) ([]playerstats.FixtureStat, error) {
	query, args, err := qb.Select(fixtureStatSelectColumns...).From(tablePlayerFixtureStats).
		Where(cond).
		OrderBy("fixture_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixture stats by %s query: %w", scope, err)
	}

	var rows []fixtureStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixture stats by %s: %w", scope, err)
	}

	out := make([]playerstats.FixtureStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureStatToDomain(row))
	}
	return out, nil
}

func (r *PlayerStatsRepository) UpsertFixtureStats(ctx context.Context, stats []playerstats.FixtureStat) error {
	if len(stats) == 0 {
		return nil
	}

	columns := append([]string{
		"fixture_public_id",
		"player_public_id",
		"gameweek",
		"position",
		"fantasy_points",
		"updated_at",
	}, statColumns...)
	insert := qb.InsertInto(tablePlayerFixtureStats).Columns(columns...)
	for _, item := range stats {
		row := fixtureStatFromDomain(item)
		insert.Values(
			row.FixtureID,
			row.PlayerID,
			row.Gameweek,
			row.Position,
			row.FantasyPoints,
			row.UpdatedAt,
			row.MinutesPlayed,
			row.GoalsScored,
			row.Assists,
			row.CleanSheet,
			row.ShotsSaved,
			row.PenaltiesSaved,
			row.YellowCards,
			row.RedCards,
			row.OwnGoals,
			row.PenaltiesMissed,
			row.GoalsConceded,
		)
	}
	query, args, err := insert.
		OnConflictUpdate([]string{"fixture_public_id", "player_public_id"}, columns[2:]...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert fixture stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixture stats rows=%d: %w", len(stats), err)
	}
	return nil
}

func (r *PlayerStatsRepository) UpdateFantasyPoints(ctx context.Context, updates []playerstats.PointsUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update fantasy points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for _, u := range updates {
		query, args, err := qb.Update(tablePlayerFixtureStats).
			Set("fantasy_points", u.FantasyPoints).
			Set("updated_at", now).
			Where(
				qb.Eq("fixture_public_id", u.FixtureID),
				qb.Eq("player_public_id", u.PlayerID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update fantasy points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update fantasy points fixture=%s player=%s: %w", u.FixtureID, u.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update fantasy points tx: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) ApplyCorrection(ctx context.Context, stat playerstats.FixtureStat, correction playerstats.Correction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply correction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select(fixtureStatSelectColumns...).From(tablePlayerFixtureStats).
		Where(
			qb.Eq("fixture_public_id", stat.FixtureID),
			qb.Eq("player_public_id", stat.PlayerID),
		).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock fixture stat query: %w", err)
	}
	var locked fixtureStatTableModel
	if err := tx.GetContext(ctx, &locked, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("stat row not found fixture=%s player=%s", stat.FixtureID, stat.PlayerID)
		}
		return fmt.Errorf("lock fixture stat: %w", err)
	}
	if fixtureStatToDomain(locked).Stat != correction.Before {
		return fmt.Errorf("%w: fixture=%s player=%s", playerstats.ErrStaleStat, stat.FixtureID, stat.PlayerID)
	}

	row := fixtureStatFromDomain(stat)
	updateQuery, updateArgs, err := qb.Update(tablePlayerFixtureStats).
		Set("position", row.Position).
		Set("minutes_played", row.MinutesPlayed).
		Set("goals_scored", row.GoalsScored).
		Set("assists", row.Assists).
		Set("clean_sheet", row.CleanSheet).
		Set("shots_saved", row.ShotsSaved).
		Set("penalties_saved", row.PenaltiesSaved).
		Set("yellow_cards", row.YellowCards).
		Set("red_cards", row.RedCards).
		Set("own_goals", row.OwnGoals).
		Set("penalties_missed", row.PenaltiesMissed).
		Set("goals_conceded", row.GoalsConceded).
		Set("fantasy_points", row.FantasyPoints).
		Set("updated_at", row.UpdatedAt).
		Where(
			qb.Eq("fixture_public_id", stat.FixtureID),
			qb.Eq("player_public_id", stat.PlayerID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update corrected stat query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return fmt.Errorf("update corrected stat: %w", err)
	}

	audit, err := correctionFromDomain(correction)
	if err != nil {
		return err
	}
	insertQuery, insertArgs, err := qb.InsertModel(tableStatCorrections, audit)
	if err != nil {
		return fmt.Errorf("build insert stat correction query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("insert stat correction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply correction tx: %w", err)
	}
	return nil
}

func (r *PlayerStatsRepository) ListCorrections(ctx context.Context, fixtureID, playerID string) ([]playerstats.Correction, error) {
	query, args, err := qb.Select(
		"id::text AS id",
		"fixture_public_id",
		"player_public_id",
		"before_stats::text AS before_stats",
		"after_stats::text AS after_stats",
		"points_before",
		"points_after",
		"operator",
		"reason",
		"created_at",
	).From(tableStatCorrections).
		Where(
			qb.Eq("fixture_public_id", fixtureID),
			qb.Eq("player_public_id", playerID),
		).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stat corrections query: %w", err)
	}

	var rows []correctionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stat corrections: %w", err)
	}

	out := make([]playerstats.Correction, 0, len(rows))
	for _, row := range rows {
		item, err := correctionToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func fixtureStatToDomain(row fixtureStatTableModel) playerstats.FixtureStat {
	return playerstats.FixtureStat{
		FixtureID:     row.FixtureID,
		PlayerID:      row.PlayerID,
		Gameweek:      row.Gameweek,
		Position:      player.Position(row.Position),
		FantasyPoints: row.FantasyPoints,
		UpdatedAt:     row.UpdatedAt.UTC(),
		Stat: scoring.MatchStat{
			MinutesPlayed:   row.MinutesPlayed,
			GoalsScored:     row.GoalsScored,
			Assists:         row.Assists,
			CleanSheet:      row.CleanSheet,
			ShotsSaved:      row.ShotsSaved,
			PenaltiesSaved:  row.PenaltiesSaved,
			YellowCards:     row.YellowCards,
			RedCards:        row.RedCards,
			OwnGoals:        row.OwnGoals,
			PenaltiesMissed: row.PenaltiesMissed,
			GoalsConceded:   row.GoalsConceded,
		},
	}
}

func fixtureStatFromDomain(item playerstats.FixtureStat) fixtureStatTableModel {
	updatedAt := item.UpdatedAt.UTC()
	if item.UpdatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return fixtureStatTableModel{
		FixtureID:       item.FixtureID,
		PlayerID:        item.PlayerID,
		Gameweek:        item.Gameweek,
		Position:        string(item.Position),
		MinutesPlayed:   item.Stat.MinutesPlayed,
		GoalsScored:     item.Stat.GoalsScored,
		Assists:         item.Stat.Assists,
		CleanSheet:      item.Stat.CleanSheet,
		ShotsSaved:      item.Stat.ShotsSaved,
		PenaltiesSaved:  item.Stat.PenaltiesSaved,
		YellowCards:     item.Stat.YellowCards,
		RedCards:        item.Stat.RedCards,
		OwnGoals:        item.Stat.OwnGoals,
		PenaltiesMissed: item.Stat.PenaltiesMissed,
		GoalsConceded:   item.Stat.GoalsConceded,
		FantasyPoints:   item.FantasyPoints,
		UpdatedAt:       updatedAt,
	}
}

func correctionFromDomain(item playerstats.Correction) (correctionTableModel, error) {
	before, err := encodeStat(item.Before)
	if err != nil {
		return correctionTableModel{}, fmt.Errorf("encode stat before correction: %w", err)
	}
	after, err := encodeStat(item.After)
	if err != nil {
		return correctionTableModel{}, fmt.Errorf("encode stat after correction: %w", err)
	}
	return correctionTableModel{
		ID:           item.ID,
		FixtureID:    item.FixtureID,
		PlayerID:     item.PlayerID,
		BeforeStats:  before,
		AfterStats:   after,
		PointsBefore: item.PointsBefore,
		PointsAfter:  item.PointsAfter,
		Operator:     item.Operator,
		Reason:       item.Reason,
		CreatedAt:    item.CreatedAt.UTC(),
	}, nil
}

func correctionToDomain(row correctionTableModel) (playerstats.Correction, error) {
	before, err := decodeStat(row.BeforeStats)
	if err != nil {
		return playerstats.Correction{}, fmt.Errorf("decode stat before correction id=%s: %w", row.ID, err)
	}
	after, err := decodeStat(row.AfterStats)
	if err != nil {
		return playerstats.Correction{}, fmt.Errorf("decode stat after correction id=%s: %w", row.ID, err)
	}
	return playerstats.Correction{
		ID:           row.ID,
		FixtureID:    row.FixtureID,
		PlayerID:     row.PlayerID,
		Before:       before,
		After:        after,
		PointsBefore: row.PointsBefore,
		PointsAfter:  row.PointsAfter,
		Operator:     row.Operator,
		Reason:       row.Reason,
		CreatedAt:    row.CreatedAt.UTC(),
	}, nil
}
