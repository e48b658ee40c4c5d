package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
	qb "github.com/riskibarqy/fantasy-admin/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

var gameweekSelectColumns = []string{"number", "status", "deadline_at", "done_at", "scored_at"}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekToDomain(row))
	}
	return out, nil
}

func (r *GameweekRepository) GetByNumber(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		Where(qb.Eq("number", number)).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get gameweek: %w", err)
	}
	return gameweekToDomain(row), true, nil
}

func (r *GameweekRepository) MarkDone(ctx context.Context, number int, doneAt time.Time) error {
	query, args, err := qb.Update("gameweeks").
		Set("status", string(gameweek.StatusDone)).
		Set("done_at", doneAt.UTC()).
		Set("updated_at", doneAt.UTC()).
		Where(qb.Eq("number", number)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark gameweek done query: %w", err)
	}
	return r.execOne(ctx, query, args, "mark gameweek done", number)
}

func (r *GameweekRepository) MarkScored(ctx context.Context, number int, scoredAt time.Time) error {
	query, args, err := qb.Update("gameweeks").
		Set("scored_at", scoredAt.UTC()).
		Set("updated_at", scoredAt.UTC()).
		Where(qb.Eq("number", number)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark gameweek scored query: %w", err)
	}
	return r.execOne(ctx, query, args, "mark gameweek scored", number)
}

func (r *GameweekRepository) execOne(ctx context.Context, query string, args []any, op string, number int) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s number=%d: %w", op, number, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: gameweek %d not found", op, number)
	}
	return nil
}

func gameweekToDomain(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		Number:     row.Number,
		Status:     gameweek.Status(row.Status),
		DeadlineAt: row.DeadlineAt.UTC(),
		DoneAt:     nullTimeToPtr(row.DoneAt),
		ScoredAt:   nullTimeToPtr(row.ScoredAt),
	}
}
