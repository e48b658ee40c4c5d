package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	qb "github.com/riskibarqy/fantasy-admin/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

var fixtureSelectColumns = []string{
	"public_id",
	"gameweek",
	"home_team_public_id",
	"away_team_public_id",
	"kickoff_at",
	"status",
	"feed_fixture_id",
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(
			qb.Eq("public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}

	return fixtureToDomain(row), true, nil
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureSelectColumns...).From("fixtures").
		Where(
			qb.Eq("gameweek", gameweek),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by gameweek query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by gameweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureToDomain(row))
	}
	return out, nil
}

func fixtureToDomain(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:         row.PublicID,
		Gameweek:   row.Gameweek,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt.UTC(),
		Status:     fixture.NormalizeStatus(row.Status),
		FeedRefID:  nullInt64ToInt64(row.FeedRefID),
	}
}
