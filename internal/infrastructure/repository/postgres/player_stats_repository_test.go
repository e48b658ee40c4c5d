package postgres

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureStatMapping(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := playerstats.FixtureStat{
		FixtureID:     "fx-1",
		PlayerID:      "gk-1",
		Gameweek:      4,
		Position:      player.PositionGoalkeeper,
		Stat:          scoring.MatchStat{MinutesPlayed: 90, CleanSheet: 1, ShotsSaved: 7, PenaltiesSaved: 1},
		FantasyPoints: 13,
		UpdatedAt:     at,
	}

	row := fixtureStatFromDomain(item)
	assert.Equal(t, "GK", row.Position)
	assert.Equal(t, 7, row.ShotsSaved)
	assert.Equal(t, item, fixtureStatToDomain(row))

	item.UpdatedAt = time.Time{}
	assert.False(t, fixtureStatFromDomain(item).UpdatedAt.IsZero())
}

func TestCorrectionMapping(t *testing.T) {
	item := playerstats.Correction{
		ID:           "0b6f3f2e-5d4c-4a8e-9f1a-0c2d3e4f5a6b",
		FixtureID:    "fx-1",
		PlayerID:     "fwd-1",
		Before:       scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 1},
		After:        scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 2},
		PointsBefore: 6,
		PointsAfter:  10,
		Operator:     "ops@fantasy",
		Reason:       "goal awarded after review",
		CreatedAt:    time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}

	row, err := correctionFromDomain(item)
	require.NoError(t, err)
	assert.Contains(t, row.AfterStats, `"goals_scored":2`)

	got, err := correctionToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	row.BeforeStats = "{not json"
	_, err = correctionToDomain(row)
	assert.Error(t, err)
}
