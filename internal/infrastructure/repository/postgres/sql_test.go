package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)))
	assert.False(t, isNotFound(fmt.Errorf("pq: relation fixtures does not exist")))
}

func TestStatSnapshotRoundTrip(t *testing.T) {
	stat := scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 1, CleanSheet: 1, ShotsSaved: 4, GoalsConceded: 0}

	raw, err := encodeStat(stat)
	require.NoError(t, err)
	assert.Contains(t, raw, `"shots_saved":4`)

	got, err := decodeStat(raw)
	require.NoError(t, err)
	assert.Equal(t, stat, got)

	empty, err := decodeStat("")
	require.NoError(t, err)
	assert.Equal(t, scoring.MatchStat{}, empty)
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullableInt64(0))
	assert.Equal(t, int64(7), *nullableInt64(7))
	assert.Equal(t, int64(0), nullInt64ToInt64(sql.NullInt64{}))
	assert.Nil(t, nullTimeToPtr(sql.NullTime{}))

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, *nullTimeToPtr(sql.NullTime{Time: at, Valid: true}))
}
