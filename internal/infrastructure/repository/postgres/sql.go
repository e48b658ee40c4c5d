package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func nullableInt64(value int64) *int64 {
	if value <= 0 {
		return nil
	}
	v := value
	return &v
}

func nullInt64ToInt64(v sql.NullInt64) int64 {
	if !v.Valid {
		return 0
	}
	return v.Int64
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// statSnapshot is the jsonb shape of a stat line inside the correction log.
type statSnapshot struct {
	MinutesPlayed   int `json:"minutes_played"`
	GoalsScored     int `json:"goals_scored"`
	Assists         int `json:"assists"`
	CleanSheet      int `json:"clean_sheet"`
	ShotsSaved      int `json:"shots_saved"`
	PenaltiesSaved  int `json:"penalties_saved"`
	YellowCards     int `json:"yellow_cards"`
	RedCards        int `json:"red_cards"`
	OwnGoals        int `json:"own_goals"`
	PenaltiesMissed int `json:"penalties_missed"`
	GoalsConceded   int `json:"goals_conceded"`
}

func encodeStat(stat scoring.MatchStat) (string, error) {
	encoded, err := sonic.Marshal(statSnapshot(stat))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeStat(raw string) (scoring.MatchStat, error) {
	if raw == "" {
		return scoring.MatchStat{}, nil
	}
	var snap statSnapshot
	if err := sonic.Unmarshal([]byte(raw), &snap); err != nil {
		return scoring.MatchStat{}, err
	}
	return scoring.MatchStat(snap), nil
}
