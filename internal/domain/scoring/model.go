package scoring

import (
	"errors"
	"fmt"
)

var ErrInvalidStat = errors.New("invalid match stat")

const (
	MaxMinutesPlayed = 120
	MaxYellowCards   = 2
	// MaxEventCount caps every per-event counter so totals stay far from int overflow.
	MaxEventCount = 99
)

// MatchStat is one player's performance in one fixture. CleanSheet and
// RedCards are 0/1 flags.
type MatchStat struct {
	MinutesPlayed   int
	GoalsScored     int
	Assists         int
	CleanSheet      int
	ShotsSaved      int
	PenaltiesSaved  int
	YellowCards     int
	RedCards        int
	OwnGoals        int
	PenaltiesMissed int
	GoalsConceded   int
}

// Validate rejects input the calculator is not defined for. Call it at the
// boundary where stats arrive, not inside the scoring rules.
func (s MatchStat) Validate() error {
	if s.MinutesPlayed < 0 || s.MinutesPlayed > MaxMinutesPlayed {
		return fmt.Errorf("%w: minutes_played must be between 0 and %d, got %d", ErrInvalidStat, MaxMinutesPlayed, s.MinutesPlayed)
	}

	counts := []struct {
		field string
		value int
	}{
		{"goals_scored", s.GoalsScored},
		{"assists", s.Assists},
		{"shots_saved", s.ShotsSaved},
		{"penalties_saved", s.PenaltiesSaved},
		{"own_goals", s.OwnGoals},
		{"penalties_missed", s.PenaltiesMissed},
		{"goals_conceded", s.GoalsConceded},
	}
	for _, c := range counts {
		if c.value < 0 || c.value > MaxEventCount {
			return fmt.Errorf("%w: %s must be between 0 and %d, got %d", ErrInvalidStat, c.field, MaxEventCount, c.value)
		}
	}

	if s.CleanSheet != 0 && s.CleanSheet != 1 {
		return fmt.Errorf("%w: clean_sheet must be 0 or 1, got %d", ErrInvalidStat, s.CleanSheet)
	}
	if s.RedCards != 0 && s.RedCards != 1 {
		return fmt.Errorf("%w: red_cards must be 0 or 1, got %d", ErrInvalidStat, s.RedCards)
	}
	if s.YellowCards < 0 || s.YellowCards > MaxYellowCards {
		return fmt.Errorf("%w: yellow_cards must be between 0 and %d, got %d", ErrInvalidStat, MaxYellowCards, s.YellowCards)
	}

	return nil
}
