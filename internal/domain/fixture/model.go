package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
)

// Fixture is one match whose player stats get scored.
type Fixture struct {
	ID         string
	Gameweek   int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Status     string
	FeedRefID  int64
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsScorable reports whether player stats of the fixture may be scored.
// Cancelled and postponed fixtures never are.
func IsScorable(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusFinished, "FT", "AET", "PEN", "IN_PLAY", "HT":
		return true
	default:
		return false
	}
}
