package playerstats

import (
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
)

// FixtureStat is the stored stat line of one player in one fixture together
// with its authoritative fantasy points.
type FixtureStat struct {
	FixtureID     string
	PlayerID      string
	Gameweek      int
	Position      player.Position
	Stat          scoring.MatchStat
	FantasyPoints int
	UpdatedAt     time.Time
}

// Correction is the audit row written for every manual stat override.
type Correction struct {
	ID           string
	FixtureID    string
	PlayerID     string
	Before       scoring.MatchStat
	After        scoring.MatchStat
	PointsBefore int
	PointsAfter  int
	Operator     string
	Reason       string
	CreatedAt    time.Time
}

// PointsUpdate carries a recomputed total for an existing stat row.
type PointsUpdate struct {
	FixtureID     string
	PlayerID      string
	FantasyPoints int
}
