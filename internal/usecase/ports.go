package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
)

// ExternalPlayerStat is one player's stat line as reported by the stats feed.
// PlayerID is the platform player id; the feed is provisioned with our ids.
type ExternalPlayerStat struct {
	PlayerID string
	Position string
	Stat     scoring.MatchStat
}

// StatsFeed pulls raw player stats for a fixture from the upstream provider.
type StatsFeed interface {
	FetchFixtureStats(ctx context.Context, feedFixtureID int64) ([]ExternalPlayerStat, error)
}
