package playerstats

import (
	"context"
	"errors"
)

// ErrStaleStat is returned by ApplyCorrection when the stored stat line no
// longer matches the correction's Before snapshot.
var ErrStaleStat = errors.New("stat line changed since it was read")

type Repository interface {
	GetFixtureStat(ctx context.Context, fixtureID, playerID string) (FixtureStat, bool, error)
	ListByFixture(ctx context.Context, fixtureID string) ([]FixtureStat, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]FixtureStat, error)
	UpsertFixtureStats(ctx context.Context, stats []FixtureStat) error
	UpdateFantasyPoints(ctx context.Context, updates []PointsUpdate) error
	// ApplyCorrection stores the corrected stat row and its audit entry
	// atomically. The stored stat must still equal correction.Before, otherwise
	// it fails with ErrStaleStat and nothing is written.
	ApplyCorrection(ctx context.Context, stat FixtureStat, correction Correction) error
	ListCorrections(ctx context.Context, fixtureID, playerID string) ([]Correction, error)
}
