package fixture

import "context"

// Repository exposes fixture read operations.
type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByGameweek(ctx context.Context, gameweek int) ([]Fixture, error)
}
