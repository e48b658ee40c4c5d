package gameweek

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetByNumber(ctx context.Context, number int) (Gameweek, bool, error)
	MarkDone(ctx context.Context, number int, doneAt time.Time) error
	MarkScored(ctx context.Context, number int, scoredAt time.Time) error
}
