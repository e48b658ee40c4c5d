package gameweek

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Gameweek is the scoring window fixtures are grouped into.
type Gameweek struct {
	Number     int
	Status     Status
	DeadlineAt time.Time
	DoneAt     *time.Time
	ScoredAt   *time.Time
}

// PendingScore reports whether the gameweek is done but its points have not
// been computed since it was marked done.
func (g Gameweek) PendingScore() bool {
	if g.Status != StatusDone {
		return false
	}
	if g.ScoredAt == nil {
		return true
	}
	return g.DoneAt != nil && g.ScoredAt.Before(*g.DoneAt)
}

func (g Gameweek) Validate() error {
	if g.Number <= 0 {
		return fmt.Errorf("gameweek number must be greater than zero")
	}
	switch g.Status {
	case StatusOpen, StatusInProgress, StatusDone:
	default:
		return fmt.Errorf("invalid gameweek status: %s", g.Status)
	}
	return nil
}
