package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown player position")

// Position represents football position categories used in fantasy scoring.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

var positionAliases = map[string]Position{
	"gk":         PositionGoalkeeper,
	"goalkeeper": PositionGoalkeeper,
	"def":        PositionDefender,
	"defender":   PositionDefender,
	"mid":        PositionMidfielder,
	"midfielder": PositionMidfielder,
	"fwd":        PositionForward,
	"forward":    PositionForward,
}

// ParsePosition accepts short codes and long names, case-insensitive.
func ParsePosition(raw string) (Position, error) {
	pos, ok := positionAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
	return pos, nil
}

func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}

// Player is an athlete whose match stats are scored.
type Player struct {
	ID       string
	Name     string
	TeamID   string
	Position Position
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownPosition, p.Position)
	}

	return nil
}
