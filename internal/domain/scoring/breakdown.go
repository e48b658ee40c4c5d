package scoring

import "github.com/riskibarqy/fantasy-admin/internal/domain/player"

// Contribution is the share of one rule in a point total. Count is the raw
// stat value the rule was applied to.
type Contribution struct {
	Rule   string
	Count  int
	Points int
}

type Breakdown struct {
	Position player.Position
	Items    []Contribution
	Total    int
}
