package scoring

import "github.com/riskibarqy/fantasy-admin/internal/domain/player"

const (
	pointsShortAppearance = 1
	pointsFullAppearance  = 2
	fullAppearanceMinutes = 60

	pointsPerAssist        = 3
	pointsPerPenaltySave   = 5
	pointsPerYellowCard    = -1
	pointsPerRedCard       = -3
	pointsPerOwnGoal       = -2
	pointsPerPenaltyMissed = -2

	savesPerPoint         = 3
	goalsConcededPerPoint = 2
	pointsPerConcededUnit = -1
)

// Rule names used in breakdowns.
const (
	RuleAppearance     = "appearance"
	RuleGoals          = "goals_scored"
	RuleAssists        = "assists"
	RuleCleanSheet     = "clean_sheet"
	RuleSaves          = "shots_saved"
	RulePenaltiesSaved = "penalties_saved"
	RuleYellowCards    = "yellow_cards"
	RuleRedCards       = "red_cards"
	RuleOwnGoals       = "own_goals"
	RulePenaltyMissed  = "penalties_missed"
	RuleGoalsConceded  = "goals_conceded"
)

// Coefficients are the position-keyed parts of the rule set.
type Coefficients struct {
	Goal             int
	CleanSheet       int
	PenalizeConceded bool
}

var coefficientsByPosition = map[player.Position]Coefficients{
	player.PositionGoalkeeper: {Goal: 10, CleanSheet: 4, PenalizeConceded: true},
	player.PositionDefender:   {Goal: 6, CleanSheet: 4, PenalizeConceded: true},
	player.PositionMidfielder: {Goal: 5, CleanSheet: 1},
	player.PositionForward:    {Goal: 4},
}

// CoefficientsFor returns false for a position outside the four tiers.
func CoefficientsFor(pos player.Position) (Coefficients, bool) {
	c, ok := coefficientsByPosition[pos]
	return c, ok
}

// ComputePoints returns the fantasy point total for one player in one
// fixture. The result is never clamped. pos must be one of the four known
// positions; validate it before calling.
func ComputePoints(stat MatchStat, pos player.Position) int {
	total := 0
	for _, item := range contributions(stat, pos) {
		total += item.Points
	}
	return total
}

// Explain returns every non-zero rule contribution along with the total.
func Explain(stat MatchStat, pos player.Position) Breakdown {
	out := Breakdown{Position: pos}
	for _, item := range contributions(stat, pos) {
		if item.Points == 0 {
			continue
		}
		out.Items = append(out.Items, item)
		out.Total += item.Points
	}
	return out
}

func contributions(stat MatchStat, pos player.Position) []Contribution {
	coef := coefficientsByPosition[pos]

	items := []Contribution{
		{Rule: RuleAppearance, Count: stat.MinutesPlayed, Points: appearancePoints(stat.MinutesPlayed)},
		{Rule: RuleGoals, Count: stat.GoalsScored, Points: stat.GoalsScored * coef.Goal},
		{Rule: RuleAssists, Count: stat.Assists, Points: stat.Assists * pointsPerAssist},
		{Rule: RuleCleanSheet, Count: stat.CleanSheet, Points: stat.CleanSheet * coef.CleanSheet},
		{Rule: RuleSaves, Count: stat.ShotsSaved, Points: stat.ShotsSaved / savesPerPoint},
		{Rule: RulePenaltiesSaved, Count: stat.PenaltiesSaved, Points: stat.PenaltiesSaved * pointsPerPenaltySave},
		{Rule: RuleYellowCards, Count: stat.YellowCards, Points: stat.YellowCards * pointsPerYellowCard},
		{Rule: RuleRedCards, Count: stat.RedCards, Points: redCardPoints(stat.RedCards)},
		{Rule: RuleOwnGoals, Count: stat.OwnGoals, Points: stat.OwnGoals * pointsPerOwnGoal},
		{Rule: RulePenaltyMissed, Count: stat.PenaltiesMissed, Points: stat.PenaltiesMissed * pointsPerPenaltyMissed},
	}

	if coef.PenalizeConceded {
		items = append(items, Contribution{
			Rule:   RuleGoalsConceded,
			Count:  stat.GoalsConceded,
			Points: (stat.GoalsConceded / goalsConcededPerPoint) * pointsPerConcededUnit,
		})
	}

	return items
}

func appearancePoints(minutes int) int {
	switch {
	case minutes >= fullAppearanceMinutes:
		return pointsFullAppearance
	case minutes > 0:
		return pointsShortAppearance
	default:
		return 0
	}
}

func redCardPoints(redCards int) int {
	if redCards == 1 {
		return pointsPerRedCard
	}
	return 0
}
