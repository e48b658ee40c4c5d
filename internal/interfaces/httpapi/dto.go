package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-admin/internal/usecase"
)

// matchStatDTO carries one stat line. Range checks beyond non-negativity are
// left to scoring.MatchStat.Validate so both boundaries share one rule set.
type matchStatDTO struct {
	MinutesPlayed   int `json:"minutes_played" validate:"min=0"`
	GoalsScored     int `json:"goals_scored" validate:"min=0"`
	Assists         int `json:"assists" validate:"min=0"`
	CleanSheet      int `json:"clean_sheet" validate:"min=0,max=1"`
	ShotsSaved      int `json:"shots_saved" validate:"min=0"`
	PenaltiesSaved  int `json:"penalties_saved" validate:"min=0"`
	YellowCards     int `json:"yellow_cards" validate:"min=0"`
	RedCards        int `json:"red_cards" validate:"min=0,max=1"`
	OwnGoals        int `json:"own_goals" validate:"min=0"`
	PenaltiesMissed int `json:"penalties_missed" validate:"min=0"`
	GoalsConceded   int `json:"goals_conceded" validate:"min=0"`
}

func (d matchStatDTO) toDomain() scoring.MatchStat {
	return scoring.MatchStat{
		MinutesPlayed:   d.MinutesPlayed,
		GoalsScored:     d.GoalsScored,
		Assists:         d.Assists,
		CleanSheet:      d.CleanSheet,
		ShotsSaved:      d.ShotsSaved,
		PenaltiesSaved:  d.PenaltiesSaved,
		YellowCards:     d.YellowCards,
		RedCards:        d.RedCards,
		OwnGoals:        d.OwnGoals,
		PenaltiesMissed: d.PenaltiesMissed,
		GoalsConceded:   d.GoalsConceded,
	}
}

func toMatchStatDTO(s scoring.MatchStat) matchStatDTO {
	return matchStatDTO{
		MinutesPlayed:   s.MinutesPlayed,
		GoalsScored:     s.GoalsScored,
		Assists:         s.Assists,
		CleanSheet:      s.CleanSheet,
		ShotsSaved:      s.ShotsSaved,
		PenaltiesSaved:  s.PenaltiesSaved,
		YellowCards:     s.YellowCards,
		RedCards:        s.RedCards,
		OwnGoals:        s.OwnGoals,
		PenaltiesMissed: s.PenaltiesMissed,
		GoalsConceded:   s.GoalsConceded,
	}
}

type previewPointsRequest struct {
	Position string       `json:"position" validate:"required"`
	Stats    matchStatDTO `json:"stats"`
}

type previewPlayerPointsRequest struct {
	Stats matchStatDTO `json:"stats"`
}

type correctPlayerStatsRequest struct {
	Stats  matchStatDTO `json:"stats"`
	Reason string       `json:"reason" validate:"required,max=500"`
}

type ingestStatRowRequest struct {
	PlayerID string       `json:"player_id" validate:"required"`
	Position string       `json:"position" validate:"omitempty,oneof=GK DEF MID FWD"`
	Stats    matchStatDTO `json:"stats"`
}

type ingestFixtureStatsRequest struct {
	Rows []ingestStatRowRequest `json:"rows" validate:"required,min=1,dive"`
}

type scoreGameweekJobRequest struct {
	Gameweek int `json:"gameweek" validate:"min=0"`
}

type syncFixturesJobRequest struct {
	FixtureIDs []string `json:"fixture_ids" validate:"required,min=1,dive,required"`
}

type contributionDTO struct {
	Rule   string `json:"rule"`
	Count  int    `json:"count"`
	Points int    `json:"points"`
}

type breakdownDTO struct {
	Position string            `json:"position"`
	Items    []contributionDTO `json:"items"`
	Total    int               `json:"total"`
}

func toBreakdownDTO(b scoring.Breakdown) breakdownDTO {
	items := make([]contributionDTO, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, contributionDTO{Rule: item.Rule, Count: item.Count, Points: item.Points})
	}
	return breakdownDTO{
		Position: string(b.Position),
		Items:    items,
		Total:    b.Total,
	}
}

type playerPreviewDTO struct {
	FixtureID     string       `json:"fixture_id"`
	PlayerID      string       `json:"player_id"`
	Breakdown     breakdownDTO `json:"breakdown"`
	CurrentPoints *int         `json:"current_points"`
	Delta         *int         `json:"delta"`
}

func toPlayerPreviewDTO(p usecase.PlayerPreview) playerPreviewDTO {
	out := playerPreviewDTO{
		FixtureID: p.FixtureID,
		PlayerID:  p.PlayerID,
		Breakdown: toBreakdownDTO(p.Breakdown),
	}
	if p.HasCurrent {
		current := p.CurrentPoints
		delta := p.Breakdown.Total - p.CurrentPoints
		out.CurrentPoints = &current
		out.Delta = &delta
	}
	return out
}

type fixtureStatDTO struct {
	FixtureID     string       `json:"fixture_id"`
	PlayerID      string       `json:"player_id"`
	Gameweek      int          `json:"gameweek"`
	Position      string       `json:"position"`
	Stats         matchStatDTO `json:"stats"`
	FantasyPoints int          `json:"fantasy_points"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func toFixtureStatDTO(s playerstats.FixtureStat) fixtureStatDTO {
	return fixtureStatDTO{
		FixtureID:     s.FixtureID,
		PlayerID:      s.PlayerID,
		Gameweek:      s.Gameweek,
		Position:      string(s.Position),
		Stats:         toMatchStatDTO(s.Stat),
		FantasyPoints: s.FantasyPoints,
		UpdatedAt:     s.UpdatedAt,
	}
}

type correctionDTO struct {
	ID           string       `json:"id"`
	FixtureID    string       `json:"fixture_id"`
	PlayerID     string       `json:"player_id"`
	Before       matchStatDTO `json:"before"`
	After        matchStatDTO `json:"after"`
	PointsBefore int          `json:"points_before"`
	PointsAfter  int          `json:"points_after"`
	Operator     string       `json:"operator"`
	Reason       string       `json:"reason"`
	CreatedAt    time.Time    `json:"created_at"`
}

func toCorrectionDTO(c playerstats.Correction) correctionDTO {
	return correctionDTO{
		ID:           c.ID,
		FixtureID:    c.FixtureID,
		PlayerID:     c.PlayerID,
		Before:       toMatchStatDTO(c.Before),
		After:        toMatchStatDTO(c.After),
		PointsBefore: c.PointsBefore,
		PointsAfter:  c.PointsAfter,
		Operator:     c.Operator,
		Reason:       c.Reason,
		CreatedAt:    c.CreatedAt,
	}
}

type correctionResultDTO struct {
	Stat       fixtureStatDTO `json:"stat"`
	Correction correctionDTO  `json:"correction"`
	Breakdown  breakdownDTO   `json:"breakdown"`
}

type gameweekDTO struct {
	Number     int        `json:"number"`
	Status     string     `json:"status"`
	DeadlineAt time.Time  `json:"deadline_at"`
	DoneAt     *time.Time `json:"done_at,omitempty"`
	ScoredAt   *time.Time `json:"scored_at,omitempty"`
}

func toGameweekDTO(g gameweek.Gameweek) gameweekDTO {
	return gameweekDTO{
		Number:     g.Number,
		Status:     string(g.Status),
		DeadlineAt: g.DeadlineAt,
		DoneAt:     g.DoneAt,
		ScoredAt:   g.ScoredAt,
	}
}

type gameweekStatusDTO struct {
	Gameweek         gameweekDTO `json:"gameweek"`
	Fixtures         int         `json:"fixtures"`
	ScorableFixtures int         `json:"scorable_fixtures"`
	Scored           bool        `json:"scored"`
	PendingScore     bool        `json:"pending_score"`
}

type scoringRunDTO struct {
	Gameweek        int       `json:"gameweek,omitempty"`
	FixtureID       string    `json:"fixture_id,omitempty"`
	Fixtures        int       `json:"fixtures"`
	SkippedFixtures int       `json:"skipped_fixtures"`
	Players         int       `json:"players"`
	SkippedPlayers  int       `json:"skipped_players"`
	Changed         int       `json:"changed"`
	TotalPoints     int       `json:"total_points"`
	StartedAt       time.Time `json:"started_at"`
	DurationMS      int64     `json:"duration_ms"`
}

func toScoringRunDTO(run usecase.ScoringRun) scoringRunDTO {
	return scoringRunDTO{
		Gameweek:        run.Gameweek,
		FixtureID:       run.FixtureID,
		Fixtures:        run.Fixtures,
		SkippedFixtures: run.SkippedFixtures,
		Players:         run.Players,
		SkippedPlayers:  run.SkippedPlayers,
		Changed:         run.Changed,
		TotalPoints:     run.TotalPoints,
		StartedAt:       run.StartedAt,
		DurationMS:      run.Duration.Milliseconds(),
	}
}

type markDoneDTO struct {
	Gameweek gameweekDTO    `json:"gameweek"`
	Run      *scoringRunDTO `json:"run,omitempty"`
}

type ingestResultDTO struct {
	FixtureID   string `json:"fixture_id"`
	Gameweek    int    `json:"gameweek"`
	Rows        int    `json:"rows"`
	TotalPoints int    `json:"total_points"`
}

func toIngestResultDTO(res usecase.IngestResult) ingestResultDTO {
	return ingestResultDTO{
		FixtureID:   res.FixtureID,
		Gameweek:    res.Gameweek,
		Rows:        res.Rows,
		TotalPoints: res.TotalPoints,
	}
}

type syncResultDTO struct {
	Fixtures []ingestResultDTO `json:"fixtures"`
	Rows     int               `json:"rows"`
}
