package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	PublicID  string    `db:"public_id"`
	TeamID    string    `db:"team_public_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fixtureTableModel struct {
	PublicID   string        `db:"public_id"`
	Gameweek   int           `db:"gameweek"`
	HomeTeamID string        `db:"home_team_public_id"`
	AwayTeamID string        `db:"away_team_public_id"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	Status     string        `db:"status"`
	FeedRefID  sql.NullInt64 `db:"feed_fixture_id"`
}

type gameweekTableModel struct {
	Number     int          `db:"number"`
	Status     string       `db:"status"`
	DeadlineAt time.Time    `db:"deadline_at"`
	DoneAt     sql.NullTime `db:"done_at"`
	ScoredAt   sql.NullTime `db:"scored_at"`
}

type fixtureStatTableModel struct {
	FixtureID       string    `db:"fixture_public_id"`
	PlayerID        string    `db:"player_public_id"`
	Gameweek        int       `db:"gameweek"`
	Position        string    `db:"position"`
	MinutesPlayed   int       `db:"minutes_played"`
	GoalsScored     int       `db:"goals_scored"`
	Assists         int       `db:"assists"`
	CleanSheet      int       `db:"clean_sheet"`
	ShotsSaved      int       `db:"shots_saved"`
	PenaltiesSaved  int       `db:"penalties_saved"`
	YellowCards     int       `db:"yellow_cards"`
	RedCards        int       `db:"red_cards"`
	OwnGoals        int       `db:"own_goals"`
	PenaltiesMissed int       `db:"penalties_missed"`
	GoalsConceded   int       `db:"goals_conceded"`
	FantasyPoints   int       `db:"fantasy_points"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type correctionTableModel struct {
	ID           string    `db:"id"`
	FixtureID    string    `db:"fixture_public_id"`
	PlayerID     string    `db:"player_public_id"`
	BeforeStats  string    `db:"before_stats"`
	AfterStats   string    `db:"after_stats"`
	PointsBefore int       `db:"points_before"`
	PointsAfter  int       `db:"points_after"`
	Operator     string    `db:"operator"`
	Reason       string    `db:"reason"`
	CreatedAt    time.Time `db:"created_at"`
}
