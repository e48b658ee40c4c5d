package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-admin/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-admin/internal/domain/player"
	"github.com/riskibarqy/fantasy-admin/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-admin/internal/domain/scoring"
)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "idn-gk-01", TeamID: "idn-persija", Name: "Andritany Ardhiyasa", Position: player.PositionGoalkeeper},
		{ID: "idn-gk-02", TeamID: "idn-persib", Name: "Teja Paku Alam", Position: player.PositionGoalkeeper},
		{ID: "idn-def-01", TeamID: "idn-persija", Name: "Hansamu Yama", Position: player.PositionDefender},
		{ID: "idn-def-02", TeamID: "idn-persib", Name: "Nick Kuipers", Position: player.PositionDefender},
		{ID: "idn-def-03", TeamID: "idn-persebaya", Name: "Dusan Stevanovic", Position: player.PositionDefender},
		{ID: "idn-def-04", TeamID: "idn-baliutd", Name: "Ricky Fajrin", Position: player.PositionDefender},
		{ID: "idn-mid-01", TeamID: "idn-persija", Name: "Maciej Gajos", Position: player.PositionMidfielder},
		{ID: "idn-mid-02", TeamID: "idn-persib", Name: "Marc Klok", Position: player.PositionMidfielder},
		{ID: "idn-mid-03", TeamID: "idn-persebaya", Name: "Bruno Moreira", Position: player.PositionMidfielder},
		{ID: "idn-mid-04", TeamID: "idn-baliutd", Name: "Eber Bessa", Position: player.PositionMidfielder},
		{ID: "idn-fwd-01", TeamID: "idn-persija", Name: "Gustavo Almeida", Position: player.PositionForward},
		{ID: "idn-fwd-02", TeamID: "idn-persib", Name: "David da Silva", Position: player.PositionForward},
		{ID: "idn-fwd-03", TeamID: "idn-persebaya", Name: "Paulo Henrique", Position: player.PositionForward},
	}
}

func SeedGameweeks() []gameweek.Gameweek {
	doneAt := time.Date(2026, 2, 16, 22, 0, 0, 0, time.UTC)
	scoredAt := doneAt.Add(5 * time.Minute)
	return []gameweek.Gameweek{
		{Number: 1, Status: gameweek.StatusDone, DeadlineAt: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC), DoneAt: &doneAt, ScoredAt: &scoredAt},
		{Number: 2, Status: gameweek.StatusInProgress, DeadlineAt: time.Date(2026, 2, 21, 11, 0, 0, 0, time.UTC)},
		{Number: 3, Status: gameweek.StatusOpen, DeadlineAt: time.Date(2026, 2, 28, 11, 0, 0, 0, time.UTC)},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{ID: "fx-idn-001", Gameweek: 1, HomeTeamID: "idn-persija", AwayTeamID: "idn-persib", KickoffAt: time.Date(2026, 2, 14, 12, 30, 0, 0, time.UTC), Status: fixture.StatusFinished, FeedRefID: 19134001},
		{ID: "fx-idn-002", Gameweek: 1, HomeTeamID: "idn-persebaya", AwayTeamID: "idn-baliutd", KickoffAt: time.Date(2026, 2, 15, 12, 30, 0, 0, time.UTC), Status: fixture.StatusFinished, FeedRefID: 19134002},
		{ID: "fx-idn-003", Gameweek: 2, HomeTeamID: "idn-persib", AwayTeamID: "idn-persebaya", KickoffAt: time.Date(2026, 2, 21, 12, 30, 0, 0, time.UTC), Status: fixture.StatusFinished, FeedRefID: 19134003},
		{ID: "fx-idn-004", Gameweek: 2, HomeTeamID: "idn-baliutd", AwayTeamID: "idn-persija", KickoffAt: time.Date(2026, 2, 22, 12, 30, 0, 0, time.UTC), Status: fixture.StatusLive, FeedRefID: 19134004},
		{ID: "fx-idn-005", Gameweek: 3, HomeTeamID: "idn-persija", AwayTeamID: "idn-persebaya", KickoffAt: time.Date(2026, 2, 28, 12, 30, 0, 0, time.UTC), Status: fixture.StatusScheduled, FeedRefID: 19134005},
		{ID: "fx-idn-006", Gameweek: 3, HomeTeamID: "idn-persib", AwayTeamID: "idn-baliutd", KickoffAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC), Status: fixture.StatusScheduled, FeedRefID: 19134006},
	}
}

// SeedPlayerStats returns gameweek 1 stat lines with their points already
// computed.
func SeedPlayerStats() []playerstats.FixtureStat {
	updatedAt := time.Date(2026, 2, 16, 22, 5, 0, 0, time.UTC)
	rows := []struct {
		fixtureID string
		playerID  string
		pos       player.Position
		stat      scoring.MatchStat
	}{
		{"fx-idn-001", "idn-gk-01", player.PositionGoalkeeper, scoring.MatchStat{MinutesPlayed: 90, CleanSheet: 1, ShotsSaved: 7, PenaltiesSaved: 1}},
		{"fx-idn-001", "idn-def-01", player.PositionDefender, scoring.MatchStat{MinutesPlayed: 90, CleanSheet: 1, YellowCards: 1}},
		{"fx-idn-001", "idn-fwd-01", player.PositionForward, scoring.MatchStat{MinutesPlayed: 70, GoalsScored: 2, Assists: 1, YellowCards: 1}},
		{"fx-idn-001", "idn-gk-02", player.PositionGoalkeeper, scoring.MatchStat{MinutesPlayed: 90, GoalsConceded: 2, ShotsSaved: 3}},
		{"fx-idn-001", "idn-def-02", player.PositionDefender, scoring.MatchStat{MinutesPlayed: 90, GoalsConceded: 2, RedCards: 1}},
		{"fx-idn-001", "idn-mid-02", player.PositionMidfielder, scoring.MatchStat{MinutesPlayed: 30}},
		{"fx-idn-002", "idn-mid-03", player.PositionMidfielder, scoring.MatchStat{MinutesPlayed: 90, GoalsScored: 1, Assists: 1}},
		{"fx-idn-002", "idn-def-04", player.PositionDefender, scoring.MatchStat{MinutesPlayed: 90, GoalsConceded: 1, OwnGoals: 1}},
		{"fx-idn-002", "idn-fwd-03", player.PositionForward, scoring.MatchStat{MinutesPlayed: 64, PenaltiesMissed: 1}},
	}

	out := make([]playerstats.FixtureStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.FixtureStat{
			FixtureID:     row.fixtureID,
			PlayerID:      row.playerID,
			Gameweek:      1,
			Position:      row.pos,
			Stat:          row.stat,
			FantasyPoints: scoring.ComputePoints(row.stat, row.pos),
			UpdatedAt:     updatedAt,
		})
	}
	return out
}
