package scoring

import (
	"errors"
	"testing"
)

func TestMatchStatValidate(t *testing.T) {
	valid := MatchStat{MinutesPlayed: 90, GoalsScored: 1, CleanSheet: 1, YellowCards: 1}

	tests := []struct {
		name    string
		mutate  func(*MatchStat)
		wantErr bool
	}{
		{name: "valid", mutate: func(*MatchStat) {}},
		{name: "zero value", mutate: func(s *MatchStat) { *s = MatchStat{} }},
		{name: "minutes over limit", mutate: func(s *MatchStat) { s.MinutesPlayed = 121 }, wantErr: true},
		{name: "negative minutes", mutate: func(s *MatchStat) { s.MinutesPlayed = -1 }, wantErr: true},
		{name: "negative goals", mutate: func(s *MatchStat) { s.GoalsScored = -1 }, wantErr: true},
		{name: "negative conceded", mutate: func(s *MatchStat) { s.GoalsConceded = -2 }, wantErr: true},
		{name: "clean sheet not a flag", mutate: func(s *MatchStat) { s.CleanSheet = 2 }, wantErr: true},
		{name: "two red cards", mutate: func(s *MatchStat) { s.RedCards = 2 }, wantErr: true},
		{name: "three yellow cards", mutate: func(s *MatchStat) { s.YellowCards = 3 }, wantErr: true},
		{name: "upper bounds accepted", mutate: func(s *MatchStat) {
			*s = MatchStat{
				MinutesPlayed: MaxMinutesPlayed, GoalsScored: MaxEventCount, Assists: MaxEventCount,
				CleanSheet: 1, ShotsSaved: MaxEventCount, PenaltiesSaved: MaxEventCount,
				YellowCards: MaxYellowCards, RedCards: 1, OwnGoals: MaxEventCount,
				PenaltiesMissed: MaxEventCount, GoalsConceded: MaxEventCount,
			}
		}},
		{name: "minutes at limit", mutate: func(s *MatchStat) { s.MinutesPlayed = 120 }},
		{name: "two yellow cards", mutate: func(s *MatchStat) { s.YellowCards = 2 }},
		{name: "huge goal count", mutate: func(s *MatchStat) { s.GoalsScored = 1 << 62 }, wantErr: true},
		{name: "goals over limit", mutate: func(s *MatchStat) { s.GoalsScored = MaxEventCount + 1 }, wantErr: true},
		{name: "assists over limit", mutate: func(s *MatchStat) { s.Assists = MaxEventCount + 1 }, wantErr: true},
		{name: "saves over limit", mutate: func(s *MatchStat) { s.ShotsSaved = MaxEventCount + 1 }, wantErr: true},
		{name: "conceded over limit", mutate: func(s *MatchStat) { s.GoalsConceded = MaxEventCount + 1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stat := valid
			tt.mutate(&stat)

			err := stat.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStat) {
					t.Fatalf("expected ErrInvalidStat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
