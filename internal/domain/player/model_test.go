package player

import (
	"errors"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw     string
		want    Position
		wantErr bool
	}{
		{raw: "GK", want: PositionGoalkeeper},
		{raw: "goalkeeper", want: PositionGoalkeeper},
		{raw: " Defender ", want: PositionDefender},
		{raw: "mid", want: PositionMidfielder},
		{raw: "FORWARD", want: PositionForward},
		{raw: "striker", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePosition(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPosition) {
					t.Fatalf("expected ErrUnknownPosition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected position: got=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestPlayerValidate_RejectsUnknownPosition(t *testing.T) {
	p := Player{ID: "p1", Name: "Rizky Ridho", Position: Position("WB")}
	if err := p.Validate(); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}
