package scoreline

import (
	"errors"
	"math"
	"testing"
)

func TestBalls(t *testing.T) {
	tests := []struct {
		overs float64
		want  int
	}{
		{0, 0},
		{0.1, 1},
		{5.4, 34},
		{5.5, 35},
		{6, 36},
		{19.5, 119},
		{20, 120},
		{5.6, 36}, // malformed tenths carry into the next over
	}
	for _, tt := range tests {
		got, err := Balls(tt.overs)
		if err != nil {
			t.Fatalf("Balls(%v): unexpected error %v", tt.overs, err)
		}
		if got != tt.want {
			t.Errorf("Balls(%v) = %d, want %d", tt.overs, got, tt.want)
		}
	}
}

func TestBalls_Invalid(t *testing.T) {
	for _, overs := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := Balls(overs); !errors.Is(err, ErrInvalidOvers) {
			t.Errorf("Balls(%v): expected ErrInvalidOvers, got %v", overs, err)
		}
	}
}

func TestFromBalls(t *testing.T) {
	tests := []struct {
		balls int
		want  float64
	}{
		{0, 0},
		{-3, 0},
		{1, 0.1},
		{34, 5.4},
		{36, 6},
		{119, 19.5},
		{120, 20},
	}
	for _, tt := range tests {
		if got := FromBalls(tt.balls); got != tt.want {
			t.Errorf("FromBalls(%d) = %v, want %v", tt.balls, got, tt.want)
		}
	}
}

func TestAddBall_OverBoundaries(t *testing.T) {
	tests := []struct {
		overs float64
		want  float64
	}{
		{0, 0.1},
		{5.4, 5.5},
		{5.5, 6},
		{6, 6.1},
		{12.5, 13},
		{19.5, 20},
		{20, 20}, // capped
	}
	for _, tt := range tests {
		got, err := AddBall(tt.overs)
		if err != nil {
			t.Fatalf("AddBall(%v): unexpected error %v", tt.overs, err)
		}
		if got != tt.want {
			t.Errorf("AddBall(%v) = %v, want %v", tt.overs, got, tt.want)
		}
	}
}

func TestAddBall_SequenceNeverShowsSixBalls(t *testing.T) {
	overs := 0.0
	for i := 0; i < MaxInningsLen; i++ {
		next, err := AddBall(overs)
		if err != nil {
			t.Fatalf("ball %d: %v", i, err)
		}
		if next < overs {
			t.Fatalf("overs went backwards: %v → %v", overs, next)
		}
		balls, _ := Balls(next)
		if balls != i+1 {
			t.Fatalf("after %d balls got %v (%d balls)", i+1, next, balls)
		}
		overs = next
	}
	if overs != MaxOvers {
		t.Errorf("expected a full innings to end at %d overs, got %v", MaxOvers, overs)
	}
}

func TestValid(t *testing.T) {
	if !Valid(19.5) || !Valid(0) || !Valid(20) {
		t.Error("expected in-range overs to be valid")
	}
	if Valid(20.1) || Valid(-1) || Valid(math.NaN()) {
		t.Error("expected out-of-range overs to be invalid")
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in            string
		runs, wickets int
	}{
		{"185/6", 185, 6},
		{" 72-3", 72, 3},
		{"142", 142, 10},
		{"245 & 180/3", 180, 3},
		{"185/6 (19.4)", 185, 6},
	}
	for _, tt := range tests {
		runs, wickets, err := ParseScore(tt.in)
		if err != nil {
			t.Fatalf("ParseScore(%q): unexpected error %v", tt.in, err)
		}
		if runs != tt.runs || wickets != tt.wickets {
			t.Errorf("ParseScore(%q) = %d/%d, want %d/%d", tt.in, runs, wickets, tt.runs, tt.wickets)
		}
	}
}

func TestParseScore_Invalid(t *testing.T) {
	for _, in := range []string{"", "Yet to bat", "185/11"} {
		if _, _, err := ParseScore(in); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("ParseScore(%q): expected ErrInvalidScore, got %v", in, err)
		}
	}
}

func TestParseOvers(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"(19.2/20 ov)", 19.2},
		{"(20 ov, T:180)", 20},
		{"18.3 ov", 18.3},
		{"(14.5)", 14.5},
		{"(18.2/20 ov, T:186)", 18.2},
	}
	for _, tt := range tests {
		got, err := ParseOvers(tt.in)
		if err != nil {
			t.Fatalf("ParseOvers(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOvers(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseOvers_Invalid(t *testing.T) {
	for _, in := range []string{"", "185/6", "(12.7 ov)"} {
		if _, err := ParseOvers(in); !errors.Is(err, ErrInvalidOvers) {
			t.Errorf("ParseOvers(%q): expected ErrInvalidOvers, got %v", in, err)
		}
	}
}

func TestParseTeamScore(t *testing.T) {
	sc, err := ParseTeamScore("170/4", "(18.2/20 ov, T:186)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Runs != 170 || sc.Wickets != 4 || sc.Overs != 18.2 {
		t.Errorf("unexpected score %+v", sc)
	}

	sc, err = ParseTeamScore("185/6 (19.4)", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Overs != 19.4 {
		t.Errorf("expected overs read from score string, got %v", sc.Overs)
	}

	sc, err = ParseTeamScore("96/2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Overs != 0 {
		t.Errorf("expected zero overs when none rendered, got %v", sc.Overs)
	}

	if _, err := ParseTeamScore("", ""); err == nil {
		t.Error("expected error for empty score")
	}
}
