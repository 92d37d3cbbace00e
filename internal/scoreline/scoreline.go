// Package scoreline handles cricket overs notation and parsing of the score
// strings rendered by live-score pages.
//
// Overs are written as whole overs plus balls bowled in the current over:
// 5.4 means 5 overs and 4 balls (34 balls), not 5.4 decimal overs. Conversions
// go through shopspring/decimal so that the tenths digit is read exactly.
package scoreline

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pitchside/live-engine/internal/model"
)

// Match format limits.
const (
	MaxOvers      = 20
	MaxWickets    = 10
	BallsPerOver  = 6
	MaxInningsLen = MaxOvers * BallsPerOver
)

var (
	ErrInvalidScore = errors.New("scoreline: invalid score")
	ErrInvalidOvers = errors.New("scoreline: invalid overs")
)

var (
	// scoreRegex matches "185/6", "185-6" or "185" (all out).
	scoreRegex = regexp.MustCompile(`^\s*(\d+)(?:\s*[/-]\s*(\d+))?`)

	// oversRegex matches "(19.2/20 ov)", "(20 ov, T:180)", "18.3 ov", "17 overs".
	oversRegex = regexp.MustCompile(`(\d+)(?:\.(\d))?\s*(?:/\s*\d+\s*)?ov`)

	// parenOversRegex matches a bare parenthesised overs figure: "(19.4)".
	parenOversRegex = regexp.MustCompile(`\(\s*(\d+)(?:\.(\d))?\s*\)`)

	ten = decimal.NewFromInt(10)
)

// Balls converts overs notation to a ball count: floor(overs)*6 + tenths.
// A tenths digit above 5 carries into the next over (5.6 → 36 balls).
func Balls(overs float64) (int, error) {
	if math.IsNaN(overs) || math.IsInf(overs, 0) || overs < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOvers, overs)
	}
	d := decimal.NewFromFloat(overs).Round(1)
	whole := d.IntPart()
	ball := d.Sub(decimal.NewFromInt(whole)).Mul(ten).IntPart()
	return int(whole*BallsPerOver + ball), nil
}

// FromBalls converts a ball count back to overs notation.
func FromBalls(balls int) float64 {
	if balls <= 0 {
		return 0
	}
	whole := decimal.NewFromInt(int64(balls / BallsPerOver))
	part := decimal.New(int64(balls%BallsPerOver), -1)
	return whole.Add(part).InexactFloat64()
}

// AddBall advances overs by one legal delivery, capped at MaxOvers.
func AddBall(overs float64) (float64, error) {
	balls, err := Balls(overs)
	if err != nil {
		return overs, err
	}
	return Clamp(FromBalls(balls + 1)), nil
}

// Clamp caps overs at MaxOvers.
func Clamp(overs float64) float64 {
	return math.Min(MaxOvers, overs)
}

// Valid reports whether overs is a well-formed value within a 20-over innings.
func Valid(overs float64) bool {
	balls, err := Balls(overs)
	if err != nil {
		return false
	}
	return balls <= MaxInningsLen
}

// ParseScore reads runs and wickets from "185/6". A bare run total means
// the side was bowled out. For two-innings strings ("245 & 180/3") the last
// innings is used.
func ParseScore(s string) (runs, wickets int, err error) {
	if i := strings.LastIndex(s, "&"); i >= 0 {
		s = s[i+1:]
	}
	m := scoreRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScore, s)
	}

	runs, _ = strconv.Atoi(m[1])
	wickets = MaxWickets
	if m[2] != "" {
		wickets, _ = strconv.Atoi(m[2])
	}
	if wickets > MaxWickets {
		return 0, 0, fmt.Errorf("%w: %d wickets", ErrInvalidScore, wickets)
	}
	return runs, wickets, nil
}

// ParseOvers reads an overs figure from "(19.2/20 ov)" or "(19.2)".
func ParseOvers(s string) (float64, error) {
	m := oversRegex.FindStringSubmatch(s)
	if m == nil {
		m = parenOversRegex.FindStringSubmatch(s)
	}
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOvers, s)
	}

	whole, _ := strconv.Atoi(m[1])
	ball := 0
	if m[2] != "" {
		ball, _ = strconv.Atoi(m[2])
	}
	if ball >= BallsPerOver {
		return 0, fmt.Errorf("%w: %q has %d balls in an over", ErrInvalidOvers, s, ball)
	}
	return FromBalls(whole*BallsPerOver + ball), nil
}

// ParseTeamScore combines a score string and an optional overs string. When
// overs is empty the overs figure is looked for inside score itself
// ("185/6 (19.4)"). An unreadable overs figure leaves Overs at zero.
func ParseTeamScore(score, overs string) (*model.MatchScore, error) {
	runs, wickets, err := ParseScore(score)
	if err != nil {
		return nil, err
	}

	src := overs
	if strings.TrimSpace(src) == "" {
		src = score
	}
	ov, err := ParseOvers(src)
	if err != nil {
		ov = 0
	}

	return &model.MatchScore{Runs: runs, Wickets: wickets, Overs: ov}, nil
}
