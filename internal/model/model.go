// Package model defines the core domain types shared across the live engine.
// JSON field names follow the dashboard front end (camelCase).
package model

import "time"

// Status is the lifecycle state of a match. Transitions are monotonic:
// upcoming → live → completed.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Team is the static identity of a franchise.
type Team struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// MatchScore is one side's innings in a 20-over match.
// Overs uses cricket notation: 5.4 means 5 overs and 4 balls.
type MatchScore struct {
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"` // 0..10
	Overs   float64 `json:"overs"`   // 0..20
}

// Scorecard holds both innings. Present only for live and completed matches.
type Scorecard struct {
	Team1 MatchScore `json:"team1"`
	Team2 MatchScore `json:"team2"`
}

// Match is one fixture and its current state. The Match Store owns these
// records; everything else works on copies.
type Match struct {
	ID     int        `json:"id"`
	Team1  Team       `json:"team1"`
	Team2  Team       `json:"team2"`
	Status Status     `json:"status"`
	Venue  string     `json:"venue"`
	Date   string     `json:"date"`
	Time   string     `json:"time"`
	Score  *Scorecard `json:"score,omitempty"`
	Result string     `json:"result,omitempty"` // set only when completed
}

// Clone returns a deep copy; the scorecard pointer is never shared.
func (m Match) Clone() Match {
	if m.Score != nil {
		sc := *m.Score
		m.Score = &sc
	}
	return m
}

// CloneMatches deep-copies a snapshot.
func CloneMatches(matches []Match) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = m.Clone()
	}
	return out
}

// EventType classifies a detected match event.
type EventType string

const (
	EventWicket       EventType = "wicket"
	EventBoundary     EventType = "boundary"
	EventSix          EventType = "six"
	EventMilestone    EventType = "milestone"
	EventMatchStart   EventType = "match_start"
	EventMatchEnd     EventType = "match_end"
	EventInningsBreak EventType = "innings_break"
)

// Significance drives how loudly a sink surfaces an event.
type Significance string

const (
	SignificanceLow    Significance = "low"
	SignificanceMedium Significance = "medium"
	SignificanceHigh   Significance = "high"
)

// EventData carries the team and run figure an event refers to.
type EventData struct {
	Team string `json:"team"`
	Runs int    `json:"runs"`
}

// MatchEvent is an immutable record synthesized from two successive
// snapshots. IDs are unique per event.
type MatchEvent struct {
	ID           string       `json:"id"`
	MatchID      int          `json:"matchId"`
	Type         EventType    `json:"type"`
	Timestamp    time.Time    `json:"timestamp"`
	Description  string       `json:"description"`
	Significance Significance `json:"significance"`
	Data         *EventData   `json:"data,omitempty"`
}

// PointsTableEntry is one row of the standings. Form lists recent results
// most-recent-first ("W", "L", "NR").
type PointsTableEntry struct {
	Position int      `json:"position"`
	Team     Team     `json:"team"`
	Matches  int      `json:"matches"`
	Won      int      `json:"won"`
	Lost     int      `json:"lost"`
	Points   int      `json:"points"`
	NRR      string   `json:"nrr"`
	Form     []string `json:"form"`
}

// ScheduleMatch is a fixture-list row.
type ScheduleMatch struct {
	ID          int    `json:"id"`
	MatchNumber string `json:"matchNumber"`
	Team1       Team   `json:"team1"`
	Team2       Team   `json:"team2"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Status      Status `json:"status"`
	Result      string `json:"result,omitempty"`
}

// ScrapedTeam is one side as rendered on a third-party live-score page.
// Parsed is filled when the score and overs strings could be read.
type ScrapedTeam struct {
	TeamName string      `json:"teamName"`
	Score    string      `json:"score,omitempty"`
	Overs    string      `json:"overs,omitempty"`
	IsWinner bool        `json:"isWinner"`
	Parsed   *MatchScore `json:"parsed,omitempty"`
}

// ScrapedMatch is one live-score card extracted from a third-party page.
type ScrapedMatch struct {
	Series      string        `json:"series,omitempty"`
	Description string        `json:"description,omitempty"`
	Result      string        `json:"result,omitempty"`
	Teams       []ScrapedTeam `json:"teams"`
}
