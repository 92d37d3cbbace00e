// Package events turns successive match snapshots into discrete match events.
//
// A Detector compares two snapshots of the same matches and reports what
// happened in between: wickets, fours and sixes, run milestones, and status
// transitions. A Poller drives the Detector from a Source on a fixed
// interval, keeps a bounded History, and hands new events to a Sink.
package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pitchside/live-engine/internal/model"
)

// Milestones are the team totals announced when first reached.
var Milestones = []int{50, 100, 150, 200, 250}

// Detector synthesizes events from snapshot deltas. It holds no state
// between calls.
type Detector struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Detector.
type Option func(*Detector)

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

// WithIDs overrides the event id generator.
func WithIDs(newID func() string) Option {
	return func(d *Detector) { d.newID = newID }
}

// NewDetector returns a Detector stamping events with wall time and random
// UUIDs.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the events implied by moving from previous to current.
// Matches without a counterpart in previous have no baseline and yield
// nothing. Score rules need a score on both sides; status rules do not, so
// an upcoming match without a score can still start. Rules are independent
// and may fire together.
func (d *Detector) Detect(current, previous []model.Match) []model.MatchEvent {
	byID := make(map[int]model.Match, len(previous))
	for _, m := range previous {
		byID[m.ID] = m
	}

	var out []model.MatchEvent
	for _, cur := range current {
		prev, ok := byID[cur.ID]
		if !ok {
			continue
		}
		if cur.Score != nil && prev.Score != nil {
			out = d.scoring(out, cur, prev)
		}
		out = d.transitions(out, cur, prev)
	}
	return out
}

type side struct {
	team      model.Team
	cur, prev model.MatchScore
}

func (d *Detector) scoring(out []model.MatchEvent, cur, prev model.Match) []model.MatchEvent {
	sides := [2]side{
		{cur.Team1, cur.Score.Team1, prev.Score.Team1},
		{cur.Team2, cur.Score.Team2, prev.Score.Team2},
	}

	for _, s := range sides {
		if s.cur.Wickets > s.prev.Wickets {
			out = append(out, d.event(cur.ID, model.EventWicket, model.SignificanceHigh,
				fmt.Sprintf("%s loses a wicket! %d/%d", s.team.ShortName, s.cur.Runs, s.cur.Wickets),
				&model.EventData{Team: s.team.ShortName, Runs: s.cur.Runs}))
		}
	}

	for _, s := range sides {
		delta := s.cur.Runs - s.prev.Runs
		if delta < 4 || delta > 6 {
			continue
		}
		typ, sig, word := model.EventBoundary, model.SignificanceMedium, "FOUR"
		if delta == 6 {
			typ, sig, word = model.EventSix, model.SignificanceHigh, "SIX"
		}
		out = append(out, d.event(cur.ID, typ, sig,
			fmt.Sprintf("%s hits a %s! %d runs added", s.team.ShortName, word, delta),
			&model.EventData{Team: s.team.ShortName, Runs: delta}))
	}

	for _, s := range sides {
		for _, threshold := range Milestones {
			if s.cur.Runs >= threshold && s.prev.Runs < threshold {
				out = append(out, d.event(cur.ID, model.EventMilestone, model.SignificanceHigh,
					fmt.Sprintf("%s reaches %d runs! Great batting performance", s.team.ShortName, threshold),
					&model.EventData{Team: s.team.ShortName, Runs: threshold}))
			}
		}
	}
	return out
}

func (d *Detector) transitions(out []model.MatchEvent, cur, prev model.Match) []model.MatchEvent {
	switch {
	case prev.Status == model.StatusUpcoming && cur.Status == model.StatusLive:
		out = append(out, d.event(cur.ID, model.EventMatchStart, model.SignificanceMedium,
			fmt.Sprintf("%s vs %s has started!", cur.Team1.ShortName, cur.Team2.ShortName), nil))
	case prev.Status == model.StatusLive && cur.Status == model.StatusCompleted:
		result := cur.Result
		if result == "" {
			result = "Result pending"
		}
		out = append(out, d.event(cur.ID, model.EventMatchEnd, model.SignificanceHigh,
			"Match completed! "+result, nil))
	}
	return out
}

func (d *Detector) event(matchID int, typ model.EventType, sig model.Significance, desc string, data *model.EventData) model.MatchEvent {
	return model.MatchEvent{
		ID:           d.newID(),
		MatchID:      matchID,
		Type:         typ,
		Timestamp:    d.now(),
		Description:  desc,
		Significance: sig,
		Data:         data,
	}
}
