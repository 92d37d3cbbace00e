package events_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/live-engine/internal/events"
	"github.com/pitchside/live-engine/internal/model"
)

var fixedNow = time.Date(2026, 4, 12, 20, 15, 0, 0, time.UTC)

func newDetector() *events.Detector {
	n := 0
	return events.NewDetector(
		events.WithClock(func() time.Time { return fixedNow }),
		events.WithIDs(func() string { n++; return fmt.Sprintf("ev-%d", n) }),
	)
}

func match(id int, status model.Status, t1, t2 *model.MatchScore) model.Match {
	m := model.Match{
		ID:     id,
		Team1:  model.Team{Name: "Royal Challengers Bengaluru", ShortName: "RCB"},
		Team2:  model.Team{Name: "Kolkata Knight Riders", ShortName: "KKR"},
		Status: status,
	}
	if t1 != nil && t2 != nil {
		m.Score = &model.Scorecard{Team1: *t1, Team2: *t2}
	}
	return m
}

func score(runs, wickets int, overs float64) *model.MatchScore {
	return &model.MatchScore{Runs: runs, Wickets: wickets, Overs: overs}
}

func types(evs []model.MatchEvent) []model.EventType {
	out := make([]model.EventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestDetect_SixAndMilestoneCoFire(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(46, 2, 6.1), score(0, 0, 0))}
	cur := []model.Match{match(1, model.StatusLive, score(52, 2, 6.2), score(0, 0, 0))}

	evs := newDetector().Detect(cur, prev)
	require.Len(t, evs, 2)
	assert.Equal(t, []model.EventType{model.EventSix, model.EventMilestone}, types(evs))

	six, milestone := evs[0], evs[1]
	assert.Equal(t, model.SignificanceHigh, six.Significance)
	assert.Equal(t, "RCB hits a SIX! 6 runs added", six.Description)
	assert.Equal(t, &model.EventData{Team: "RCB", Runs: 6}, six.Data)

	assert.Equal(t, model.SignificanceHigh, milestone.Significance)
	assert.Equal(t, "RCB reaches 50 runs! Great batting performance", milestone.Description)
	assert.Equal(t, 50, milestone.Data.Runs)
	assert.Equal(t, 1, milestone.MatchID)
	assert.Equal(t, fixedNow, milestone.Timestamp)
}

func TestDetect_Wicket(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(186, 6, 20), score(94, 3, 11.2))}
	cur := []model.Match{match(1, model.StatusLive, score(186, 6, 20), score(94, 4, 11.2))}

	evs := newDetector().Detect(cur, prev)
	require.Len(t, evs, 1)
	assert.Equal(t, model.EventWicket, evs[0].Type)
	assert.Equal(t, model.SignificanceHigh, evs[0].Significance)
	assert.Equal(t, "KKR loses a wicket! 94/4", evs[0].Description)
}

func TestDetect_WicketsPerTeamIndependently(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(100, 3, 12), score(20, 0, 2))}
	cur := []model.Match{match(1, model.StatusLive, score(100, 4, 12), score(20, 1, 2))}

	evs := newDetector().Detect(cur, prev)
	assert.Equal(t, []model.EventType{model.EventWicket, model.EventWicket}, types(evs))
	assert.Equal(t, "RCB", evs[0].Data.Team)
	assert.Equal(t, "KKR", evs[1].Data.Team)
}

func TestDetect_BoundaryRange(t *testing.T) {
	tests := []struct {
		delta int
		want  []model.EventType
		sig   model.Significance
	}{
		{3, nil, ""},
		{4, []model.EventType{model.EventBoundary}, model.SignificanceMedium},
		{5, []model.EventType{model.EventBoundary}, model.SignificanceMedium},
		{6, []model.EventType{model.EventSix}, model.SignificanceHigh},
		{7, nil, ""},
		{12, nil, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("delta_%d", tt.delta), func(t *testing.T) {
			prev := []model.Match{match(1, model.StatusLive, score(180, 5, 20), score(60, 1, 7))}
			cur := []model.Match{match(1, model.StatusLive, score(180, 5, 20), score(60+tt.delta, 1, 7.1))}

			evs := newDetector().Detect(cur, prev)
			if tt.want == nil {
				assert.Empty(t, evs)
				return
			}
			require.Equal(t, tt.want, types(evs))
			assert.Equal(t, tt.sig, evs[0].Significance)
			assert.Equal(t, tt.delta, evs[0].Data.Runs)
		})
	}
}

func TestDetect_FourDescription(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(180, 5, 20), score(60, 1, 7))}
	cur := []model.Match{match(1, model.StatusLive, score(180, 5, 20), score(64, 1, 7.1))}
	evs := newDetector().Detect(cur, prev)
	require.Len(t, evs, 1)
	assert.Equal(t, "KKR hits a FOUR! 4 runs added", evs[0].Description)
}

func TestDetect_MultipleMilestonesInOneJump(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(48, 1, 5), score(0, 0, 0))}
	cur := []model.Match{match(1, model.StatusLive, score(151, 2, 15), score(0, 0, 0))}

	evs := newDetector().Detect(cur, prev)
	require.Equal(t, []model.EventType{model.EventWicket, model.EventMilestone, model.EventMilestone, model.EventMilestone}, types(evs))
	assert.Equal(t, 50, evs[1].Data.Runs)
	assert.Equal(t, 100, evs[2].Data.Runs)
	assert.Equal(t, 150, evs[3].Data.Runs)
}

func TestDetect_IdenticalSnapshotsYieldNothing(t *testing.T) {
	snap := []model.Match{
		match(1, model.StatusLive, score(186, 6, 20), score(94, 3, 11.2)),
		match(2, model.StatusUpcoming, nil, nil),
		match(3, model.StatusCompleted, score(170, 8, 20), score(156, 9, 20)),
	}
	assert.Empty(t, newDetector().Detect(snap, snap))
}

func TestDetect_UpcomingToLive(t *testing.T) {
	prev := []model.Match{match(3, model.StatusUpcoming, nil, nil)}
	cur := []model.Match{match(3, model.StatusLive, score(0, 0, 0), score(0, 0, 0))}

	evs := newDetector().Detect(cur, prev)
	require.Len(t, evs, 1)
	assert.Equal(t, model.EventMatchStart, evs[0].Type)
	assert.Equal(t, model.SignificanceMedium, evs[0].Significance)
	assert.Equal(t, "RCB vs KKR has started!", evs[0].Description)
	assert.Nil(t, evs[0].Data)
}

func TestDetect_MatchEndCoFiresWithScoring(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(180, 5, 20), score(174, 6, 19.5))}
	done := match(1, model.StatusCompleted, score(180, 5, 20), score(178, 6, 20))
	done.Result = "RCB won by 2 runs"

	evs := newDetector().Detect([]model.Match{done}, prev)
	require.Equal(t, []model.EventType{model.EventBoundary, model.EventMatchEnd}, types(evs))
	assert.Equal(t, "Match completed! RCB won by 2 runs", evs[1].Description)
	assert.Equal(t, model.SignificanceHigh, evs[1].Significance)
}

func TestDetect_MatchEndWithoutResult(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(180, 5, 20), score(100, 10, 17))}
	cur := []model.Match{match(1, model.StatusCompleted, score(180, 5, 20), score(100, 10, 17))}

	evs := newDetector().Detect(cur, prev)
	require.Len(t, evs, 1)
	assert.Equal(t, "Match completed! Result pending", evs[0].Description)
}

func TestDetect_NoBaseline(t *testing.T) {
	cur := []model.Match{match(9, model.StatusLive, score(60, 1, 7), score(0, 0, 0))}
	assert.Empty(t, newDetector().Detect(cur, nil))

	// Score appears for the first time: nothing to diff against.
	prev := []model.Match{match(9, model.StatusLive, nil, nil)}
	assert.Empty(t, newDetector().Detect(cur, prev))
}

func TestDetect_UniqueIDs(t *testing.T) {
	prev := []model.Match{match(1, model.StatusLive, score(46, 2, 6), score(96, 3, 10))}
	cur := []model.Match{match(1, model.StatusLive, score(52, 3, 6.1), score(102, 4, 10.1))}

	evs := events.NewDetector().Detect(cur, prev)
	require.NotEmpty(t, evs)
	seen := map[string]bool{}
	for _, e := range evs {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}
