// Package simulator advances mock live matches over time.
//
// Each applied tick walks every live match and, with some probability, plays
// one delivery for the chasing side (team2): a wicket, a boundary, ordinary
// running between the wickets, or a dot ball, drawn from a weighted outcome
// table. A match completes when the chasing side has batted 20 overs or lost
// 10 wickets. Ticks are throttled to one per Interval of wall time, so the
// simulator can sit directly behind a frequently polled endpoint.
package simulator

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pitchside/live-engine/internal/metrics"
	"github.com/pitchside/live-engine/internal/model"
	"github.com/pitchside/live-engine/internal/scoreline"
	"github.com/pitchside/live-engine/internal/store"
)

// Random is the source of uniform draws in [0, 1). *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
}

// Config controls the delivery model.
type Config struct {
	// Interval is the minimum wall time between applied ticks.
	Interval time.Duration

	// UpdateProbability is the chance a live match plays a delivery on an
	// applied tick. Skips keep concurrent matches out of lockstep.
	UpdateProbability float64

	// SixProbability is the chance a boundary clears the rope.
	SixProbability float64

	// Outcomes is the weighted delivery table consumed by Pick.
	Outcomes []WeightedOutcome
}

// DefaultConfig returns the standard model: one tick per 10s, 70% of live
// matches move per tick, 30% of boundaries are sixes.
func DefaultConfig() Config {
	return Config{
		Interval:          10 * time.Second,
		UpdateProbability: 0.7,
		SixProbability:    0.3,
		Outcomes:          DefaultOutcomes,
	}
}

// Simulator owns the process-wide progression state. Create one per process
// with New; state resets only on restart. Safe for concurrent use.
type Simulator struct {
	store store.MatchStore
	rng   Random
	cfg   Config

	mu           sync.Mutex
	lastUpdate   time.Time
	eventCounter uint64
}

// New creates a simulator over st. started seeds the throttle clock, so the
// first applied tick happens one Interval after startup.
func New(st store.MatchStore, rng Random, cfg Config, started time.Time) *Simulator {
	if len(cfg.Outcomes) == 0 {
		cfg.Outcomes = DefaultOutcomes
	}
	return &Simulator{
		store:      st,
		rng:        rng,
		cfg:        cfg,
		lastUpdate: started,
	}
}

// Advance runs one tick at now and returns the resulting snapshot. Calls
// within Interval of the last applied tick return the current snapshot
// without touching any state.
func (s *Simulator) Advance(now time.Time) []model.Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastUpdate) < s.cfg.Interval {
		metrics.SimulatorTicks.WithLabelValues("throttled").Inc()
		return s.store.Matches()
	}

	s.lastUpdate = now
	s.eventCounter++
	metrics.SimulatorTicks.WithLabelValues("applied").Inc()

	current := s.store.Matches()
	next := make([]model.Match, 0, len(current))
	live := 0
	for _, m := range current {
		if m.Status == model.StatusLive && m.Score != nil {
			m = s.step(m)
		}
		if m.Status == model.StatusLive {
			live++
		}
		next = append(next, m)
	}

	s.store.ReplaceMatches(next)
	metrics.LiveMatches.Set(float64(live))

	slog.Debug("simulator tick applied", "tick", s.eventCounter, "live", live)
	return next
}

// EventCounter returns the number of applied ticks.
func (s *Simulator) EventCounter() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventCounter
}

// LastUpdate returns the time of the last applied tick.
func (s *Simulator) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

// step plays at most one delivery for m's chasing side.
func (s *Simulator) step(m model.Match) model.Match {
	if s.rng.Float64() >= s.cfg.UpdateProbability {
		return m
	}

	sc := *m.Score
	bat := &sc.Team2

	if _, err := scoreline.Balls(bat.Overs); err != nil {
		slog.Warn("skipping match with malformed overs", "match_id", m.ID, "overs", bat.Overs)
		return m
	}
	bat.Overs = scoreline.Clamp(bat.Overs)

	outcome := Pick(s.cfg.Outcomes, s.rng.Float64())
	metrics.SimulatedOutcomes.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case OutcomeWicket:
		if bat.Wickets < scoreline.MaxWickets {
			bat.Wickets++
			bat.Runs += int(s.rng.Float64() * 3)
		}
	case OutcomeBoundary:
		runs := 4
		if s.rng.Float64() < s.cfg.SixProbability {
			runs = 6
		}
		bat.Runs += runs
		bat.Overs = s.addBall(bat.Overs)
	case OutcomeRegular:
		bat.Runs += int(s.rng.Float64()*3) + 1
		bat.Overs = s.addBall(bat.Overs)
	case OutcomeDotBall:
	}

	m.Score = &sc

	if bat.Overs >= scoreline.MaxOvers || bat.Wickets >= scoreline.MaxWickets {
		m.Status = model.StatusCompleted
		m.Result = MatchResult(m.Team1, m.Team2, sc)
		metrics.MatchesCompleted.Inc()
		slog.Info("match completed",
			"match_id", m.ID,
			"result", m.Result,
			"team1", fmt.Sprintf("%d/%d", sc.Team1.Runs, sc.Team1.Wickets),
			"team2", fmt.Sprintf("%d/%d (%.1f)", sc.Team2.Runs, sc.Team2.Wickets, sc.Team2.Overs),
		)
	}
	return m
}

func (s *Simulator) addBall(overs float64) float64 {
	next, err := scoreline.AddBall(overs)
	if err != nil {
		return overs
	}
	return next
}

// MatchResult describes the outcome once the chase is over. A chasing side
// ahead on runs wins by its remaining wickets; otherwise the side batting
// first wins by the run margin. Equal totals are a tie.
func MatchResult(team1, team2 model.Team, sc model.Scorecard) string {
	t1, t2 := sc.Team1.Runs, sc.Team2.Runs
	switch {
	case t2 > t1:
		return fmt.Sprintf("%s won by %d wickets", team2.ShortName, scoreline.MaxWickets-sc.Team2.Wickets)
	case t2 == t1:
		return "Match tied"
	default:
		return fmt.Sprintf("%s won by %d runs", team1.ShortName, t1-t2)
	}
}
