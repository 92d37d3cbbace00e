package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pitchside/live-engine/internal/metrics"
	"github.com/pitchside/live-engine/internal/model"
)

// DefaultPollInterval is the period between polls.
const DefaultPollInterval = 10 * time.Second

// ErrPollInFlight is returned by Poll when an earlier poll has not finished.
var ErrPollInFlight = errors.New("events: poll already in flight")

// Source returns the current match snapshot.
type Source interface {
	Matches(ctx context.Context) ([]model.Match, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]model.Match, error)

func (f SourceFunc) Matches(ctx context.Context) ([]model.Match, error) { return f(ctx) }

// Poller fetches snapshots, detects events against the previous snapshot,
// records them in a History and forwards them to a Sink. At most one poll
// runs at a time; a poll started while another is in flight is dropped so
// snapshots are always compared in order.
type Poller struct {
	source   Source
	detector *Detector
	history  *History
	sink     Sink
	interval time.Duration

	inFlight atomic.Bool

	mu       sync.Mutex
	previous []model.Match
}

// NewPoller wires a poller. sink may be nil.
func NewPoller(src Source, det *Detector, hist *History, sink Sink, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		source:   src,
		detector: det,
		history:  hist,
		sink:     sink,
		interval: interval,
	}
}

// Poll performs one fetch-detect-deliver cycle and returns the new events.
// The first successful poll only records a baseline. A failed fetch keeps
// the previous baseline.
func (p *Poller) Poll(ctx context.Context) ([]model.MatchEvent, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		metrics.PollsDropped.Inc()
		return nil, ErrPollInFlight
	}
	defer p.inFlight.Store(false)

	current, err := p.source.Matches(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}

	p.mu.Lock()
	previous := p.previous
	p.previous = current
	p.mu.Unlock()

	if len(previous) == 0 {
		return nil, nil
	}

	found := p.detector.Detect(current, previous)
	if len(found) == 0 {
		return nil, nil
	}

	p.history.Add(found...)
	for _, ev := range found {
		metrics.EventsDetected.WithLabelValues(string(ev.Type)).Inc()
		if p.sink == nil {
			continue
		}
		if err := p.sink.Notify(ctx, ev); err != nil {
			slog.Warn("event delivery failed", "event_id", ev.ID, "type", ev.Type, "err", err)
		}
	}
	return found, nil
}

// Run polls every interval until ctx is cancelled. Each tick starts its
// poll in the background, so a slow source shows up as dropped polls rather
// than a drifting schedule.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := p.Poll(ctx); err != nil && !errors.Is(err, ErrPollInFlight) && ctx.Err() == nil {
					slog.Warn("event poll failed", "err", err)
				}
			}()
		}
	}
}
