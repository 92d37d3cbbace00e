// Package completion signals downstream caches when a live match finishes.
//
// The Notifier remembers the last status it saw for every match. When a
// snapshot moves any match from live to completed, it fires exactly one
// revalidation for the whole batch in the background. A failed revalidation
// is logged and dropped; it never reaches the request that produced the
// snapshot.
package completion

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pitchside/live-engine/internal/metrics"
	"github.com/pitchside/live-engine/internal/model"
)

// DefaultTimeout bounds a single revalidation call.
const DefaultTimeout = 3 * time.Second

// Revalidator invalidates whatever caches depend on standings.
type Revalidator interface {
	Revalidate(ctx context.Context) error
}

// RevalidatorFunc adapts a plain function to Revalidator.
type RevalidatorFunc func(ctx context.Context) error

func (f RevalidatorFunc) Revalidate(ctx context.Context) error { return f(ctx) }

// Notifier tracks status per match across snapshots. Create one per process.
type Notifier struct {
	rev     Revalidator
	timeout time.Duration

	mu       sync.Mutex
	previous map[int]model.Status

	wg sync.WaitGroup
}

// NewNotifier returns a Notifier that calls rev on completions. A
// non-positive timeout falls back to DefaultTimeout.
func NewNotifier(rev Revalidator, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{
		rev:      rev,
		timeout:  timeout,
		previous: make(map[int]model.Status),
	}
}

// OnSnapshot records the statuses in matches and reports whether a
// revalidation was fired. Matches seen for the first time never fire.
func (n *Notifier) OnSnapshot(matches []model.Match) bool {
	n.mu.Lock()
	fire := false
	var completed []int
	for _, m := range matches {
		if prev, ok := n.previous[m.ID]; ok && prev == model.StatusLive && m.Status == model.StatusCompleted {
			fire = true
			completed = append(completed, m.ID)
		}
		n.previous[m.ID] = m.Status
	}
	n.mu.Unlock()

	if !fire {
		return false
	}

	slog.Info("match completion detected, revalidating standings", "match_ids", completed)
	n.wg.Add(1)
	go n.revalidate()
	return true
}

// Wait blocks until every in-flight revalidation has returned.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) revalidate() {
	defer n.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.rev.Revalidate(ctx); err != nil {
		metrics.Revalidations.WithLabelValues("error").Inc()
		slog.Error("failed to trigger revalidation", "err", err)
		return
	}
	metrics.Revalidations.WithLabelValues("ok").Inc()
}
