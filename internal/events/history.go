package events

import (
	"sync"

	"github.com/pitchside/live-engine/internal/model"
)

// DefaultHistorySize caps the event history.
const DefaultHistorySize = 50

// History is a bounded, newest-first event buffer. Safe for concurrent use.
type History struct {
	mu     sync.RWMutex
	size   int
	events []model.MatchEvent
}

// NewHistory returns an empty History holding at most size events.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size}
}

// Add prepends batch, keeping its order, and drops the oldest events past
// the cap.
func (h *History) Add(batch ...model.MatchEvent) {
	if len(batch) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]model.MatchEvent, 0, min(len(batch)+len(h.events), h.size))
	next = append(next, batch...)
	next = append(next, h.events...)
	if len(next) > h.size {
		next = next[:h.size]
	}
	h.events = next
}

// Recent returns up to limit events, newest first. limit <= 0 returns all.
func (h *History) Recent(limit int) []model.MatchEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.MatchEvent, n)
	copy(out, h.events[:n])
	return out
}

// Len returns the number of buffered events.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.events)
}
