package store

import (
	"context"
	"sync/atomic"

	"github.com/pitchside/live-engine/internal/model"
)

// MemoryStore implements MatchStore with a copy-on-write snapshot. Readers
// never block the writer and never see a half-applied tick.
type MemoryStore struct {
	current atomic.Pointer[[]model.Match]
}

// NewMemoryStore creates a match store seeded with the given fixtures.
func NewMemoryStore(seed []model.Match) *MemoryStore {
	s := &MemoryStore{}
	s.ReplaceMatches(seed)
	return s
}

func (s *MemoryStore) Matches() []model.Match {
	p := s.current.Load()
	if p == nil {
		return []model.Match{}
	}
	return model.CloneMatches(*p)
}

func (s *MemoryStore) ReplaceMatches(matches []model.Match) {
	// Store a copy to avoid external mutation.
	snapshot := model.CloneMatches(matches)
	s.current.Store(&snapshot)
}

// MemoryReference implements ReferenceStore over fixed in-process data.
// Used for development and tests.
type MemoryReference struct {
	fixtures    []model.Match
	pointsTable []model.PointsTableEntry
	schedule    []model.ScheduleMatch
}

// NewMemoryReference creates a reference store from a seed.
func NewMemoryReference(seed Seed) *MemoryReference {
	return &MemoryReference{
		fixtures:    model.CloneMatches(seed.Fixtures),
		pointsTable: seed.PointsTable,
		schedule:    seed.Schedule,
	}
}

func (s *MemoryReference) Fixtures(_ context.Context) ([]model.Match, error) {
	return model.CloneMatches(s.fixtures), nil
}

func (s *MemoryReference) PointsTable(_ context.Context) ([]model.PointsTableEntry, error) {
	out := make([]model.PointsTableEntry, len(s.pointsTable))
	for i, e := range s.pointsTable {
		e.Form = append([]string(nil), e.Form...)
		out[i] = e
	}
	return out, nil
}

func (s *MemoryReference) Schedule(_ context.Context) ([]model.ScheduleMatch, error) {
	return append([]model.ScheduleMatch(nil), s.schedule...), nil
}

// InvalidateTag is a no-op: nothing in-process is cached.
func (s *MemoryReference) InvalidateTag(_ context.Context, _ string) error {
	return nil
}
