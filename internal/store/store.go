// Package store defines the data interfaces for the live engine.
// Implementations include in-memory (match state and seeded reference data),
// PostgreSQL (reference data source of truth) and Redis (read-through cache
// with tag invalidation).
package store

import (
	"context"
	"errors"

	"github.com/pitchside/live-engine/internal/model"
)

// ErrNotFound is returned when a reference data set is empty or missing.
var ErrNotFound = errors.New("store: not found")

// TagPointsTable is the cache tag covering points-table reads.
const TagPointsTable = "points-table"

// MatchStore holds the authoritative match list. The simulator is the only
// writer; readers always receive deep copies.
type MatchStore interface {
	// Matches returns a copy of the current snapshot.
	Matches() []model.Match

	// ReplaceMatches atomically swaps in a new snapshot.
	ReplaceMatches(matches []model.Match)
}

// ReferenceStore serves the immutable tournament data.
type ReferenceStore interface {
	// Fixtures returns the initial match list used to seed the MatchStore.
	Fixtures(ctx context.Context) ([]model.Match, error)

	// PointsTable returns the standings.
	PointsTable(ctx context.Context) ([]model.PointsTableEntry, error)

	// Schedule returns the fixture list.
	Schedule(ctx context.Context) ([]model.ScheduleMatch, error)
}

// TagInvalidator drops every cached entry registered under a tag.
type TagInvalidator interface {
	InvalidateTag(ctx context.Context, tag string) error
}
