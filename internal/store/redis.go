package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pitchside/live-engine/internal/model"
)

// CachedStore wraps a primary ReferenceStore with a Redis read-through
// cache. Every cached key is registered under a tag set so that a whole
// family of reads can be dropped at once (see InvalidateTag).
type CachedStore struct {
	primary ReferenceStore
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary ReferenceStore, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// --- Read-through (check cache first) ---

func (s *CachedStore) PointsTable(ctx context.Context) ([]model.PointsTableEntry, error) {
	var entries []model.PointsTableEntry
	if s.readCache(ctx, pointsTableKey, &entries) {
		return entries, nil
	}

	// Cache miss: read from primary.
	entries, err := s.primary.PointsTable(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, TagPointsTable, pointsTableKey, entries)
	return entries, nil
}

func (s *CachedStore) Schedule(ctx context.Context) ([]model.ScheduleMatch, error) {
	var schedule []model.ScheduleMatch
	if s.readCache(ctx, scheduleKey, &schedule) {
		return schedule, nil
	}

	schedule, err := s.primary.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, tagSchedule, scheduleKey, schedule)
	return schedule, nil
}

// --- Passthrough (not cached) ---

// Fixtures is read once at startup to seed the match store.
func (s *CachedStore) Fixtures(ctx context.Context) ([]model.Match, error) {
	return s.primary.Fixtures(ctx)
}

// --- Invalidation ---

// InvalidateTag deletes every key registered under tag, then the tag set.
func (s *CachedStore) InvalidateTag(ctx context.Context, tag string) error {
	keys, err := s.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return fmt.Errorf("invalidate tag %s: %w", tag, err)
	}
	keys = append(keys, tagKey(tag))
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate tag %s: %w", tag, err)
	}
	return nil
}

// --- Cache helpers ---

func (s *CachedStore) readCache(ctx context.Context, key string, dst any) bool {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *CachedStore) writeCache(ctx context.Context, tag, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, data, s.ttl)
	pipe.SAdd(ctx, tagKey(tag), key)
	pipe.Expire(ctx, tagKey(tag), s.ttl)
	pipe.Exec(ctx)
}

const (
	pointsTableKey = "ref:points-table"
	scheduleKey    = "ref:schedule"
	tagSchedule    = "schedule"
)

func tagKey(tag string) string { return fmt.Sprintf("tag:%s", tag) }
