package util

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultAvailabilityTTL bounds how stale a cached availability result can
// get if an invalidation is lost.
const DefaultAvailabilityTTL = 10 * time.Minute

// AvailabilityCache stores computed availability per doctor in Redis. Every
// key written for a doctor is tracked in a per-doctor set so all of them can
// be dropped at once, and a per-doctor generation counter is bumped on every
// invalidation. A nil client turns every call into a miss or no-op.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewAvailabilityCache wraps rdb; a non-positive ttl uses DefaultAvailabilityTTL.
func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func availabilityKey(doctorID uint, key string) string {
	return fmt.Sprintf("availability:%d:%s", doctorID, key)
}

func availabilityIndexKey(doctorID uint) string {
	return fmt.Sprintf("availability_keys:%d", doctorID)
}

func availabilityGenKey(doctorID uint) string {
	return fmt.Sprintf("availability_gen:%d", doctorID)
}

// Generation returns the doctor's invalidation counter, zero if never set.
func (a *AvailabilityCache) Generation(ctx context.Context, doctorID uint) (int64, error) {
	if a == nil || a.rdb == nil {
		return 0, nil
	}
	gen, err := a.rdb.Get(ctx, availabilityGenKey(doctorID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached value, reporting a miss on any Redis error.
func (a *AvailabilityCache) Get(ctx context.Context, doctorID uint, key string) ([]byte, bool) {
	if a == nil || a.rdb == nil {
		return nil, false
	}
	b, err := a.rdb.Get(ctx, availabilityKey(doctorID, key)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores value and records its key in the doctor's index set.
func (a *AvailabilityCache) Set(ctx context.Context, doctorID uint, key string, value []byte) error {
	if a == nil || a.rdb == nil {
		return nil
	}
	full := availabilityKey(doctorID, key)
	if err := a.rdb.Set(ctx, full, value, a.ttl).Err(); err != nil {
		return err
	}
	return a.rdb.SAdd(ctx, availabilityIndexKey(doctorID), full).Err()
}

// Invalidate bumps the doctor's generation, then deletes every cached entry
// and the index set. Once the bump lands no earlier entry can be read again.
func (a *AvailabilityCache) Invalidate(ctx context.Context, doctorID uint) error {
	if a == nil || a.rdb == nil {
		return nil
	}
	if err := a.rdb.Incr(ctx, availabilityGenKey(doctorID)).Err(); err != nil {
		return err
	}
	index := availabilityIndexKey(doctorID)
	members, err := a.rdb.SMembers(ctx, index).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(members) > 0 {
		if err := a.rdb.Del(ctx, members...).Err(); err != nil {
			return err
		}
	}
	return a.rdb.Del(ctx, index).Err()
}
