package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "moderation:stats"

// StatsCache keeps the derived queue stats in Redis with a short TTL so the
// dashboard survives a failed window fetch with slightly stale numbers.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get unmarshals the cached stats into dest; ok is false on miss or decode error.
func (c *StatsCache) Get(ctx context.Context, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *StatsCache) Set(ctx context.Context, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, payload, c.ttl).Err()
}
