package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsPayload struct {
	Total           int    `json:"total"`
	AvgResponseTime string `json:"avg_response_time"`
}

func TestStatsCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewStatsCache(rdb, time.Minute)
	ctx := context.Background()

	var out statsPayload
	ok, err := c.Get(ctx, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, &statsPayload{Total: 7, AvgResponseTime: "2.5h"}))

	ok, err = c.Get(ctx, &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, out.Total)
	assert.Equal(t, "2.5h", out.AvgResponseTime)
}

func TestStatsCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewStatsCache(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &statsPayload{Total: 1}))
	mr.FastForward(2 * time.Minute)

	var out statsPayload
	ok, err := c.Get(ctx, &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
