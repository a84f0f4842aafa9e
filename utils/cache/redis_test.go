package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestJSONRoundTripAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Title string `json:"title"`
	}

	require.NoError(t, c.SetJSON(ctx, "home", payload{Title: "JEE"}, time.Minute))

	var got payload
	require.NoError(t, c.GetJSON(ctx, "home", &got))
	assert.Equal(t, "JEE", got.Title)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.GetJSON(ctx, "home", &got), ErrNotFound)
}

func TestCounters(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	n, err := c.Increment(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, c.Expire(ctx, "attempts", time.Minute))
	ttl, err := c.TTL(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	require.NoError(t, c.Delete(ctx, "attempts"))
	exists, err := c.Exists(ctx, "attempts")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache("redis://127.0.0.1:1")
	assert.Error(t, err)
}
