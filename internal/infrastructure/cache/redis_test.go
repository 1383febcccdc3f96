package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfview/backend/internal/domain"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), "redis://"+server.Addr(), "shelfview:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, server
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not a url", "")
	assert.Error(t, err)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewRedisCache(context.Background(), "redis://"+addr, "")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, server := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "options:brand", []string{"Brand A", "Brand B"}, time.Hour))

	got, err := c.Get(ctx, "options:brand")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Brand A", "Brand B"}, got)

	raw, err := server.Get("shelfview:options:brand")
	require.NoError(t, err)
	assert.JSONEq(t, `["Brand A","Brand B"]`, raw)
	assert.Equal(t, time.Hour, server.TTL("shelfview:options:brand"))
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestRedis(t)

	_, err := c.Get(context.Background(), "nothing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, server := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	server.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_CorruptValueIsMiss(t *testing.T) {
	c, server := newTestRedis(t)
	require.NoError(t, server.Set("shelfview:bad", "{not json"))

	_, err := c.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_DeleteAndExists(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	exists, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "k"))
	exists, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, server := newTestRedis(t)
	server.Close()

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	assert.ErrorIs(t, c.Set(context.Background(), "k", "v", time.Minute), domain.ErrCacheUnavailable)
}
