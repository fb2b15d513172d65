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

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client), mr
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got entry
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", entry{Name: "a", Count: 2}, time.Minute))

	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Name: "a", Count: 2}, got)
}

func TestCacheExpiresAndDeletes(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", entry{Name: "a"}, time.Second))
	require.NoError(t, c.Set(ctx, "b", entry{Name: "b"}, time.Minute))

	mr.FastForward(2 * time.Second)
	var got entry
	found, err := c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Delete(ctx, "b"))
	found, err = c.Get(ctx, "b", &got)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.Delete(ctx))
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheAddDoesNotReplace(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	added, err := c.Add(ctx, "k", entry{Name: "first"}, time.Minute)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = c.Add(ctx, "k", entry{Name: "stale"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, added)

	var got entry
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", got.Name)
	assert.Greater(t, mr.TTL("k"), time.Duration(0))
}
