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

type cachedDoctor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewWithClient(client, 5*time.Minute), mr
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := []cachedDoctor{{ID: 1, Name: "Dr. Anna de Vries"}, {ID: 2, Name: "Dr. Jan van der Berg"}}
	require.NoError(t, c.Set(ctx, "doctors:all", want))

	var got []cachedDoctor
	hit, err := c.Get(ctx, "doctors:all", &got)

	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got []cachedDoctor
	hit, err := c.Get(context.Background(), "doctors:all", &got)

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, got)
}

func TestCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "doctors:all", []cachedDoctor{{ID: 1}}))

	mr.FastForward(6 * time.Minute)

	var got []cachedDoctor
	hit, err := c.Get(ctx, "doctors:all", &got)

	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "doctors:all", []cachedDoctor{{ID: 1}}))
	require.NoError(t, c.Delete(ctx, "doctors:all"))

	var got []cachedDoctor
	hit, err := c.Get(ctx, "doctors:all", &got)

	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheDeleteByPrefix(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "doctors:all", []cachedDoctor{{ID: 1}}))
	require.NoError(t, c.Set(ctx, "doctors:1", cachedDoctor{ID: 1}))
	require.NoError(t, c.Set(ctx, "users:1", cachedDoctor{ID: 1}))

	require.NoError(t, c.DeleteByPrefix(ctx, "doctors:"))

	var got cachedDoctor
	hit, err := c.Get(ctx, "doctors:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.Get(ctx, "users:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestCacheCorruptedValue(t *testing.T) {
	c, mr := newTestCache(t)

	require.NoError(t, mr.Set("doctors:all", "not-json"))

	var got []cachedDoctor
	_, err := c.Get(context.Background(), "doctors:all", &got)

	assert.Error(t, err)
}
