package session

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// newTestRedis starts a throwaway Redis container. It needs Docker, so it
// is skipped in short mode.
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisStore(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()
	store := NewRedisStore(rdb, time.Hour)

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		snap := sampleSnapshot()
		require.NoError(t, store.Save(ctx, "s1", snap))

		got, err := store.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, snap, got)

		ttl, err := rdb.TTL(ctx, "session:s1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 59*time.Minute)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "s2", sampleSnapshot()))
		require.NoError(t, store.Delete(ctx, "s2"))

		_, err := store.Load(ctx, "s2")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, store.Delete(ctx, "s2"))
	})

	t.Run("corrupt value", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "session:bad", "not json", time.Hour).Err())

		_, err := store.Load(ctx, "bad")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
