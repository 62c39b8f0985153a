package session

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/engine"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps snapshots as JSON strings under "session:<id>".
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a new Redis-based Store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Load retrieves the session snapshot from Redis.
func (r *RedisStore) Load(ctx context.Context, id string) (engine.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "SessionStore.Load")
	defer span.End()

	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return engine.Snapshot{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return engine.Snapshot{}, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		span.RecordError(err)
		return engine.Snapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot and restarts its TTL.
func (r *RedisStore) Save(ctx context.Context, id string, snap engine.Snapshot) error {
	ctx, span := tracer.Start(ctx, "SessionStore.Save")
	defer span.End()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(id), data, r.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "SessionStore.Delete")
	defer span.End()

	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}
