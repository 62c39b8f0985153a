package db

import (
	"context"
	"ctchen222/growing-tic-tac-toe/internal/config"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates a Redis client for the configured address and
// pings it so a bad address fails at startup rather than on the first move.
func NewRedisClient(ctx context.Context, conf config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: conf.Addr,
		DB:   conf.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to reach redis at %s: %w", conf.Addr, err)
	}

	return client, nil
}
