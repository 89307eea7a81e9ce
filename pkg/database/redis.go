package database

import (
	"context"
	"fmt"
	"time"

	"cinema-reservations/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis and pings it. Callers treat a failure as "run without
// the cache" rather than a fatal error.
func InitRedis(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}

	return client, nil
}
