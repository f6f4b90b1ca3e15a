package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis initializes the Redis connection. Redis is optional: with no
// address configured the service runs without the follow-stats cache.
func InitRedis(cfg *Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
