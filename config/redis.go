package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a Redis client, or nil when caching is disabled or the
// server is unreachable. Callers must treat a nil client as "no cache".
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR is not set, caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("Failed to connect to Redis, caching disabled", "error", err)
		return nil
	}

	slog.Info("Connected to Redis")
	return rdb
}
