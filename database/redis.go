package database

import (
	"context"

	"familygather-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis returns a Redis client, or nil when Redis is not configured or
// unreachable. Callers treat nil as "no cache".
func ConnectRedis(cfg *config.Config, log *logrus.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Invalid REDIS_URL, running without cache")
		return nil
	}

	client := redis.NewClient(opts)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.WithError(err).Warn("Redis not available, running without cache")
		return nil
	}

	log.Info("Redis connected")
	return client
}
