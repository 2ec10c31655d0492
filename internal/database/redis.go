package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/config"
)

// NewRedisClient connects to Redis, which carries the inbox pub/sub channels
// and the notification queue. Notifications left over from a previous run
// are reported so a stuck queue is visible at boot.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opt.Addr, err)
	}

	pending, err := rdb.LLen(ctx, config.WorkerKey.NotificationsQueue).Result()
	if err != nil {
		log.Warn().Err(err).Msg("could not read notification queue length")
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Int64("pending_notifications", pending).
		Msg("Redis connected")

	return rdb, nil
}
