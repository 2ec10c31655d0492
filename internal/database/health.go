package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Pinger is anything that can report its own liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker pings the backing stores for the /health endpoint.
type HealthChecker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewHealthChecker creates a HealthChecker.
func NewHealthChecker(pool *pgxpool.Pool, rdb *redis.Client) *HealthChecker {
	return &HealthChecker{pool: pool, rdb: rdb}
}

// Ping returns the first store error encountered, if any.
func (h *HealthChecker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		return err
	}
	return h.rdb.Ping(ctx).Err()
}
