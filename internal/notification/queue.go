package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/model"
)

// Queue pushes notifications onto the Redis list drained by the worker.
type Queue struct {
	rdb *redis.Client
	key string
}

// NewQueue creates a Queue on the configured notifications list.
func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb, key: config.WorkerKey.NotificationsQueue}
}

// Enqueue appends n to the tail of the queue.
func (q *Queue) Enqueue(ctx context.Context, n model.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", q.key, err)
	}
	return nil
}
