package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisListKey = "content-studio:notifications"
	RedisChannel = "content-studio:notifications:live"
)

// RedisFeed stores recent notifications in a capped Redis list and publishes
// each one on RedisChannel so other instances and live clients see it.
type RedisFeed struct {
	client   *redis.Client
	capacity int64
	timeout  time.Duration
}

func NewRedisFeed(client *redis.Client, capacity int) *RedisFeed {
	if capacity <= 0 {
		capacity = 50
	}
	return &RedisFeed{client: client, capacity: int64(capacity), timeout: 2 * time.Second}
}

func (f *RedisFeed) Notify(ctx context.Context, n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	// The caller's request may already be done; the notice must still land.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	pipe := f.client.TxPipeline()
	pipe.LPush(ctx, redisListKey, payload)
	pipe.LTrim(ctx, redisListKey, 0, f.capacity-1)
	pipe.Publish(ctx, RedisChannel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("failed to store notification", "error", err)
	}
}

func (f *RedisFeed) Recent(ctx context.Context, limit int) ([]Notification, error) {
	if limit <= 0 || int64(limit) > f.capacity {
		limit = int(f.capacity)
	}
	raw, err := f.client.LRange(ctx, redisListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}

	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			slog.Info(err.Error())
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
