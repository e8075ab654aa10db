package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stakalivres/notifymail/pkg/cache"
)

// ErrInvalidWindow is returned when a deduplicator is built with a non-positive window.
var ErrInvalidWindow = errors.New("dedup: window must be positive")

// Deduplicator suppresses repeated keys within a time window.
type Deduplicator interface {
	// Seen records key and reports whether it had already been recorded
	// within the window. The first call for a key returns false.
	Seen(ctx context.Context, key string) (bool, error)
}

// Memory keeps keys in a bounded in-process ExpiringSet.
type Memory struct {
	set *cache.ExpiringSet[string]
}

// NewMemory creates an in-memory deduplicator remembering at most capacity
// keys for window each.
func NewMemory(capacity int, window time.Duration, opts ...cache.ExpiringSetOption) (*Memory, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	if capacity <= 0 {
		capacity = 10_000
	}
	return &Memory{set: cache.NewExpiringSet[string](capacity, window, opts...)}, nil
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	return !m.set.Add(key), nil
}

// Redis shares the window between processes with SET NX PX.
type Redis struct {
	client goredis.Cmdable
	prefix string
	window time.Duration
}

// NewRedis creates a Redis backed deduplicator. Keys are stored as
// prefix + "dedup:" + key.
func NewRedis(client goredis.Cmdable, window time.Duration, prefix string) (*Redis, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &Redis{client: client, prefix: prefix + "dedup:", window: window}, nil
}

func (r *Redis) Seen(ctx context.Context, key string) (bool, error) {
	added, err := r.client.SetNX(ctx, r.prefix+key, 1, r.window).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: redis setnx: %w", err)
	}
	return !added, nil
}
