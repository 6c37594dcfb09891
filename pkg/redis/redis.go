// Package redis wraps the shared redis client used for portal caches.
package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Nil is re-exported so callers can detect cache misses without importing
// the driver themselves.
const Nil = redis.Nil

// Handler is a thin wrapper around a redis client with a default TTL.
type Handler struct {
	client            *redis.Client
	DefaultExpiration time.Duration
}

// NewHandler connects to the given redis address and pings it once.
func NewHandler(addr, password string) (*Handler, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Handler{client: client, DefaultExpiration: 24 * time.Hour}, nil
}

// Get returns the string value at key. redis.Nil is returned on a miss.
func (h *Handler) Get(ctx context.Context, key string) (string, error) {
	return h.client.Get(ctx, key).Result()
}

// Set stores value at key with the default TTL.
func (h *Handler) Set(ctx context.Context, key, value string) error {
	return h.client.Set(ctx, key, value, h.DefaultExpiration).Err()
}

// SetWithExpireTime stores value at key with an explicit TTL.
func (h *Handler) SetWithExpireTime(ctx context.Context, key, value string, expiry time.Duration) error {
	return h.client.Set(ctx, key, value, expiry).Err()
}

// Delete removes the given keys.
func (h *Handler) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return h.client.Del(ctx, keys...).Err()
}

// Close releases the underlying client.
func (h *Handler) Close() error {
	return h.client.Close()
}
