// Package cache stores Ergast response bodies in Redis so repeated queries
// skip the network. Cache failures are logged and treated as misses.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/five82/paddock/ergast"
)

const keyPrefix = "paddock:ergast:"

// Redis implements ergast.Cache on top of a Redis server.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ ergast.Cache = (*Redis)(nil)

// NewRedis connects lazily to the server named by a redis:// URL. Entries
// expire after ttl; zero keeps them until evicted.
func NewRedis(rawURL string, ttl time.Duration, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.MaxRetries = -1
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Redis{client: redis.NewClient(opts), ttl: ttl, logger: logger}, nil
}

// Ping checks the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Get returns the cached body for key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return body, true
}

// Set stores body under key.
func (r *Redis) Set(ctx context.Context, key string, body []byte) {
	if err := r.client.Set(ctx, cacheKey(key), body, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", "key", key, "error", err)
	}
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func cacheKey(url string) string {
	return keyPrefix + url
}
