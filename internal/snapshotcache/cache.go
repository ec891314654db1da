// Package snapshotcache keeps the bulk search snapshot in Redis so index
// rebuilds across restarts and replicas do not hit the content backend.
package snapshotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
)

// DefaultTTL is used when a non-positive TTL is configured.
const DefaultTTL = 10 * time.Minute

// Source produces the bulk snapshot on a cache miss.
type Source interface {
	ListAllForSearch(ctx context.Context) (*content.Snapshot, error)
}

// Cache is a read-through Redis cache in front of Source.
// A nil Redis client turns it into a plain pass-through.
type Cache struct {
	client *redis.Client
	source Source
	key    string
	ttl    time.Duration
}

// NewClient connects to Redis at redisURL and verifies the connection.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// New creates a cache for source. backend names the content backend and
// scopes the key, so SQLite and Supabase snapshots never mix.
func New(client *redis.Client, source Source, backend string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		source: source,
		key:    "rulebook:snapshot:" + backend,
		ttl:    ttl,
	}
}

// Key returns the Redis key of the snapshot.
func (c *Cache) Key() string {
	return c.key
}

// ListAllForSearch returns the cached snapshot, loading and storing it on a
// miss. Redis failures are logged and fall back to the source.
func (c *Cache) ListAllForSearch(ctx context.Context) (*content.Snapshot, error) {
	if c.client == nil {
		return c.source.ListAllForSearch(ctx)
	}
	logger := contextutil.LoggerFromContext(ctx)

	data, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var snap content.Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			logger.DebugContext(ctx, "snapshot cache hit", "key", c.key)
			return &snap, nil
		}
		logger.WarnContext(ctx, "discarding undecodable snapshot", "key", c.key, "error", err)
	case errors.Is(err, redis.Nil):
		logger.DebugContext(ctx, "snapshot cache miss", "key", c.key)
	default:
		logger.WarnContext(ctx, "snapshot cache unavailable", "key", c.key, "error", err)
	}

	snap, err := c.source.ListAllForSearch(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, logger, snap)
	return snap, nil
}

func (c *Cache) store(ctx context.Context, logger *slog.Logger, snap *content.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		logger.WarnContext(ctx, "failed to encode snapshot", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		logger.WarnContext(ctx, "failed to store snapshot", "key", c.key, "error", err)
	}
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable. It succeeds when no Redis is configured.
func (c *Cache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Enabled reports whether a Redis client backs the cache.
func (c *Cache) Enabled() bool {
	return c.client != nil
}
