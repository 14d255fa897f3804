// Package cache holds the Redis-backed dashboard result cache. Dashboard
// aggregations are recomputed from row sets on every request; caching the
// assembled result per visibility scope keeps repeated dashboard loads off
// the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crm/backend/internal/domain/identity"
)

// DashboardCache stores serialized dashboard payloads keyed by the caller's
// visibility scope. Two callers with the same role, region and demo flag
// see identical data, so they share an entry.
type DashboardCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewDashboardCache creates a cache over an existing Redis client
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{
		client:    client,
		keyPrefix: "dashboard:",
		ttl:       ttl,
	}
}

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Key derives the cache key for a caller and aggregation window. Sales
// callers get per-user entries because their lead visibility is personal.
func (c *DashboardCache) Key(caller identity.Identity, months, days int) string {
	scope := string(caller.Role)
	if caller.Role == identity.RoleSales {
		scope += ":" + caller.UserID.String()
	}
	if caller.HasRegion() {
		scope += ":" + caller.RegionID.String()
	}
	if caller.Demo {
		scope += ":demo"
	}
	return fmt.Sprintf("%s%s:m%d:d%d", c.keyPrefix, scope, months, days)
}

// Get loads a cached payload into dest. The boolean reports a hit; cache
// failures are reported as misses with the error attached so callers can
// degrade to a recompute.
func (c *DashboardCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode dashboard cache entry: %w", err)
	}
	return true, nil
}

// Set stores a payload under key with the configured TTL
func (c *DashboardCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// Invalidate drops all dashboard entries so the next load recomputes
// from current rows. Exposed through the admin cache-flush endpoint.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan dashboard cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *DashboardCache) Close() error {
	return c.client.Close()
}
