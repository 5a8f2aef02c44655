// Package cache is a thin Redis wrapper used to cache hot read paths: the
// public listing pages and the admin platform stats. Writes invalidate by
// bumping a generation counter that is part of every listing key, so stale
// pages simply stop being addressable.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	listingsGenKey = "listings:gen"

	// ListingsTTL bounds how long a listing page may be served from cache
	// even if its generation is still current.
	ListingsTTL = 30 * time.Second

	// StatsTTL bounds the staleness of the platform stats view.
	StatsTTL = 60 * time.Second
)

// Cache wraps a Redis client with the key scheme used by the handlers.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at addr and verifies the connection.
func New(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// ListingsKey builds the cache key for a listing query under the current
// generation. query must be a canonical encoding of the request parameters.
func (c *Cache) ListingsKey(ctx context.Context, query string) (string, error) {
	gen, err := c.client.Get(ctx, listingsGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("listings:%d:%s", gen, query), nil
}

// Get returns the cached payload for key, or ok=false on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores payload under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// InvalidateListings retires every cached listing page by advancing the
// generation counter. Old pages expire on their own TTL.
func (c *Cache) InvalidateListings(ctx context.Context) error {
	return c.client.Incr(ctx, listingsGenKey).Err()
}
