package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	cachePrefix     = "cache:"
	defaultCacheTTL = 5 * time.Minute
)

// CollectionCache stores JSON snapshots of list responses, keyed per user and
// collection. It backs the speculative-update flow: readers see the cached
// list instantly while the database write is still in flight.
type CollectionCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCollectionCache(client *goredis.Client, ttl time.Duration) *CollectionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CollectionCache{client: client, ttl: ttl}
}

// Get unmarshals the cached value into dest. The bool reports a cache hit.
func (c *CollectionCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return false, fmt.Errorf("cache key is required")
	}

	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cache entry: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

func (c *CollectionCache) Set(ctx context.Context, key string, value interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("cache key is required")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cache entry: %w", err)
	}
	return nil
}

// Delete invalidates the entry; the next reader refetches from the database.
func (c *CollectionCache) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil
	}

	if err := c.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return cachePrefix + key
}
