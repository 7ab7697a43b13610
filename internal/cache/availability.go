// Package cache holds the optional Redis-backed cache for availability
// listings. Listing output is advisory and always re-validated at commit
// time, so serving a payload a few seconds stale is safe.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ListingKey names a cached availability payload. Keys are grouped by
// advisor first: a commit takes a slot on the advisor's shared calendar, so
// every link's listing goes stale together and is invalidated together.
func ListingKey(advisorID uint, slug, date string) string {
	return fmt.Sprintf("availability:%d:%s:%s", advisorID, slug, date)
}

type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache wraps a Redis client. A nil client disables caching:
// every Get misses and every Set is a no-op.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AvailabilityCache) Get(ctx context.Context, key string, out any) bool {
	if c == nil || c.client == nil {
		return false
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(b, out) == nil
}

func (c *AvailabilityCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.client == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	c.client.Set(ctx, key, b, c.ttl)
}

// InvalidateAdvisor drops every cached listing for an advisor, called after
// a commit so no link of theirs keeps serving the taken slot as free.
func (c *AvailabilityCache) InvalidateAdvisor(ctx context.Context, advisorID uint) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, fmt.Sprintf("availability:%d:*", advisorID), 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
