// Package cache is an optional redis layer in front of the analytics
// service. The aggregation core stays cache-free; this only memoizes
// finished bundles per address and window.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"perpfolio/internal/analytics"
)

type BundleCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewBundleCache(opt *redis.Options, ttl time.Duration) *BundleCache {
	return &BundleCache{Client: redis.NewClient(opt), TTL: ttl}
}

// Key includes both window bounds; a nil bound is encoded distinctly so an
// open window never aliases a bounded one.
func Key(address string, window analytics.TimeRange) string {
	start, end := "-", "-"
	if window.Start != nil {
		start = fmt.Sprintf("%d", *window.Start)
	}
	if window.End != nil {
		end = fmt.Sprintf("%d", *window.End)
	}
	return fmt.Sprintf("perpfolio:bundle:%s:%s:%s", address, start, end)
}

func (c *BundleCache) Get(ctx context.Context, key string) (*analytics.Bundle, bool, error) {
	if c == nil || c.Client == nil {
		return nil, false, nil
	}
	b, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var bundle analytics.Bundle
	if err := json.Unmarshal(b, &bundle); err != nil {
		return nil, false, err
	}
	return &bundle, true, nil
}

func (c *BundleCache) Set(ctx context.Context, key string, bundle *analytics.Bundle) error {
	if c == nil || c.Client == nil || bundle == nil {
		return nil
	}
	b, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, b, c.TTL).Err()
}

func (c *BundleCache) InvalidateAddress(ctx context.Context, address string) error {
	if c == nil || c.Client == nil {
		return nil
	}
	pattern := fmt.Sprintf("perpfolio:bundle:%s:*", address)
	iter := c.Client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
