// Package cache provides versioned read-through caching for public
// content listings. Any content mutation bumps a global version, which
// shifts every key and lets stale entries expire via TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "content:version"

// Cache wraps Redis based caching with versioning controls. A nil cache
// or nil client degrades to calling the loader directly.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, cacheVersionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey composes the cache key with the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	if c == nil || c.client == nil {
		return strings.Join(parts, ":"), nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	joined := strings.Join(parts, ":")
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if err != redis.Nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates cached listings by incrementing the global version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

// KeyNewsList names the public news listing for one page.
func KeyNewsList(limit, offset int) []string {
	return []string{"content", "news", fmt.Sprintf("%d", limit), fmt.Sprintf("%d", offset)}
}

// KeyLeadershipStructure names the grouped leadership view, optionally
// narrowed to one year of service.
func KeyLeadershipStructure(year *string) []string {
	token := "all"
	if year != nil {
		token = *year
	}
	return []string{"content", "leadership", "structure", token}
}

// KeyGalleryByCategory names the grouped gallery view, optionally
// narrowed to one year.
func KeyGalleryByCategory(year *string) []string {
	token := "all"
	if year != nil {
		token = *year
	}
	return []string{"content", "gallery", "by-category", token}
}

// KeyEventsUpcoming names the upcoming events listing for one page.
func KeyEventsUpcoming(limit, offset int) []string {
	return []string{"content", "events", "upcoming", fmt.Sprintf("%d", limit), fmt.Sprintf("%d", offset)}
}
