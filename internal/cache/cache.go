// Package cache stores finished synthesis results in Redis so repeated
// requests for the same video and preferences skip the oracle entirely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

const keyPrefix = "skipvault:result:"

// DefaultTTL keeps results for a day; transcripts rarely change faster.
const DefaultTTL = 24 * time.Hour

// ErrMiss is returned by Get when no entry exists for the key.
var ErrMiss = errors.New("cache miss")

// Entry is the cached portion of a synthesis result.
type Entry struct {
	SkipSegments   []models.SkipSegment `json:"skip_segments"`
	SkipPercentage float64              `json:"skip_percentage"`
	TotalDuration  float64              `json:"total_duration"`
	CachedAt       time.Time            `json:"cached_at"`
}

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps a Redis client. ttl <= 0 falls back to DefaultTTL.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get fetches the cached entry for a key. A missing key yields ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &entry, nil
}

// Set stores an entry under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, entry *Entry) error {
	entry.CachedAt = time.Now().UTC()
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// DeleteVideo removes every cached entry for a video, across all transcript
// and preference variants.
func (c *Cache) DeleteVideo(ctx context.Context, videoID string) (int64, error) {
	pattern := keyPrefix + videoID + ":*"
	var deleted int64

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.rdb.Del(ctx, iter.Val()).Result()
		if err != nil {
			return deleted, fmt.Errorf("cache delete: %w", err)
		}
		deleted += n
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache scan: %w", err)
	}
	return deleted, nil
}

// Count reports how many result entries are currently cached.
func (c *Cache) Count(ctx context.Context) (int64, error) {
	var count int64
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("cache scan: %w", err)
	}
	return count, nil
}
