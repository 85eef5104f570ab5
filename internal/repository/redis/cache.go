package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	recommendationCachePrefix = "mindcare:recommendations:"
	defaultRecommendationTTL  = 30 * time.Minute
)

// RecommendationCache stores generated tips keyed by a digest of the session
// they were generated from, so revisiting the page does not call the LLM again
type RecommendationCache struct {
	client *Client
	ttl    time.Duration
}

// NewRecommendationCache creates a new recommendation cache
func NewRecommendationCache(client *Client, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = defaultRecommendationTTL
	}
	return &RecommendationCache{client: client, ttl: ttl}
}

// CacheKey derives a stable key from the session id, model and transcript
func CacheKey(sessionID int64, model, transcript string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", sessionID, model, transcript)))
	return hex.EncodeToString(sum[:16])
}

type cachedTips struct {
	Tips     string    `json:"tips"`
	CachedAt time.Time `json:"cachedAt"`
}

// Get returns cached tips, or ok=false on a miss
func (c *RecommendationCache) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := c.client.rdb.Get(ctx, recommendationCachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache: %w", err)
	}

	var entry cachedTips
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dropping unreadable recommendation cache entry")
		return "", false, nil
	}

	return entry.Tips, true, nil
}

// Set caches tips for the key
func (c *RecommendationCache) Set(ctx context.Context, key, tips string) error {
	data, err := json.Marshal(cachedTips{Tips: tips, CachedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal tips: %w", err)
	}

	return c.client.rdb.Set(ctx, recommendationCachePrefix+key, data, c.ttl).Err()
}

// FlushAll removes all cached recommendations
func (c *RecommendationCache) FlushAll(ctx context.Context) (int64, error) {
	pattern := recommendationCachePrefix + "*"
	var cursor uint64
	var deleted int64

	for {
		keys, nextCursor, err := c.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan keys: %w", err)
		}

		if len(keys) > 0 {
			count, err := c.client.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete keys: %w", err)
			}
			deleted += count
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}
