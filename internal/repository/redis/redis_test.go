package redis

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/Rrens/mindcare/internal/config"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	host := os.Getenv("REDIS_TEST_HOST")
	if host == "" {
		t.Skip("REDIS_TEST_HOST not set")
	}
	port := 6379
	if p := os.Getenv("REDIS_TEST_PORT"); p != "" {
		var err error
		port, err = strconv.Atoi(p)
		require.NoError(t, err)
	}

	client, err := NewClient(context.Background(), config.RedisConfig{Host: host, Port: port, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStore_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	s := NewStore(client)

	key := "mindcare_test_sessions"
	defer s.Remove(ctx, key)

	_, err := s.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// Shared client stays open
	require.NoError(t, s.Close())
	assert.NoError(t, client.Ping(ctx))
}

func TestRecommendationCache_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	cache := NewRecommendationCache(client, time.Minute)

	key := CacheKey(1, "m", "I feel calm")
	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, "• Walk"))
	tips, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "• Walk", tips)

	deleted, err := cache.FlushAll(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))
}

func TestRateLimiter_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, 1, 1)
	limiter.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC) }

	key := "test-client"
	require.NoError(t, limiter.Reset(ctx, key))
	defer limiter.Reset(ctx, key)

	for i := 0; i < 2; i++ {
		q, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, q.Allowed)
	}

	q, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, q.Allowed)
	assert.Equal(t, 0, q.Remaining)
	assert.Equal(t, 2, q.Limit)
}

func TestCacheKey_Stable(t *testing.T) {
	a := CacheKey(1, "m", "text")
	assert.Equal(t, a, CacheKey(1, "m", "text"))
	assert.NotEqual(t, a, CacheKey(2, "m", "text"))
	assert.Len(t, a, 32)
}
