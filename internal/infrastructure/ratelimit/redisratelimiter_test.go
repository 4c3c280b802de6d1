package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 5}
	key := "test-key-minute"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_UnlimitedWhenZero(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := Config{}
	key := "test-key-unlimited"

	for i := 0; i < 20; i++ {
		allowed, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestRedisRateLimiter_GetRemaining(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 10}
	key := "test-key-remaining"

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
	}

	used, err := limiter.GetRemaining(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), used)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 2}
	key := "test-key-reset"

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, key))

	allowed, err = limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.True(t, allowed)
}
