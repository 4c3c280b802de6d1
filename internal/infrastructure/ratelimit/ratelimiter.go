// Package ratelimit provides request rate limiting backed by Redis.
package ratelimit

import (
	"context"
	"time"
)

type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config Config) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
