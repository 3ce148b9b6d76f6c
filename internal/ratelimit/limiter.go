// Package ratelimit counts requests per client in fixed windows stored in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "quiz:ratelimit:"

// Result is the outcome of a rate limit check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client may make another request
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter implements Limiter with one INCR counter per key and window
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter allowing limit requests per window.
// The connection is verified with a ping.
func NewRedisLimiter(ctx context.Context, opts *redis.Options, limit int, window time.Duration) (*RedisLimiter, error) {
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisLimiter(client, limit, window), nil
}

func newRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow increments the counter for key and reports whether it is within the limit
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := keyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	// First hit of a window starts its expiry
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	res := Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: l.limit - int(count),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}

	if !res.Allowed {
		ttl, err := l.client.TTL(ctx, redisKey).Result()
		if err != nil || ttl < 0 {
			ttl = l.window
		}
		res.RetryAfter = ttl
	}

	return res, nil
}

// Ping checks Redis connectivity
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
