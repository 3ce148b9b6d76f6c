package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisLimiterUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisLimiter(ctx, &redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	}, 10, time.Minute)
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestAllowPropagatesRedisErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := newRedisLimiter(client, 10, time.Minute)
	if _, err := l.Allow(context.Background(), "203.0.113.7"); err == nil {
		t.Error("expected error from unreachable redis")
	}
}
