package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Evicter removes sessions idle for longer than maxIdle
type Evicter interface {
	EvictIdle(maxIdle time.Duration) int
}

// Cleaner handles periodic eviction of idle quiz sessions
type Cleaner struct {
	store    Evicter
	interval time.Duration
	maxIdle  time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(store Evicter, interval, maxIdle time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		store:    store,
		interval: interval,
		maxIdle:  maxIdle,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "max_idle", c.maxIdle)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup evicts idle sessions once
func (c *Cleaner) cleanup() int {
	slog.Debug("running cleanup cycle")

	evicted := c.store.EvictIdle(c.maxIdle)
	if evicted > 0 {
		slog.Info("idle sessions evicted", "count", evicted)
	}
	return evicted
}
