package games

import (
	"context"
	"sync"
	"time"

	"uloggd/core/metrics"

	"go.uber.org/zap"
)

// Backfiller writes resolved records to the cache in the background.
//
// Each submission runs once in its own goroutine with its own timeout, detached from the
// request that produced it. Work is not retried and is lost if the process exits first;
// readers simply miss and refetch.
type Backfiller struct {
	cache   Cache
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewBackfiller creates a backfiller writing with ttl, each write bounded by timeout.
func NewBackfiller(cache Cache, ttl, timeout time.Duration, logger *zap.Logger) *Backfiller {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backfiller{cache: cache, ttl: ttl, timeout: timeout, logger: logger}
}

// Submit schedules items for writing. It returns false when the backfiller is closed.
func (b *Backfiller) Submit(items map[string][]byte) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		metrics.BackfillTasks.WithLabelValues("dropped").Inc()
		b.logger.Warn("Backfill dropped after shutdown", zap.Int("entries", len(items)))
		return false
	}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if !b.cache.SetMany(ctx, items, b.ttl) {
			metrics.BackfillTasks.WithLabelValues("failed").Inc()
			b.logger.Error("Cache backfill failed", zap.Int("entries", len(items)))
			return
		}
		metrics.BackfillTasks.WithLabelValues("stored").Inc()
		b.logger.Debug("Cache backfilled", zap.Int("entries", len(items)))
	}()
	return true
}

// Wait blocks until every submitted write has finished.
func (b *Backfiller) Wait() {
	b.wg.Wait()
}

// Close rejects further submissions and waits for pending writes.
func (b *Backfiller) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
}
