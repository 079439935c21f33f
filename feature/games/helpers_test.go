package games

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"uloggd/core/cache"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeFetcher serves records from a slug-keyed table and records every call.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   [][]string
	records map[string]string
	fail    func(slugs []string) error
	barrier *barrier
}

func newFakeFetcher(records map[string]string) *fakeFetcher {
	return &fakeFetcher{records: records}
}

func (f *fakeFetcher) Games(ctx context.Context, slugs []string) ([]json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), slugs...))
	f.mu.Unlock()

	if f.barrier != nil {
		if err := f.barrier.await(ctx); err != nil {
			return nil, err
		}
	}
	if f.fail != nil {
		if err := f.fail(slugs); err != nil {
			return nil, err
		}
	}

	var out []json.RawMessage
	for _, s := range slugs {
		if rec, ok := f.records[s]; ok {
			out = append(out, json.RawMessage(rec))
		}
	}
	return out, nil
}

func (f *fakeFetcher) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

func (f *fakeFetcher) CallSizes() []int {
	var sizes []int
	for _, c := range f.Calls() {
		sizes = append(sizes, len(c))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

// barrier releases waiters once n of them have arrived.
type barrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	release chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, release: make(chan struct{})}
}

func (b *barrier) await(ctx context.Context) error {
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.n {
		close(b.release)
	}
	b.mu.Unlock()

	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return errors.New("chunk requests were not issued concurrently")
	}
}

// memCache is an in-memory Cache counting bulk lookups.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	lookups int
	ttls    []time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetMany(_ context.Context, keys []string) map[string][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	out := make(map[string][]byte)
	for _, k := range keys {
		if v, ok := c.data[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (c *memCache) SetMany(_ context.Context, items map[string][]byte, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range items {
		c.data[k] = v
	}
	c.ttls = append(c.ttls, ttl)
	return true
}

func (c *memCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// recordingSubmitter captures backfill submissions without writing them.
type recordingSubmitter struct {
	mu    sync.Mutex
	items []map[string][]byte
}

func (s *recordingSubmitter) Submit(items map[string][]byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items)
	return true
}

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&cache.Entry{}))
	return db
}

func setupStore(t *testing.T) (*cache.Store, *gorm.DB) {
	t.Helper()
	db := setupSQLiteDB(t)
	return cache.NewStore(cache.NewDatabaseBackend(db), cache.Config{DefaultTTLSeconds: 600}, zap.NewNop()), db
}
