package cache

import (
	"context"
	"errors"
	"time"

	"uloggd/core/metrics"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is the cache-aside facade. Backend failures never reach callers:
// reads degrade to misses and writes are dropped, both logged and counted.
type Store struct {
	backend    Backend
	defaultTTL time.Duration
	logger     *zap.Logger
	group      singleflight.Group
	now        func() time.Time
}

// NewStore creates a store over backend.
func NewStore(backend Backend, cfg Config, logger *zap.Logger) *Store {
	ttl := time.Duration(cfg.DefaultTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:    backend,
		defaultTTL: ttl,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source. Used by tests to move past expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// TTL returns the lifetime applied to key.
func (s *Store) TTL(key string) time.Duration {
	return TTLFor(key, s.defaultTTL)
}

// Get returns the payload for key if an unexpired entry exists.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, err := s.backend.Get(ctx, key, s.now())
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.absorb("get", key, err)
		}
		metrics.CacheMisses.WithLabelValues(Namespace(key)).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(Namespace(key)).Inc()
	return entry.Data, true
}

// GetMany returns the unexpired payloads among keys, in one backend call.
// Missing keys are absent from the result.
func (s *Store) GetMany(ctx context.Context, keys []string) map[string][]byte {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result
	}

	entries, err := s.backend.GetMany(ctx, keys, s.now())
	if err != nil {
		s.absorb("get_many", "", err)
		entries = nil
	}

	for _, e := range entries {
		result[string(e.Key)] = e.Data
	}
	for _, k := range keys {
		if _, ok := result[k]; ok {
			metrics.CacheHits.WithLabelValues(Namespace(k)).Inc()
		} else {
			metrics.CacheMisses.WithLabelValues(Namespace(k)).Inc()
		}
	}
	return result
}

// Set writes one entry. A zero ttl resolves through the key's namespace.
// It reports whether the write reached the backend.
func (s *Store) Set(ctx context.Context, key string, data []byte, ttl time.Duration) bool {
	return s.SetMany(ctx, map[string][]byte{key: data}, ttl)
}

// SetMany writes all entries in one backend call.
func (s *Store) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) bool {
	if len(items) == 0 {
		return true
	}

	now := s.now()
	entries := make([]Entry, 0, len(items))
	for k, v := range items {
		life := ttl
		if life <= 0 {
			life = s.TTL(k)
		}
		entries = append(entries, Entry{
			Key:       Key(k),
			Data:      v,
			CreatedAt: now,
			ExpiresAt: now.Add(life),
		})
	}

	if err := s.backend.Upsert(ctx, entries); err != nil {
		s.absorb("set", "", err)
		return false
	}
	return true
}

// Clear removes every entry whose key starts with prefix. An empty prefix clears everything.
func (s *Store) Clear(ctx context.Context, prefix string) bool {
	n, err := s.backend.DeletePrefix(ctx, prefix)
	if err != nil {
		s.absorb("clear", prefix, err)
		return false
	}
	s.logger.Info("Cache cleared", zap.String("prefix", prefix), zap.Int64("removed", n))
	return true
}

// GetOrSet returns the cached payload for key, or runs fetch and stores its result with ttl.
// cached reports whether the payload came from the backend. Concurrent misses on the same key
// share one fetch. Fetch errors are returned and nothing is stored.
func (s *Store) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) ([]byte, error)) (data []byte, cached bool, err error) {
	if data, ok := s.Get(ctx, key); ok {
		return data, true, nil
	}
	data, err = s.fill(ctx, key, ttl, fetch)
	return data, false, err
}

// fill runs fetch once per key across concurrent callers. The shared fetch is
// detached from any single caller's cancellation; each caller stops waiting
// when its own ctx is done.
func (s *Store) fill(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		data, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		s.Set(shared, key, data, ttl)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// GetOrSetJSON is GetOrSet for a typed value encoded as JSON.
// A cached payload that no longer decodes into T is refetched.
func GetOrSetJSON[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, bool, error) {
	var out T
	if data, ok := s.Get(ctx, key); ok {
		if err := json.Unmarshal(data, &out); err == nil {
			return out, true, nil
		}
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	data, err := s.fill(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false, err
	}
	return out, false, nil
}

func (s *Store) absorb(op, key string, err error) {
	metrics.CacheStoreErrors.WithLabelValues(op).Inc()
	s.logger.Warn("Cache backend error",
		zap.Error(&StoreError{Op: op, Key: key, Err: err}))
}
