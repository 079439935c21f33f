package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Backend when no unexpired entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// Backend is the durable store behind the cache.
// Lookups only return entries that are unexpired at now.
type Backend interface {
	// Get returns the entry for key, or ErrNotFound.
	Get(ctx context.Context, key string, now time.Time) (*Entry, error)
	// GetMany returns the unexpired entries among keys in a single backend call.
	GetMany(ctx context.Context, keys []string, now time.Time) ([]Entry, error)
	// Upsert inserts or overwrites entries by key.
	Upsert(ctx context.Context, entries []Entry) error
	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

// StoreError describes an absorbed backend failure. It is logged, never returned by Store.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key == "" {
		return "cache " + e.Op + ": " + e.Err.Error()
	}
	return "cache " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
