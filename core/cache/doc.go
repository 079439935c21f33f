// Package cache implements the TTL cache-aside layer in front of upstream catalog data.
//
// Entries are opaque JSON payloads addressed by string keys. A key's namespace is the text
// before its first underscore and selects its lifetime:
//
//	igdb     24h
//	steam    10m
//	xbox     10m
//	twitch   5m
//	discord  1m
//	(other)  Config.DefaultTTLSeconds
//
// # Backends
//
// Store persists through a Backend. DatabaseBackend keeps entries in the cache_entries table
// (gorm, MySQL or SQLite); StorageBackend keeps one JSON envelope per key in an object store
// bucket. Every backend filters expired entries at read time.
//
// # Failure model
//
// The cache is never authoritative. Backend errors are logged and counted, reads then behave
// as misses and writes are dropped. Callers only ever see errors from their own fetch functions.
//
// # Usage
//
//	store := cache.NewStore(cache.NewDatabaseBackend(db), cfg.Cache, logger)
//	data, cached, err := store.GetOrSet(ctx, "igdb_game_zelda", 0, fetch)
//	store.Clear(ctx, "igdb_")
package cache
