// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (tests, single-node setups)
// connections from the application's configuration.
//
// # Tables
//
// Three tables back the service:
//   - cache_entries: the durable store behind the TTL cache (core/cache)
//   - user_games: one current-state row per (user, game)
//   - game_logs: the append-only event history per (user, game)
//
// # Schema Inspection
//
// GetTableColumns reads the live column definitions so the integrity feature can verify
// them against the gorm models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "cache_entries")
package database
