// Package config provides configuration management for uloggd.
//
// Values come from environment variables, optionally seeded from a .env file.
// Defaults are declared on the section structs with `default` tags and registered
// with Viper by reflection, so every key is visible to AutomaticEnv.
//
// # Configuration Structure
//
//   - Server: HTTP server settings (port, environment, limits)
//   - Log: Logging level and format
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Cache: TTL defaults and backend selection
//   - Catalog: IGDB credentials, rate limits and batching
//   - ShortID: Short id decode mode
//
// Nested keys map to upper-case environment variables joined by underscores,
// for example CATALOG_CHUNK_SIZE sets catalog.chunk_size.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
