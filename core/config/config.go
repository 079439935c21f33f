package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"uloggd/core/cache"
	"uloggd/core/catalog"
	"uloggd/core/database"
	"uloggd/core/logger"
	"uloggd/core/server"
	"uloggd/core/shortid"
	"uloggd/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage backing the storage cache backend.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Cache holds configuration for the TTL cache and its backend selection.
	Cache cache.Config `mapstructure:"cache"`
	// Catalog holds configuration for the IGDB upstream.
	Catalog catalog.Config `mapstructure:"catalog"`
	// ShortID holds configuration for public identifier decoding.
	ShortID shortid.Config `mapstructure:"shortid"`
}

// LoadConfig reads path/.env (if present) and the environment, applies the struct tag
// defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// catalog.chunk_size <- CATALOG_CHUNK_SIZE
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if !c.Server.IsValidEnvironment() {
		return fmt.Errorf("server.environment: unknown environment %q", c.Server.Environment)
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver)
	}
	switch c.Cache.Backend {
	case cache.BackendDatabase, cache.BackendStorage:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Catalog.ChunkSize <= 0 {
		return fmt.Errorf("catalog.chunk_size must be positive")
	}
	if c.Catalog.MaxBatchSize < c.Catalog.ChunkSize {
		return fmt.Errorf("catalog.max_batch_size must be at least catalog.chunk_size")
	}
	if c.Catalog.RequestsPerSecond <= 0 {
		return fmt.Errorf("catalog.requests_per_second must be positive")
	}
	return nil
}

// bindValues walks the section structs and registers every `mapstructure` key with its
// `default` tag. Keys are registered even when the default is empty so AutomaticEnv sees them.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
