package cache

// Config holds configuration for the TTL cache.
type Config struct {
	// Backend selects the durable store (database, storage).
	Backend string `mapstructure:"backend" default:"database"`
	// DefaultTTLSeconds applies to keys whose prefix has no TTL of its own.
	DefaultTTLSeconds int `mapstructure:"default_ttl_seconds" default:"600"`
	// StoragePrefix is the object prefix used by the storage backend.
	StoragePrefix string `mapstructure:"storage_prefix" default:"cache"`
}

const (
	BackendDatabase = "database"
	BackendStorage  = "storage"
)
