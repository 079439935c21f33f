package cache

import (
	"strings"
	"time"
)

// prefixTTLs maps a key namespace (text before the first underscore) to its lifetime.
var prefixTTLs = map[string]time.Duration{
	"igdb":    24 * time.Hour,
	"steam":   10 * time.Minute,
	"xbox":    10 * time.Minute,
	"twitch":  5 * time.Minute,
	"discord": time.Minute,
}

// Namespace returns the part of key before the first underscore, or the whole key.
func Namespace(key string) string {
	if i := strings.IndexByte(key, '_'); i >= 0 {
		return key[:i]
	}
	return key
}

// TTLFor resolves the lifetime of key, falling back to def for unknown namespaces.
func TTLFor(key string, def time.Duration) time.Duration {
	if ttl, ok := prefixTTLs[Namespace(key)]; ok {
		return ttl
	}
	return def
}
