// Package integrity provides infrastructure health checks.
//
// # Checks Provided
//
//   - Schema: Validates that the cache, state and log tables match their gorm models (columns, pinned types).
//   - Storage: Checks that the cache bucket exists when the storage cache backend is enabled, and can create it.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks. Responds 503 when unhealthy.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the bucket check (supports ?fix=true).
package integrity
