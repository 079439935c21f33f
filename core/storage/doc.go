// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow Client interface. The service uses object
// storage as an alternative durable backend for the TTL cache (see core/cache StorageBackend):
// each cache entry is one JSON object, prefix invalidation is a listing followed by a batch
// removal.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so storage interactions can be mocked
// in unit tests (core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket verification and repair (integrity feature).
//   - PutObject / GetObject: write and read cache entry envelopes.
//   - ListObjects / RemoveObjects: prefix invalidation.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
