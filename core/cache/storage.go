package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"uloggd/core/storage"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// storageFetchConcurrency bounds parallel GetObject calls in GetMany.
const storageFetchConcurrency = 16

// StorageBackend stores one JSON envelope per entry in an object store bucket.
// Object names are <prefix>/<key>.json; expiry travels inside the envelope.
type StorageBackend struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageBackend creates a backend writing under prefix in bucket.
func NewStorageBackend(client storage.Client, bucket, prefix string) *StorageBackend {
	return &StorageBackend{
		client: client,
		bucket: bucket,
		prefix: strings.TrimSuffix(prefix, "/"),
	}
}

func (b *StorageBackend) objectName(key string) string {
	return b.prefix + "/" + key + ".json"
}

// Get downloads and decodes the envelope for key.
// A missing object and an expired envelope are both ErrNotFound.
func (b *StorageBackend) Get(ctx context.Context, key string, now time.Time) (*Entry, error) {
	reader, err := b.client.GetObject(ctx, b.bucket, b.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, notFoundOr(err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, notFoundOr(err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache object %s: %w", key, err)
	}
	if !entry.Valid(now) {
		return nil, ErrNotFound
	}
	return &entry, nil
}

// GetMany fetches the keys concurrently; object stores have no multi-get.
// Misses are skipped, the first non-miss failure aborts the lookup.
func (b *StorageBackend) GetMany(ctx context.Context, keys []string, now time.Time) ([]Entry, error) {
	var (
		mu      sync.Mutex
		entries []Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(storageFetchConcurrency)

	for _, key := range keys {
		key := key
		g.Go(func() error {
			entry, err := b.Get(gctx, key, now)
			if err == ErrNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, *entry)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert overwrites one object per entry. PutObject replaces atomically.
func (b *StorageBackend) Upsert(ctx context.Context, entries []Entry) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(storageFetchConcurrency)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			data, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("failed to encode cache object %s: %w", entry.Key, err)
			}
			_, err = b.client.PutObject(gctx, b.bucket, b.objectName(string(entry.Key)),
				bytes.NewReader(data), int64(len(data)),
				minio.PutObjectOptions{ContentType: "application/json"})
			if err != nil {
				return fmt.Errorf("failed to write cache object %s: %w", entry.Key, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// DeletePrefix lists the objects under the key prefix and removes them in one batch.
func (b *StorageBackend) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	var names []string
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{
		Prefix:    b.prefix + "/" + prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list cache objects: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}

	if len(names) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(names))
	for _, name := range names {
		objectsCh <- minio.ObjectInfo{Key: name}
	}
	close(objectsCh)

	var failed []string
	for rmErr := range b.client.RemoveObjects(ctx, b.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", rmErr.ObjectName, rmErr.Err))
		}
	}

	if len(failed) > 0 {
		return int64(len(names) - len(failed)), fmt.Errorf("batch delete had %d errors: %v", len(failed), failed)
	}
	return int64(len(names)), nil
}

func notFoundOr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}
