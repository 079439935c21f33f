package cache

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"uloggd/core/storage/mocks"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, e Entry) io.ReadCloser {
	t.Helper()
	data, err := json.Marshal(e)
	require.NoError(t, err)
	return io.NopCloser(bytes.NewReader(data))
}

func TestStorageBackend_Get(t *testing.T) {
	client := new(mocks.Client)
	backend := NewStorageBackend(client, "bucket", "cache/")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	client.On("GetObject", ctx, "bucket", "cache/igdb_game_a.json", mock.Anything).
		Return(envelope(t, Entry{Key: "igdb_game_a", Data: []byte(`{"id":1}`), ExpiresAt: now.Add(time.Hour)}), nil)
	client.On("GetObject", ctx, "bucket", "cache/igdb_game_old.json", mock.Anything).
		Return(envelope(t, Entry{Key: "igdb_game_old", Data: []byte(`1`), ExpiresAt: now.Add(-time.Second)}), nil)
	client.On("GetObject", ctx, "bucket", "cache/igdb_game_none.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	entry, err := backend.Get(ctx, "igdb_game_a", now)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":1}`), entry.Data)

	_, err = backend.Get(ctx, "igdb_game_old", now)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = backend.Get(ctx, "igdb_game_none", now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorageBackend_GetMany(t *testing.T) {
	client := new(mocks.Client)
	backend := NewStorageBackend(client, "bucket", "cache")
	now := time.Now().UTC()

	client.On("GetObject", mock.Anything, "bucket", "cache/a.json", mock.Anything).
		Return(envelope(t, Entry{Key: "a", Data: []byte(`1`), ExpiresAt: now.Add(time.Hour)}), nil)
	client.On("GetObject", mock.Anything, "bucket", "cache/b.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	entries, err := backend.GetMany(context.Background(), []string{"a", "b"}, now)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Key("a"), entries[0].Key)

	client.On("GetObject", mock.Anything, "bucket", "cache/c.json", mock.Anything).
		Return(nil, errors.New("access denied"))
	_, err = backend.GetMany(context.Background(), []string{"a", "c"}, now)
	assert.Error(t, err)
}

func TestStorageBackend_Upsert(t *testing.T) {
	client := new(mocks.Client)
	backend := NewStorageBackend(client, "bucket", "cache")
	now := time.Now().UTC()

	client.On("PutObject", mock.Anything, "bucket", "cache/igdb_game_a.json", mock.Anything, mock.AnythingOfType("int64"),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Return(minio.UploadInfo{}, nil)

	err := backend.Upsert(context.Background(), []Entry{{Key: "igdb_game_a", Data: []byte(`1`), ExpiresAt: now.Add(time.Hour)}})
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestStorageBackend_DeletePrefix(t *testing.T) {
	client := new(mocks.Client)
	backend := NewStorageBackend(client, "bucket", "cache")
	ctx := context.Background()

	listed := func(opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		assert.Equal(t, "cache/igdb_", opts.Prefix)
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "cache/igdb_game_a.json"}
		ch <- minio.ObjectInfo{Key: "cache/igdb_game_b.json"}
		close(ch)
		return ch
	}

	var removed []string
	remove := func(objects <-chan minio.ObjectInfo) <-chan minio.RemoveObjectError {
		for obj := range objects {
			removed = append(removed, obj.Key)
		}
		ch := make(chan minio.RemoveObjectError)
		close(ch)
		return ch
	}

	client.On("ListObjects", ctx, "bucket", mock.Anything).Return(listed)
	client.On("RemoveObjects", ctx, "bucket", mock.Anything, mock.Anything).Return(remove)

	n, err := backend.DeletePrefix(ctx, "igdb_")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, []string{"cache/igdb_game_a.json", "cache/igdb_game_b.json"}, removed)
}

func TestStorageBackend_DeletePrefix_Empty(t *testing.T) {
	client := new(mocks.Client)
	backend := NewStorageBackend(client, "bucket", "cache")

	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return(nil)

	n, err := backend.DeletePrefix(context.Background(), "steam_")
	assert.NoError(t, err)
	assert.Zero(t, n)
	client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
