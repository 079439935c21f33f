package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertBatchSize bounds the rows per INSERT statement.
const upsertBatchSize = 100

var keyColumn = clause.Column{Name: "key"}

// DatabaseBackend stores entries in the cache_entries table.
type DatabaseBackend struct {
	db *gorm.DB
}

// NewDatabaseBackend creates a backend over db.
func NewDatabaseBackend(db *gorm.DB) *DatabaseBackend {
	return &DatabaseBackend{db: db}
}

// Get performs a point lookup filtered by expires_at > now.
func (b *DatabaseBackend) Get(ctx context.Context, key string, now time.Time) (*Entry, error) {
	var entry Entry
	err := b.db.WithContext(ctx).
		Where(clause.Eq{Column: keyColumn, Value: key}).
		Where(clause.Gt{Column: clause.Column{Name: "expires_at"}, Value: now}).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetMany performs one bulk lookup by key list filtered by expires_at > now.
func (b *DatabaseBackend) GetMany(ctx context.Context, keys []string, now time.Time) ([]Entry, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = k
	}

	var entries []Entry
	err := b.db.WithContext(ctx).
		Where(clause.IN{Column: keyColumn, Values: values}).
		Where(clause.Gt{Column: clause.Column{Name: "expires_at"}, Value: now}).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert writes entries with ON CONFLICT (key) DO UPDATE, so repeated writes are idempotent.
func (b *DatabaseBackend) Upsert(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{keyColumn},
			DoUpdates: clause.AssignmentColumns([]string{"data", "created_at", "expires_at"}),
		}).
		CreateInBatches(&entries, upsertBatchSize).Error
}

// DeletePrefix deletes the key range [prefix, successor(prefix)).
// A range predicate avoids LIKE escaping and can use the primary key index.
func (b *DatabaseBackend) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	tx := b.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})

	if prefix != "" {
		tx = tx.Where(clause.Gte{Column: keyColumn, Value: prefix})
		if upper, ok := prefixSuccessor(prefix); ok {
			tx = tx.Where(clause.Lt{Column: keyColumn, Value: upper})
		}
	}

	result := tx.Delete(&Entry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete prefix %q: %w", prefix, result.Error)
	}
	return result.RowsAffected, nil
}

// prefixSuccessor returns the smallest string greater than every string starting with prefix.
func prefixSuccessor(prefix string) (string, bool) {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1]), true
		}
	}
	return "", false
}
