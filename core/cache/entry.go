package cache

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Key is a cache key. It compares byte-wise on every driver, so equality is
// case sensitive and prefix ranges follow byte order.
type Key string

// GormDBDataType pins a binary collation on MySQL, whose default collations
// fold case and accents. SQLite already compares text as bytes.
func (Key) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "mysql" {
		return "varchar(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin"
	}
	return "varchar(191)"
}

// Entry is one cached payload. The payload is opaque JSON.
type Entry struct {
	Key       Key       `gorm:"column:key;primaryKey" json:"key"`
	Data      []byte    `gorm:"column:data;type:mediumblob;not null" json:"data"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;index" json:"expires_at"`
}

// TableName pins the table name for gorm.
func (Entry) TableName() string {
	return "cache_entries"
}

// Valid reports whether the entry is still fresh at now.
func (e Entry) Valid(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}
