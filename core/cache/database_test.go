package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestDatabaseBackend_GetMany_SingleQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	backend := NewDatabaseBackend(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"key", "data", "created_at", "expires_at"}).
		AddRow("igdb_game_a", []byte(`"a"`), now, now.Add(time.Hour))
	mock.ExpectQuery("SELECT \\* FROM `cache_entries` WHERE `key` IN \\(\\?,\\?,\\?\\) AND `expires_at` > \\?").
		WillReturnRows(rows)

	entries, err := backend.GetMany(context.Background(), []string{"igdb_game_a", "igdb_game_b", "igdb_game_c"}, now)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Key("igdb_game_a"), entries[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseBackend_GetMany_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	entries, err := NewDatabaseBackend(db).GetMany(context.Background(), nil, time.Now())
	assert.NoError(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseBackend_Get_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `cache_entries` WHERE `key` = \\? AND `expires_at` > \\?").
		WillReturnRows(sqlmock.NewRows([]string{"key", "data", "created_at", "expires_at"}))

	entry, err := NewDatabaseBackend(db).Get(context.Background(), "igdb_game_a", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, entry)
}

func TestDatabaseBackend_Get_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("server has gone away"))

	_, err := NewDatabaseBackend(db).Get(context.Background(), "igdb_game_a", time.Now())
	assert.EqualError(t, err, "server has gone away")
}

func TestDatabaseBackend_Upsert(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `cache_entries` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := NewDatabaseBackend(db).Upsert(context.Background(), []Entry{
		{Key: "igdb_game_a", Data: []byte(`1`), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		{Key: "igdb_game_b", Data: []byte(`2`), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseBackend_DeletePrefix(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `cache_entries` WHERE `key` >= \\? AND `key` < \\?").
		WithArgs("igdb_", "igdb`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := NewDatabaseBackend(db).DeletePrefix(context.Background(), "igdb_")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntry_MySQLColumnTypes(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec("CREATE TABLE `cache_entries` \\(`key` varchar\\(191\\) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin.*`data` mediumblob NOT NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.Migrator().CreateTable(&Entry{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKey_GormDBDataType(t *testing.T) {
	mysqlDB, _ := setupMockDB(t)
	assert.Equal(t, "varchar(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", Key("").GormDBDataType(mysqlDB, nil))

	sqliteDB := setupSQLiteDB(t)
	assert.Equal(t, "varchar(191)", Key("").GormDBDataType(sqliteDB, nil))
}

func TestPrefixSuccessor(t *testing.T) {
	s, ok := prefixSuccessor("igdb_")
	assert.True(t, ok)
	assert.Equal(t, "igdb`", s)

	s, ok = prefixSuccessor("a\xff")
	assert.True(t, ok)
	assert.Equal(t, "b", s)

	_, ok = prefixSuccessor("\xff\xff")
	assert.False(t, ok)
}
