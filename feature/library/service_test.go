package library

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"uloggd/core/apierror"
	"uloggd/core/database"
	"uloggd/core/reconcile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db := setupDB(t)
	return NewService(NewRepository(db), zap.NewNop()), db
}

func ptr[T any](v T) *T { return &v }

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestService_Library(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := uuid.NewString()

	require.NoError(t, db.Create(&UserGame{UserID: user, GameID: 1, GameSlug: "zelda", Playing: true, UpdatedAt: t0}).Error)
	require.NoError(t, db.Create(&UserGame{UserID: "someone-else", GameID: 1, GameSlug: "zelda", Liked: true, UpdatedAt: t0}).Error)
	require.NoError(t, db.Create(&GameLog{UserID: user, GameID: 1, GameSlug: "zelda", Rating: ptr(80), Wishlist: true, CreatedAt: t0.Add(time.Hour)}).Error)
	require.NoError(t, db.Create(&GameLog{UserID: user, GameID: 1, GameSlug: "zelda", Rating: ptr(90), Status: ptr("completed"), CreatedAt: t0.Add(2 * time.Hour)}).Error)
	require.NoError(t, db.Create(&GameLog{UserID: user, GameID: 2, GameSlug: "mario", Status: ptr("abandoned"), CreatedAt: t0}).Error)

	lib, err := svc.Library(ctx, user, Query{})
	require.NoError(t, err)

	assert.Equal(t, user, lib.UserID)
	assert.Equal(t, reconcile.ShelfAll, lib.Shelf)
	require.Len(t, lib.Games, 2)

	zelda := lib.Games[0]
	assert.Equal(t, "zelda", zelda.Slug)
	assert.True(t, zelda.Playing)
	assert.True(t, zelda.Wishlist)
	assert.False(t, zelda.Liked, "other users' rows do not leak in")
	assert.Equal(t, reconcile.StatusCompleted, zelda.Status)
	require.NotNil(t, zelda.AvgRating)
	assert.Equal(t, 85, *zelda.AvgRating)
	assert.Equal(t, 2, zelda.RatingCount)
	assert.True(t, zelda.LatestAt.Equal(t0.Add(2*time.Hour)))

	assert.Equal(t, 2, lib.Summary.Total)
	assert.Equal(t, 1, lib.Summary.Dropped)
	assert.Equal(t, 1, lib.Summary.Rated)
}

func TestService_Library_ShelfAndPaging(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := uuid.NewString()

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&UserGame{
			UserID: user, GameID: int64(i + 1), GameSlug: string(rune('a' + i)),
			Backlog: true, UpdatedAt: t0.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	lib, err := svc.Library(ctx, user, Query{Shelf: "backlog", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, lib.TotalPages)
	require.Len(t, lib.Games, 2)
	assert.Equal(t, "c", lib.Games[0].Slug)
	assert.Equal(t, "b", lib.Games[1].Slug)

	lib, err = svc.Library(ctx, user, Query{Shelf: "backlog", Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, lib.Games)

	lib, err = svc.Library(ctx, user, Query{Shelf: "playing"})
	require.NoError(t, err)
	assert.Empty(t, lib.Games)
	assert.Equal(t, 1, lib.TotalPages)
	assert.Equal(t, 5, lib.Summary.Backlog)

	_, err = svc.Library(ctx, user, Query{Shelf: "nope"})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}

func TestService_UpdateState(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := uuid.NewString()

	// Clearing a flag on a game with no state creates nothing.
	res, err := svc.UpdateState(ctx, user, Update{GameID: 1, GameSlug: "zelda", Field: FieldLiked, Value: false})
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	var count int64
	db.Model(&UserGame{}).Count(&count)
	assert.Zero(t, count)

	res, err = svc.UpdateState(ctx, user, Update{GameID: 1, GameSlug: " zelda ", Field: FieldLiked, Value: true})
	require.NoError(t, err)
	require.NotNil(t, res.State)
	assert.Equal(t, "zelda", res.State.GameSlug)
	assert.True(t, res.State.Liked)

	res, err = svc.UpdateState(ctx, user, Update{GameID: 1, GameSlug: "zelda", Field: FieldStatus, Value: "played"})
	require.NoError(t, err)
	assert.Equal(t, "played", *res.State.Status)
	assert.True(t, res.State.Liked)
	db.Model(&UserGame{}).Count(&count)
	assert.Equal(t, int64(1), count)

	_, err = svc.UpdateState(ctx, user, Update{GameID: 1, GameSlug: "zelda", Field: FieldStatus, Value: nil})
	require.NoError(t, err)

	// Removing the last marker deletes the row.
	res, err = svc.UpdateState(ctx, user, Update{GameID: 1, GameSlug: "zelda", Field: FieldLiked, Value: false})
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	db.Model(&UserGame{}).Count(&count)
	assert.Zero(t, count)
}

func TestService_UpdateState_Validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		u    Update
	}{
		{"missing game", Update{GameSlug: "a", Field: FieldLiked, Value: true}},
		{"missing slug", Update{GameID: 1, Field: FieldLiked, Value: true}},
		{"unknown field", Update{GameID: 1, GameSlug: "a", Field: "rating", Value: 5}},
		{"bad status", Update{GameID: 1, GameSlug: "a", Field: FieldStatus, Value: "beaten"}},
		{"status type", Update{GameID: 1, GameSlug: "a", Field: FieldStatus, Value: 3.0}},
		{"flag type", Update{GameID: 1, GameSlug: "a", Field: FieldPlaying, Value: "yes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateState(ctx, "user", tt.u)
			assert.True(t, apierror.Is(err, apierror.KindValidation), "got %v", err)
		})
	}
}

func TestService_AppendEvent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	user := uuid.NewString()

	ev := &GameLog{GameID: 3, GameSlug: "metroid", Rating: ptr(70), Liked: true}
	require.NoError(t, svc.AppendEvent(ctx, user, ev))
	assert.NotZero(t, ev.ID)
	assert.False(t, ev.CreatedAt.IsZero())

	aggs, err := svc.Aggregates(ctx, user)
	require.NoError(t, err)
	assert.True(t, aggs["metroid"].Liked)
	assert.True(t, aggs["metroid"].HasLog)

	err = svc.AppendEvent(ctx, user, &GameLog{GameID: 3, GameSlug: "metroid", Rating: ptr(101)})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
	err = svc.AppendEvent(ctx, user, &GameLog{GameID: 3, GameSlug: "metroid", Status: ptr("beaten")})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}

func TestService_LongSlugsKeepWholeRunes(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	user := uuid.NewString()
	slug := strings.Repeat("a", MaxSlugLength-1) + "é"

	res, err := svc.UpdateState(ctx, user, Update{GameID: 1, GameSlug: slug, Field: FieldLiked, Value: true})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(res.State.GameSlug))
	assert.Equal(t, strings.Repeat("a", MaxSlugLength-1), res.State.GameSlug)

	ev := &GameLog{GameID: 1, GameSlug: slug, Liked: true}
	require.NoError(t, svc.AppendEvent(ctx, user, ev))
	assert.True(t, utf8.ValidString(ev.GameSlug))
	assert.Len(t, ev.GameSlug, MaxSlugLength-1)
}

func TestTruncateSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "zelda", "zelda"},
		{"exact", strings.Repeat("a", MaxSlugLength), strings.Repeat("a", MaxSlugLength)},
		{"ascii over", strings.Repeat("a", MaxSlugLength+3), strings.Repeat("a", MaxSlugLength)},
		{"two byte rune at edge", strings.Repeat("a", MaxSlugLength-1) + "é", strings.Repeat("a", MaxSlugLength-1)},
		{"four byte rune at edge", strings.Repeat("a", MaxSlugLength-2) + "🎮", strings.Repeat("a", MaxSlugLength-2)},
		{"rune fits", strings.Repeat("a", MaxSlugLength-2) + "é!", strings.Repeat("a", MaxSlugLength-2) + "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateSlug(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
