package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_EventsNewestFirst(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.AppendEvent(ctx, &GameLog{UserID: "u", GameID: 1, GameSlug: "a", CreatedAt: t0}))
	require.NoError(t, repo.AppendEvent(ctx, &GameLog{UserID: "u", GameID: 2, GameSlug: "b", CreatedAt: t0.Add(time.Hour)}))
	require.NoError(t, repo.AppendEvent(ctx, &GameLog{UserID: "u", GameID: 3, GameSlug: "c", CreatedAt: t0}))
	require.NoError(t, repo.AppendEvent(ctx, &GameLog{UserID: "v", GameID: 4, GameSlug: "d", CreatedAt: t0}))

	events, err := repo.Events(ctx, "u")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "b", events[0].GameSlug)
	assert.Equal(t, "c", events[1].GameSlug, "ties break on id")
	assert.Equal(t, "a", events[2].GameSlug)
}

func TestRepository_FindState(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	row, err := repo.FindState(ctx, "u", 1)
	require.NoError(t, err)
	assert.Nil(t, row)

	require.NoError(t, repo.SaveState(ctx, &UserGame{UserID: "u", GameID: 1, GameSlug: "a", Playing: true}))
	row, err = repo.FindState(ctx, "u", 1)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Playing)

	require.NoError(t, repo.DeleteState(ctx, row.ID))
	row, err = repo.FindState(ctx, "u", 1)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestModels_Projection(t *testing.T) {
	completed := "completed"
	state := UserGame{GameID: 1, GameSlug: "a", Status: &completed, Wishlist: true}.ToState()
	assert.Equal(t, "completed", string(state.Status))
	assert.True(t, state.Flags.Wishlist)
	assert.False(t, state.Empty())

	assert.True(t, UserGame{GameID: 1, GameSlug: "a"}.ToState().Empty())
	assert.Nil(t, statusPtr(""))
}
