package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageplan/trip-planner/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, exists, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, exists)

	state := model.DialogState{
		Name:        "Alex",
		Preferences: []string{"food"},
		Transcript:  []model.Turn{{Role: model.RoleHuman, Content: "Alex"}},
	}
	require.NoError(t, store.Put(ctx, "s1", state))

	got, exists, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, state, got)
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := model.DialogState{Preferences: []string{"food"}}
	require.NoError(t, store.Put(ctx, "s1", state))

	// Mutating what Put was handed must not reach the store.
	state.Preferences[0] = "shopping"

	got, _, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, got.Preferences)

	// Mutating what Get returned must not reach the store either.
	got.Preferences[0] = "nightlife"

	again, _, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, again.Preferences)
}

func TestMemoryStorePing(t *testing.T) {
	assert.NoError(t, NewMemoryStore().Ping(context.Background()))
}
