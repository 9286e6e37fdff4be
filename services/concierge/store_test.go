package concierge

import (
	"context"
	"testing"
	"time"

	"guestdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreExpiry(t *testing.T) {
	clock := day(2026, 8, 22)
	store := NewMemorySessionStore(30 * time.Minute)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "39333", &models.Session{CreatedAt: clock}))

	got, err := store.Get(ctx, "39333")
	require.NoError(t, err)
	assert.NotNil(t, got)

	// Still alive right at the TTL boundary.
	clock = clock.Add(30 * time.Minute)
	got, err = store.Get(ctx, "39333")
	require.NoError(t, err)
	assert.NotNil(t, got)

	// Expired one tick later; expiry is passive, on access.
	clock = clock.Add(time.Second)
	got, err = store.Get(ctx, "39333")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionStoreSetRefreshesTTL(t *testing.T) {
	clock := day(2026, 8, 22)
	store := NewMemorySessionStore(30 * time.Minute)
	store.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "39333", &models.Session{}))
	clock = clock.Add(20 * time.Minute)
	require.NoError(t, store.Set(ctx, "39333", &models.Session{}))

	// 20 + 25 minutes after creation, but only 25 after the last write.
	clock = clock.Add(25 * time.Minute)
	got, err := store.Get(ctx, "39333")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemorySessionStoreClear(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "39333", &models.Session{}))
	require.NoError(t, store.Clear(ctx, "39333"))

	got, err := store.Get(ctx, "39333")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing an absent key is not an error.
	assert.NoError(t, store.Clear(ctx, "nobody"))
}
