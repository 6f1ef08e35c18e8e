package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/heroes/internal/database/testutil"
	"github.com/charlesng35/heroes/internal/models"
)

func newDatabaseStore(t *testing.T) *DatabaseStore {
	t.Helper()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store := NewDatabaseStore(db)
	require.NotNil(t, store)
	return store
}

func TestNewDatabaseStoreNilDB(t *testing.T) {
	require.Nil(t, NewDatabaseStore(nil))
}

func TestDatabaseStore_SetGetDelete(t *testing.T) {
	store := newDatabaseStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "heroes", []byte("first"), time.Minute))
	require.NoError(t, store.Set(ctx, "heroes", []byte("second"), time.Minute))

	value, ok, err := store.Get(ctx, "heroes")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", string(value))

	require.NoError(t, store.Delete(ctx, "heroes", "missing"))
	_, ok, err = store.Get(ctx, "heroes")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDatabaseStore_ExpiredEntriesAreMisses(t *testing.T) {
	store := newDatabaseStore(t)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	require.NoError(t, store.Set(ctx, "heroes", []byte("v"), time.Minute))

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, ok, err := store.Get(ctx, "heroes")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDatabaseStore_PurgeExpired(t *testing.T) {
	store := newDatabaseStore(t)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }
	require.NoError(t, store.Set(ctx, "stale", []byte("v"), time.Minute))
	require.NoError(t, store.Set(ctx, "fresh", []byte("v"), time.Hour))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

	store.now = func() time.Time { return base.Add(10 * time.Minute) }
	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	var remaining int64
	require.NoError(t, store.db.Model(&models.CacheEntry{}).Count(&remaining).Error)
	require.EqualValues(t, 2, remaining)
}

func TestDatabaseStore_IncrementWithTTL(t *testing.T) {
	store := newDatabaseStore(t)
	ctx := context.Background()

	base := time.Now()
	store.now = func() time.Time { return base }

	count, ttl, err := store.IncrementWithTTL(ctx, "rl", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, time.Minute, ttl)

	count, _, err = store.IncrementWithTTL(ctx, "rl", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	count, _, err = store.IncrementWithTTL(ctx, "rl", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestDatabaseStore_Ping(t *testing.T) {
	store := newDatabaseStore(t)
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Close())
}
