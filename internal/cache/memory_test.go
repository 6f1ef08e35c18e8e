package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore(10, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "heroes", []byte(`[{"id":1}]`), time.Minute))

	value, ok, err := store.Get(ctx, "heroes")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":1}]`, string(value))

	require.NoError(t, store.Delete(ctx, "heroes"))
	_, ok, err = store.Get(ctx, "heroes")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(10, time.Minute)
	ctx := context.Background()

	payload := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", payload, time.Minute))
	payload[0] = 'z'

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", string(value))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(10, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_EvictsSoonestExpiryAtCapacity(t *testing.T) {
	store := NewMemoryStore(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "soon", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "later", []byte("2"), time.Hour))
	require.NoError(t, store.Set(ctx, "new", []byte("3"), 30*time.Minute))

	require.Equal(t, 2, store.Len())

	_, ok, _ := store.Get(ctx, "soon")
	require.False(t, ok)
	_, ok, _ = store.Get(ctx, "later")
	require.True(t, ok)
	_, ok, _ = store.Get(ctx, "new")
	require.True(t, ok)
}

func TestMemoryStore_OverwriteDoesNotEvict(t *testing.T) {
	store := NewMemoryStore(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, store.Set(ctx, "a", []byte("3"), time.Minute))

	value, ok, _ := store.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, "3", string(value))
	_, ok, _ = store.Get(ctx, "b")
	require.True(t, ok)
}

func TestMemoryStore_IncrementWithTTL(t *testing.T) {
	store := NewMemoryStore(10, time.Minute)
	ctx := context.Background()

	count, ttl, err := store.IncrementWithTTL(ctx, "rl", 50*time.Millisecond)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Positive(t, ttl)

	count, _, err = store.IncrementWithTTL(ctx, "rl", 50*time.Millisecond)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	time.Sleep(70 * time.Millisecond)

	count, _, err = store.IncrementWithTTL(ctx, "rl", 50*time.Millisecond)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestMemoryStore_PingAndClose(t *testing.T) {
	store := NewMemoryStore(0, 0)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, store.Close())
	require.Zero(t, store.Len())

	var nilStore *MemoryStore
	require.ErrorIs(t, nilStore.Ping(ctx), ErrStoreClosed)
}
