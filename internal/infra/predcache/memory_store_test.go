package predcache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Save(ctx, "k", 2104.57, 0))
	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2104.57, got)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(0)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), "k", 1, time.Minute))

	now = now.Add(30 * time.Second)
	_, ok, _ := store.Get(context.Background(), "k")
	require.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = store.Get(context.Background(), "k")
	require.False(t, ok)
	require.Empty(t, store.entries)
}

func TestMemoryStoreSweepsExpiredOnSave(t *testing.T) {
	store := NewMemoryStore(20000)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 10000; i++ {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("k%d", i), float64(i), time.Minute))
	}
	require.Equal(t, 10000, store.Len())

	now = now.Add(24 * time.Hour)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("fresh%d", i), float64(i), time.Minute))
	}
	require.Equal(t, 10, store.Len())
}

func TestMemoryStoreRespectsMaxEntries(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("k%d", i), float64(i), 0))
		require.LessOrEqual(t, store.Len(), 3)
	}

	// the newest entry always survives eviction
	got, ok, err := store.Get(ctx, "k9")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 9.0, got)

	// overwriting an existing key never evicts
	require.NoError(t, store.Save(ctx, "k9", 99, 0))
	require.Equal(t, 3, store.Len())
}

func TestValkeyStoreKeyPrefix(t *testing.T) {
	store := NewValkeyStore(nil, "")
	require.Equal(t, "carbon:estimate:abc", store.entryKey("abc"))
	require.Equal(t, "x:estimate:abc", NewValkeyStore(nil, "x").entryKey("abc"))
}
