package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type svgKey string

func TestInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[svgKey, string]("svg", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "snap-1", "<svg/>", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "snap-1")
	require.True(t, ok)
	require.Equal(t, "<svg/>", got)
	require.Equal(t, Stats{Hits: 1, Items: 1}, cache.Stats())
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("svg", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "snap-1")
	require.False(t, ok)
	require.Empty(t, got)
	require.Equal(t, int64(1), cache.Stats().Misses)
}

func TestInMemoryCacheManager_WrongStoredTypeIsAMiss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("svg", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("snap-1", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "snap-1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("svg", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "snap-1", "<svg/>", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "snap-1")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefreshExtendsTTL(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("svg", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "snap-1", "<svg/>", 50*time.Millisecond)

	got, ok := cache.GetWithRefresh(context.Background(), "snap-1", time.Hour)
	require.True(t, ok)
	require.Equal(t, "<svg/>", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(context.Background(), "snap-1")
	require.True(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("counts", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", 1, 0)
	cache.Set(ctx, "b", 2, 0)
	cache.Set(ctx, "c", 3, 0)

	cache.Delete(ctx, "a", "b")
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	v, ok := cache.Get(ctx, "c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	cache.Flush(ctx)
	require.Equal(t, Stats{}, cache.Stats())
}
