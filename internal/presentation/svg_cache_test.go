package presentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/photoalbum/internal/cachemanager"
)

func TestSVGCache_MemoisesPerSnapshot(t *testing.T) {
	ctx := context.Background()
	a := newFixtureAlbum(t)
	cache := cachemanager.NewInMemoryCacheManager[string, string]("svg", time.Minute, time.Minute)
	svgs := NewSVGCache(cache, DefaultCanvas(), time.Minute)

	first, _ := a.History().Get(firstID)
	second, _ := a.History().Get(secondID)

	a1, err := svgs.Render(ctx, first)
	require.NoError(t, err)
	a2, err := svgs.Render(ctx, first)
	require.NoError(t, err)
	b, err := svgs.Render(ctx, second)
	require.NoError(t, err)

	require.Equal(t, a1, a2)
	require.NotEqual(t, a1, b)
	require.Contains(t, a1, `<rect x="10" y="10"`)
	require.Contains(t, b, `<rect x="50" y="60"`)

	stats := cache.Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, 2, stats.Items)

	svgs.Invalidate(ctx)
	require.Zero(t, cache.Stats().Items)
}

func TestSVGCache_NilCacheRendersDirectly(t *testing.T) {
	a := newFixtureAlbum(t)
	snap, _ := a.History().Latest()
	svgs := NewSVGCache(nil, DefaultCanvas(), time.Minute)

	out, err := svgs.Render(context.Background(), snap)
	require.NoError(t, err)
	require.Contains(t, out, "<ellipse")
	svgs.Invalidate(context.Background())
}

func TestSVGCache_Stats(t *testing.T) {
	ctx := context.Background()
	a := newFixtureAlbum(t)
	snap, _ := a.History().Get(firstID)

	cache := cachemanager.NewInMemoryCacheManager[string, string]("svg", time.Minute, time.Minute)
	svgs := NewSVGCache(cache, DefaultCanvas(), time.Minute)
	_, err := svgs.Render(ctx, snap)
	require.NoError(t, err)

	stats, ok := svgs.Stats()
	require.True(t, ok)
	require.Equal(t, cachemanager.Stats{Hits: 0, Misses: 1, Items: 1}, stats)

	_, ok = NewSVGCache(nil, DefaultCanvas(), time.Minute).Stats()
	require.False(t, ok)
}
