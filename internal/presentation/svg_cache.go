package presentation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/photoalbum/internal/cachemanager"
	"github.com/zjrosen/photoalbum/internal/domain/album"
)

// SVGCache memoises rendered snapshot images. Snapshots never change once
// captured, so an entry keyed by snapshot id and canvas stays valid for as
// long as the album that produced it.
type SVGCache struct {
	cache  cachemanager.CacheManager[string, string]
	reader *cachemanager.ReadThroughCache[string, string, *album.Snapshot]
	canvas Canvas
	ttl    time.Duration
}

// NewSVGCache renders through cache. A nil cache disables memoisation.
func NewSVGCache(cache cachemanager.CacheManager[string, string], canvas Canvas, ttl time.Duration) *SVGCache {
	c := &SVGCache{cache: cache, canvas: canvas, ttl: ttl}
	render := func(_ context.Context, snap *album.Snapshot) (string, error) {
		var sb strings.Builder
		if err := RenderSVG(&sb, snap, c.canvas); err != nil {
			return "", fmt.Errorf("rendering snapshot %s: %w", snap.ID(), err)
		}
		return sb.String(), nil
	}
	c.reader = cachemanager.NewReadThroughCache(cache, render, cache == nil)
	return c
}

// Render returns the SVG image of snap.
func (c *SVGCache) Render(ctx context.Context, snap *album.Snapshot) (string, error) {
	return c.reader.GetWithRefresh(ctx, c.key(snap), snap, c.ttl)
}

// Invalidate drops every cached image. Call it when the album is replaced.
func (c *SVGCache) Invalidate(ctx context.Context) {
	if c.cache != nil {
		c.cache.Flush(ctx)
	}
}

// Stats reports the underlying cache's counters. ok is false when the cache
// is disabled or does not count lookups.
func (c *SVGCache) Stats() (stats cachemanager.Stats, ok bool) {
	r, ok := c.cache.(cachemanager.StatsReporter)
	if !ok {
		return cachemanager.Stats{}, false
	}
	return r.Stats(), true
}

func (c *SVGCache) key(snap *album.Snapshot) string {
	return fmt.Sprintf("%s@%dx%d", snap.ID(), c.canvas.Width, c.canvas.Height)
}
