// Package cachemanager provides generic TTL caches used to memoise derived
// values such as rendered snapshot images.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a keyed store with per-entry expiry.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
}

// Stats counts lookups since creation or the last Flush.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Items  int   `json:"items"`
}

// StatsReporter is implemented by managers that count their lookups.
type StatsReporter interface {
	Stats() Stats
}
