// Package observability provides hooks for metrics and logging.
//
// Instrumentation is optional and backend-agnostic. Consumers register hooks
// at startup and receive events about design builds, position resolution,
// rendering, and cache traffic.
//
// # Usage
//
// Register hooks at startup. [Fanout] combines several sinks, here debug
// logging and the [Counters] served by the HTTP server:
//
//	counters := observability.NewCounters()
//	hooks := observability.Fanout{observability.NewLogHooks(logger), counters}
//	observability.SetPlacementHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
// The pipeline emits events:
//
//	observability.Placement().OnResolveStart(ctx, design, nodeCount)
//	// ... resolve ...
//	observability.Placement().OnResolveComplete(ctx, design, placed, failed, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// PlacementHooks receives events from the placement pipeline.
type PlacementHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, design string, nodeCount int)
	OnBuildComplete(ctx context.Context, design string, duration time.Duration, err error)

	// Resolve events
	OnResolveStart(ctx context.Context, design string, nodeCount int)
	OnResolveComplete(ctx context.Context, design string, placed, failed int, duration time.Duration)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)

	// OnCacheError records a backend failure that was treated as a miss.
	OnCacheError(ctx context.Context, keyType string, err error)
}

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnBuildStart(context.Context, string, int)                           {}
func (NoopPlacementHooks) OnBuildComplete(context.Context, string, time.Duration, error)       {}
func (NoopPlacementHooks) OnResolveStart(context.Context, string, int)                         {}
func (NoopPlacementHooks) OnResolveComplete(context.Context, string, int, int, time.Duration)  {}
func (NoopPlacementHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPlacementHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

// registry holds the process-wide hooks. Reads vastly outnumber writes.
type registry struct {
	mu        sync.RWMutex
	placement PlacementHooks
	cache     CacheHooks
}

var hooks = registry{placement: NoopPlacementHooks{}, cache: NoopCacheHooks{}}

// SetPlacementHooks registers placement hooks. Nil is ignored. Call it at
// startup, before the first pipeline run.
func SetPlacementHooks(h PlacementHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.placement = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.placement
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset restores the no-op hooks. Tests use it in cleanups.
func Reset() {
	hooks.mu.Lock()
	hooks.placement = NoopPlacementHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.mu.Unlock()
}
