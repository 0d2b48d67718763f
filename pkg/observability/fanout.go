package observability

import (
	"context"
	"time"
)

// Hooks receives both placement and cache events.
type Hooks interface {
	PlacementHooks
	CacheHooks
}

// Fanout forwards every event to each of its hooks in order.
type Fanout []Hooks

func (f Fanout) OnBuildStart(ctx context.Context, design string, nodeCount int) {
	for _, h := range f {
		h.OnBuildStart(ctx, design, nodeCount)
	}
}

func (f Fanout) OnBuildComplete(ctx context.Context, design string, d time.Duration, err error) {
	for _, h := range f {
		h.OnBuildComplete(ctx, design, d, err)
	}
}

func (f Fanout) OnResolveStart(ctx context.Context, design string, nodeCount int) {
	for _, h := range f {
		h.OnResolveStart(ctx, design, nodeCount)
	}
}

func (f Fanout) OnResolveComplete(ctx context.Context, design string, placed, failed int, d time.Duration) {
	for _, h := range f {
		h.OnResolveComplete(ctx, design, placed, failed, d)
	}
}

func (f Fanout) OnRenderStart(ctx context.Context, format string) {
	for _, h := range f {
		h.OnRenderStart(ctx, format)
	}
}

func (f Fanout) OnRenderComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, format, size, d, err)
	}
}

func (f Fanout) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range f {
		h.OnCacheHit(ctx, keyType)
	}
}

func (f Fanout) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range f {
		h.OnCacheMiss(ctx, keyType)
	}
}

func (f Fanout) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range f {
		h.OnCacheSet(ctx, keyType, size)
	}
}

func (f Fanout) OnCacheError(ctx context.Context, keyType string, err error) {
	for _, h := range f {
		h.OnCacheError(ctx, keyType, err)
	}
}

var _ Hooks = Fanout(nil)
