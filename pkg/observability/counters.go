package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters tallies events with atomic counters. It is safe for concurrent
// use and cheap enough to stay registered in a long-running server.
type Counters struct {
	builds, buildErrors   atomic.Int64
	resolves              atomic.Int64
	placed, failed        atomic.Int64
	renders, renderErrors atomic.Int64
	hits, misses          atomic.Int64
	sets, cacheErrors     atomic.Int64
	resolveNanos          atomic.Int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters { return &Counters{} }

// Stats is a point-in-time copy of Counters.
type Stats struct {
	Builds       int64         `json:"builds"`
	BuildErrors  int64         `json:"build_errors"`
	Resolves     int64         `json:"resolves"`
	Placed       int64         `json:"placed"`
	Failed       int64         `json:"failed"`
	Renders      int64         `json:"renders"`
	RenderErrors int64         `json:"render_errors"`
	CacheHits    int64         `json:"cache_hits"`
	CacheMisses  int64         `json:"cache_misses"`
	CacheSets    int64         `json:"cache_sets"`
	CacheErrors  int64         `json:"cache_errors"`
	ResolveTime  time.Duration `json:"resolve_time_ns"`
}

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// Snapshot reads all counters. Counters updated concurrently may be
// observed at slightly different instants.
func (c *Counters) Snapshot() Stats {
	return Stats{
		Builds:       c.builds.Load(),
		BuildErrors:  c.buildErrors.Load(),
		Resolves:     c.resolves.Load(),
		Placed:       c.placed.Load(),
		Failed:       c.failed.Load(),
		Renders:      c.renders.Load(),
		RenderErrors: c.renderErrors.Load(),
		CacheHits:    c.hits.Load(),
		CacheMisses:  c.misses.Load(),
		CacheSets:    c.sets.Load(),
		CacheErrors:  c.cacheErrors.Load(),
		ResolveTime:  time.Duration(c.resolveNanos.Load()),
	}
}

func (c *Counters) OnBuildStart(context.Context, string, int) {}

func (c *Counters) OnBuildComplete(_ context.Context, _ string, _ time.Duration, err error) {
	c.builds.Add(1)
	if err != nil {
		c.buildErrors.Add(1)
	}
}

func (c *Counters) OnResolveStart(context.Context, string, int) {}

func (c *Counters) OnResolveComplete(_ context.Context, _ string, placed, failed int, d time.Duration) {
	c.resolves.Add(1)
	c.placed.Add(int64(placed))
	c.failed.Add(int64(failed))
	c.resolveNanos.Add(int64(d))
}

func (c *Counters) OnRenderStart(context.Context, string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.renders.Add(1)
	if err != nil {
		c.renderErrors.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)          { c.hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)         { c.misses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int)     { c.sets.Add(1) }
func (c *Counters) OnCacheError(context.Context, string, error) { c.cacheErrors.Add(1) }

var _ Hooks = (*Counters)(nil)
