package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level. Failures are
// logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnBuildStart(_ context.Context, design string, nodeCount int) {
	h.logger.Debug("build started", "design", design, "nodes", nodeCount)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, design string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("build failed", "design", design, "duration", d, "err", err)
		return
	}
	h.logger.Debug("build complete", "design", design, "duration", d)
}

func (h *LogHooks) OnResolveStart(_ context.Context, design string, nodeCount int) {
	h.logger.Debug("resolve started", "design", design, "nodes", nodeCount)
}

func (h *LogHooks) OnResolveComplete(_ context.Context, design string, placed, failed int, d time.Duration) {
	if failed > 0 {
		h.logger.Warn("resolve incomplete", "design", design, "placed", placed, "failed", failed, "duration", d)
		return
	}
	h.logger.Debug("resolve complete", "design", design, "placed", placed, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render started", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnCacheError(_ context.Context, keyType string, err error) {
	h.logger.Warn("cache error", "type", keyType, "err", err)
}

var (
	_ PlacementHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
)
