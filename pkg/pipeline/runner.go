package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boardtree/pkg/cache"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
	"github.com/matzehuels/boardtree/pkg/design"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
	"github.com/matzehuels/boardtree/pkg/observability"
	"github.com/matzehuels/boardtree/pkg/render/nodelink"
)

// Cache key types reported to observability hooks.
const (
	keyTypePlacement = "placement"
	keyTypeRender    = "render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Load reads a design file. Errors carry an error code.
func (r *Runner) Load(path string) (design.Design, error) {
	if err := bterrors.ValidateDesignFilename(path); err != nil {
		return design.Design{}, err
	}
	d, err := design.ReadFile(path)
	if err != nil {
		return design.Design{}, design.Coded(err, "load %s", path)
	}
	return d, nil
}

// Hash returns the content hash of d's canonical JSON form.
func Hash(d design.Design) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("hash design: %w", err)
	}
	return cache.Hash(data), nil
}

// Place builds d and resolves its placeable nodes.
//
// Build errors are returned with an error code and no result. Resolution
// failures are recorded in the report; with Strict set they are also
// returned as an error alongside the result.
func (r *Runner) Place(ctx context.Context, d design.Design, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, bterrors.Wrap(bterrors.ErrCodeInvalidInput, err, "invalid options")
	}
	hooks := observability.Placement()

	hash, err := Hash(d)
	if err != nil {
		return nil, bterrors.Wrap(bterrors.ErrCodeInternal, err, "hash design")
	}
	result := &Result{Design: d, Hash: hash}

	hooks.OnBuildStart(ctx, d.Name, len(d.Nodes))
	buildStart := time.Now()
	tree, err := design.Build(d, opts.Logger)
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, d.Name, result.Stats.BuildTime, err)
	if err != nil {
		return nil, design.Coded(err, "build design")
	}
	result.Tree = tree
	result.Stats.NodeCount = tree.Len()

	key := r.Keyer.PlacementKey(hash, opts.PlacementKeyOpts())
	if !opts.Refresh {
		if rep, ok := r.cachedReport(ctx, key); ok {
			result.Report = rep
			result.CacheHit = true
		}
	}

	if result.Report == nil {
		hooks.OnResolveStart(ctx, d.Name, tree.Len())
		resolveStart := time.Now()
		result.Report = design.NewReport(tree, pcb.NewResolver(pcb.WithMemo()))
		result.Stats.ResolveTime = time.Since(resolveStart)
		hooks.OnResolveComplete(ctx, d.Name, len(result.Report.Placements), len(result.Report.Failures), result.Stats.ResolveTime)
		r.store(ctx, keyTypePlacement, key, result.Report)
	}

	result.Stats.Placed = len(result.Report.Placements)
	result.Stats.Failed = len(result.Report.Failures)
	opts.Logger.Info("placed design",
		"design", d.Name,
		"nodes", result.Stats.NodeCount,
		"placed", result.Stats.Placed,
		"failed", result.Stats.Failed,
		"cached", result.CacheHit)

	if opts.Strict {
		if err := result.Report.Err(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Render produces the artifact for opts.Format from a placement result.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) ([]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, bterrors.Wrap(bterrors.ErrCodeInvalidFormat, err, "invalid options")
	}
	hooks := observability.Placement()

	key := r.Keyer.RenderKey(res.Hash, opts.RenderKeyOpts())
	if !opts.Refresh {
		if data, ok := r.get(ctx, keyTypeRender, key); ok {
			return data, nil
		}
	}

	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := render(ctx, res, opts)
	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), res.Stats.RenderTime, err)
	if err != nil {
		return nil, bterrors.Wrap(bterrors.ErrCodeInternal, err, "render %s", opts.Format)
	}

	r.set(ctx, keyTypeRender, key, data)
	opts.Logger.Debug("rendered", "format", opts.Format, "bytes", len(data), "duration", res.Stats.RenderTime)
	return data, nil
}

func render(ctx context.Context, res *Result, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON:
		return design.MarshalReport(res.Report)
	case FormatDOT:
		return []byte(nodelink.ToDOT(res.Tree, res.Report, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatSVG:
		dot := nodelink.ToDOT(res.Tree, res.Report, nodelink.Options{Detailed: opts.Detailed})
		return nodelink.RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.Format)
}

func (r *Runner) cachedReport(ctx context.Context, key string) (*design.Report, bool) {
	data, ok := r.get(ctx, keyTypePlacement, key)
	if !ok {
		return nil, false
	}
	rep, err := design.UnmarshalReport(data)
	if err != nil {
		r.Logger.Debug("discarding cached report", "err", err)
		return nil, false
	}
	return rep, true
}

// get reads key from the cache. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.Cache().OnCacheError(ctx, keyType, err)
		return nil, false
	case !hit:
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, rep *design.Report) {
	data, err := design.MarshalReport(rep)
	if err != nil {
		return
	}
	r.set(ctx, keyType, key, data)
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
