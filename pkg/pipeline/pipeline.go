// Package pipeline provides the load → build → place → render pipeline
// shared by the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: turn a [design.Design] into a node tree, applying traits and layouts
//  2. Place: resolve every placeable node into a [design.Report]
//  3. Render: serialize the report or draw the tree (JSON, DOT, SVG)
//
// Placement reports and rendered artifacts are cached by the hash of the
// canonical design bytes, so repeated runs over an unchanged design skip
// resolution and Graphviz entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	d, err := runner.Load("board.toml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Place(ctx, d, pipeline.Options{Strict: true})
//	if err != nil {
//	    return err
//	}
//	svg, err := runner.Render(ctx, result, pipeline.Options{Format: pipeline.FormatSVG})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boardtree/pkg/cache"
	"github.com/matzehuels/boardtree/pkg/design"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options configures a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Input    string `json:"input,omitempty"`    // Design file path (CLI only)
	Format   string `json:"format,omitempty"`   // Output format: json, dot or svg
	Strict   bool   `json:"strict,omitempty"`   // Fail when any placeable node is unresolved
	Detailed bool   `json:"detailed,omitempty"` // Positions in diagram labels
	Refresh  bool   `json:"refresh,omitempty"`  // Bypass cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a placement run.
type Result struct {
	// Design is the input design.
	Design design.Design

	// Tree is the built node tree. It is always rebuilt, even on a cache hit.
	Tree *design.Tree

	// Report holds the resolved placements and failures.
	Report *design.Report

	// Hash is the content hash of the canonical design JSON.
	Hash string

	// CacheHit reports whether Report came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	Placed      int
	Failed      int
	BuildTime   time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PlacementKeyOpts returns cache key options for placement.
func (o *Options) PlacementKeyOpts() cache.PlacementKeyOpts {
	return cache.PlacementKeyOpts{Strict: o.Strict}
}

// RenderKeyOpts returns cache key options for rendering.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: o.Format, Detailed: o.Detailed}
}
