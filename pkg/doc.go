// Package pkg provides the core libraries for boardtree PCB placement.
//
// # Overview
//
// A board is described as a composition tree: parts own their interfaces,
// modules own their parts. Any node in the tree may carry traits, small typed
// capabilities keyed by category. Positions are traits too: a node is either
// anchored at an absolute board coordinate or offset from its parent, and
// boardtree resolves every offset chain to a concrete coordinate.
//
// # Architecture
//
// The typical data flow:
//
//	design file (TOML or JSON)
//	         ↓
//	    [design] (build the node tree, attach traits, apply layouts)
//	         ↓
//	    [core/pcb] (resolve positions against the nearest anchor)
//	         ↓
//	    [design.Report] → JSON, or [render/nodelink] → DOT/SVG
//
// # Quick Start
//
// Anchor a board and place a regulator 5mm to its right:
//
//	import (
//	    "github.com/matzehuels/boardtree/pkg/core/library"
//	    "github.com/matzehuels/boardtree/pkg/core/node"
//	    "github.com/matzehuels/boardtree/pkg/core/pcb"
//	)
//
//	board := node.New("board")
//	pcb.SetAbsolute(board, pcb.Position{X: 10, Y: 10, Layer: pcb.LayerTop})
//
//	reg := library.NewLDO("reg")
//	_ = board.AddChild(reg.Node)
//	pcb.SetRelative(reg.Node, pcb.Position{X: 5})
//
//	pos, err := pcb.Resolve(reg.Node) // (15, 10, 0°, TOP)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/node] - The composition tree and the per-node trait registry. One
// trait per category; a later trait of the same category replaces the
// earlier one.
//
// [core/pcb] - Board positions, the absolute and relative position traits,
// and the [pcb.Resolver] that composes relative chains.
//
// [core/layout] - Strategies that assign relative positions to a group of
// nodes at once (extrude along a vector, fill a grid).
//
// [core/library] - Reusable components built from nodes and traits: the
// electrical interfaces, power rails and the LDO regulator.
//
// ## Designs
//
// [design] - The serialized design format, the builder that turns it into a
// node tree, and the placement report.
//
// [pipeline] - Load → build → place → render with caching, shared by the CLI
// and the HTTP server.
//
// ## Infrastructure
//
// [cache] - Placement and render caches: file (CLI), Redis (shared) and null.
//
// [observability] - Hooks for build, resolve, render and cache events.
//
// [errors] - Coded errors and input validation.
//
// [render/nodelink] - Graphviz diagrams of the design tree.
//
// # Testing
//
//	go test ./pkg/...                      # All tests
//	BOARDTREE_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache/
//	go test -run Example ./pkg/...         # Examples only
//
// [core/node]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/core/node
// [core/pcb]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/core/pcb
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/core/layout
// [core/library]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/core/library
// [design]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/design
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/errors
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/boardtree/pkg/render/nodelink
package pkg
