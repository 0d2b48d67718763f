// Package nodelink renders a design's composition tree as a node-link
// diagram.
//
// # Overview
//
// Each indexed node becomes a box, and every parent links to its children.
// The diagram is a structural view: it shows which part owns which
// interface and where the resolver placed it, not the board geometry.
//
// # Usage
//
//	dot := nodelink.ToDOT(tree, report, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Styling
//
//   - Anchors (nodes with an absolute position) are drawn bold.
//   - Nodes listed as failures in the report are drawn dashed.
//   - With Detailed set, placed nodes carry their resolved position.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
