package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/design"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the designator and resolved position to node labels.
	// When false, only the display name is shown.
	Detailed bool
}

// Fill colors per resolved layer. Nodes without a placement stay white.
var layerFill = map[string]string{
	"TOP":    "#e3f2fd",
	"BOTTOM": "#fdece3",
}

const graphHeader = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.5;
  nodesep=0.3;
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=24, margin="0.2,0.1"];
`

// ToDOT converts a built design to Graphviz DOT format. The report may be
// nil, in which case no node is marked as failed or labelled with a position.
//
// Anchors are drawn bold, unresolved nodes dashed grey and nodes created by
// a library component as ellipses. Placed nodes are filled by layer.
func ToDOT(t *design.Tree, rep *design.Report, opts Options) string {
	failed := map[string]bool{}
	if rep != nil {
		for _, f := range rep.Failures {
			failed[f.Key] = true
		}
	}

	var b strings.Builder
	b.WriteString(graphHeader)
	b.WriteString("\n")

	keys := t.Keys()
	for _, key := range keys {
		n, _ := t.Lookup(key)
		var p *design.Placement
		if rep != nil {
			if pl, ok := rep.Placement(key); ok {
				p = &pl
			}
		}
		a := nodeAttrs(key, n, p, opts.Detailed, failed[key])
		fmt.Fprintf(&b, "  %q [%s];\n", key, a)
	}

	b.WriteString("\n")
	for _, key := range keys {
		n, _ := t.Lookup(key)
		if parent := n.Parent(); parent != nil {
			if pk, ok := t.Key(parent); ok {
				fmt.Fprintf(&b, "  %q -> %q;\n", pk, key)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// attrs is an ordered DOT attribute list.
type attrs []string

func (a *attrs) set(k, v string)   { *a = append(*a, k+"="+v) }
func (a *attrs) quote(k, v string) { a.set(k, strconv.Quote(v)) }
func (a attrs) String() string     { return strings.Join(a, ", ") }

func nodeAttrs(key string, n *node.Node, p *design.Placement, detailed, failed bool) attrs {
	var a attrs
	a.quote("label", label(n, p, detailed))
	if strings.Contains(key, ".") {
		a.set("shape", "ellipse")
		a.set("fontsize", "18")
	}
	switch {
	case failed:
		a.quote("style", "rounded,filled,dashed")
		a.set("fillcolor", "lightgrey")
		a.set("fontcolor", "black")
	case p != nil && p.Anchor:
		a.quote("style", "rounded,filled,bold")
		a.set("penwidth", "3")
	}
	if p != nil && !failed {
		if fill, ok := layerFill[p.Layer]; ok {
			a.quote("fillcolor", fill)
		}
	}
	return a
}

func label(n *node.Node, p *design.Placement, detailed bool) string {
	if !detailed || p == nil {
		return n.Name()
	}
	lines := []string{n.Name()}
	if p.Designator != "" {
		lines = append(lines, "designator: "+p.Designator)
	}
	lines = append(lines, p.Position().String())
	return strings.Join(lines, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
