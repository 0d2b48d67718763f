package design

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/boardtree/pkg/core/library"
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
)

// Report is the resolved placement of every placeable node of a design.
type Report struct {
	Design     string      `json:"design,omitempty"`
	Placements []Placement `json:"placements"`
	Failures   []Failure   `json:"failures,omitempty"`
}

// Placement is one resolved board position.
type Placement struct {
	Key        string  `json:"key"`
	Path       string  `json:"path"`
	Designator string  `json:"designator,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Rotation   float64 `json:"rotation"`
	Layer      string  `json:"layer"`
	Anchor     bool    `json:"anchor,omitempty"`
}

// Position returns the placement as a pcb.Position.
func (p Placement) Position() pcb.Position {
	l, _ := pcb.ParseLayer(p.Layer)
	return pcb.Position{X: p.X, Y: p.Y, Rotation: p.Rotation, Layer: l}
}

// Failure records a node that could not be placed.
type Failure struct {
	Key     string        `json:"key"`
	Path    string        `json:"path"`
	Code    bterrors.Code `json:"code"`
	Message string        `json:"message"`
}

// OK reports whether every placeable node resolved.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Placement returns the placement recorded for key.
func (r *Report) Placement(key string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Key == key {
			return p, true
		}
	}
	return Placement{}, false
}

// Placeable reports whether n needs a board position: it carries a position
// trait or is a part with a designator prefix.
func Placeable(n *node.Node) bool {
	return pcb.IsPositioned(n) || n.HasTrait(library.CategoryDesignatorPrefix)
}

// NewReport resolves every placeable node of t with r, or a fresh resolver
// when r is nil. Nodes are listed by key; failures are collected, not
// returned.
func NewReport(t *Tree, r *pcb.Resolver) *Report {
	if r == nil {
		r = pcb.NewResolver()
	}
	rep := &Report{Design: t.Name, Placements: []Placement{}}
	keys := t.Keys()
	slices.Sort(keys)

	for _, key := range keys {
		n := t.nodes[key]
		if !Placeable(n) {
			continue
		}
		pos, err := r.Resolve(n)
		if err != nil {
			rep.Failures = append(rep.Failures, Failure{
				Key:     key,
				Path:    n.Path(),
				Code:    Classify(err),
				Message: err.Error(),
			})
			continue
		}
		p := Placement{
			Key:      key,
			Path:     n.Path(),
			X:        pos.X,
			Y:        pos.Y,
			Rotation: pos.Rotation,
			Layer:    pos.Layer.String(),
			Anchor:   pcb.IsAnchor(n),
		}
		if d, ok := node.Get[library.DesignatorPrefix](n, library.CategoryDesignatorPrefix); ok {
			p.Designator = d.Prefix
		}
		rep.Placements = append(rep.Placements, p)
	}
	return rep
}

// Err returns the failures as one coded error, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		msgs[i] = f.Message
	}
	return bterrors.New(r.Failures[0].Code, "%d node(s) could not be placed: %s",
		len(r.Failures), strings.Join(msgs, "; "))
}

// Bounds is the axis-aligned extent of a set of placements.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the extent of the placements on layer, or of all
// placements when layer is empty. It reports false when nothing matches.
func (r *Report) Bounds(layer string) (Bounds, bool) {
	var xs, ys []float64
	for _, p := range r.Placements {
		if layer != "" && !strings.EqualFold(p.Layer, layer) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 0 {
		return Bounds{}, false
	}
	return Bounds{
		MinX: floats.Min(xs),
		MinY: floats.Min(ys),
		MaxX: floats.Max(xs),
		MaxY: floats.Max(ys),
	}, true
}
