package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
)

var (
	// ErrNoTargets is returned when Apply receives an empty sequence.
	ErrNoTargets = errors.New("layout needs at least one target")

	// ErrInvalidColumns is returned by Grid when Columns is not positive.
	ErrInvalidColumns = errors.New("grid columns must be positive")

	// ErrUnknownLayout is returned by New for unrecognized kinds.
	ErrUnknownLayout = errors.New("unknown layout")
)

// Layout kinds accepted by New.
const (
	KindExtrude = "extrude"
	KindGrid    = "grid"
)

// Vector is a 2-D step in board units.
type Vector [2]float64

// Layout attaches relative positions to an ordered sequence of nodes.
type Layout interface {
	Apply(nodes ...*node.Node) error
}

// Params carries the union of parameters used by the layout kinds.
type Params struct {
	Vector  Vector // extrude step, grid cell size
	Columns int    // grid only
}

// New returns the layout of the given kind.
func New(kind string, p Params) (Layout, error) {
	switch kind {
	case KindExtrude:
		return Extrude{Vector: p.Vector}, nil
	case KindGrid:
		if p.Columns <= 0 {
			return nil, ErrInvalidColumns
		}
		return Grid{Columns: p.Columns, Step: p.Vector}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
}

// place checks the targets and assigns the offset computed by at for each
// index, overwriting any previous relative position.
func place(kind string, nodes []*node.Node, at func(i int) pcb.Position) error {
	if len(nodes) == 0 {
		return ErrNoTargets
	}
	for i, n := range nodes {
		if n == nil {
			return fmt.Errorf("target %d: %w", i, node.ErrNilNode)
		}
	}
	for i, n := range nodes {
		off := at(i)
		pcb.SetRelative(n, off)
		n.Logger().Debug("layout placed node", "layout", kind, "node", n.Path(), "index", i, "offset", off)
	}
	return nil
}
