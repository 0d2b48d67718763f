package layout

import (
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
)

// Extrude places node i at Vector*i with zero rotation and an inherited layer.
type Extrude struct {
	Vector Vector
}

// Apply implements Layout.
//
// Make sure at least one ancestor of each node resolves to an absolute
// position, or later resolution fails.
func (e Extrude) Apply(nodes ...*node.Node) error {
	return place(KindExtrude, nodes, func(i int) pcb.Position {
		f := float64(i)
		return pcb.Position{X: e.Vector[0] * f, Y: e.Vector[1] * f, Layer: pcb.LayerNone}
	})
}
