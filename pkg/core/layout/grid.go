package layout

import (
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
)

// Grid fills rows left to right: node i lands in column i%Columns and row
// i/Columns, each cell Step apart.
type Grid struct {
	Columns int
	Step    Vector
}

// Apply implements Layout.
func (g Grid) Apply(nodes ...*node.Node) error {
	if g.Columns <= 0 {
		return ErrInvalidColumns
	}
	return place(KindGrid, nodes, func(i int) pcb.Position {
		col, row := float64(i%g.Columns), float64(i/g.Columns)
		return pcb.Position{X: g.Step[0] * col, Y: g.Step[1] * row, Layer: pcb.LayerNone}
	})
}
