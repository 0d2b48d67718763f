package design

import (
	"fmt"

	"github.com/matzehuels/boardtree/pkg/core/layout"
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
)

// File formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Library component names accepted in Node.Component.
const (
	ComponentLDO        = "ldo"
	ComponentPower      = "power"
	ComponentElectrical = "electrical"
)

// CategoryMeta is the trait category holding a node's free-form metadata.
const CategoryMeta node.Category = "design.meta"

// Meta carries arbitrary key-value data from the design file.
type Meta map[string]any

// Category implements node.Trait.
func (Meta) Category() node.Category { return CategoryMeta }

// Design is the serialized description of a board.
type Design struct {
	Name    string   `json:"name,omitempty" toml:"name,omitempty"`
	Nodes   []Node   `json:"nodes" toml:"nodes"`
	Layouts []Layout `json:"layouts,omitempty" toml:"layouts,omitempty"`
}

// Node declares one vertex of the composition tree.
type Node struct {
	Key        string         `json:"key" toml:"key"`
	Name       string         `json:"name,omitempty" toml:"name,omitempty"`     // Display name (defaults to Key)
	Parent     string         `json:"parent,omitempty" toml:"parent,omitempty"` // Key of the owning node
	Component  string         `json:"component,omitempty" toml:"component,omitempty"`
	Designator string         `json:"designator,omitempty" toml:"designator,omitempty"` // Overrides the component prefix
	Absolute   *Position      `json:"absolute,omitempty" toml:"absolute,omitempty"`
	Relative   *Position      `json:"relative,omitempty" toml:"relative,omitempty"`
	Meta       map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
}

// DisplayName returns the name if set, otherwise the key.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Key
}

// Position is the wire form of pcb.Position.
type Position struct {
	X        float64 `json:"x" toml:"x"`
	Y        float64 `json:"y" toml:"y"`
	Rotation float64 `json:"rotation,omitempty" toml:"rotation,omitempty"`
	Layer    string  `json:"layer,omitempty" toml:"layer,omitempty"`
}

// ToPCB converts p, rejecting unknown layer names.
func (p Position) ToPCB() (pcb.Position, error) {
	l, err := pcb.ParseLayer(p.Layer)
	if err != nil {
		return pcb.Position{}, err
	}
	return pcb.Position{X: p.X, Y: p.Y, Rotation: p.Rotation, Layer: l}, nil
}

// FromPCB converts a pcb.Position to its wire form.
func FromPCB(p pcb.Position) Position {
	return Position{X: p.X, Y: p.Y, Rotation: p.Rotation, Layer: p.Layer.String()}
}

// Layout declares a layout strategy applied to an ordered list of keys.
type Layout struct {
	Type    string    `json:"type" toml:"type"`
	Vector  []float64 `json:"vector" toml:"vector"`                       // Step (extrude) or cell size (grid)
	Columns int       `json:"columns,omitempty" toml:"columns,omitempty"` // Grid only
	Targets []string  `json:"targets" toml:"targets"`
}

// Strategy returns the core layout described by l.
func (l Layout) Strategy() (layout.Layout, error) {
	if len(l.Vector) != 2 {
		return nil, fmt.Errorf("%w: got %d components", ErrInvalidVector, len(l.Vector))
	}
	return layout.New(l.Type, layout.Params{
		Vector:  layout.Vector{l.Vector[0], l.Vector[1]},
		Columns: l.Columns,
	})
}
