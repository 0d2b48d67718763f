package pcb

import "github.com/matzehuels/boardtree/pkg/core/node"

// Trait categories owned by this package.
const (
	CategoryAbsolute node.Category = "pcb.absolute_position"
	CategoryRelative node.Category = "pcb.relative_position"
)

// AbsolutePosition anchors a node at a fixed board position.
type AbsolutePosition struct {
	Position Position
}

// Category implements node.Trait.
func (AbsolutePosition) Category() node.Category { return CategoryAbsolute }

// RelativePosition offsets a node from the resolved position of its nearest
// positioned ancestor.
type RelativePosition struct {
	Offset Position
}

// Category implements node.Trait.
func (RelativePosition) Category() node.Category { return CategoryRelative }

// SetAbsolute attaches an AbsolutePosition trait, replacing any previous one.
func SetAbsolute(n *node.Node, p Position) {
	n.AddTrait(AbsolutePosition{Position: p})
}

// SetRelative attaches a RelativePosition trait, replacing any previous one.
func SetRelative(n *node.Node, offset Position) {
	n.AddTrait(RelativePosition{Offset: offset})
}

// IsAnchor reports whether n carries an AbsolutePosition trait.
func IsAnchor(n *node.Node) bool { return n.HasTrait(CategoryAbsolute) }

// IsPositioned reports whether n carries either position trait.
func IsPositioned(n *node.Node) bool {
	return n.HasTrait(CategoryAbsolute) || n.HasTrait(CategoryRelative)
}
