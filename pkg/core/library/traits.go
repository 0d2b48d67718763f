package library

import "github.com/matzehuels/boardtree/pkg/core/node"

// Trait categories owned by this package.
const (
	CategoryDesignatorPrefix    node.Category = "library.designator_prefix"
	CategoryValueRepresentation node.Category = "library.value_representation"
	CategoryPinAssociation      node.Category = "library.pin_association"
)

// DesignatorPrefix is the reference designator prefix of a part ("U", "R").
type DesignatorPrefix struct {
	Prefix string
}

// Category implements node.Trait.
func (DesignatorPrefix) Category() node.Category { return CategoryDesignatorPrefix }

// ValueRepresentation produces the human readable value of a part.
type ValueRepresentation struct {
	Render func() string
}

// Category implements node.Trait.
func (ValueRepresentation) Category() node.Category { return CategoryValueRepresentation }

// String calls Render, returning "" when unset.
func (v ValueRepresentation) String() string {
	if v.Render == nil {
		return ""
	}
	return v.Render()
}

// PinAssociation maps interface nodes to candidate footprint pin names.
type PinAssociation struct {
	Mapping       map[*node.Node][]string
	AcceptPrefix  bool
	CaseSensitive bool
}

// Category implements node.Trait.
func (PinAssociation) Category() node.Category { return CategoryPinAssociation }
