package node

import (
	"fmt"
	"maps"
	"slices"
)

// AddTrait registers t under its category, replacing any trait already held
// in that slot. The replaced trait is discarded, not merged, and the override
// is logged at warning level.
func (n *Node) AddTrait(t Trait) (previous Trait, replaced bool) {
	c := t.Category()
	previous, replaced = n.traits[c]
	n.traits[c] = t
	if replaced {
		n.Logger().Warn("trait overridden",
			"node", n.Path(),
			"category", c,
			"old", fmt.Sprintf("%T", previous),
			"new", fmt.Sprintf("%T", t))
	}
	return previous, replaced
}

// Trait returns the active trait for c. Absence is not an error.
func (n *Node) Trait(c Category) (Trait, bool) {
	t, ok := n.traits[c]
	return t, ok
}

// HasTrait reports whether n holds a trait of category c.
func (n *Node) HasTrait(c Category) bool {
	_, ok := n.traits[c]
	return ok
}

// RemoveTrait drops the trait of category c and reports whether one existed.
func (n *Node) RemoveTrait(c Category) bool {
	if _, ok := n.traits[c]; !ok {
		return false
	}
	delete(n.traits, c)
	return true
}

// Categories returns the categories held by n in sorted order.
func (n *Node) Categories() []Category {
	return slices.Sorted(maps.Keys(n.traits))
}

// Get returns the trait of category c as a T. It reports false when the slot
// is empty or holds a different concrete type.
func Get[T Trait](n *Node, c Category) (T, bool) {
	var zero T
	t, ok := n.traits[c]
	if !ok {
		return zero, false
	}
	v, ok := t.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
