package node

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Category names a capability contract. Categories compare by exact string
// identity.
type Category string

// Trait is a capability attached to a [Node]. The concrete type carries the
// payload; Category selects the registry slot it occupies.
type Trait interface {
	Category() Category
}

// discard is returned by Logger when no node on the ancestor path has one.
var discard = log.New(io.Discard)

// Node is a vertex in the composition tree.
//
// The zero value is not usable - use New.
type Node struct {
	id       uuid.UUID
	name     string
	parent   *Node // non-owning back reference
	children []*Node
	traits   map[Category]Trait
	logger   *log.Logger
}

// New creates a detached node with a fresh random identity.
// The name is for display only and need not be unique.
func New(name string) *Node {
	return &Node{
		id:     uuid.New(),
		name:   name,
		traits: make(map[Category]Trait),
	}
}

// ID returns the node's stable identity.
func (n *Node) ID() uuid.UUID { return n.id }

// Name returns the display name given to New.
func (n *Node) Name() string { return n.name }

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// AddChild makes child a direct child of n.
//
// It returns a *CycleError if child is n or an ancestor of n, and
// ErrAlreadyParented if child is owned by another node. In both cases the
// tree is unchanged. Adding a child that is already owned by n is a no-op.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return ErrNilNode
	}
	if child == n || child.IsAncestorOf(n) {
		return &CycleError{Parent: n.Path(), Child: child.Path()}
	}
	if child.parent == n {
		return nil
	}
	if child.parent != nil {
		return ErrAlreadyParented
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches a direct child. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Ancestors returns the parent chain, nearest first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Root returns the top of n's tree (n itself when detached).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Path returns the names from the root down to n joined by ".".
func (n *Node) Path() string {
	names := []string{n.name}
	for p := n.parent; p != nil; p = p.parent {
		names = append(names, p.name)
	}
	slices.Reverse(names)
	return strings.Join(names, ".")
}

// Walk visits n and its descendants in pre-order. A non-nil error from fn
// stops the walk and is returned.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// SetLogger attaches l to n. Descendants without their own logger use it.
func (n *Node) SetLogger(l *log.Logger) { n.logger = l }

// Logger returns the nearest logger on the path from n to the root, or a
// logger that discards everything.
func (n *Node) Logger() *log.Logger {
	for p := n; p != nil; p = p.parent {
		if p.logger != nil {
			return p.logger
		}
	}
	return discard
}

func (n *Node) String() string { return n.Path() }
