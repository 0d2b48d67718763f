package design

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boardtree/pkg/core/library"
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
)

var (
	// ErrDuplicateKey is returned by Build when two nodes share a key.
	ErrDuplicateKey = errors.New("duplicate node key")

	// ErrUnknownParent is returned by Build when a parent key is not declared.
	ErrUnknownParent = errors.New("unknown parent")

	// ErrUnknownTarget is returned by Build when a layout names an unknown key.
	ErrUnknownTarget = errors.New("unknown layout target")

	// ErrUnknownComponent is returned by Build for unrecognized components.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrInvalidVector is returned for layout vectors without two components.
	ErrInvalidVector = errors.New("layout vector must have two components")
)

// Tree is a built design: the node tree plus the key index.
type Tree struct {
	Name  string
	Roots []*node.Node

	nodes map[string]*node.Node
	keys  map[uuid.UUID]string
	order []string
}

func newTree(name string) *Tree {
	return &Tree{
		Name:  name,
		nodes: make(map[string]*node.Node),
		keys:  make(map[uuid.UUID]string),
	}
}

// Lookup returns the node registered under key.
func (t *Tree) Lookup(key string) (*node.Node, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// Key returns the design key of n.
func (t *Tree) Key(n *node.Node) (string, bool) {
	k, ok := t.keys[n.ID()]
	return k, ok
}

// Keys returns all keys in registration order: declared nodes first, each
// followed by the interface nodes of its component.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int { return len(t.order) }

func (t *Tree) register(key string, n *node.Node) error {
	if _, exists := t.nodes[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	t.nodes[key] = n
	t.keys[n.ID()] = key
	t.order = append(t.order, key)
	return nil
}

// Build turns d into a node tree. The logger is attached to every root so
// trait overrides and layout assignments are reported; nil disables logging.
func Build(d Design, logger *log.Logger) (*Tree, error) {
	t := newTree(d.Name)

	for i := range d.Nodes {
		nd := &d.Nodes[i]
		if err := bterrors.ValidateKey(nd.Key); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if err := bterrors.ValidateName(nd.Name); err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.Key, err)
		}
		n, err := newNode(nd)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.Key, err)
		}
		if err := t.register(nd.Key, n); err != nil {
			return nil, err
		}
		if err := registerInterfaces(t, nd.Key, n); err != nil {
			return nil, err
		}
	}

	for i := range d.Nodes {
		nd := &d.Nodes[i]
		if nd.Parent == "" {
			continue
		}
		parent, ok := t.nodes[nd.Parent]
		if !ok {
			return nil, fmt.Errorf("node %s: %w: %s", nd.Key, ErrUnknownParent, nd.Parent)
		}
		if err := parent.AddChild(t.nodes[nd.Key]); err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.Key, err)
		}
	}

	for i := range d.Nodes {
		nd := &d.Nodes[i]
		if t.nodes[nd.Key].Parent() == nil {
			root := t.nodes[nd.Key]
			if logger != nil {
				root.SetLogger(logger)
			}
			t.Roots = append(t.Roots, root)
		}
	}

	// Traits are attached after the tree is linked so overrides log with
	// full paths.
	for i := range d.Nodes {
		if err := attachTraits(t.nodes[d.Nodes[i].Key], &d.Nodes[i]); err != nil {
			return nil, fmt.Errorf("node %s: %w", d.Nodes[i].Key, err)
		}
	}

	for i, l := range d.Layouts {
		if err := applyLayout(t, l); err != nil {
			return nil, fmt.Errorf("layout %d (%s): %w", i, l.Type, err)
		}
	}

	return t, nil
}

func newNode(nd *Node) (*node.Node, error) {
	name := nd.DisplayName()
	switch strings.ToLower(nd.Component) {
	case "":
		return node.New(name), nil
	case ComponentLDO:
		return library.NewLDO(name).Node, nil
	case ComponentPower:
		return library.NewElectricPower(name).Node, nil
	case ComponentElectrical:
		return library.NewElectrical(name).Node, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, nd.Component)
}

// registerInterfaces indexes the nodes a component created below n as
// key.child.grandchild.
func registerInterfaces(t *Tree, key string, n *node.Node) error {
	var walk func(prefix string, cur *node.Node) error
	walk = func(prefix string, cur *node.Node) error {
		for _, c := range cur.Children() {
			k := prefix + "." + c.Name()
			if err := t.register(k, c); err != nil {
				return err
			}
			if err := walk(k, c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(key, n)
}

func attachTraits(n *node.Node, nd *Node) error {
	if nd.Designator != "" {
		n.AddTrait(library.DesignatorPrefix{Prefix: nd.Designator})
	}
	if len(nd.Meta) > 0 {
		n.AddTrait(Meta(nd.Meta))
	}
	if nd.Absolute != nil {
		p, err := nd.Absolute.ToPCB()
		if err != nil {
			return fmt.Errorf("absolute: %w", err)
		}
		pcb.SetAbsolute(n, p)
	}
	if nd.Relative != nil {
		p, err := nd.Relative.ToPCB()
		if err != nil {
			return fmt.Errorf("relative: %w", err)
		}
		pcb.SetRelative(n, p)
	}
	return nil
}

func applyLayout(t *Tree, l Layout) error {
	strategy, err := l.Strategy()
	if err != nil {
		return err
	}
	targets := make([]*node.Node, len(l.Targets))
	for i, key := range l.Targets {
		n, ok := t.nodes[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTarget, key)
		}
		targets[i] = n
	}
	return strategy.Apply(targets...)
}
