package pcb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/boardtree/pkg/core/node"
)

// DefaultMaxDepth bounds the ancestor walk. Design trees are tens of levels
// deep at most.
const DefaultMaxDepth = 1024

// State is the resolution state of a node as seen by a memoizing [Resolver].
type State int

const (
	StateUnvisited State = iota
	StateResolving
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unvisited"
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithMemo makes the resolver remember results per node until Invalidate is
// called. Callers that attach traits after resolving must invalidate.
func WithMemo() Option {
	return func(r *Resolver) { r.memo = make(map[uuid.UUID]memoEntry) }
}

type memoEntry struct {
	pos   Position
	err   error
	state State
}

// Resolver composes relative position chains into absolute positions.
//
// A Resolver without memoization holds no state and may be shared freely.
// A memoizing Resolver is safe for concurrent use; its memo is guarded.
type Resolver struct {
	maxDepth int

	mu   sync.Mutex
	memo map[uuid.UUID]memoEntry
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the absolute position of n using a non-memoizing resolver.
func Resolve(n *node.Node) (Position, error) {
	return NewResolver().Resolve(n)
}

// Resolve walks n's ancestry to the nearest anchor and composes the offsets
// collected on the way. The result is always concrete.
func (r *Resolver) Resolve(n *node.Node) (Position, error) {
	if n == nil {
		return Position{}, node.ErrNilNode
	}
	if e, ok := r.lookup(n); ok {
		return e.pos, e.err
	}

	pos, err := r.resolve(n)
	r.store(n, pos, err)

	l := n.Logger()
	if err != nil {
		l.Debug("position unresolved", "node", n.Path(), "err", err)
		return Position{}, err
	}
	l.Debug("position resolved", "node", n.Path(), "pos", pos)
	return pos, nil
}

func (r *Resolver) resolve(n *node.Node) (Position, error) {
	var (
		offsets []Position
		anchor  Position
		visited = make(map[*node.Node]State)
	)

	for cur, depth := n, 0; ; depth++ {
		if depth > r.maxDepth {
			return Position{}, fmt.Errorf("%s: %w (%d)", n.Path(), ErrMaxDepth, r.maxDepth)
		}
		if visited[cur] == StateResolving {
			return Position{}, fmt.Errorf("%s: %w: %s", n.Path(), ErrResolutionCycle, cur.Path())
		}
		visited[cur] = StateResolving

		if abs, ok := node.Get[AbsolutePosition](cur, CategoryAbsolute); ok {
			anchor = abs.Position
			break
		}
		if cur != n {
			if e, ok := r.lookup(cur); ok && e.err == nil {
				anchor = e.pos
				break
			}
		}

		parent := cur.Parent()
		if rel, ok := node.Get[RelativePosition](cur, CategoryRelative); ok {
			if parent == nil {
				return Position{}, &NoParentError{Node: cur.Path()}
			}
			offsets = append(offsets, rel.Offset)
		} else if parent == nil {
			return Position{}, &UnresolvedPositionError{Node: n.Path(), Root: cur.Path()}
		}
		cur = parent
	}

	pos := anchor
	for i := len(offsets) - 1; i >= 0; i-- {
		pos = pos.Compose(offsets[i])
	}
	return pos.Concrete(), nil
}

// ResolveAll resolves every node and returns the positions keyed by node ID.
// Failures do not stop the loop; they are joined into the returned error.
func (r *Resolver) ResolveAll(nodes []*node.Node) (map[uuid.UUID]Position, error) {
	out := make(map[uuid.UUID]Position, len(nodes))
	var errs []error
	for _, n := range nodes {
		pos, err := r.Resolve(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[n.ID()] = pos
	}
	return out, errors.Join(errs...)
}

// State reports what a memoizing resolver knows about n. Non-memoizing
// resolvers always report StateUnvisited.
func (r *Resolver) State(n *node.Node) State {
	if e, ok := r.lookup(n); ok {
		return e.state
	}
	return StateUnvisited
}

// Invalidate clears the memo. It is a no-op without WithMemo.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memo != nil {
		clear(r.memo)
	}
}

func (r *Resolver) lookup(n *node.Node) (memoEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memo == nil {
		return memoEntry{}, false
	}
	e, ok := r.memo[n.ID()]
	return e, ok
}

func (r *Resolver) store(n *node.Node, pos Position, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memo == nil {
		return
	}
	e := memoEntry{pos: pos, err: err, state: StateResolved}
	if err != nil {
		e.state = StateFailed
	}
	r.memo[n.ID()] = e
}

// Validate resolves every positioned node under root and joins the failures.
// It is an optional eager check; resolution itself fails lazily.
func Validate(root *node.Node) error {
	r := NewResolver()
	var errs []error
	_ = root.Walk(func(n *node.Node) error {
		if !IsPositioned(n) {
			return nil
		}
		if _, err := r.Resolve(n); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	return errors.Join(errs...)
}
