package pcb

import (
	"errors"
	"fmt"
)

var (
	// ErrNoParent matches any [NoParentError].
	ErrNoParent = errors.New("relative position without parent")

	// ErrUnresolvedPosition matches any [UnresolvedPositionError].
	ErrUnresolvedPosition = errors.New("no absolute position on ancestor path")

	// ErrResolutionCycle is returned when resolution revisits a node that is
	// still being resolved. The tree invariants rule this out; seeing it means
	// the structure was corrupted.
	ErrResolutionCycle = errors.New("resolution revisited a node")

	// ErrMaxDepth is returned when the ancestor walk exceeds the resolver's
	// depth bound.
	ErrMaxDepth = errors.New("resolution exceeded maximum depth")

	// ErrUnknownLayer is returned by ParseLayer for unrecognized names.
	ErrUnknownLayer = errors.New("unknown layer")
)

// NoParentError reports a node with a RelativePosition trait and no parent.
type NoParentError struct {
	Node string // Path of the orphaned node
}

func (e *NoParentError) Error() string {
	return fmt.Sprintf("%s: relative position has no parent to resolve against", e.Node)
}

// Is reports whether target is [ErrNoParent].
func (e *NoParentError) Is(target error) bool { return target == ErrNoParent }

// UnresolvedPositionError reports a walk that reached the root without
// finding an AbsolutePosition anchor.
type UnresolvedPositionError struct {
	Node string // Path of the node being resolved
	Root string // Path of the root that was reached
}

func (e *UnresolvedPositionError) Error() string {
	return fmt.Sprintf("%s: reached root %s without an absolute position", e.Node, e.Root)
}

// Is reports whether target is [ErrUnresolvedPosition].
func (e *UnresolvedPositionError) Is(target error) bool { return target == ErrUnresolvedPosition }
