package node

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle matches any [CycleError] via errors.Is.
	ErrCycle = errors.New("node cycle")

	// ErrAlreadyParented is returned by [Node.AddChild] when the child is
	// already owned by a different parent.
	ErrAlreadyParented = errors.New("node already has a parent")

	// ErrNilNode is returned when a nil node is passed to a tree operation.
	ErrNilNode = errors.New("nil node")
)

// CycleError reports a rejected [Node.AddChild] call where the child is the
// parent itself or one of its ancestors.
type CycleError struct {
	Parent string // Path of the node that would have received the child
	Child  string // Path of the rejected child
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("adding %s under %s would create a cycle", e.Child, e.Parent)
}

// Is reports whether target is [ErrCycle].
func (e *CycleError) Is(target error) bool { return target == ErrCycle }
