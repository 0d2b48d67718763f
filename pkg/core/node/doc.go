// Package node provides the composition tree that every design is built from.
//
// # Overview
//
// A [Node] is a vertex in an ownership tree: it owns an ordered list of
// children and keeps a non-owning reference to its parent. Modules, interfaces
// and purely organizational groupings are all nodes; what distinguishes them
// is the set of traits attached to them.
//
// # Traits
//
// A [Trait] is a typed capability object. Each trait reports a [Category], and
// a node holds at most one trait per category. Attaching a second trait of the
// same category replaces the first (last write wins) and logs the override at
// warning level, so iterative redefinition stays visible:
//
//	n := node.New("ldo")
//	n.AddTrait(library.DesignatorPrefix{Prefix: "U"})
//	if p, ok := node.Get[library.DesignatorPrefix](n, library.CategoryDesignatorPrefix); ok {
//	    fmt.Println(p.Prefix)
//	}
//
// Categories use strict identity. Two traits that implement overlapping
// behavior but report different categories coexist on the same node.
//
// # Structure
//
// [Node.AddChild] refuses edits that would create a cycle ([CycleError]) or
// give a node a second parent ([ErrAlreadyParented]); the tree is left
// unchanged in both cases.
//
// # Logging
//
// There is no package-level logger. [Node.SetLogger] attaches a logger to a
// node, usually the root, and [Node.Logger] returns the nearest logger on the
// ancestor path.
//
// # Concurrency
//
// Nodes are not safe for concurrent mutation. Concurrent reads are safe as
// long as no goroutine mutates the tree at the same time; callers serialize
// build phases against query phases.
package node
