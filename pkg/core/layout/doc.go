// Package layout provides strategies that place an ordered set of nodes by
// attaching relative position traits to them.
//
// A [Layout] is a pure function of sequence order and its own parameters: it
// never reads existing trait state, and applying it twice has the same final
// effect as applying it once. Offsets are relative, so each target needs an
// ancestor that resolves to an absolute position; that precondition is
// checked lazily by [pcb.Resolve], or eagerly by [pcb.Validate].
//
// Two strategies are provided:
//
//   - [Extrude] steps a fixed vector per index: node i lands at v*i.
//   - [Grid] fills rows of a fixed column count.
//
// [pcb.Resolve]: github.com/matzehuels/boardtree/pkg/core/pcb
// [pcb.Validate]: github.com/matzehuels/boardtree/pkg/core/pcb
package layout
