// Package pcb defines board positions, the position traits and the resolver
// that turns chains of relative offsets into absolute placements.
//
// # Positions
//
// A [Position] is an immutable (x, y, rotation, layer) value. Composing a
// parent's resolved position P with a child's offset O yields
//
//	(P.X+O.X, P.Y+O.Y, P.Rotation+O.Rotation, effectiveLayer(P.Layer, O.Layer))
//
// where the child's layer wins only when it names a copper side
// ([LayerTop] or [LayerBottom]); otherwise the parent's layer is inherited.
//
// # Traits
//
// [AbsolutePosition] marks a placement anchor. [RelativePosition] places a
// node relative to the nearest ancestor that resolves to a position. The two
// occupy different trait categories; when a node holds both, the anchor wins.
//
// # Resolution
//
// [Resolve] walks from a node toward the root:
//
//  1. An AbsolutePosition anchor ends the walk.
//  2. A RelativePosition offset is recorded and the walk moves to the parent;
//     a missing parent is a [NoParentError].
//  3. A node with neither trait is transparent and the walk moves on.
//  4. Reaching the root without an anchor is an [UnresolvedPositionError].
//
// The recorded offsets are then composed onto the anchor from the top down.
// A visited set and a depth bound guard against malformed structures so that
// resolution fails fast instead of looping.
//
// Resolved positions are always concrete: an anchor whose layer is
// [LayerUnspecified] resolves with [LayerNone].
package pcb
