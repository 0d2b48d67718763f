// Package design provides the serialized description of a board design and
// the placement report produced from it.
//
// This package sits at the serialization boundary between files or HTTP
// bodies and the in-memory composition tree:
//
//   - [Design]: declarative input (nodes, parents, position traits, layouts)
//   - [Tree]: the built node tree, indexed by design key
//   - [Report]: resolved placements, the format exporters consume
//
// # Design Files
//
// Designs are JSON or TOML; the format follows the file extension.
//
//	name = "status-leds"
//
//	[[nodes]]
//	key = "board"
//	absolute = { x = 0, y = 0, layer = "top" }
//
//	[[nodes]]
//	key = "led0"
//	parent = "board"
//
//	[[layouts]]
//	type = "extrude"
//	vector = [2.0, 0.0]
//	targets = ["led0", "led1", "led2"]
//
// Parents may be declared after their children. Library components
// (component = "ldo") create their interface nodes automatically; those are
// addressable as "<key>.<path>", for example "u1.v_in.hv".
//
// # Building
//
// [Build] validates keys and references, attaches parents and position
// traits, then applies layouts in declaration order. Structural errors from
// the core packages are returned wrapped; [Classify] maps any error to an
// [errors.Code].
//
// # Reports
//
// [NewReport] resolves every placeable node (one with a position trait or a
// designator prefix) and records failures per node instead of stopping at
// the first one.
//
// [errors.Code]: github.com/matzehuels/boardtree/pkg/errors
package design
