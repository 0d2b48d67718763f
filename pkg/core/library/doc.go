// Package library holds reusable components and the opaque capability traits
// they carry.
//
// The traits here are payload only. Designator numbering, pin matching and
// value formatting are done by consumers of the tree; this package just
// attaches the data those consumers read.
package library
