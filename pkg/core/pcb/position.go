package pcb

import (
	"fmt"
	"strings"
)

// Layer is the board side a position refers to.
type Layer int

const (
	// LayerUnspecified is the zero value; it inherits like LayerNone and is
	// normalized to LayerNone in resolved positions.
	LayerUnspecified Layer = iota
	// LayerTop is the top copper side.
	LayerTop
	// LayerBottom is the bottom copper side.
	LayerBottom
	// LayerNone marks a position on no particular side.
	LayerNone
)

// String returns the wire name of the layer.
func (l Layer) String() string {
	switch l {
	case LayerTop:
		return "TOP"
	case LayerBottom:
		return "BOTTOM"
	case LayerNone:
		return "NONE"
	default:
		return ""
	}
}

// IsSide reports whether l names a copper side.
func (l Layer) IsSide() bool { return l == LayerTop || l == LayerBottom }

// ParseLayer parses a wire name produced by String. Matching ignores case;
// the empty string is LayerUnspecified.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return LayerUnspecified, nil
	case "top":
		return LayerTop, nil
	case "bottom":
		return LayerBottom, nil
	case "none":
		return LayerNone, nil
	}
	return LayerUnspecified, fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Layer) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layer) UnmarshalText(b []byte) error {
	v, err := ParseLayer(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Position is a board-space coordinate with rotation in degrees.
type Position struct {
	X, Y     float64
	Rotation float64
	Layer    Layer
}

// Compose places offset relative to p.
func (p Position) Compose(offset Position) Position {
	return Position{
		X:        p.X + offset.X,
		Y:        p.Y + offset.Y,
		Rotation: p.Rotation + offset.Rotation,
		Layer:    effectiveLayer(p.Layer, offset.Layer),
	}
}

// Sub returns the component-wise difference p - q. The layer is p's.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y, Rotation: p.Rotation - q.Rotation, Layer: p.Layer}
}

// Concrete returns p with an unspecified layer normalized to LayerNone.
func (p Position) Concrete() Position {
	if p.Layer == LayerUnspecified {
		p.Layer = LayerNone
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g°, %s)", p.X, p.Y, p.Rotation, p.Concrete().Layer)
}

func effectiveLayer(parent, child Layer) Layer {
	if child.IsSide() {
		return child
	}
	return parent
}
