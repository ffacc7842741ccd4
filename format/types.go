// Package format defines the shared types used across the rendering
// pipeline: the curve traversal kinds and the truecolor pixel type.
package format

// CurveType identifies the traversal order used to map linear pixel
// indices onto the two-dimensional grid.
type CurveType uint8

const (
	// CurveHilbert is the locality-preserving space-filling curve.
	// Bytes that are close together in the address space end up close
	// together in the image. This is the default.
	CurveHilbert CurveType = 0x1

	// CurveLinear is a plain row-major scan, left to right, top to bottom.
	CurveLinear CurveType = 0x2

	// CurveSnake is a boustrophedon scan: row-major with odd rows
	// traversed right to left.
	CurveSnake CurveType = 0x3
)

func (c CurveType) String() string {
	switch c {
	case CurveHilbert:
		return "hilbert"
	case CurveLinear:
		return "linear"
	case CurveSnake:
		return "snake"
	default:
		return "unknown"
	}
}

// RGB is one 24-bit truecolor pixel value.
type RGB struct {
	R, G, B uint8
}

// Bytes returns the 3-byte wire form of the color, in channel order R, G, B
// as consumed by the image encoder.
func (c RGB) Bytes() []byte {
	return []byte{c.R, c.G, c.B}
}
