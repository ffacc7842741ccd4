// Package errs defines the sentinel error values shared across the module.
//
// Callers are expected to match them with errors.Is; most call sites wrap
// them with fmt.Errorf("%w: ...") to attach context.
package errs

import "errors"

// Configuration errors, detected at grid construction.
var (
	// ErrBrightnessOutOfRange indicates a minimum brightness outside [0, 1].
	ErrBrightnessOutOfRange = errors.New("minimum brightness out of range")

	// ErrSizeBelowOrder indicates an explicit export size smaller than an
	// explicit curve order.
	ErrSizeBelowOrder = errors.New("size cannot be smaller than order")

	// ErrUnknownCurveType indicates a curve type with no generator.
	ErrUnknownCurveType = errors.New("unknown curve type")

	// ErrInvalidOrder indicates a negative curve order.
	ErrInvalidOrder = errors.New("invalid curve order")

	// ErrInvalidSize indicates a negative export size.
	ErrInvalidSize = errors.New("invalid image size")

	// ErrInvalidGranularity indicates a zero granularity, which would make
	// automatic order selection impossible.
	ErrInvalidGranularity = errors.New("granularity must be positive")

	// ErrInvalidTotalBytes indicates a zero-sized address space.
	ErrInvalidTotalBytes = errors.New("total bytes must be positive")
)

// State errors.
var (
	// ErrGridFinalized indicates a mutation attempt after the grid has been
	// finalized.
	ErrGridFinalized = errors.New("grid is finalized")

	// ErrExtentOutOfRange indicates a fill range that extends beyond the
	// grid's address space.
	ErrExtentOutOfRange = errors.New("extent out of range")
)

// Lookup errors.
var (
	// ErrUnknownColorKey indicates a color key with no palette entry.
	ErrUnknownColorKey = errors.New("unknown color key")

	// ErrKeyCollision indicates two distinct category names hashing to the
	// same palette key.
	ErrKeyCollision = errors.New("palette key collision")
)

// Encoding errors.
var (
	// ErrRowLength indicates a pixel row whose byte length does not match
	// the declared image width.
	ErrRowLength = errors.New("row length mismatch")
)
