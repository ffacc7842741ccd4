// Package curve generates traversal orders for square pixel grids.
//
// A generator walks an N×N grid (N = 2^order) and emits every cell exactly
// once. The linear index of the emitted steps is strictly increasing and
// enumerates 0..4^order-1, so a generator doubles as the mapping between
// the one-dimensional address space and the two-dimensional image.
//
// Generators are forward-only and single-owner. There is no rewind; to
// traverse again, construct a new instance.
package curve

import (
	"fmt"

	"github.com/number0/btrfs-heatmap/errs"
	"github.com/number0/btrfs-heatmap/format"
)

// Step is one cell visit: its grid coordinates and its position in the
// traversal order.
type Step struct {
	Row    int
	Col    int
	Linear int
}

// Generator walks a grid one cell at a time.
type Generator interface {
	// Next returns the next step of the traversal. It returns false once
	// all 4^order cells have been emitted; after that every call returns
	// false.
	Next() (Step, bool)
}

// New creates a generator of the given kind for a 2^order × 2^order grid.
func New(kind format.CurveType, order int) (Generator, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidOrder, order)
	}

	switch kind {
	case format.CurveHilbert:
		return newHilbert(order), nil
	case format.CurveLinear:
		return newLinear(order), nil
	case format.CurveSnake:
		return newSnake(order), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCurveType, kind)
	}
}
