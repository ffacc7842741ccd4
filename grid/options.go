package grid

import (
	"fmt"

	"github.com/number0/btrfs-heatmap/errs"
	"github.com/number0/btrfs-heatmap/format"
)

// config collects the construction parameters before validation.
type config struct {
	order         int // negative means auto
	size          int // negative means auto
	curveType     format.CurveType
	minBrightness float64
	granularity   uint64
}

func defaultConfig() config {
	return config{
		order:         -1,
		size:          -1,
		curveType:     format.CurveHilbert,
		minBrightness: 0.1,
		granularity:   DefaultGranularity,
	}
}

// Option configures a Grid during construction. Options validate eagerly,
// so New reports configuration errors before any pixel state exists.
type Option func(*config) error

// WithOrder fixes the curve order instead of deriving it from the total
// size. The grid side becomes 2^order pixels.
func WithOrder(order int) Option {
	return func(c *config) error {
		if order < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidOrder, order)
		}
		c.order = order

		return nil
	}
}

// WithSize fixes the export size. The exported image side becomes 2^size
// pixels; size must not be smaller than the curve order.
func WithSize(size int) Option {
	return func(c *config) error {
		if size < 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidSize, size)
		}
		c.size = size

		return nil
	}
}

// WithCurve selects the traversal order. The default is the Hilbert curve.
func WithCurve(kind format.CurveType) Option {
	return func(c *config) error {
		c.curveType = kind

		return nil
	}
}

// WithMinBrightness sets the brightness floor applied to fully unused
// regions, in [0, 1]. The default is 0.1.
func WithMinBrightness(b float64) Option {
	return func(c *config) error {
		if b < 0 || b > 1 {
			return fmt.Errorf("%w: %v", errs.ErrBrightnessOutOfRange, b)
		}
		c.minBrightness = b

		return nil
	}
}

// WithGranularity sets the bytes-per-unit used by automatic order
// selection. It has no effect when the order is set explicitly.
func WithGranularity(bytes uint64) Option {
	return func(c *config) error {
		if bytes == 0 {
			return fmt.Errorf("%w", errs.ErrInvalidGranularity)
		}
		c.granularity = bytes

		return nil
	}
}
