package grid

import (
	"fmt"
	"math"

	"github.com/number0/btrfs-heatmap/errs"
)

// DefaultGranularity is the default number of bytes per minimal addressable
// unit, used only when the curve order is chosen automatically. 32 MiB
// targets roughly one pixel per allocation-sized cluster on typical devices.
const DefaultGranularity = 32 * 1024 * 1024

// maxAutoOrder caps the automatically chosen grid side at 2^10 = 1024
// pixels. Larger grids must be requested explicitly.
const maxAutoOrder = 10

// ChooseOrderSize derives the curve order and the export size from the
// total address-space size and the granularity. A negative order or size
// means "not specified".
//
// The automatic order targets one pixel per granularity-sized cluster:
// min(10, ceil(log2(sqrt(totalBytes/granularity)))), clamped to be
// non-negative. The default size upscales small grids to at least
// 1024×1024 on export. An explicitly requested size smaller than an
// explicitly requested order is a configuration error; when the order was
// chosen automatically it is clamped down to the size instead.
func ChooseOrderSize(order, size int, totalBytes, granularity uint64) (int, int, error) {
	autoOrder := order < 0
	if autoOrder {
		if granularity == 0 {
			granularity = DefaultGranularity
		}
		order = int(math.Ceil(math.Log2(math.Sqrt(float64(totalBytes) / float64(granularity)))))
		if order > maxAutoOrder {
			order = maxAutoOrder
		}
		if order < 0 {
			order = 0
		}
	}

	if size < 0 {
		if order > maxAutoOrder {
			size = order
		} else {
			size = maxAutoOrder
		}
	}

	if size < order {
		if autoOrder {
			order = size
		} else {
			return 0, 0, fmt.Errorf("%w: size %d, order %d", errs.ErrSizeBelowOrder, size, order)
		}
	}

	return order, size, nil
}
