package grid

import (
	"math"

	"github.com/number0/btrfs-heatmap/format"
)

// mixEntry is one contribution toward a pixel: a color, the utilization of
// the underlying byte range, and the fraction of the pixel it covers.
type mixEntry struct {
	color    format.RGB
	used     float64
	coverage float64
}

// compositor blends the mix entries accumulated for one pixel into a
// finalized color and keeps a cache from finalized colors to their 3-byte
// wire form. Large uniform regions (all-free space, say) resolve to the
// same color over and over, so the cache lets every such pixel share one
// encoded slice.
type compositor struct {
	entries       []mixEntry
	minBrightness float64
	cache         map[format.RGB][]byte
}

func newCompositor(minBrightness float64) *compositor {
	return &compositor{
		minBrightness: minBrightness,
		cache:         make(map[format.RGB][]byte),
	}
}

func (c *compositor) add(color format.RGB, used, coverage float64) {
	c.entries = append(c.entries, mixEntry{color: color, used: used, coverage: coverage})
}

func (c *compositor) dirty() bool {
	return len(c.entries) > 0
}

func (c *compositor) reset() {
	c.entries = c.entries[:0]
}

// composite blends the pending entries into one finalized color. Coverage
// fractions for a pixel sum to at most 1; the unfilled remainder
// contributes black. The result is scaled by the usage-weighted brightness
// factor, which reaches 1 only for fully utilized pixels.
func (c *compositor) composite() []byte {
	var rSum, gSum, bSum, usage float64
	for _, e := range c.entries {
		rSum += float64(e.color.R) * e.coverage
		gSum += float64(e.color.G) * e.coverage
		bSum += float64(e.color.B) * e.coverage
		usage += e.used * e.coverage
	}

	factor := c.minBrightness + usage*(1-c.minBrightness)

	// Inputs are bounded (channels ≤ 255, fractions ≤ 1, factor ≤ 1), so
	// no clamping is needed.
	return c.encoded(format.RGB{
		R: uint8(math.Round(rSum * factor)),
		G: uint8(math.Round(gSum * factor)),
		B: uint8(math.Round(bSum * factor)),
	})
}

// encoded returns the shared 3-byte form of a color, adding it to the
// cache on first use.
func (c *compositor) encoded(color format.RGB) []byte {
	if b, ok := c.cache[color]; ok {
		return b
	}
	b := color.Bytes()
	c.cache[color] = b

	return b
}
