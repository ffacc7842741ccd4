// Package heatmap renders a one-dimensional address space onto a
// two-dimensional raster image.
//
// Byte ranges are laid out along a space-filling curve so that ranges close
// together in the address space stay close together in the image, and
// overlapping or partial pixel coverage is blended into composite colors
// scaled by a usage-weighted brightness.
//
// The metadata-reading side (enumerating device extents, chunks, or tree
// blocks and classifying them) lives outside this module. It only has to
// produce an ascending, non-overlapping sequence of Extent values covering
// the address space, plus a palette resolving its color keys.
//
// # Basic Usage
//
//	pal := palette.BlockGroups()
//	extents := func(yield func(heatmap.Extent) bool) {
//	    yield(heatmap.Extent{
//	        FirstByte:    0,
//	        Length:       1 << 30,
//	        UsedFraction: 0.42,
//	        Key:          heatmap.Key("data"),
//	    })
//	}
//	err := heatmap.Render("usage.png", totalBytes, pal, extents)
package heatmap

import (
	"fmt"
	"iter"

	"github.com/number0/btrfs-heatmap/grid"
	"github.com/number0/btrfs-heatmap/internal/hash"
	"github.com/number0/btrfs-heatmap/palette"
)

// Extent is one classified byte range of the address space, as produced by
// the upstream metadata reader.
type Extent struct {
	// FirstByte is the range's offset in the linear address space.
	FirstByte uint64

	// Length is the range's size in bytes.
	Length uint64

	// UsedFraction is the utilization of the range in [0, 1]; it drives
	// pixel brightness.
	UsedFraction float64

	// Key identifies the range's semantic category in the palette,
	// computed with Key or palette.ID.
	Key uint64
}

// Key computes the palette key for a category name.
func Key(category string) uint64 {
	return hash.ID(category)
}

// New creates a grid for an address space of totalBytes bytes. It is a
// convenience re-export of grid.New.
func New(totalBytes uint64, opts ...grid.Option) (*grid.Grid, error) {
	return grid.New(totalBytes, opts...)
}

// Walk fills the grid from an ascending sequence of extents, resolving
// each color key through the palette. A key without a palette entry stops
// the walk immediately: it means the upstream classifier and the palette
// disagree, which is a logic defect rather than bad data.
func Walk(g *grid.Grid, pal *palette.Palette, extents iter.Seq[Extent]) error {
	for ext := range extents {
		color, err := pal.LookupID(ext.Key)
		if err != nil {
			return err
		}
		if err := g.Fill(ext.FirstByte, ext.Length, ext.UsedFraction, color); err != nil {
			return fmt.Errorf("failed to fill extent at %d: %w", ext.FirstByte, err)
		}
	}

	return nil
}

// Render runs the whole pipeline: construct a grid, walk the extents, and
// write the finished PNG to path. Either a complete, valid image is
// written or an error is returned.
func Render(path string, totalBytes uint64, pal *palette.Palette, extents iter.Seq[Extent], opts ...grid.Option) error {
	g, err := grid.New(totalBytes, opts...)
	if err != nil {
		return err
	}
	if err := Walk(g, pal, extents); err != nil {
		return err
	}

	return g.WritePNG(path)
}
