// Package grid renders a linear address space onto a square pixel grid.
//
// A Grid owns the pixel buffer and a forward-only curve cursor. Callers
// feed it byte ranges in ascending offset order via Fill; each range is
// translated into pixel coverage along the traversal curve and blended
// into composite pixel colors. Once finalized, the grid is immutable and
// can be exported as a PNG any number of times.
//
// Grids are single-owner: no concurrent access is supported.
package grid

import (
	"fmt"
	"io"
	"iter"
	"math"
	"os"

	"github.com/number0/btrfs-heatmap/curve"
	"github.com/number0/btrfs-heatmap/errs"
	"github.com/number0/btrfs-heatmap/format"
	"github.com/number0/btrfs-heatmap/internal/pool"
	"github.com/number0/btrfs-heatmap/png"
)

// Grid maps the address space [0, totalBytes) onto a 2^order × 2^order
// pixel buffer through a space-filling curve.
type Grid struct {
	order int
	size  int

	width  int
	height int

	totalBytes    uint64
	bytesPerPixel float64

	cursor curve.Generator
	row    int
	col    int
	linear int

	comp *compositor

	// pixels holds one shared encoded RGB slice per cell, row-major.
	pixels [][]byte

	finalized bool
}

// New creates a grid for an address space of totalBytes bytes.
// Configuration errors (brightness out of range, size below an explicit
// order, unknown curve kind) are reported here, before any pixel state
// exists.
func New(totalBytes uint64, opts ...Option) (*Grid, error) {
	if totalBytes == 0 {
		return nil, errs.ErrInvalidTotalBytes
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	order, size, err := ChooseOrderSize(cfg.order, cfg.size, totalBytes, cfg.granularity)
	if err != nil {
		return nil, err
	}

	cursor, err := curve.New(cfg.curveType, order)
	if err != nil {
		return nil, err
	}

	side := 1 << order
	g := &Grid{
		order:         order,
		size:          size,
		width:         side,
		height:        side,
		totalBytes:    totalBytes,
		bytesPerPixel: float64(totalBytes) / float64(side*side),
		cursor:        cursor,
		comp:          newCompositor(cfg.minBrightness),
	}

	black := g.comp.encoded(format.RGB{})
	g.pixels = make([][]byte, side*side)
	for i := range g.pixels {
		g.pixels[i] = black
	}

	// Position the cursor on the first curve step.
	g.step()

	return g, nil
}

// Order returns log2 of the grid side length.
func (g *Grid) Order() int { return g.order }

// Size returns log2 of the exported image side length.
func (g *Grid) Size() int { return g.size }

// Width returns the grid side length in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid side length in pixels.
func (g *Grid) Height() int { return g.height }

// ExportWidth returns the width of the exported image, after upscaling.
func (g *Grid) ExportWidth() int { return g.width << (g.size - g.order) }

// ExportHeight returns the height of the exported image, after upscaling.
func (g *Grid) ExportHeight() int { return g.height << (g.size - g.order) }

// TotalBytes returns the size of the rendered address space.
func (g *Grid) TotalBytes() uint64 { return g.totalBytes }

// BytesPerPixel returns the number of address-space bytes one pixel
// represents. It is fractional for address spaces that do not divide
// evenly.
func (g *Grid) BytesPerPixel() float64 { return g.bytesPerPixel }

// At returns the committed color of a cell. Pixels not yet finalized still
// read as their previous value (black until first committed).
func (g *Grid) At(row, col int) format.RGB {
	px := g.pixels[row*g.width+col]

	return format.RGB{R: px[0], G: px[1], B: px[2]}
}

// Fill records that the byte range [firstByte, firstByte+length) has the
// given utilization and color.
//
// Ranges must arrive in ascending offset order and must not overlap: the
// cursor only moves forward, so a violating call blends into whatever
// pixel is currently open instead of the one it names. This is a caller
// contract, not a validated condition. What is validated: ranges must lie
// within [0, totalBytes), and the grid must not be finalized yet.
func (g *Grid) Fill(firstByte, length uint64, used float64, color format.RGB) error {
	if g.finalized {
		return fmt.Errorf("%w: cannot fill", errs.ErrGridFinalized)
	}
	if length == 0 {
		return nil
	}
	if firstByte > g.totalBytes || length > g.totalBytes-firstByte {
		return fmt.Errorf("%w: [%d, %d) exceeds %d bytes",
			errs.ErrExtentOutOfRange, firstByte, firstByte+length, g.totalBytes)
	}

	firstPixel := g.pixelIndex(firstByte)
	lastPixel := g.pixelIndex(firstByte + length - 1)

	for g.linear < firstPixel {
		g.nextPixel()
	}

	if firstPixel == lastPixel {
		g.comp.add(color, used, float64(length)/g.bytesPerPixel)

		return nil
	}

	firstFrac := (g.bytesPerPixel - math.Mod(float64(firstByte), g.bytesPerPixel)) / g.bytesPerPixel
	lastFrac := math.Mod(float64(firstByte+length), g.bytesPerPixel) / g.bytesPerPixel
	if lastFrac == 0 {
		lastFrac = 1
	}

	// Our share of the first pixel; it may already hold contributions from
	// the previous fill.
	g.comp.add(color, used, firstFrac)

	// Pixels strictly between first and last are fully owned by this fill,
	// so they are committed directly with one shared composite.
	if g.linear < lastPixel-1 {
		g.nextPixel()
		g.comp.add(color, used, 1)
		rgbytes := g.comp.composite()
		g.setPixel(rgbytes)
		g.comp.reset()
		for g.linear < lastPixel-1 {
			g.step()
			g.setPixel(rgbytes)
		}
	}

	// Our share of the last pixel stays pending; the next fill may add to
	// it.
	g.nextPixel()
	g.comp.add(color, used, lastFrac)

	return nil
}

// pixelIndex maps a byte offset to a curve linear index, clamped to the
// grid. The clamp guards against float rounding pushing the final byte of
// a very large address space past the last pixel.
func (g *Grid) pixelIndex(offset uint64) int {
	idx := int(float64(offset) / g.bytesPerPixel)
	if last := g.width*g.height - 1; idx > last {
		idx = last
	}

	return idx
}

// nextPixel commits the current pixel if it has pending contributions,
// then moves the cursor one step along the curve.
func (g *Grid) nextPixel() {
	if g.comp.dirty() {
		g.setPixel(g.comp.composite())
		g.comp.reset()
	}
	g.step()
}

func (g *Grid) step() {
	s, ok := g.cursor.Next()
	if !ok {
		// Curve exhausted; Fill's range validation keeps targets within
		// the grid, so the cursor simply stays on the last cell.
		return
	}
	g.row, g.col, g.linear = s.Row, s.Col, s.Linear
}

func (g *Grid) setPixel(rgbytes []byte) {
	g.pixels[g.row*g.width+g.col] = rgbytes
}

// Finalize commits any pending pixel and freezes the grid. It is
// idempotent; exporting calls it implicitly.
func (g *Grid) Finalize() {
	if g.finalized {
		return
	}
	if g.comp.dirty() {
		g.setPixel(g.comp.composite())
		g.comp.reset()
	}
	g.finalized = true
}

// Rows yields the export rows of the image, top to bottom. When the export
// size exceeds the order, each stored pixel is replicated into a
// 2^(size-order) square block. The yielded slice is reused between rows;
// consumers must not retain it.
func (g *Grid) Rows() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		g.Finalize()

		scale := 1 << (g.size - g.order)
		buf := pool.GetRowBuffer()
		defer pool.PutRowBuffer(buf)

		for y := range g.height {
			buf.Reset()
			for x := range g.width {
				px := g.pixels[y*g.width+x]
				for range scale {
					buf.B = append(buf.B, px...)
				}
			}
			for range scale {
				if !yield(buf.Bytes()) {
					return
				}
			}
		}
	}
}

// EncodeTo finalizes the grid and writes it to w as a PNG.
func (g *Grid) EncodeTo(w io.Writer) error {
	return png.Encode(w, g.ExportWidth(), g.ExportHeight(), g.Rows())
}

// WritePNG finalizes the grid and writes it to the named file. The file is
// closed on all paths; on error its contents are unspecified.
func (g *Grid) WritePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return g.EncodeTo(f)
}
