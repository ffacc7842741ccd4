// Package palette maps semantic color keys to RGB values.
//
// Keys are 64-bit xxHash64 digests of category names, so upstream
// classifiers can precompute them once with ID and hand the renderer plain
// integers. Two built-in palettes cover the usual classifications: block
// group type (BlockGroups) and metadata tree ownership (MetadataTrees).
package palette

import (
	"fmt"

	"github.com/number0/btrfs-heatmap/errs"
	"github.com/number0/btrfs-heatmap/format"
	"github.com/number0/btrfs-heatmap/internal/hash"
)

// Basic colors.
var (
	Black = format.RGB{R: 0x00, G: 0x00, B: 0x00}
	White = format.RGB{R: 0xff, G: 0xff, B: 0xff}
	Red   = format.RGB{R: 0xff, G: 0x00, B: 0x33}
	Blue  = format.RGB{R: 0x00, G: 0x00, B: 0xff}

	// BlueWhite marks regions holding both data and metadata.
	BlueWhite = format.RGB{R: 0x99, G: 0xcc, B: 0xff}
)

// Accent colors used by the metadata tree palette.
var (
	PaleRed   = format.RGB{R: 0xca, G: 0x53, B: 0x5c}
	Fuchsia   = format.RGB{R: 0xde, G: 0x5d, B: 0x94}
	Curry     = format.RGB{R: 0xf9, G: 0xe1, B: 0x7e}
	Clover    = format.RGB{R: 0x6e, G: 0xa6, B: 0x34}
	Moss      = format.RGB{R: 0x81, G: 0x88, B: 0x3c}
	Bluebell  = format.RGB{R: 0xaa, G: 0xcc, B: 0xeb}
	Pool      = format.RGB{R: 0x8f, G: 0xdd, B: 0xea}
	Beet      = format.RGB{R: 0x9d, G: 0x54, B: 0x9c}
	Aubergine = format.RGB{R: 0x6a, G: 0x5a, B: 0x7f}
	Plum      = format.RGB{R: 0xdb, G: 0xc9, B: 0xea}
	Slate     = format.RGB{R: 0x75, G: 0x77, B: 0x7b}
	Chocolate = format.RGB{R: 0x6f, G: 0x5e, B: 0x55}
)

// ID computes the palette key for a category name. Keys are stable across
// processes and releases.
func ID(name string) uint64 {
	return hash.ID(name)
}

// Palette is a category-keyed color table. It is not safe for concurrent
// mutation; build it up front, then share it read-only.
type Palette struct {
	colors map[uint64]format.RGB
	names  map[uint64]string
}

// New creates an empty palette.
func New() *Palette {
	return &Palette{
		colors: make(map[uint64]format.RGB),
		names:  make(map[uint64]string),
	}
}

// Set registers a color under the given category name. Registering the same
// name again overwrites the color; two distinct names hashing to the same
// key return ErrKeyCollision, since lookups could no longer tell the
// categories apart.
func (p *Palette) Set(name string, c format.RGB) error {
	id := hash.ID(name)
	if existing, ok := p.names[id]; ok && existing != name {
		return fmt.Errorf("%w: %q and %q both map to 0x%016x",
			errs.ErrKeyCollision, existing, name, id)
	}
	p.colors[id] = c
	p.names[id] = name

	return nil
}

// Lookup resolves a category name to its color.
func (p *Palette) Lookup(name string) (format.RGB, error) {
	return p.LookupID(hash.ID(name))
}

// LookupID resolves a precomputed key to its color. A missing entry means
// the upstream classifier produced a category the palette does not know
// about, which is a logic defect, not a recoverable condition.
func (p *Palette) LookupID(id uint64) (format.RGB, error) {
	c, ok := p.colors[id]
	if !ok {
		return format.RGB{}, fmt.Errorf("%w: 0x%016x", errs.ErrUnknownColorKey, id)
	}

	return c, nil
}

// Len returns the number of registered categories.
func (p *Palette) Len() int {
	return len(p.colors)
}

func mustBuild(entries map[string]format.RGB) *Palette {
	p := New()
	for name, c := range entries {
		if err := p.Set(name, c); err != nil {
			panic(err)
		}
	}

	return p
}

// BlockGroups returns the default palette for classification by block group
// type.
func BlockGroups() *Palette {
	return mustBuild(map[string]format.RGB{
		"data":     White,
		"metadata": Blue,
		"system":   Red,
		"mixed":    BlueWhite,
	})
}

// MetadataTrees returns the default palette for classification by owning
// metadata tree.
func MetadataTrees() *Palette {
	return mustBuild(map[string]format.RGB{
		"root":       PaleRed,
		"extent":     Beet,
		"chunk":      Moss,
		"dev":        Aubergine,
		"fs":         Bluebell,
		"csum":       Clover,
		"quota":      Fuchsia,
		"uuid":       Chocolate,
		"free-space": Plum,
		"data-reloc": Slate,
	})
}
