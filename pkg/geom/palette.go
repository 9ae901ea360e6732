package geom

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPaletteHex is the eight-color cycle used when no explicit color is given.
var DefaultPaletteHex = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666",
	"#73c0de", "#3ba272", "#fc8452", "#9a60b4",
}

// Palette is a cyclic list of colors indexed by series or node position.
type Palette []ColorRGB

// DefaultPalette returns a fresh copy of the default palette.
func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultPaletteHex)
	if err != nil {
		panic(err) // constant input
	}
	return p
}

// ParsePalette converts hex color strings into a palette.
// It returns an error naming the first entry that is not a valid hex color.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// ParseHex parses "#rrggbb" or "#rgb" into a color.
func ParseHex(s string) (ColorRGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorRGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return ColorRGB{R: r, G: g, B: b}, nil
}

// MustHex is like ParseHex but panics on invalid input.
// It is intended for package-level color constants.
func MustHex(s string) ColorRGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// At returns the color for index i, cycling through the palette.
// An empty palette falls back to the default one.
func (p Palette) At(i int) ColorRGB {
	if len(p) == 0 {
		p = DefaultPalette()
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Pick returns the explicit color when it parses, otherwise the palette color at i.
// Unparseable explicit colors degrade to the palette rather than failing the layout.
func (p Palette) Pick(explicit string, i int) ColorRGB {
	if explicit != "" {
		if c, err := ParseHex(explicit); err == nil {
			return c
		}
	}
	return p.At(i)
}
