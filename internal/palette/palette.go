// Package palette holds the fixed color rotation the engine indexes into.
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// defaultHexes is the stock six-color rotation.
var defaultHexes = []string{
	"#ffd700", // gold
	"#da70d6", // orchid
	"#87cefa", // light sky blue
	"#98fb98", // pale green
	"#ff8c69", // salmon
	"#40e0d0", // turquoise
}

// Palette is a fixed, ordered list of colors. The engine only ever refers
// to a color by index; everything about the actual hue lives here.
type Palette struct {
	colors []colorful.Color
}

// Default returns the stock six-color palette.
func Default() Palette {
	p, err := Parse(defaultHexes)
	if err != nil {
		panic(err)
	}

	return p
}

// Parse builds a palette from hex color strings.
func Parse(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return Palette{}, fmt.Errorf("palette needs at least one color")
	}

	colors := make([]colorful.Color, len(hexes))

	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("parse palette color %q: %w", h, err)
		}

		colors[i] = c
	}

	return Palette{colors: colors}, nil
}

// Size returns the number of colors in the rotation.
func (p Palette) Size() int {
	return len(p.colors)
}

// Hex returns the full-strength color at index i, as used for the name
// channel.
func (p Palette) Hex(i int) string {
	return p.colors[i].Hex()
}

// DimHex returns the reduced-intensity variant used for the delimiter
// channel: the same hue blended toward black in Lab space.
func (p Palette) DimHex(i int) string {
	black := colorful.Color{}
	return p.colors[i].BlendLab(black, 0.35).Clamped().Hex()
}
