// Package render draws binary tilemaps as text, terminal cells or PNG images.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Tile values, matching the maze package
const (
	tileOpen = 0
	tileWall = 1
)

// ErrBadTilemap is returned for a tile slice that is not a width-aligned grid of 0 and 1
var ErrBadTilemap = errors.New("bad tilemap")

// Renderer presents a flat row-major tilemap
type Renderer interface {
	Render(tiles []int, width int) error
}

// validate checks tiles form a rectangular grid and returns its height
func validate(tiles []int, width int) (int, error) {
	if width <= 0 {
		return 0, errors.Wrapf(ErrBadTilemap, "width %d", width)
	}
	if len(tiles)%width != 0 {
		return 0, errors.Wrapf(ErrBadTilemap, "%d tiles do not fill rows of %d", len(tiles), width)
	}
	for i, v := range tiles {
		if v != tileOpen && v != tileWall {
			return 0, errors.Wrapf(ErrBadTilemap, "tile %d has value %d", i, v)
		}
	}
	return len(tiles) / width, nil
}

// Palette holds the wall and open colours shared by all renderers
type Palette struct {
	Wall colorful.Color
	Open colorful.Color
}

// DefaultPalette is dark green walls on a near-black floor
var DefaultPalette = Palette{
	Wall: colorful.Color{R: 0x2e / 255.0, G: 0x7d / 255.0, B: 0x32 / 255.0},
	Open: colorful.Color{R: 0x10 / 255.0, G: 0x10 / 255.0, B: 0x10 / 255.0},
}

// ParsePalette reads "#rrggbb" wall and open colours
func ParsePalette(wall, open string) (Palette, error) {
	w, err := colorful.Hex(wall)
	if err != nil {
		return Palette{}, errors.Wrapf(err, "wall colour %q", wall)
	}
	o, err := colorful.Hex(open)
	if err != nil {
		return Palette{}, errors.Wrapf(err, "open colour %q", open)
	}
	return Palette{Wall: w, Open: o}, nil
}

// Tile returns the colour for a tile value
func (p Palette) Tile(v int) colorful.Color {
	if v == tileWall {
		return p.Wall
	}
	return p.Open
}

// Blend mixes the wall colour toward the open colour in Lab space; t=0 is the wall colour
func (p Palette) Blend(t float64) colorful.Color {
	return p.Wall.BlendLab(p.Open, t).Clamped()
}
