package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

// TileImage presents a tilemap as an image with square cells of Cell pixels
type TileImage struct {
	Tiles   []int
	Width   int
	Height  int
	Cell    int
	Palette Palette

	wall, open color.RGBA
}

// NewTileImage validates the tilemap and prepares the image view
func NewTileImage(tiles []int, width, cell int, p Palette) (*TileImage, error) {
	height, err := validate(tiles, width)
	if err != nil {
		return nil, err
	}
	if cell <= 0 {
		cell = 1
	}
	return &TileImage{
		Tiles:   tiles,
		Width:   width,
		Height:  height,
		Cell:    cell,
		Palette: p,
		wall:    rgba(p.Wall),
		open:    rgba(p.Open),
	}, nil
}

func (m *TileImage) ColorModel() color.Model { return color.RGBAModel }

func (m *TileImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width*m.Cell, m.Height*m.Cell)
}

func (m *TileImage) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(m.Bounds()) {
		return color.RGBA{}
	}
	if m.Tiles[(y/m.Cell)*m.Width+x/m.Cell] == tileWall {
		return m.wall
	}
	return m.open
}

// ImageRenderer encodes tilemaps as PNG
type ImageRenderer struct {
	W       io.Writer
	Cell    int
	Palette Palette
}

// NewImageRenderer returns a PNG renderer with the default palette
func NewImageRenderer(w io.Writer, cell int) *ImageRenderer {
	return &ImageRenderer{W: w, Cell: cell, Palette: DefaultPalette}
}

func (r *ImageRenderer) Render(tiles []int, width int) error {
	img, err := NewTileImage(tiles, width, r.Cell, r.Palette)
	if err != nil {
		return err
	}
	return png.Encode(r.W, img)
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
