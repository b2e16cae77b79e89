package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// frameShade is how far the outer ring of walls is blended toward the floor colour
const frameShade = 0.35

// ScreenRenderer draws a tilemap into a tcell screen, clipped to the screen size.
// A non-empty Status is drawn on the last screen row.
type ScreenRenderer struct {
	Screen    tcell.Screen
	Palette   Palette
	WallGlyph rune
	OpenGlyph rune
	// CellWidth is the number of screen columns per tile; 0 means 1
	CellWidth int
	Status    string
}

// NewScreenRenderer returns a renderer drawing two columns per tile so cells look square
func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{
		Screen:    screen,
		Palette:   DefaultPalette,
		WallGlyph: '█',
		OpenGlyph: ' ',
		CellWidth: 2,
	}
}

// Render clears the screen, draws the visible part of the map and shows it
func (r *ScreenRenderer) Render(tiles []int, width int) error {
	height, err := validate(tiles, width)
	if err != nil {
		return err
	}

	cw := r.CellWidth
	if cw <= 0 {
		cw = 1
	}

	sw, sh := r.Screen.Size()
	rows := sh
	if r.Status != "" {
		rows--
	}

	wallStyle := style(r.Palette.Wall)
	frameStyle := style(r.Palette.Blend(frameShade))
	openStyle := style(r.Palette.Open)

	r.Screen.Clear()
	for y := 0; y < height && y < rows; y++ {
		for x := 0; x < width && x*cw < sw; x++ {
			glyph, st := r.OpenGlyph, openStyle
			if tiles[y*width+x] == tileWall {
				glyph, st = r.WallGlyph, wallStyle
				if y == 0 || y == height-1 || x == 0 || x == width-1 {
					st = frameStyle
				}
			}
			for c := 0; c < cw && x*cw+c < sw; c++ {
				r.Screen.SetContent(x*cw+c, y, glyph, nil, st)
			}
		}
	}

	if r.Status != "" && sh > 0 {
		drawText(r.Screen, 0, sh-1, sw, r.Status, tcell.StyleDefault)
	}
	r.Screen.Show()
	return nil
}

// drawText writes s from (x, y), stopping at maxX
func drawText(s tcell.Screen, x, y, maxX int, text string, st tcell.Style) {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			return
		}
		s.SetContent(x, y, ch, nil, st)
		x += w
	}
}

func style(c colorful.Color) tcell.Style {
	r, g, b := c.RGB255()
	tc := tcell.NewRGBColor(int32(r), int32(g), int32(b))
	return tcell.StyleDefault.Foreground(tc).Background(tc)
}
