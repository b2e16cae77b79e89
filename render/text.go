package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// TextRenderer writes one line of glyphs per tile row
type TextRenderer struct {
	W         io.Writer
	WallGlyph string
	OpenGlyph string
	Palette   Palette
	// Color emits ANSI truecolor escapes around each row segment
	Color bool
}

// NewTextRenderer returns a renderer using block glyphs and the default palette.
// Colour is enabled only when w is a terminal.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{
		W:         w,
		WallGlyph: "█",
		OpenGlyph: " ",
		Palette:   DefaultPalette,
		Color:     IsTerminal(w),
	}
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes the tilemap; each glyph is padded to the widest of the two glyphs
// so rows stay aligned
func (r *TextRenderer) Render(tiles []int, width int) error {
	if _, err := validate(tiles, width); err != nil {
		return err
	}

	wall, open := padGlyphs(r.WallGlyph, r.OpenGlyph)
	bw := bufio.NewWriter(r.W)

	for start := 0; start < len(tiles); start += width {
		row := tiles[start : start+width]
		prev := -1
		for _, v := range row {
			if r.Color && v != prev {
				bw.WriteString(ansiColor(r.Palette.Tile(v)))
				prev = v
			}
			if v == tileWall {
				bw.WriteString(wall)
			} else {
				bw.WriteString(open)
			}
		}
		if r.Color {
			bw.WriteString(ansiReset)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

const ansiReset = "\x1b[0m"

// ansiColor sets both foreground and background so block and space glyphs fill the cell
func ansiColor(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm", r, g, b, r, g, b)
}

// padGlyphs right-pads the narrower glyph with spaces to the display width of the wider one
func padGlyphs(wall, open string) (string, string) {
	ww, ow := runewidth.StringWidth(wall), runewidth.StringWidth(open)
	switch {
	case ww > ow:
		open += strings.Repeat(" ", ww-ow)
	case ow > ww:
		wall += strings.Repeat(" ", ow-ww)
	}
	return wall, open
}
