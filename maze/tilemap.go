package maze

import (
	"fmt"
	"strings"
)

// Tile values
const (
	TileOpen = 0
	TileWall = 1
)

// Tilemap is a flat row-major grid of TileWall/TileOpen with its width
type Tilemap struct {
	Tiles []int
	Width int
}

// Compose builds the binary tilemap: everything is wall except opened walls and rooms
func Compose(cm *Colormap, walls []Wall, openWalls []int, rooms []Coordinate) *Tilemap {
	t := &Tilemap{
		Tiles: make([]int, cm.Width*cm.Height),
		Width: cm.Width,
	}
	for i := range t.Tiles {
		t.Tiles[i] = TileWall
	}
	for _, w := range openWalls {
		for _, c := range walls[w].Cells {
			t.Tiles[c.Row*cm.Width+c.Col] = TileOpen
		}
	}
	for _, r := range rooms {
		t.Tiles[r.Row*cm.Width+r.Col] = TileOpen
	}
	return t
}

// Height returns the number of rows
func (t *Tilemap) Height() int {
	if t.Width == 0 {
		return 0
	}
	return len(t.Tiles) / t.Width
}

// IndexToRowCol converts a flat index to its row and column
func (t *Tilemap) IndexToRowCol(i int) (row, col int) {
	return i / t.Width, i % t.Width
}

// At returns the tile at (row, col)
func (t *Tilemap) At(row, col int) int {
	return t.Tiles[row*t.Width+col]
}

// IsOpen reports whether (row, col) is on the map and open
func (t *Tilemap) IsOpen(row, col int) bool {
	if row < 0 || col < 0 || col >= t.Width || row >= t.Height() {
		return false
	}
	return t.At(row, col) == TileOpen
}

// OpenCount returns the number of open tiles
func (t *Tilemap) OpenCount() int {
	n := 0
	for _, v := range t.Tiles {
		if v == TileOpen {
			n++
		}
	}
	return n
}

// OpenComponents counts the 4-connected regions of open tiles
func (t *Tilemap) OpenComponents() int {
	seen := make([]bool, len(t.Tiles))
	queue := make([]Coordinate, 0, 64)
	count := 0

	for i, v := range t.Tiles {
		if v != TileOpen || seen[i] {
			continue
		}
		count++
		seen[i] = true
		row, col := t.IndexToRowCol(i)
		queue = append(queue[:0], Coordinate{row, col})

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, d := range orthogonal {
				nr, nc := curr.Row+d.Row, curr.Col+d.Col
				if !t.IsOpen(nr, nc) || seen[nr*t.Width+nc] {
					continue
				}
				seen[nr*t.Width+nc] = true
				queue = append(queue, Coordinate{nr, nc})
			}
		}
	}
	return count
}

// Equal reports whether two tilemaps have the same width and tiles
func (t *Tilemap) Equal(o *Tilemap) bool {
	if t.Width != o.Width || len(t.Tiles) != len(o.Tiles) {
		return false
	}
	for i := range t.Tiles {
		if t.Tiles[i] != o.Tiles[i] {
			return false
		}
	}
	return true
}

// String renders rows of '#' and '.' for debugging and test failure output
func (t *Tilemap) String() string {
	var sb strings.Builder
	for i, v := range t.Tiles {
		if i > 0 && i%t.Width == 0 {
			sb.WriteByte('\n')
		}
		if v == TileWall {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// WidenMode selects how wall cells are doubled horizontally
type WidenMode int

const (
	// WidenBlock turns every cell into a 2x2 block of its value
	WidenBlock WidenMode = iota
	// WidenLookahead emits (1,1) for a wall followed by a wall and (1,0) otherwise
	WidenLookahead
)

func (m WidenMode) String() string {
	switch m {
	case WidenBlock:
		return "block"
	case WidenLookahead:
		return "lookahead"
	}
	return fmt.Sprintf("WidenMode(%d)", int(m))
}

// ParseWidenMode accepts the names returned by WidenMode.String
func ParseWidenMode(s string) (WidenMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return WidenBlock, nil
	case "lookahead":
		return WidenLookahead, nil
	}
	return WidenBlock, fmt.Errorf("unknown widen mode %q", s)
}

// Widen doubles the tilemap in both directions using WidenBlock
func Widen(t *Tilemap) *Tilemap {
	return WidenWith(t, WidenBlock)
}

// WidenWith doubles the tilemap in both directions. Each widened row is followed by a copy
// of itself; the horizontal doubling depends on mode. The input is not modified.
//
// In WidenLookahead the successor is the next tile in flat order, so the last tile of a row
// looks at the first tile of the following row and the final tile emits (1,0).
func WidenWith(t *Tilemap, mode WidenMode) *Tilemap {
	width := t.Width * 2
	out := &Tilemap{
		Tiles: make([]int, 0, len(t.Tiles)*4),
		Width: width,
	}

	for i, v := range t.Tiles {
		switch {
		case v == TileOpen:
			out.Tiles = append(out.Tiles, TileOpen, TileOpen)
		case mode == WidenLookahead && (i+1 >= len(t.Tiles) || t.Tiles[i+1] != TileWall):
			out.Tiles = append(out.Tiles, TileWall, TileOpen)
		default:
			out.Tiles = append(out.Tiles, TileWall, TileWall)
		}

		if (i+1)%t.Width == 0 {
			rowStart := len(out.Tiles) - width
			out.Tiles = append(out.Tiles, out.Tiles[rowStart:rowStart+width]...)
		}
	}
	return out
}
