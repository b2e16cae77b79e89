package maze

// Coordinate is a (row, col) grid position
type Coordinate struct {
	Row, Col int
}

// Wall is one 4-connected component of a single positive category.
// Cells are in discovery order; the first cell is the component's row-major first cell.
type Wall struct {
	Category int
	Cells    []Coordinate
}

// Len returns the number of cells in the wall
func (w Wall) Len() int {
	return len(w.Cells)
}

var orthogonal = [4]Coordinate{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ExtractRegions partitions the colormap into walls and interior rooms.
// Both lists are ordered by row-major scan, so indices are stable for a given colormap.
// Zero cells on the border are not rooms.
func ExtractRegions(cm *Colormap) (walls []Wall, rooms []Coordinate) {
	claimed := make([]bool, cm.Width*cm.Height)
	stack := make([]Coordinate, 0, 64)

	for row := 0; row < cm.Height; row++ {
		for col := 0; col < cm.Width; col++ {
			category := cm.At(row, col)

			if category == RoomCategory {
				if !cm.IsBorder(row, col) {
					rooms = append(rooms, Coordinate{row, col})
				}
				continue
			}

			idx := row*cm.Width + col
			if claimed[idx] {
				continue
			}

			// Explicit stack flood fill; a cell is claimed when pushed so it is collected once
			wall := Wall{Category: category}
			claimed[idx] = true
			stack = append(stack[:0], Coordinate{row, col})

			for len(stack) > 0 {
				curr := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				wall.Cells = append(wall.Cells, curr)

				for _, d := range orthogonal {
					nr, nc := curr.Row+d.Row, curr.Col+d.Col
					if !cm.InBounds(nr, nc) || cm.At(nr, nc) != category {
						continue
					}
					nIdx := nr*cm.Width + nc
					if claimed[nIdx] {
						continue
					}
					claimed[nIdx] = true
					stack = append(stack, Coordinate{nr, nc})
				}
			}

			walls = append(walls, wall)
		}
	}
	return walls, rooms
}
