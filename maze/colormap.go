package maze

import (
	"github.com/pkg/errors"
)

// Category 0 is a room; any positive value is a distinct wall category
const RoomCategory = 0

// Pattern is an ordered list of row templates of category values.
// A flat pattern is a pattern with a single template.
type Pattern [][]int

// FlatPattern wraps a single sequence as a Pattern
func FlatPattern(seq ...int) Pattern {
	return Pattern{seq}
}

// Flatten concatenates all templates in order
func (p Pattern) Flatten() []int {
	n := 0
	for _, row := range p {
		n += len(row)
	}
	flat := make([]int, 0, n)
	for _, row := range p {
		flat = append(flat, row...)
	}
	return flat
}

// Validate reports ErrInvalidPattern for empty patterns, empty templates and negative categories
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return errors.Wrap(ErrInvalidPattern, "pattern is empty")
	}
	for i, row := range p {
		if len(row) == 0 {
			return errors.Wrapf(ErrInvalidPattern, "template %d is empty", i)
		}
		for j, c := range row {
			if c < 0 {
				return errors.Wrapf(ErrInvalidPattern, "template %d position %d: negative category %d", i, j, c)
			}
		}
	}
	return nil
}

// Colormap is an immutable height x width grid of category values
type Colormap struct {
	cells  []int
	Width  int
	Height int
}

// GenerateColormap tiles pattern across a width x height grid.
// Without lineReset the templates are concatenated and wrapped in row-major order,
// ignoring row boundaries. With lineReset row i restarts template i mod len(pattern).
func GenerateColormap(pattern Pattern, width, height int, lineReset bool) (*Colormap, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}

	cm := &Colormap{
		cells:  make([]int, width*height),
		Width:  width,
		Height: height,
	}

	if !lineReset {
		seq := pattern.Flatten()
		for i := range cm.cells {
			cm.cells[i] = seq[i%len(seq)]
		}
		return cm, nil
	}

	for row := 0; row < height; row++ {
		tmpl := pattern[row%len(pattern)]
		base := row * width
		for col := 0; col < width; col++ {
			cm.cells[base+col] = tmpl[col%len(tmpl)]
		}
	}
	return cm, nil
}

// NewColormap builds a colormap from explicit rows; all rows must share one width
func NewColormap(rows [][]int) (*Colormap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "colormap needs at least one cell")
	}
	width := len(rows[0])
	cm := &Colormap{
		cells:  make([]int, 0, width*len(rows)),
		Width:  width,
		Height: len(rows),
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidDimensions, "row %d has %d cells, want %d", i, len(row), width)
		}
		for j, c := range row {
			if c < 0 {
				return nil, errors.Wrapf(ErrInvalidPattern, "cell (%d,%d): negative category %d", i, j, c)
			}
		}
		cm.cells = append(cm.cells, row...)
	}
	return cm, nil
}

// At returns the category at (row, col). Out of range panics like a slice index.
func (c *Colormap) At(row, col int) int {
	return c.cells[row*c.Width+col]
}

// Row returns a copy of one row
func (c *Colormap) Row(row int) []int {
	out := make([]int, c.Width)
	copy(out, c.cells[row*c.Width:(row+1)*c.Width])
	return out
}

// Rows returns a copy of the grid as nested slices
func (c *Colormap) Rows() [][]int {
	rows := make([][]int, c.Height)
	for i := range rows {
		rows[i] = c.Row(i)
	}
	return rows
}

// InBounds reports whether (row, col) is on the grid
func (c *Colormap) InBounds(row, col int) bool {
	return row >= 0 && row < c.Height && col >= 0 && col < c.Width
}

// IsBorder reports whether (row, col) lies on the outer ring of the grid
func (c *Colormap) IsBorder(row, col int) bool {
	return row == 0 || row == c.Height-1 || col == 0 || col == c.Width-1
}

func validateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "width %d, height %d must both be positive", width, height)
	}
	return nil
}
