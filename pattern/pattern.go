// Package pattern holds named colormap patterns and their text syntax.
package pattern

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lixenwraith/tilemaze/maze"
	"github.com/pkg/errors"
)

// Preset is a named pattern together with the line reset mode it is designed for
type Preset struct {
	Name      string
	Pattern   maze.Pattern
	LineReset bool
	About     string
}

// Builtin presets
var (
	Stripes = Preset{
		Name:      "stripes",
		Pattern:   maze.FlatPattern(1, 2, 2, 1, 0),
		LineReset: false,
		About:     "diagonal bands; wraps across rows",
	}
	Weave = Preset{
		Name:      "weave",
		Pattern:   maze.Pattern{{0, 2, 2}, {1, 1, 2}, {1, 2, 1}},
		LineReset: true,
		About:     "three-row weave with irregular walls",
	}
	Grid = Preset{
		Name:      "grid",
		Pattern:   maze.Pattern{{2, 1}, {1, 0}},
		LineReset: true,
		About:     "classic perfect maze on odd cells",
	}
)

// Registry maps preset names to presets
type Registry struct {
	presets map[string]Preset
}

// NewRegistry returns a registry holding the builtin presets
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]Preset)}
	for _, p := range []Preset{Stripes, Weave, Grid} {
		r.presets[p.Name] = p
	}
	return r
}

// Add registers or replaces a preset after validating its pattern
func (r *Registry) Add(p Preset) error {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		return errors.New("preset name is empty")
	}
	if err := p.Pattern.Validate(); err != nil {
		return errors.Wrapf(err, "preset %s", name)
	}
	p.Name = name
	r.presets[name] = p
	return nil
}

// Lookup finds a preset by case-insensitive name
func (r *Registry) Lookup(name string) (Preset, bool) {
	p, ok := r.presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns preset names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse reads the text form of a pattern: categories separated by ',' and
// row templates separated by ';'. Whitespace is ignored. "2,1;1,0" is the grid preset.
func Parse(s string) (maze.Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(maze.ErrInvalidPattern, "empty pattern text")
	}

	var p maze.Pattern
	for i, rowText := range strings.Split(s, ";") {
		rowText = strings.TrimSpace(rowText)
		if rowText == "" {
			return nil, errors.Wrapf(maze.ErrInvalidPattern, "template %d is empty", i)
		}
		fields := strings.Split(rowText, ",")
		row := make([]int, 0, len(fields))
		for j, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, errors.Wrapf(maze.ErrInvalidPattern, "template %d position %d: %q is not an integer", i, j, f)
			}
			row = append(row, v)
		}
		p = append(p, row)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Format renders a pattern in the syntax Parse accepts
func Format(p maze.Pattern) string {
	var sb strings.Builder
	for i, row := range p {
		if i > 0 {
			sb.WriteByte(';')
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
