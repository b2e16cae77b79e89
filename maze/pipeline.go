package maze

import (
	"github.com/pkg/errors"
)

// Config describes one generation request
type Config struct {
	Width, Height int
	Pattern       Pattern

	// LineReset restarts the pattern on every row, cycling through the templates
	LineReset bool

	// Widen doubles the final tilemap with WidenMode
	Widen     bool
	WidenMode WidenMode
}

// Validate reports configuration errors before any grid is allocated
func (c Config) Validate() error {
	if err := validateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	return c.Pattern.Validate()
}

// Result holds every intermediate product of a generation run
type Result struct {
	Colormap *Colormap
	Walls    []Wall
	Rooms    []Coordinate
	Carving  Carving
	// Tilemap is the final map, widened when the config asked for it
	Tilemap *Tilemap
}

// OpenWalls returns the indices of walls carved open
func (r *Result) OpenWalls() []int {
	return r.Carving.OpenWalls
}

// RoomsErr returns ErrEmptyRoomList when the colormap had no interior rooms.
// The result is still a valid, if trivial, map.
func (r *Result) RoomsErr() error {
	if len(r.Rooms) == 0 {
		return errors.Wrapf(ErrEmptyRoomList, "%dx%d colormap", r.Colormap.Width, r.Colormap.Height)
	}
	return nil
}

// Unreached returns the number of rooms the carve could not connect to the start room
func (r *Result) Unreached() int {
	return len(r.Rooms) - len(r.Carving.Visited)
}

// Context carries one run's state from stage to stage. Each stage reads what earlier
// stages produced and writes a single field.
type Context struct {
	Config Config
	Source RandomSource

	Colormap *Colormap
	Walls    []Wall
	Rooms    []Coordinate
	Carving  Carving
	Tilemap  *Tilemap
}

// Stage is one step of the generation pipeline
type Stage struct {
	Name string
	Run  func(ctx *Context) error
}

// Stages returns the pipeline in execution order
func Stages() []Stage {
	return []Stage{
		{Name: "colormap", Run: stageColormap},
		{Name: "regions", Run: stageRegions},
		{Name: "carve", Run: stageCarve},
		{Name: "compose", Run: stageCompose},
		{Name: "widen", Run: stageWiden},
	}
}

// NewContext validates cfg and prepares a context for the stages
func NewContext(cfg Config, src RandomSource) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("random source is nil")
	}
	return &Context{Config: cfg, Source: src}, nil
}

// Generate runs every stage and returns the products
func Generate(cfg Config, src RandomSource) (*Result, error) {
	ctx, err := NewContext(cfg, src)
	if err != nil {
		return nil, err
	}
	for _, s := range Stages() {
		if err := s.Run(ctx); err != nil {
			return nil, errors.Wrapf(err, "stage %s", s.Name)
		}
	}
	return ctx.Result(), nil
}

// Result snapshots the context's products
func (ctx *Context) Result() *Result {
	return &Result{
		Colormap: ctx.Colormap,
		Walls:    ctx.Walls,
		Rooms:    ctx.Rooms,
		Carving:  ctx.Carving,
		Tilemap:  ctx.Tilemap,
	}
}

func stageColormap(ctx *Context) error {
	cfg := ctx.Config
	cm, err := GenerateColormap(cfg.Pattern, cfg.Width, cfg.Height, cfg.LineReset)
	if err != nil {
		return err
	}
	ctx.Colormap = cm
	return nil
}

func stageRegions(ctx *Context) error {
	if ctx.Colormap == nil {
		return errors.New("colormap not generated")
	}
	ctx.Walls, ctx.Rooms = ExtractRegions(ctx.Colormap)
	return nil
}

func stageCarve(ctx *Context) error {
	ctx.Carving = CarvePaths(ctx.Walls, ctx.Rooms, ctx.Source)
	return nil
}

func stageCompose(ctx *Context) error {
	if ctx.Colormap == nil {
		return errors.New("colormap not generated")
	}
	ctx.Tilemap = Compose(ctx.Colormap, ctx.Walls, ctx.Carving.OpenWalls, ctx.Rooms)
	return nil
}

func stageWiden(ctx *Context) error {
	if !ctx.Config.Widen {
		return nil
	}
	if ctx.Tilemap == nil {
		return errors.New("tilemap not composed")
	}
	ctx.Tilemap = WidenWith(ctx.Tilemap, ctx.Config.WidenMode)
	return nil
}
