// Command tilemaze generates pattern-driven mazes and prints, saves or displays them.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/tilemaze/audio"
	"github.com/lixenwraith/tilemaze/config"
	"github.com/lixenwraith/tilemaze/maze"
	"github.com/lixenwraith/tilemaze/pattern"
	"github.com/lixenwraith/tilemaze/render"
	"github.com/pkg/errors"
)

// chimeTimeout bounds how long the command waits for the completion cue
const chimeTimeout = 2 * time.Second

type options struct {
	configPath  string
	width       int
	height      int
	preset      string
	pattern     string
	lineReset   bool
	widen       bool
	widenMode   string
	seed        int64
	render      string
	output      string
	cell        int
	color       string
	sound       bool
	strict      bool
	interactive bool
	dumpConfig  bool
	listPresets bool
	logPath     string
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("tilemaze", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "TOML config file")
	fs.IntVar(&o.width, "width", 0, "Grid width in cells")
	fs.IntVar(&o.height, "height", 0, "Grid height in cells")
	fs.StringVar(&o.preset, "preset", "", "Named pattern preset (see -list-presets)")
	fs.StringVar(&o.pattern, "pattern", "", `Explicit pattern, e.g. "2,1;1,0" (overrides -preset)`)
	fs.BoolVar(&o.lineReset, "line-reset", false, "Restart the pattern on every row")
	fs.BoolVar(&o.widen, "widen", false, "Double the tilemap in both directions")
	fs.StringVar(&o.widenMode, "widen-mode", "", "Widening mode: block, lookahead")
	fs.Int64Var(&o.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	fs.StringVar(&o.render, "render", "", "Output: text, png, screen")
	fs.StringVar(&o.output, "o", "", "Output file (default stdout)")
	fs.IntVar(&o.cell, "cell", 0, "PNG cell size in pixels")
	fs.StringVar(&o.color, "color", "", "Text colour: auto, always, never")
	fs.BoolVar(&o.sound, "sound", false, "Play a chime when generation finishes")
	fs.BoolVar(&o.strict, "strict", false, "Fail when the colormap has no rooms")
	fs.BoolVar(&o.interactive, "interactive", false, "Prompt for settings in a loop")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective config as TOML and exit")
	fs.BoolVar(&o.listPresets, "list-presets", false, "List pattern presets and exit")
	fs.StringVar(&o.logPath, "log", "", "Write logs to this file instead of stderr")
	return fs
}

// applyFlags copies explicitly set flags over cfg. -pattern wins over -preset.
func applyFlags(fs *flag.FlagSet, o *options, cfg *config.Config) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["width"] {
		cfg.Width = o.width
	}
	if set["height"] {
		cfg.Height = o.height
	}
	if set["preset"] {
		cfg.Preset = o.preset
		cfg.Pattern = nil
	}
	if set["pattern"] {
		p, err := pattern.Parse(o.pattern)
		if err != nil {
			return errors.Wrap(err, "-pattern")
		}
		cfg.Pattern = p
	}
	if set["line-reset"] {
		v := o.lineReset
		cfg.LineReset = &v
	}
	if set["widen"] {
		cfg.Widen = o.widen
	}
	if set["widen-mode"] {
		cfg.WidenMode = o.widenMode
	}
	if set["seed"] {
		cfg.Seed = o.seed
	}
	if set["render"] {
		cfg.Render.Mode = o.render
	}
	if set["o"] {
		cfg.Render.Output = o.output
	}
	if set["cell"] {
		cfg.Render.Cell = o.cell
	}
	if set["color"] {
		cfg.Render.Color = o.color
	}
	if set["sound"] {
		cfg.Sound = o.sound
	}
	return nil
}

func main() {
	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			restoreScreen()
			fmt.Fprintf(os.Stderr, "\ntilemaze crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	o := &options{}
	fs := newFlagSet(o)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logFile, err := setupLogging(o.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err = run(fs, o, os.Stdin, os.Stdout)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *flag.FlagSet, o *options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(fs, o, cfg); err != nil {
		return err
	}

	if o.listPresets {
		return listPresets(cfg, stdout)
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if o.dumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if o.interactive {
		return runPrompt(stdin, stdout, cfg)
	}
	if cfg.Render.Mode == config.RenderScreen {
		if o.logPath == "" {
			log.SetOutput(io.Discard)
		}
		return runViewer(cfg)
	}

	res, _, err := generate(cfg, cfg.Seed)
	if err != nil {
		return err
	}
	if err := res.RoomsErr(); err != nil {
		if o.strict {
			return err
		}
		log.Printf("Warning: %v", err)
	}

	if err := writeOutput(cfg, res.Tilemap, stdout); err != nil {
		return err
	}

	if cfg.Sound {
		player := audio.NewPlayer()
		player.PlayAndWait(audio.Chime(chimeStats(res), player.Rate()), chimeTimeout)
	}
	return nil
}

func listPresets(cfg *config.Config, w io.Writer) error {
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	for _, name := range reg.Names() {
		p, _ := reg.Lookup(name)
		fmt.Fprintf(w, "%-10s %-20s line_reset=%-5t %s\n", p.Name, pattern.Format(p.Pattern), p.LineReset, p.About)
	}
	return nil
}

// writeOutput renders t with the configured text or PNG renderer, to a file when one is set
func writeOutput(cfg *config.Config, t *maze.Tilemap, stdout io.Writer) error {
	w := stdout
	if cfg.Render.Output != "" {
		f, err := os.Create(cfg.Render.Output)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		w = f
	}

	r, err := newRenderer(cfg, w)
	if err != nil {
		return err
	}
	if err := r.Render(t.Tiles, t.Width); err != nil {
		return err
	}
	if cfg.Render.Output != "" {
		log.Printf("Wrote %s", cfg.Render.Output)
	}
	return nil
}

func newRenderer(cfg *config.Config, w io.Writer) (render.Renderer, error) {
	palette, err := render.ParsePalette(cfg.Render.WallColor, cfg.Render.OpenColor)
	if err != nil {
		return nil, err
	}

	switch cfg.Render.Mode {
	case config.RenderPNG:
		if render.IsTerminal(w) {
			return nil, errors.New("refusing to write PNG to a terminal; use -o")
		}
		r := render.NewImageRenderer(w, cfg.Render.Cell)
		r.Palette = palette
		return r, nil
	case config.RenderText:
		r := render.NewTextRenderer(w)
		r.WallGlyph = cfg.Render.WallGlyph
		r.OpenGlyph = cfg.Render.OpenGlyph
		r.Palette = palette
		switch cfg.Render.Color {
		case config.ColorAlways:
			r.Color = true
		case config.ColorNever:
			r.Color = false
		}
		return r, nil
	}
	return nil, errors.Errorf("renderer %q cannot write to a stream", cfg.Render.Mode)
}

func chimeStats(res *maze.Result) audio.Stats {
	return audio.Stats{Rooms: len(res.Rooms), Reached: len(res.Carving.Visited)}
}
