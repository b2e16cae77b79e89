// Package config loads tilemaze settings from defaults, a TOML file and the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/tilemaze/maze"
	"github.com/lixenwraith/tilemaze/pattern"
	"github.com/lixenwraith/tilemaze/toml"
	"github.com/pkg/errors"
)

// Renderer names
const (
	RenderText   = "text"
	RenderPNG    = "png"
	RenderScreen = "screen"
)

// Color modes for text output
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TILEMAZE_"

// Config is the full set of generation and output options
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Preset string `toml:"preset"`
	// Pattern overrides Preset when set
	Pattern [][]int `toml:"pattern,omitempty"`
	// LineReset overrides the preset's mode when set
	LineReset *bool  `toml:"line_reset,omitempty"`
	Widen     bool   `toml:"widen"`
	WidenMode string `toml:"widen_mode"`
	// Seed 0 picks a time-based seed
	Seed  int64 `toml:"seed"`
	Sound bool  `toml:"sound"`

	Render  RenderConfig   `toml:"render"`
	Presets []PresetConfig `toml:"presets,omitempty"`
}

// RenderConfig selects and tunes the output renderer
type RenderConfig struct {
	Mode      string `toml:"mode"`
	Output    string `toml:"output,omitempty"`
	Cell      int    `toml:"cell"`
	Color     string `toml:"color"`
	WallGlyph string `toml:"wall_glyph"`
	OpenGlyph string `toml:"open_glyph"`
	WallColor string `toml:"wall_color"`
	OpenColor string `toml:"open_color"`
}

// PresetConfig is a user-defined pattern preset
type PresetConfig struct {
	Name      string  `toml:"name"`
	Pattern   [][]int `toml:"pattern"`
	LineReset bool    `toml:"line_reset"`
}

// Default returns the built-in configuration: a 33x25 grid maze printed as text
func Default() *Config {
	return &Config{
		Width:     33,
		Height:    25,
		Preset:    pattern.Grid.Name,
		WidenMode: maze.WidenBlock.String(),
		Render: RenderConfig{
			Mode:      RenderText,
			Cell:      12,
			Color:     ColorAuto,
			WallGlyph: "█",
			OpenGlyph: " ",
			WallColor: "#2e7d32",
			OpenColor: "#101010",
		},
	}
}

// Load builds the configuration from defaults, the optional file at path,
// then environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
		log.Printf("Loaded config from %s", path)
	}

	applied, err := cfg.ApplyEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if len(applied) > 0 {
		log.Printf("Applied environment overrides: %s", strings.Join(applied, ", "))
	}
	return cfg, nil
}

// ApplyEnv applies TILEMAZE_* overrides read through lookup and returns the
// variable names that were applied
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) ([]string, error) {
	var applied []string
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		if ok && v != "" {
			applied = append(applied, EnvPrefix+name)
			return v, true
		}
		return "", false
	}

	intVar := func(name string, dst *int) error {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "%s%s", EnvPrefix, name)
			}
			*dst = n
		}
		return nil
	}
	boolVar := func(name string, dst *bool) error {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrapf(err, "%s%s", EnvPrefix, name)
			}
			*dst = b
		}
		return nil
	}

	if err := intVar("WIDTH", &c.Width); err != nil {
		return nil, err
	}
	if err := intVar("HEIGHT", &c.Height); err != nil {
		return nil, err
	}
	if v, ok := get("PRESET"); ok {
		c.Preset = v
		c.Pattern = nil
	}
	if v, ok := get("PATTERN"); ok {
		p, err := pattern.Parse(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%sPATTERN", EnvPrefix)
		}
		c.Pattern = p
	}
	if v, ok := get("LINE_RESET"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%sLINE_RESET", EnvPrefix)
		}
		c.LineReset = &b
	}
	if err := boolVar("WIDEN", &c.Widen); err != nil {
		return nil, err
	}
	if v, ok := get("WIDEN_MODE"); ok {
		c.WidenMode = v
	}
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%sSEED", EnvPrefix)
		}
		c.Seed = n
	}
	if err := boolVar("SOUND", &c.Sound); err != nil {
		return nil, err
	}
	if v, ok := get("RENDERER"); ok {
		c.Render.Mode = v
	}
	if v, ok := get("COLOR"); ok {
		c.Render.Color = v
	}
	return applied, nil
}

// Registry returns the builtin presets plus the presets defined in the config
func (c *Config) Registry() (*pattern.Registry, error) {
	reg := pattern.NewRegistry()
	for _, p := range c.Presets {
		err := reg.Add(pattern.Preset{
			Name:      p.Name,
			Pattern:   p.Pattern,
			LineReset: p.LineReset,
			About:     "user preset",
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// MazeConfig resolves preset and pattern settings into a generation request.
// An explicit pattern without line_reset resets per line when it has several rows.
func (c *Config) MazeConfig() (maze.Config, error) {
	mode, err := maze.ParseWidenMode(c.WidenMode)
	if err != nil {
		return maze.Config{}, err
	}

	mc := maze.Config{
		Width:     c.Width,
		Height:    c.Height,
		Widen:     c.Widen,
		WidenMode: mode,
	}

	if len(c.Pattern) > 0 {
		mc.Pattern = c.Pattern
		mc.LineReset = len(c.Pattern) > 1
	} else {
		reg, err := c.Registry()
		if err != nil {
			return maze.Config{}, err
		}
		preset, ok := reg.Lookup(c.Preset)
		if !ok {
			return maze.Config{}, errors.Errorf("unknown preset %q (have %s)", c.Preset, strings.Join(reg.Names(), ", "))
		}
		mc.Pattern = preset.Pattern
		mc.LineReset = preset.LineReset
	}

	if c.LineReset != nil {
		mc.LineReset = *c.LineReset
	}
	return mc, nil
}

// Validate checks every option; generation errors wrap the maze sentinels
func (c *Config) Validate() error {
	mc, err := c.MazeConfig()
	if err != nil {
		return err
	}
	if err := mc.Validate(); err != nil {
		return err
	}

	switch c.Render.Mode {
	case RenderText, RenderPNG, RenderScreen:
	default:
		return errors.Errorf("unknown renderer %q", c.Render.Mode)
	}
	switch c.Render.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("unknown color mode %q", c.Render.Color)
	}
	if c.Render.Cell <= 0 {
		return errors.Errorf("cell size must be positive, got %d", c.Render.Cell)
	}
	if c.Render.WallGlyph == "" || c.Render.OpenGlyph == "" {
		return errors.New("glyphs must not be empty")
	}
	return nil
}

// Marshal encodes the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
