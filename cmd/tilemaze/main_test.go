package main

import (
	"bytes"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tilemaze/config"
	"github.com/lixenwraith/tilemaze/maze"
	"github.com/lixenwraith/tilemaze/toml"
	"github.com/pkg/errors"
)

func runArgs(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	o := &options{}
	fs := newFlagSet(o)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var out bytes.Buffer
	err := run(fs, o, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestApplyFlags(t *testing.T) {
	o := &options{}
	fs := newFlagSet(o)
	err := fs.Parse([]string{
		"-width", "9", "-preset", "weave", "-pattern", "1,0",
		"-line-reset=false", "-seed", "3", "-render", "png", "-o", "maze.png", "-cell", "4",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg := config.Default()
	if err := applyFlags(fs, o, cfg); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}
	if cfg.Width != 9 || cfg.Height != 25 {
		t.Errorf("Expected width 9 and default height, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Preset != "weave" || len(cfg.Pattern) != 1 || cfg.Pattern[0][0] != 1 {
		t.Errorf("Expected explicit pattern over preset, got %q %v", cfg.Preset, cfg.Pattern)
	}
	if cfg.LineReset == nil || *cfg.LineReset {
		t.Error("Expected explicit line_reset false")
	}
	if cfg.Seed != 3 || cfg.Render.Mode != "png" || cfg.Render.Output != "maze.png" || cfg.Render.Cell != 4 {
		t.Errorf("Unexpected render settings %+v seed %d", cfg.Render, cfg.Seed)
	}
	// Unset flags leave config alone
	if cfg.Widen || cfg.Render.Color != config.ColorAuto {
		t.Error("Expected unset flags to keep defaults")
	}
}

func TestApplyFlagsBadPattern(t *testing.T) {
	o := &options{}
	fs := newFlagSet(o)
	if err := fs.Parse([]string{"-pattern", "1;;2"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	err := applyFlags(fs, o, config.Default())
	if !errors.Is(err, maze.ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern, got %v", err)
	}
}

func TestRunText(t *testing.T) {
	out, err := runArgs(t, "", "-width", "5", "-height", "5", "-preset", "grid", "-seed", "1", "-color", "never")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Expected 5 rows, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "█████" || lines[4] != "█████" {
		t.Errorf("Expected solid border rows, got %q and %q", lines[0], lines[4])
	}
}

func TestRunStrict(t *testing.T) {
	if _, err := runArgs(t, "", "-width", "2", "-height", "2", "-strict"); !errors.Is(err, maze.ErrEmptyRoomList) {
		t.Errorf("Expected ErrEmptyRoomList, got %v", err)
	}
	out, err := runArgs(t, "", "-width", "2", "-height", "2", "-color", "never")
	if err != nil {
		t.Fatalf("Expected non-strict run to succeed, got %v", err)
	}
	if out != "██\n██\n" {
		t.Errorf("Expected all-wall map, got %q", out)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	_, err := runArgs(t, "", "-width", "0")
	if !errors.Is(err, maze.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := runArgs(t, "", "-render", "svg"); err == nil {
		t.Error("Expected error for unknown renderer")
	}
}

func TestRunDumpConfig(t *testing.T) {
	out, err := runArgs(t, "", "-dump-config", "-width", "7", "-pattern", "3,0")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("Dumped config does not parse: %v\n%s", err, out)
	}
	if cfg.Width != 7 || len(cfg.Pattern) != 1 || cfg.Pattern[0][0] != 3 {
		t.Errorf("Unexpected dumped config %+v", cfg)
	}
}

func TestRunListPresets(t *testing.T) {
	out, err := runArgs(t, "", "-list-presets")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"grid", "2,1;1,0", "stripes", "1,2,2,1,0", "weave"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in preset list:\n%s", want, out)
		}
	}
}

func TestRunPNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.png")
	if _, err := runArgs(t, "", "-width", "5", "-height", "5", "-render", "png", "-cell", "3", "-o", path); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 15 {
		t.Errorf("Expected 15x15 image, got %v", b)
	}
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	path := filepath.Join(t.TempDir(), "logs", "tilemaze.log")
	f, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	log.Println("Test log message")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "Test log message") {
		t.Error("Expected log file to contain the message")
	}

	if f, err := setupLogging(""); err != nil || f != nil {
		t.Errorf("Expected stderr logging without a file, got %v %v", f, err)
	}
}

func promptConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Render.Color = config.ColorNever
	cfg.Render.WallGlyph = "#"
	cfg.Render.OpenGlyph = "."
	return cfg
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	input := "5\n5\n2,1;1,0\nn\nn\n"
	if err := runPrompt(strings.NewReader(input), &out, promptConfig()); err != nil {
		t.Fatalf("runPrompt failed: %v", err)
	}

	s := out.String()
	for _, want := range []string{"Seed: 1\n", "Tilemap: 5x5\n", "Openings: 3\n", "#####\n#"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in output:\n%s", want, s)
		}
	}
	if strings.Count(s, "=== TILEMAZE ===") != 1 {
		t.Error("Expected a single round")
	}
}

func TestPromptWidenAndRepeat(t *testing.T) {
	var out bytes.Buffer
	input := "5\n5\ngrid\ny\n\n3\n3\n\n\nn\n"
	if err := runPrompt(strings.NewReader(input), &out, promptConfig()); err != nil {
		t.Fatalf("runPrompt failed: %v", err)
	}

	s := out.String()
	if strings.Count(s, "=== TILEMAZE ===") != 2 {
		t.Errorf("Expected two rounds:\n%s", s)
	}
	if !strings.Contains(s, "Tilemap: 10x10\n") {
		t.Error("Expected widened first maze")
	}
	if !strings.Contains(s, "Tilemap: 3x3\n") {
		t.Error("Expected 3x3 second maze")
	}
}

func TestPromptReportsErrors(t *testing.T) {
	var out bytes.Buffer
	input := "5\n5\nnope\n\nn\n"
	if err := runPrompt(strings.NewReader(input), &out, promptConfig()); err != nil {
		t.Fatalf("runPrompt failed: %v", err)
	}
	if !strings.Contains(out.String(), "Error: invalid settings") {
		t.Errorf("Expected invalid settings error:\n%s", out.String())
	}
}

func TestPromptStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	cfg := promptConfig()
	cfg.Width, cfg.Height = 5, 5
	if err := runPrompt(strings.NewReader(""), &out, cfg); err != nil {
		t.Fatalf("runPrompt failed: %v", err)
	}
	if strings.Count(out.String(), "=== TILEMAZE ===") != 1 {
		t.Error("Expected one round before EOF ends the loop")
	}
}

func statusLine(s tcell.SimulationScreen) string {
	w, h := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c, _, _, _ := s.GetContent(x, h-1)
		sb.WriteRune(c)
	}
	return strings.TrimSpace(sb.String())
}

func TestViewer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(120, 30)

	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.Seed = 9, 9, 7
	v, err := newViewer(screen, cfg)
	if err != nil {
		t.Fatalf("newViewer failed: %v", err)
	}
	v.regenerate(cfg.Seed)
	if err := v.draw(); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if !strings.HasPrefix(statusLine(screen), "seed 7 | 15 openings | 16/16 rooms | widen off") {
		t.Errorf("Unexpected status %q", statusLine(screen))
	}

	if !v.handleKey(tcell.KeyRune, 'w') {
		t.Fatal("Expected viewer to keep running after w")
	}
	if v.seed != 7 || v.res.Tilemap.Width != 18 {
		t.Errorf("Expected same seed widened to 18, got seed %d width %d", v.seed, v.res.Tilemap.Width)
	}
	if err := v.draw(); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if !strings.Contains(statusLine(screen), "widen block") {
		t.Errorf("Expected widen mode in status, got %q", statusLine(screen))
	}

	if !v.handleKey(tcell.KeyRune, 'r') || v.res.Tilemap.Width != 18 {
		t.Error("Expected regenerate to keep widening")
	}
	if !v.handleKey(tcell.KeyUp, 0) {
		t.Error("Expected non-rune keys to be ignored")
	}
	if v.handleKey(tcell.KeyRune, 'q') || v.handleKey(tcell.KeyEscape, 0) {
		t.Error("Expected q and Esc to quit")
	}
}

func TestViewerShowsErrors(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 10)

	cfg := config.Default()
	cfg.Preset = "missing"
	v, err := newViewer(screen, cfg)
	if err != nil {
		t.Fatalf("newViewer failed: %v", err)
	}
	v.regenerate(1)
	if err := v.draw(); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if !strings.HasPrefix(statusLine(screen), "error: unknown preset") {
		t.Errorf("Expected error status, got %q", statusLine(screen))
	}
}
