package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/tilemaze/audio"
	"github.com/lixenwraith/tilemaze/config"
	"github.com/lixenwraith/tilemaze/maze"
	"github.com/lixenwraith/tilemaze/render"
)

// activeScreen is finalized by the crash handler in main
var activeScreen tcell.Screen

func restoreScreen() {
	if activeScreen != nil {
		activeScreen.Fini()
		activeScreen = nil
	}
}

// viewer shows one maze at a time in a tcell screen
type viewer struct {
	screen   tcell.Screen
	cfg      config.Config
	renderer *render.ScreenRenderer
	player   *audio.Player

	seed   int64
	res    *maze.Result
	errMsg string
}

func newViewer(screen tcell.Screen, cfg *config.Config) (*viewer, error) {
	palette, err := render.ParsePalette(cfg.Render.WallColor, cfg.Render.OpenColor)
	if err != nil {
		return nil, err
	}
	r := render.NewScreenRenderer(screen)
	r.Palette = palette

	v := &viewer{
		screen:   screen,
		cfg:      *cfg,
		renderer: r,
	}
	if cfg.Sound {
		v.player = audio.NewPlayer()
	}
	return v, nil
}

// regenerate builds a new maze; seed 0 picks a fresh one
func (v *viewer) regenerate(seed int64) {
	res, used, err := generate(&v.cfg, seed)
	if err != nil {
		v.errMsg = err.Error()
		return
	}
	v.errMsg = ""
	v.res, v.seed = res, used
	if v.player != nil {
		v.player.Play(audio.Chime(chimeStats(res), v.player.Rate()))
	}
}

func (v *viewer) status() string {
	if v.errMsg != "" {
		return " error: " + v.errMsg + " | r retry  q quit"
	}
	if v.res == nil {
		return " no maze | r new  q quit"
	}
	widen := "off"
	if v.cfg.Widen {
		widen = v.cfg.WidenMode
	}
	return fmt.Sprintf(" seed %d | %d openings | %d/%d rooms | widen %s | r new  w widen  q quit",
		v.seed, len(v.res.OpenWalls()), len(v.res.Carving.Visited), len(v.res.Rooms), widen)
}

func (v *viewer) draw() error {
	v.renderer.Status = v.status()
	if v.res == nil {
		v.screen.Clear()
		drawStatus(v.screen, v.renderer.Status)
		v.screen.Show()
		return nil
	}
	t := v.res.Tilemap
	return v.renderer.Render(t.Tiles, t.Width)
}

func drawStatus(s tcell.Screen, text string) {
	w, h := s.Size()
	x := 0
	for _, ch := range text {
		if x >= w {
			return
		}
		s.SetContent(x, h-1, ch, nil, tcell.StyleDefault)
		x++
	}
}

// handleKey applies one key press and reports whether the viewer should keep running
func (v *viewer) handleKey(key tcell.Key, ch rune) bool {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		return false
	case key != tcell.KeyRune:
		return true
	}

	switch ch {
	case 'q':
		return false
	case 'r':
		v.regenerate(0)
	case 'w':
		v.cfg.Widen = !v.cfg.Widen
		v.regenerate(v.seed)
	}
	return true
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !v.handleKey(ev.Key(), ev.Rune()) {
			return false
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func runViewer(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	activeScreen = screen
	defer restoreScreen()

	v, err := newViewer(screen, cfg)
	if err != nil {
		return err
	}
	v.regenerate(cfg.Seed)

	for {
		if err := v.draw(); err != nil {
			return err
		}
		ev := screen.PollEvent()
		if ev == nil || !v.handleInput(ev) {
			return nil
		}
	}
}
