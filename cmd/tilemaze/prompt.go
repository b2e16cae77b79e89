package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/tilemaze/config"
	"github.com/lixenwraith/tilemaze/pattern"
	"github.com/pkg/errors"
)

// runPrompt asks for settings, prints a maze and repeats until the user declines
func runPrompt(in io.Reader, out io.Writer, base *config.Config) error {
	reader := bufio.NewReader(in)
	seed := base.Seed

	for {
		fmt.Fprintln(out, "\n=== TILEMAZE ===")
		if err := promptRound(reader, out, base, seed); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		// A fixed seed only applies to the first maze
		seed = 0

		fmt.Fprint(out, "\nGenerate another? [Y/n]: ")
		cont, err := reader.ReadString('\n')
		if err != nil && cont == "" {
			return nil
		}
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			return nil
		}
	}
}

func promptRound(r *bufio.Reader, out io.Writer, base *config.Config, seed int64) error {
	cfg := *base
	cfg.Render.Mode = config.RenderText
	cfg.Render.Output = ""

	cfg.Width = getInt(r, out, fmt.Sprintf("Width (default %d): ", base.Width), base.Width)
	cfg.Height = getInt(r, out, fmt.Sprintf("Height (default %d): ", base.Height), base.Height)

	fmt.Fprintf(out, "Preset name or pattern like 2,1;1,0 (default %s): ", describePattern(base))
	if choice := readLine(r); choice != "" {
		if strings.ContainsAny(choice, ",;0123456789") {
			p, err := pattern.Parse(choice)
			if err != nil {
				return err
			}
			cfg.Pattern = p
		} else {
			cfg.Preset = choice
			cfg.Pattern = nil
		}
	}

	fmt.Fprint(out, "Widen? [y/N]: ")
	cfg.Widen = strings.ToLower(readLine(r)) == "y"

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid settings")
	}

	fmt.Fprintln(out, "\nGenerating...")
	startT := time.Now()
	res, used, err := generate(&cfg, seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Done in %v\n", time.Since(startT))
	fmt.Fprintf(out, "Seed: %d\n", used)
	fmt.Fprintf(out, "Tilemap: %dx%d\n", res.Tilemap.Width, res.Tilemap.Height())
	fmt.Fprintf(out, "Openings: %d\n", len(res.OpenWalls()))
	if err := res.RoomsErr(); err != nil {
		fmt.Fprintf(out, "Status: %v\n", err)
	} else if n := res.Unreached(); n > 0 {
		fmt.Fprintf(out, "Status: %d rooms unreachable from the start\n", n)
	}

	return writeOutput(&cfg, res.Tilemap, out)
}

func describePattern(cfg *config.Config) string {
	if len(cfg.Pattern) > 0 {
		return pattern.Format(cfg.Pattern)
	}
	return cfg.Preset
}

// --- Input Helpers ---

func readLine(r *bufio.Reader) string {
	s, _ := r.ReadString('\n')
	return strings.TrimSpace(s)
}

func getInt(r *bufio.Reader, out io.Writer, prompt string, def int) int {
	fmt.Fprint(out, prompt)
	s := readLine(r)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
