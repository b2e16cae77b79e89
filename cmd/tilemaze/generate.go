package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/tilemaze/config"
	"github.com/lixenwraith/tilemaze/maze"
	"github.com/lixenwraith/tilemaze/rng"
	"github.com/pkg/errors"
)

// setupLogging sends log output to path, or stderr when path is empty
func setupLogging(path string) (*os.File, error) {
	log.SetFlags(log.Ltime)
	if path == "" {
		log.SetOutput(os.Stderr)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}
	log.SetOutput(f)
	return f, nil
}

// generate runs the pipeline for cfg and returns the result with the seed actually used
func generate(cfg *config.Config, seed int64) (*maze.Result, int64, error) {
	mc, err := cfg.MazeConfig()
	if err != nil {
		return nil, 0, err
	}

	src := rng.New(seed)
	used := int64(src.Seed())
	start := time.Now()
	res, err := maze.Generate(mc, src)
	if err != nil {
		return nil, 0, err
	}

	log.Printf("Generated %dx%d maze (seed %d): %d walls, %d rooms, %d openings, %d unreached, %d open regions in %v",
		mc.Width, mc.Height, used, len(res.Walls), len(res.Rooms), len(res.OpenWalls()),
		res.Unreached(), res.Tilemap.OpenComponents(), time.Since(start))
	return res, used, nil
}
