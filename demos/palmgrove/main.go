// palmgrove shows 2000 palm trees and two animated players as camera-facing
// sprites around an orbit camera. Drag to orbit, scroll to zoom, click a
// sprite to spin it, press R to reset the camera.
package main

import (
	"embed"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/phanxgames/billboard"
)

//go:embed assets/*.png
var assets embed.FS

func main() {
	cfg := DefaultConfig()
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for the tree layout")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log per-frame render stats")
	flag.BoolVar(&cfg.ShowFPS, "fps", cfg.ShowFPS, "show the FPS overlay")
	flag.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "JSON test script to replay, then exit")
	flag.StringVar(&cfg.ScreenshotDir, "shots", cfg.ScreenshotDir, "screenshot output directory")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	billboard.SetLogger(logger)

	app := NewApp(cfg, assets)
	if err := app.Initialize(cfg.SurfaceID); err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	if err := app.BuildScene(); err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
