package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/config"
	"github.com/pthm-cable/voronoi/desktop"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for perf CSV, config and final points")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPerf := flag.Bool("log-perf", false, "Log frame timing via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if cfg.Derived.PClamped {
		slog.Warn("field.p out of range, clamped", "p", cfg.Field.P)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a, err := desktop.NewApp(desktop.Options{
		Config:    cfg,
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogPerf:   *logPerf,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer a.Unload()

	for !a.ShouldClose() {
		a.Update()
		if err := a.Draw(); err != nil {
			slog.Error("render failure", "error", err)
			a.Unload()
			rl.CloseWindow()
			os.Exit(1)
		}
	}
}
