// Command voronoiterm explores the field inside a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/voronoi/app"
	"github.com/pthm-cable/voronoi/config"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/term"
	"github.com/pthm-cable/voronoi/viewport"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is in use)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w, h := screen.Size()
	vp := viewport.New(w, 2*max(h-1, 0))
	state := app.NewState(app.Options{
		Settings: cfg.Derived.Settings,
		Points:   points.LoadDefault(points.ReadData(cfg.Points.DefaultFile), rng, cfg.Points.RandomCount, vp.Extent()),
		Rand:     rng,
		CPU:      true,
		Workers:  cfg.Field.Workers,
		Viewport: vp,
	})
	defer state.Close()

	slog.Info("terminal explorer started", "seed", rngSeed, "points", state.Store.Len(), "cols", w, "rows", h)
	term.NewViewer(screen, state).Run(cfg.Screen.TargetFPS)
}
