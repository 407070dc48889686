// Command fieldshot renders a point file to a PNG without opening a window.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/shot"
	"github.com/pthm-cable/voronoi/viewport"
)

func main() {
	pointsPath := flag.String("points", "", "Point list YAML/JSON (empty = bundled defaults)")
	p := flag.Float64("p", 2, "Metric exponent, clamped to [0.5, 10]")
	modeName := flag.String("mode", "nearest", "nearest or farthest")
	width := flag.Int("w", 800, "Image width")
	height := flag.Int("h", 600, "Image height")
	out := flag.String("out", "field.png", "Output PNG path")
	workers := flag.Int("workers", 0, "Evaluator workers (0 = GOMAXPROCS)")
	legend := flag.Bool("legend", true, "Draw the settings legend")
	seed := flag.Int64("seed", 1, "RNG seed for the random fallback set")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	mode, err := field.ParseMode(*modeName)
	if err != nil {
		slog.Error("invalid mode", "error", err)
		os.Exit(1)
	}
	settings := field.NewSettings(*p, mode)
	if settings.P() != *p {
		slog.Warn("p out of range, clamped", "requested", *p, "used", settings.P())
	}

	rng := rand.New(rand.NewSource(*seed))
	vp := viewport.New(*width, *height)
	pts := points.LoadDefault(points.ReadData(*pointsPath), rng, points.DefaultRandomCount, vp.Extent())

	ev := field.NewEvaluator(*workers)
	defer ev.Close()

	opts := shot.DefaultOptions()
	opts.Legend = *legend
	if err := shot.Save(*out, ev, pts, settings, *width, *height, opts); err != nil {
		slog.Error("render failed", "error", err)
		ev.Close()
		os.Exit(1)
	}
	slog.Info("field saved", "path", *out, "points", len(pts), "p", settings.P(), "mode", mode.String(), "workers", ev.Workers())
}
