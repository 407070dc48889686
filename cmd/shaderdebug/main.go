// Shader debug tool - renders the field shader off-screen, compares it with
// the CPU evaluator and writes both to PNG files for inspection.
//
// Usage: go run ./cmd/shaderdebug -p 3 -mode farthest -out gpu.png -cpu-out cpu.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/renderer"
	"github.com/pthm-cable/voronoi/shot"
	"github.com/pthm-cable/voronoi/viewport"
)

func main() {
	pointsPath := flag.String("points", "", "Point list YAML/JSON (empty = bundled defaults)")
	p := flag.Float64("p", 2, "Metric exponent")
	modeName := flag.String("mode", "nearest", "nearest or farthest")
	outPath := flag.String("out", "debug.png", "Output PNG path for the shader render")
	cpuOut := flag.String("cpu-out", "", "Output PNG path for the CPU render (empty = skip)")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	maxSeeds := flag.Int("max-seeds", 120, "Shader seed capacity")
	flag.Parse()

	mode, err := field.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	settings := field.NewSettings(*p, mode)
	vp := viewport.New(*width, *height)
	pts := points.LoadDefault(points.ReadData(*pointsPath), rand.New(rand.NewSource(1)), points.DefaultRandomCount, vp.Extent())

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	gpu := renderer.NewGPUField(*maxSeeds)
	if err := gpu.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load shader: %v\n", err)
		os.Exit(1)
	}
	defer gpu.Unload()
	if !gpu.Accepts(len(pts)) {
		fmt.Fprintf(os.Stderr, "%d seeds exceed shader capacity %d\n", len(pts), gpu.MaxSeeds())
		os.Exit(1)
	}

	// Create render texture
	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	// Render shader to texture
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	gpu.Draw(pts, settings, *width, *height)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	pix := rl.LoadImageColors(img)

	cpu := field.EvaluateSerial(pts, settings, *width, *height)
	diff := cpu.Diff(pix)
	fmt.Printf("seeds=%d p=%.2f mode=%s: %d of %d pixels differ (%.4f%%)\n",
		len(pts), settings.P(), mode, diff, len(cpu.Pix), 100*float64(diff)/float64(max(len(cpu.Pix), 1)))

	// Export to PNG
	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImageColors(pix)
	rl.UnloadImage(img)

	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
	fmt.Printf("Shader rendered to: %s (%dx%d)\n", *outPath, *width, *height)

	if *cpuOut != "" {
		opts := shot.Options{}
		if err := shot.Save(*cpuOut, nil, pts, settings, *width, *height, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("CPU field rendered to: %s\n", *cpuOut)
	}
}
