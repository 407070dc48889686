// Package shot renders the field to a still image, with seed markers and a
// legend, for headless export.
package shot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

// Options controls what is drawn over the field.
type Options struct {
	MarkerRadius float64 // 0 disables markers
	Legend       bool
	FontSize     float64
}

// DefaultOptions matches the desktop front-end's marker size.
func DefaultOptions() Options {
	return Options{MarkerRadius: 3, Legend: true, FontSize: 12}
}

// Render evaluates the field for pts at width x height and draws the
// overlays on top. Evaluation uses ev when non-nil, otherwise it runs
// serially.
func Render(ev *field.Evaluator, pts []points.Point, s field.Settings, width, height int, opts Options) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	var r *field.Raster
	if ev != nil {
		r = ev.Evaluate(pts, s, width, height)
	} else {
		r = field.EvaluateSerial(pts, s, width, height)
	}

	img := r.Image()
	dc := gg.NewContextForRGBA(img)

	if opts.MarkerRadius > 0 {
		drawMarkers(dc, pts, viewport.New(width, height), opts.MarkerRadius)
	}
	if opts.Legend {
		if err := drawLegend(dc, len(pts), s, opts.FontSize); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Save renders like Render and writes the result as a PNG to path.
func Save(path string, ev *field.Evaluator, pts []points.Point, s field.Settings, width, height int, opts Options) error {
	img, err := Render(ev, pts, s, width, height, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func drawMarkers(dc *gg.Context, pts []points.Point, vp viewport.Viewport, radius float64) {
	dc.SetLineWidth(1)
	for _, p := range pts {
		x, y := vp.PositionToScreen(p.Pos)
		dc.DrawCircle(float64(x)+0.5, float64(y)+0.5, radius)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.Stroke()
	}
}

func drawLegend(dc *gg.Context, seeds int, s field.Settings, size float64) error {
	if size <= 0 {
		size = 12
	}
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	text := fmt.Sprintf("%s  p=%.2f  seeds=%d", s.Mode, s.P(), seeds)
	w, h := dc.MeasureString(text)
	pad := size / 2
	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRectangle(pad/2, pad/2, w+2*pad, h+2*pad)
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawStringAnchored(text, pad/2+pad, pad/2+pad, 0, 1)
	return nil
}
