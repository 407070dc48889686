package renderer

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/field"
)

// RasterTexture presents a CPU-evaluated field raster. The texture is
// recreated only when the raster size changes.
type RasterTexture struct {
	tex  rl.Texture2D
	w, h int

	initialized bool
}

// NewRasterTexture creates an empty raster presenter.
func NewRasterTexture() *RasterTexture {
	return &RasterTexture{}
}

// Upload copies r into the texture, resizing it when needed.
func (t *RasterTexture) Upload(r *field.Raster) error {
	if r == nil || r.Width == 0 || r.Height == 0 {
		return nil
	}
	if !t.initialized || t.w != r.Width || t.h != r.Height {
		if err := t.resize(r.Width, r.Height); err != nil {
			return err
		}
	}
	rl.UpdateTexture(t.tex, r.Pix)
	return nil
}

func (t *RasterTexture) resize(w, h int) error {
	t.Unload()

	img := rl.GenImageColor(w, h, field.Background)
	t.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(t.tex) {
		return &ResourceError{Resource: "field texture", Err: errors.New("texture allocation failed")}
	}
	rl.SetTextureFilter(t.tex, rl.FilterPoint)

	t.w, t.h = w, h
	t.initialized = true
	return nil
}

// Draw renders the last uploaded raster at the origin.
func (t *RasterTexture) Draw() {
	if !t.initialized {
		return
	}
	rl.DrawTexture(t.tex, 0, 0, rl.White)
}

// Unload frees GPU resources.
func (t *RasterTexture) Unload() {
	if !t.initialized {
		return
	}
	rl.UnloadTexture(t.tex)
	t.initialized = false
}
