// Package renderer draws the Voronoi field and seed markers with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

// Options configures a Context.
type Options struct {
	UseGPU       bool
	MaxGPUSeeds  int
	MarkerRadius float32
}

// Context owns every GPU resource the explorer draws with. It is created
// once after the window opens and passed to the frame loop.
type Context struct {
	gpu          *GPUField
	raster       *RasterTexture
	markerRadius float32
}

// NewContext allocates the rendering resources. A *ResourceError means the
// shader backend could not be created.
func NewContext(opts Options) (*Context, error) {
	c := &Context{
		raster:       NewRasterTexture(),
		markerRadius: opts.MarkerRadius,
	}
	if opts.UseGPU {
		c.gpu = NewGPUField(opts.MaxGPUSeeds)
		if err := c.gpu.Init(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// EnableGPU compiles the shader backend if it is not loaded yet.
func (c *Context) EnableGPU(maxSeeds int) error {
	if c.gpu != nil {
		return nil
	}
	gpu := NewGPUField(maxSeeds)
	if err := gpu.Init(); err != nil {
		return err
	}
	c.gpu = gpu
	return nil
}

// NeedsCPU reports whether a field with n seeds must be evaluated on the
// CPU and presented through a raster texture.
func (c *Context) NeedsCPU(n int) bool {
	return c.gpu == nil || !c.gpu.Accepts(n)
}

// UploadRaster stages a CPU-evaluated raster for DrawField.
func (c *Context) UploadRaster(r *field.Raster) error {
	return c.raster.Upload(r)
}

// DrawField draws the field. With cpu set the last uploaded raster is shown,
// otherwise the shader evaluates pts directly.
func (c *Context) DrawField(pts []points.Point, s field.Settings, vp viewport.Viewport, cpu bool) {
	if cpu || c.gpu == nil {
		c.raster.Draw()
		return
	}
	c.gpu.Draw(pts, s, vp.Width, vp.Height)
}

// DrawMarkers draws a small dot on every seed. The dragged seed gets a ring.
func (c *Context) DrawMarkers(pts []points.Point, vp viewport.Viewport, dragging int, hasDrag bool) {
	if c.markerRadius <= 0 {
		return
	}
	for i, p := range pts {
		x, y := vp.PositionToScreen(p.Pos)
		center := rl.Vector2{X: x, Y: y}
		rl.DrawCircleV(center, c.markerRadius+1, rl.White)
		rl.DrawCircleV(center, c.markerRadius, rl.Black)
		if hasDrag && i == dragging {
			rl.DrawCircleLines(int32(x), int32(y), c.markerRadius*3, rl.White)
		}
	}
}

// Unload frees GPU resources.
func (c *Context) Unload() {
	if c.gpu != nil {
		c.gpu.Unload()
	}
	c.raster.Unload()
}
