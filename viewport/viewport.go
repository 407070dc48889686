// Package viewport maps between raster (window) coordinates and the centered,
// y-up logical space that seed positions live in.
package viewport

import (
	"math"

	"github.com/pthm-cable/voronoi/points"
)

// Viewport is the pixel size of the presentation surface for one frame.
type Viewport struct {
	Width, Height int
}

// New returns a viewport of the given size. Negative sizes become zero.
func New(width, height int) Viewport {
	return Viewport{Width: max(width, 0), Height: max(height, 0)}
}

// Empty reports whether the viewport has no pixels.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// RasterToLogical maps a raster pixel to logical space:
// lx = x - width/2, ly = height/2 - y (integer halves).
func (v Viewport) RasterToLogical(x, y int) (lx, ly int) {
	return x - v.Width/2, v.Height/2 - y
}

// LogicalToRaster is the inverse of RasterToLogical.
func (v Viewport) LogicalToRaster(lx, ly int) (x, y int) {
	return lx + v.Width/2, v.Height/2 - ly
}

// ScreenToPosition maps a window-space cursor position to a seed position.
// Fractional window coordinates are truncated toward zero first.
func (v Viewport) ScreenToPosition(sx, sy float64) points.Position {
	x := truncate(sx)
	y := truncate(sy)
	lx, ly := v.RasterToLogical(x, y)
	return points.Pos(clamp32(lx), clamp32(ly))
}

// PositionToScreen maps a seed position to window space.
func (v Viewport) PositionToScreen(p points.Position) (sx, sy float32) {
	x, y := v.LogicalToRaster(int(p.X()), int(p.Y()))
	return float32(x), float32(y)
}

// Extent is the slider bound for seed coordinates: half the smaller side.
func (v Viewport) Extent() int32 {
	return int32(min(v.Width, v.Height) / 2)
}

// Contains reports whether raster pixel (x, y) is inside the viewport.
func (v Viewport) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.Width && y < v.Height
}

func truncate(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Max(math.Min(math.Trunc(f), math.MaxInt32), math.MinInt32))
}

func clamp32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
