// Package field evaluates the generalized Voronoi assignment field: for every
// raster pixel, the seed selected by the metric and mode, and its color.
//
// EvaluateSerial is the reference definition. Evaluator produces the same
// raster using a persistent worker pool and reuses its buffers while the
// raster size is unchanged.
package field

import (
	"image/color"

	"github.com/pthm-cable/voronoi/metric"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

// Winner returns the index of the seed owning logical location (lx, ly), or
// NoOwner when pts is empty. Ranking uses the un-rooted sum |dx|^p + |dy|^p;
// exact ties go to the lowest index.
func Winner(pts []points.Point, s Settings, lx, ly int) int {
	p := s.P()
	best := NoOwner
	var bestRank float64
	for i, pt := range pts {
		dx := float64(lx) - float64(pt.Pos.X())
		dy := float64(ly) - float64(pt.Pos.Y())
		r := metric.Rank(dx, dy, p)
		if best == NoOwner || beats(s.Mode, r, bestRank) {
			best, bestRank = i, r
		}
	}
	return best
}

// EvaluateSerial computes the field one pixel at a time.
func EvaluateSerial(pts []points.Point, s Settings, width, height int) *Raster {
	r := NewRaster(width, height)
	if len(pts) == 0 {
		return r
	}
	colors := seedColors(nil, pts)
	vp := viewport.New(width, height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			lx, ly := vp.RasterToLogical(x, y)
			w := Winner(pts, s, lx, ly)
			r.Owner[y*r.Width+x] = int32(w)
			r.Pix[y*r.Width+x] = colors[w]
		}
	}
	return r
}

// beats reports whether rank r replaces the current best under mode.
// Strict comparison keeps the earlier (lower) index on ties.
func beats(mode Mode, r, best float64) bool {
	if mode == Farthest {
		return r > best
	}
	return r < best
}

func seedColors(dst []color.RGBA, pts []points.Point) []color.RGBA {
	dst = dst[:0]
	for _, p := range pts {
		r, g, b := p.Color.RGB255()
		dst = append(dst, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return dst
}
