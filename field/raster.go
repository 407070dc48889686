package field

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundLinear is the fill used where no seed is considered, in
// linear-light RGB.
var BackgroundLinear = [3]float64{0.5, 0, 0.5}

// Background is BackgroundLinear encoded as 8-bit sRGB.
var Background = func() color.RGBA {
	r, g, b := colorful.LinearRgb(BackgroundLinear[0], BackgroundLinear[1], BackgroundLinear[2]).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}()

// NoOwner marks raster cells that no seed claimed.
const NoOwner = -1

// Raster is an evaluated field: for every pixel the winning seed index and
// the color painted there. Rows are stored top to bottom.
type Raster struct {
	Width, Height int
	Owner         []int32
	Pix           []color.RGBA
}

// NewRaster allocates a raster filled with the background.
func NewRaster(width, height int) *Raster {
	width, height = max(width, 0), max(height, 0)
	r := &Raster{
		Width:  width,
		Height: height,
		Owner:  make([]int32, width*height),
		Pix:    make([]color.RGBA, width*height),
	}
	r.Clear()
	return r
}

// Clear resets every pixel to the background.
func (r *Raster) Clear() {
	for i := range r.Pix {
		r.Pix[i] = Background
		r.Owner[i] = NoOwner
	}
}

// At returns the color at raster pixel (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return color.RGBA{}
	}
	return r.Pix[y*r.Width+x]
}

// OwnerAt returns the seed index owning raster pixel (x, y), or NoOwner.
func (r *Raster) OwnerAt(x, y int) int {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return NoOwner
	}
	return int(r.Owner[y*r.Width+x])
}

// Image copies the raster into an *image.RGBA.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, c := range r.Pix {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = c.A
	}
	return img
}

// Diff counts the pixels whose color differs from pix, compared in row-major
// order. Pixels missing from either side count as different.
func (r *Raster) Diff(pix []color.RGBA) int {
	n := min(len(r.Pix), len(pix))
	diff := max(len(r.Pix), len(pix)) - n
	for i := 0; i < n; i++ {
		if r.Pix[i] != pix[i] {
			diff++
		}
	}
	return diff
}

func (r *Raster) sized(width, height int) bool {
	return r != nil && r.Width == width && r.Height == height
}
