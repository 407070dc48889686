// Package points owns the ordered set of Voronoi seed points.
//
// A seed's identity is its index in the Store. Positions live in a centered,
// y-up logical space; colors are RGB channels in [0, 1].
package points

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Position is an integer location in logical space (origin at the viewport
// center, y pointing up).
type Position [2]int32

// Pos builds a Position from x and y.
func Pos(x, y int32) Position {
	return Position{x, y}
}

// X returns the horizontal coordinate.
func (p Position) X() int32 { return p[0] }

// Y returns the vertical coordinate.
func (p Position) Y() int32 { return p[1] }

// Color is an RGB triple with channels in [0, 1].
type Color [3]float32

// Clamped returns c with every channel forced into [0, 1].
// NaN channels become 0.
func (c Color) Clamped() Color {
	for i, v := range c {
		switch {
		case v != v:
			c[i] = 0
		case v < 0:
			c[i] = 0
		case v > 1:
			c[i] = 1
		}
	}
	return c
}

// Valid reports whether every channel is a number in [0, 1].
func (c Color) Valid() bool {
	for _, v := range c {
		if v != v || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Colorful converts to a go-colorful color for encoding and blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}

// RGB255 returns the color as 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Clamped().Colorful().RGB255()
}

// Point is a single seed: a position and the color of the cell it generates.
type Point struct {
	Pos   Position `yaml:"pos,flow"`
	Color Color    `yaml:"color,flow"`
}

// RandomColor returns a vivid color: random hue, high saturation, high value.
func RandomColor(rng *rand.Rand) Color {
	h := rng.Float64() * 360
	s := 0.55 + rng.Float64()*0.45
	v := 0.85 + rng.Float64()*0.15
	c := colorful.Hsv(h, s, v).Clamped()
	return Color{float32(c.R), float32(c.G), float32(c.B)}.Clamped()
}

// RandomPoint returns a seed at a random position within ±extent on both
// axes with a random bright color.
func RandomPoint(rng *rand.Rand, extent int32) Point {
	extent = int32(math.Abs(float64(extent)))
	var x, y int32
	if extent > 0 {
		x = rng.Int31n(2*extent+1) - extent
		y = rng.Int31n(2*extent+1) - extent
	}
	return Point{Pos: Pos(x, y), Color: RandomColor(rng)}
}
