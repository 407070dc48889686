// Package metric implements the generalized Lp distance used to assign
// raster locations to seeds.
package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bounds for the metric exponent.
const (
	MinP     = 0.5
	MaxP     = 10.0
	DefaultP = 2.0
)

// ClampP restricts p to [MinP, MaxP]. NaN maps to DefaultP.
func ClampP(p float64) float64 {
	if math.IsNaN(p) {
		return DefaultP
	}
	if p < MinP {
		return MinP
	}
	if p > MaxP {
		return MaxP
	}
	return p
}

// Distance returns (|ax-bx|^p + |ay-by|^p)^(1/p).
// p is clamped before use.
func Distance(ax, ay, bx, by, p float64) float64 {
	return floats.Distance([]float64{ax, ay}, []float64{bx, by}, ClampP(p))
}

// Rank returns the un-rooted sum |dx|^p + |dy|^p.
// The root is monotonic for p > 0, so ranking seeds by Rank gives the same
// order as ranking by Distance without paying for the root.
func Rank(dx, dy, p float64) float64 {
	return math.Pow(math.Abs(dx), p) + math.Pow(math.Abs(dy), p)
}

// Term returns one axis contribution |d|^p for a fixed exponent.
type Term func(d float64) float64

// TermFor returns |d|^p specialized for p. The p == 1 and p == 2 forms are
// exact for integer-valued d, so they agree with math.Pow bit for bit.
func TermFor(p float64) Term {
	p = ClampP(p)
	switch p {
	case 1:
		return math.Abs
	case 2:
		return square
	default:
		return func(d float64) float64 {
			return math.Pow(math.Abs(d), p)
		}
	}
}

// Kernel ranks a delta for a fixed exponent.
type Kernel func(dx, dy float64) float64

// KernelFor returns a ranking function specialized for p.
func KernelFor(p float64) Kernel {
	term := TermFor(p)
	return func(dx, dy float64) float64 {
		return term(dx) + term(dy)
	}
}

func square(d float64) float64 {
	return d * d
}
