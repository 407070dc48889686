package metric

import (
	"math"
	"math/rand"
	"testing"
)

func TestClampP(t *testing.T) {
	testCases := []struct {
		in, want float64
	}{
		{0.4, 0.5},
		{15, 10},
		{0.5, 0.5},
		{10, 10},
		{3.25, 3.25},
		{-1, 0.5},
		{math.Inf(1), 10},
		{math.NaN(), DefaultP},
	}

	for _, tc := range testCases {
		if got := ClampP(tc.in); got != tc.want {
			t.Errorf("ClampP(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestDistanceKnownValues(t *testing.T) {
	testCases := []struct {
		name           string
		ax, ay, bx, by float64
		p, want        float64
	}{
		{"euclidean 3-4-5", 0, 0, 3, 4, 2, 5},
		{"manhattan", 0, 0, 3, 4, 1, 7},
		{"coincident", 7, -3, 7, -3, 3, 0},
		{"axis aligned p=10", 0, 0, 0, 9, 10, 9},
	}

	for _, tc := range testCases {
		got := Distance(tc.ax, tc.ay, tc.bx, tc.by, tc.p)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		ax := float64(rng.Intn(2001) - 1000)
		ay := float64(rng.Intn(2001) - 1000)
		bx := float64(rng.Intn(2001) - 1000)
		by := float64(rng.Intn(2001) - 1000)
		p := MinP + rng.Float64()*(MaxP-MinP)

		d1 := Distance(ax, ay, bx, by, p)
		d2 := Distance(bx, by, ax, ay, p)
		if d1 != d2 {
			t.Fatalf("distance not symmetric for (%v,%v)-(%v,%v) p=%v: %v vs %v", ax, ay, bx, by, p, d1, d2)
		}
	}
}

func TestRankMonotonicWithDistance(t *testing.T) {
	for _, p := range []float64{0.5, 1, 1.5, 2, 3.7, 10} {
		near := Rank(3, 1, p)
		far := Rank(4, 2, p)
		if near >= far {
			t.Errorf("p=%v: expected rank %v < %v", p, near, far)
		}
		dn := Distance(0, 0, 3, 1, p)
		df := Distance(0, 0, 4, 2, p)
		if dn >= df {
			t.Errorf("p=%v: expected distance %v < %v", p, dn, df)
		}
	}
}

func TestKernelMatchesRank(t *testing.T) {
	for _, p := range []float64{0.5, 1, 2, 2.5, 10} {
		k := KernelFor(p)
		for dx := -40; dx <= 40; dx += 7 {
			for dy := -40; dy <= 40; dy += 5 {
				want := Rank(float64(dx), float64(dy), p)
				got := k(float64(dx), float64(dy))
				if got != want {
					t.Errorf("p=%v d=(%d,%d): expected %v, got %v", p, dx, dy, want, got)
				}
			}
		}
	}
}

func TestKernelClampsExponent(t *testing.T) {
	k := KernelFor(0.1)
	if got, want := k(4, 0), Rank(4, 0, MinP); got != want {
		t.Errorf("expected clamped kernel value %v, got %v", want, got)
	}
}

func TestTermFor(t *testing.T) {
	for _, p := range []float64{1, 2, 3.5} {
		term := TermFor(p)
		for d := -25.0; d <= 25; d++ {
			if got, want := term(d), math.Pow(math.Abs(d), p); got != want {
				t.Errorf("p=%v d=%v: expected %v, got %v", p, d, want, got)
			}
		}
	}
}
