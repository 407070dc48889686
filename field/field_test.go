package field

import (
	"fmt"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pthm-cable/voronoi/metric"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

var (
	red  = points.Color{1, 0, 0}
	blue = points.Color{0, 0, 1}
)

func redBlue() []points.Point {
	return []points.Point{
		{Pos: points.Pos(0, 0), Color: red},
		{Pos: points.Pos(100, 0), Color: blue},
	}
}

func TestRedBlueScenario(t *testing.T) {
	pts := redBlue()
	s := NewSettings(2, Nearest)
	ev := NewEvaluator(4)
	defer ev.Close()

	for name, r := range map[string]*Raster{
		"serial":   EvaluateSerial(pts, s, 200, 200),
		"parallel": ev.Evaluate(pts, s, 200, 200),
	} {
		// logical (40,0) -> raster (140,100)
		if got := r.OwnerAt(140, 100); got != 0 {
			t.Errorf("%s: expected red owner 0 at logical (40,0), got %d", name, got)
		}
		if got := r.At(140, 100); got != (color.RGBA{R: 255, A: 255}) {
			t.Errorf("%s: expected red at logical (40,0), got %v", name, got)
		}
		if got := r.OwnerAt(160, 100); got != 1 {
			t.Errorf("%s: expected blue owner 1 at logical (60,0), got %d", name, got)
		}
		if got := r.At(160, 100); got != (color.RGBA{B: 255, A: 255}) {
			t.Errorf("%s: expected blue at logical (60,0), got %v", name, got)
		}
		// Equidistant: lowest index wins
		if got := r.OwnerAt(150, 100); got != 0 {
			t.Errorf("%s: expected tie at logical (50,0) to go to 0, got %d", name, got)
		}
	}
}

func TestFarthestScenario(t *testing.T) {
	pts := redBlue()
	s := NewSettings(2, Farthest)
	r := EvaluateSerial(pts, s, 200, 200)

	if got := r.OwnerAt(140, 100); got != 1 {
		t.Errorf("expected blue to be farthest at logical (40,0), got %d", got)
	}
	if got := r.OwnerAt(160, 100); got != 0 {
		t.Errorf("expected red to be farthest at logical (60,0), got %d", got)
	}
	if got := r.OwnerAt(150, 100); got != 0 {
		t.Errorf("expected tie at logical (50,0) to go to 0, got %d", got)
	}
}

func TestEmptyIsBackground(t *testing.T) {
	ev := NewEvaluator(2)
	defer ev.Close()

	for name, r := range map[string]*Raster{
		"serial":   EvaluateSerial(nil, DefaultSettings(), 32, 16),
		"parallel": ev.Evaluate(nil, DefaultSettings(), 32, 16),
	} {
		for i, c := range r.Pix {
			if c != Background {
				t.Fatalf("%s: expected background at %d, got %v", name, i, c)
			}
			if r.Owner[i] != NoOwner {
				t.Fatalf("%s: expected no owner at %d, got %d", name, i, r.Owner[i])
			}
		}
	}
}

func TestBackgroundIsLinearMagenta(t *testing.T) {
	// linear 0.5 encodes to roughly 188 in sRGB
	if Background.R < 185 || Background.R > 190 {
		t.Errorf("expected sRGB red near 188, got %d", Background.R)
	}
	if Background.G != 0 || Background.B != Background.R || Background.A != 255 {
		t.Errorf("expected magenta-like background, got %v", Background)
	}
}

func TestCoincidentPixelOwnedInNearest(t *testing.T) {
	pts := []points.Point{
		{Pos: points.Pos(-30, 12), Color: red},
		{Pos: points.Pos(5, -7), Color: blue},
	}
	vp := viewport.New(100, 80)
	for _, p := range []float64{0.5, 1, 2, 7.5, 10} {
		r := EvaluateSerial(pts, NewSettings(p, Nearest), vp.Width, vp.Height)
		for i, pt := range pts {
			x, y := vp.LogicalToRaster(int(pt.Pos.X()), int(pt.Pos.Y()))
			if got := r.OwnerAt(x, y); got != i {
				t.Errorf("p=%v: expected seed %d to own its own pixel, got %d", p, i, got)
			}
		}
	}
}

func TestWinnerEmpty(t *testing.T) {
	if got := Winner(nil, DefaultSettings(), 0, 0); got != NoOwner {
		t.Errorf("expected NoOwner, got %d", got)
	}
}

// bruteForce picks the winner directly from metric.Rank.
func bruteForce(pts []points.Point, p float64, mode Mode, lx, ly int) int {
	best := -1
	var bestRank float64
	for i, pt := range pts {
		r := metric.Rank(float64(lx-int(pt.Pos.X())), float64(ly-int(pt.Pos.Y())), p)
		switch {
		case best < 0:
			best, bestRank = i, r
		case mode == Nearest && r < bestRank:
			best, bestRank = i, r
		case mode == Farthest && r > bestRank:
			best, bestRank = i, r
		}
	}
	return best
}

func TestEvaluatorMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ev := NewEvaluator(3)
	defer ev.Close()

	// Large enough to cross the parallel threshold
	const w, h = 160, 120
	pts := points.RandomPoints(rng, 12, 60)
	// Duplicate seed exercises the tie-break
	pts = append(pts, points.Point{Pos: pts[3].Pos, Color: blue})

	for _, p := range []float64{0.5, 1, 2, 3.3, 10} {
		for _, mode := range []Mode{Nearest, Farthest} {
			s := NewSettings(p, mode)
			want := EvaluateSerial(pts, s, w, h)
			got := ev.Evaluate(pts, s, w, h)
			for i := range want.Owner {
				if got.Owner[i] != want.Owner[i] {
					t.Fatalf("p=%v %s: pixel %d expected owner %d, got %d",
						p, mode, i, want.Owner[i], got.Owner[i])
				}
				if got.Pix[i] != want.Pix[i] {
					t.Fatalf("p=%v %s: pixel %d expected %v, got %v",
						p, mode, i, want.Pix[i], got.Pix[i])
				}
			}
		}
	}
}

func TestEvaluatorMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ev := NewEvaluator(2)
	defer ev.Close()

	const w, h = 64, 48
	vp := viewport.New(w, h)
	for trial := 0; trial < 20; trial++ {
		pts := points.RandomPoints(rng, 1+rng.Intn(8), 40)
		p := metric.MinP + rng.Float64()*(metric.MaxP-metric.MinP)
		mode := Mode(rng.Intn(2))
		r := ev.Evaluate(pts, NewSettings(p, mode), w, h)

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				lx, ly := vp.RasterToLogical(x, y)
				want := bruteForce(pts, p, mode, lx, ly)
				if got := r.OwnerAt(x, y); got != want {
					t.Fatalf("trial %d p=%.3f %s (%d,%d): expected %d, got %d",
						trial, p, mode, lx, ly, want, got)
				}
			}
		}
	}
}

func TestEvaluatorReusesRaster(t *testing.T) {
	ev := NewEvaluator(2)
	defer ev.Close()
	pts := redBlue()

	a := ev.Evaluate(pts, DefaultSettings(), 50, 40)
	b := ev.Evaluate(pts, DefaultSettings(), 50, 40)
	if a != b {
		t.Error("expected raster to be reused for unchanged size")
	}

	c := ev.Evaluate(pts, DefaultSettings(), 60, 40)
	if c == a {
		t.Error("expected new raster after resize")
	}
	if c.Width != 60 || c.Height != 40 || len(c.Pix) != 60*40 {
		t.Errorf("expected 60x40 raster, got %dx%d (%d pixels)", c.Width, c.Height, len(c.Pix))
	}

	// Emptying the store after a full evaluation must clear stale pixels
	d := ev.Evaluate(nil, DefaultSettings(), 60, 40)
	if d.At(0, 0) != Background {
		t.Errorf("expected background after clearing seeds, got %v", d.At(0, 0))
	}
}

func TestEvaluatorZeroSize(t *testing.T) {
	ev := NewEvaluator(1)
	r := ev.Evaluate(redBlue(), DefaultSettings(), 0, -5)
	if r.Width != 0 || r.Height != 0 || len(r.Pix) != 0 {
		t.Errorf("expected empty raster, got %dx%d", r.Width, r.Height)
	}
}

func TestEvaluatorRestartsAfterClose(t *testing.T) {
	ev := NewEvaluator(2)
	rng := rand.New(rand.NewSource(3))
	pts := points.RandomPoints(rng, 40, 100)

	first := ev.Evaluate(pts, DefaultSettings(), 200, 200).OwnerAt(10, 10)
	ev.Close()
	second := ev.Evaluate(pts, DefaultSettings(), 200, 200).OwnerAt(10, 10)
	ev.Close()

	if first != second {
		t.Errorf("expected same owner after pool restart, got %d and %d", first, second)
	}
}

func TestSettingsClamp(t *testing.T) {
	testCases := []struct {
		in, want float64
		clamped  bool
	}{
		{0.4, 0.5, true},
		{15, 10, true},
		{2, 2, false},
		{0.5, 0.5, false},
		{10, 10, false},
	}

	for _, tc := range testCases {
		var s Settings
		clamped := s.SetP(tc.in)
		if s.P() != tc.want || clamped != tc.clamped {
			t.Errorf("SetP(%v): expected (%v, %v), got (%v, %v)", tc.in, tc.want, tc.clamped, s.P(), clamped)
		}
		if got := NewSettings(tc.in, Nearest).P(); got != tc.want {
			t.Errorf("NewSettings(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestZeroSettingsUseDefaults(t *testing.T) {
	var s Settings
	if s.P() != metric.DefaultP || s.Mode != Nearest {
		t.Errorf("expected p=2 nearest, got p=%v %s", s.P(), s.Mode)
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"nearest", Nearest, false},
		{"Far", Farthest, false},
		{" FARTHEST ", Farthest, false},
		{"near", Nearest, false},
		{"middle", Nearest, true},
	}

	for _, tc := range testCases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q): unexpected error state %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}

	var m Mode
	if err := m.UnmarshalText([]byte("farthest")); err != nil || m != Farthest {
		t.Errorf("expected farthest, got %s (%v)", m, err)
	}
	if _, err := Mode(9).MarshalText(); err == nil {
		t.Error("expected error marshaling invalid mode")
	}
}

func TestRasterImage(t *testing.T) {
	r := EvaluateSerial(redBlue(), DefaultSettings(), 200, 200)
	img := r.Image()
	if got := img.RGBAAt(140, 100); got != r.At(140, 100) {
		t.Errorf("expected image pixel %v, got %v", r.At(140, 100), got)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Errorf("expected 200x200 image, got %v", img.Bounds())
	}
}

func TestRasterDiff(t *testing.T) {
	r := EvaluateSerial(redBlue(), DefaultSettings(), 20, 10)
	pix := append([]color.RGBA(nil), r.Pix...)

	if got := r.Diff(pix); got != 0 {
		t.Errorf("expected 0 differences, got %d", got)
	}

	pix[3] = color.RGBA{1, 2, 3, 255}
	pix[17] = color.RGBA{4, 5, 6, 255}
	if got := r.Diff(pix); got != 2 {
		t.Errorf("expected 2 differences, got %d", got)
	}
	if got := r.Diff(pix[:len(pix)-5]); got != 7 {
		t.Errorf("expected 7 differences with short input, got %d", got)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pts := points.RandomPoints(rng, 200, 400)
	ev := NewEvaluator(0)
	defer ev.Close()

	for _, p := range []float64{2, 3.3} {
		s := NewSettings(p, Nearest)
		b.Run(fmt.Sprintf("p=%g", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ev.Evaluate(pts, s, 800, 600)
			}
		})
	}
}

func BenchmarkEvaluateSerial(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pts := points.RandomPoints(rng, 200, 400)
	s := DefaultSettings()
	for i := 0; i < b.N; i++ {
		EvaluateSerial(pts, s, 400, 300)
	}
}
