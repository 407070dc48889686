package shot

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
)

func twoSeeds() []points.Point {
	return []points.Point{
		{Pos: points.Pos(-40, 0), Color: points.Color{1, 0, 0}},
		{Pos: points.Pos(40, 0), Color: points.Color{0, 0, 1}},
	}
}

func TestRenderPlainField(t *testing.T) {
	img, err := Render(nil, twoSeeds(), field.DefaultSettings(), 200, 100, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"left", 20, 50, color.RGBA{R: 255, A: 255}},
		{"right", 180, 50, color.RGBA{B: 255, A: 255}},
		{"top right corner", 199, 0, color.RGBA{B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRenderEmptyIsBackground(t *testing.T) {
	img, err := Render(nil, nil, field.DefaultSettings(), 32, 32, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := img.RGBAAt(16, 16); got != field.Background {
		t.Errorf("expected background %v, got %v", field.Background, got)
	}
}

func TestRenderMarkers(t *testing.T) {
	img, err := Render(nil, twoSeeds(), field.DefaultSettings(), 200, 100, Options{MarkerRadius: 4})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// seed 0 sits at raster (60, 50); its marker is filled white
	if got := img.RGBAAt(60, 50); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white marker center, got %v", got)
	}
}

func TestRenderWithEvaluatorMatchesSerial(t *testing.T) {
	ev := field.NewEvaluator(3)
	defer ev.Close()

	s := field.NewSettings(1, field.Farthest)
	a, err := Render(ev, twoSeeds(), s, 120, 80, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := Render(nil, twoSeeds(), s, 120, 80, Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("expected identical images, first difference at byte %d", i)
		}
	}
}

func TestRenderRejectsEmptySize(t *testing.T) {
	if _, err := Render(nil, twoSeeds(), field.DefaultSettings(), 0, 10, DefaultOptions()); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSaveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.png")
	if err := Save(path, nil, twoSeeds(), field.DefaultSettings(), 64, 48, DefaultOptions()); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Errorf("expected PNG signature, got %q", data[:min(len(data), 8)])
	}
}
