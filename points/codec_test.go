package points

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		pts := RandomPoints(rng, rng.Intn(12), 500)

		data, err := Marshal(pts)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("unmarshal: %v\n%s", err, data)
		}
		if len(got) != len(pts) {
			t.Fatalf("expected %d points, got %d", len(pts), len(got))
		}
		for i := range pts {
			if got[i] != pts[i] {
				t.Errorf("point %d: expected %+v, got %+v", i, pts[i], got[i])
			}
		}
	}
}

func TestMarshalFormat(t *testing.T) {
	data, err := Marshal([]Point{{Pos: Pos(3, -4), Color: Color{1, 0, 0.5}}})
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "pos: [3, -4]") {
		t.Errorf("expected flow-style pos, got:\n%s", text)
	}
	if !strings.Contains(text, "color: [1, 0, 0.5]") {
		t.Errorf("expected flow-style color, got:\n%s", text)
	}
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("expected empty list to decode, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 points, got %d", len(got))
	}
}

func TestUnmarshalAcceptsJSON(t *testing.T) {
	payload := `[{"pos":[10,-20],"color":[0.25,0.5,1.0]},{"pos":[0,0],"color":[0,0,0]}]`
	got, err := Unmarshal([]byte(payload))
	if err != nil {
		t.Fatalf("expected JSON payload to decode, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Pos != Pos(10, -20) || got[0].Color != (Color{0.25, 0.5, 1}) {
		t.Errorf("unexpected first point %+v", got[0])
	}
}

func TestUnmarshalErrors(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		index   int
	}{
		{"empty", "", -1},
		{"whitespace", "  \n\t", -1},
		{"null", "null", -1},
		{"garbage", "{{{not yaml", -1},
		{"scalar", "hello", -1},
		{"map instead of list", "pos: [1, 2]", -1},
		{"pos arity", "- pos: [1, 2, 3]\n  color: [0, 0, 0]", -1},
		{"unknown field", "- pos: [1, 2]\n  color: [0, 0, 0]\n  size: 4", -1},
		{"missing color", "- pos: [1, 2]", 0},
		{"missing pos", "- pos: [1, 2]\n  color: [0, 0, 0]\n- color: [0, 0, 0]", 1},
		{"color out of range", "- pos: [1, 2]\n  color: [0, 1.5, 0]", 0},
		{"negative color", "- pos: [1, 2]\n  color: [-0.1, 0, 0]", 0},
		{"fractional pos", "- pos: [1.5, 2]\n  color: [1, 0, 0]", -1},
		{"quoted pos", "- pos: [\"1\", 2]\n  color: [1, 0, 0]", -1},
		{"pos beyond int32", "- pos: [3000000000, 2]\n  color: [1, 0, 0]", -1},
		{"pos not a list", "- pos: 7\n  color: [1, 0, 0]", -1},
		{"trailing document", "- pos: [1, 2]\n  color: [1, 0, 0]\n---\nnot: a list\n", -1},
		{"trailing list", "- pos: [1, 2]\n  color: [1, 0, 0]\n---\n- pos: [3, 4]\n  color: [0, 1, 0]\n", -1},
	}

	for _, tc := range testCases {
		_, err := Unmarshal([]byte(tc.payload))
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		var de *DeserializeError
		if !errors.As(err, &de) {
			t.Errorf("%s: expected *DeserializeError, got %T", tc.name, err)
			continue
		}
		if de.Index != tc.index {
			t.Errorf("%s: expected index %d, got %d (%v)", tc.name, tc.index, de.Index, err)
		}
	}
}

func TestUnmarshalRejectsTrailingDocument(t *testing.T) {
	_, err := Unmarshal([]byte("- pos: [1, 2]\n  color: [1, 0, 0]\n---\nnot: a list\n"))
	if !errors.Is(err, ErrTrailingDocument) {
		t.Errorf("expected ErrTrailingDocument, got %v", err)
	}
}

func TestUnmarshalIntegerPositions(t *testing.T) {
	testCases := []struct {
		payload string
		want    Position
	}{
		{"- pos: [16, -3]\n  color: [0, 0, 0]", Pos(16, -3)},
		{"- pos: [2147483647, -2147483648]\n  color: [0, 0, 0]", Pos(2147483647, -2147483648)},
		{`[{"pos": [5, 6], "color": [0, 0, 0]}]`, Pos(5, 6)},
	}

	for _, tc := range testCases {
		got, err := Unmarshal([]byte(tc.payload))
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.payload, err)
			continue
		}
		if got[0].Pos != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.payload, tc.want, got[0].Pos)
		}
	}
}

func TestImportMalformedLeavesStoreUntouched(t *testing.T) {
	s := newTestStore(
		Point{Pos: Pos(1, 1), Color: Color{1, 0, 0}},
		Point{Pos: Pos(2, 2), Color: Color{0, 1, 0}},
		Point{Pos: Pos(3, 3), Color: Color{0, 0, 1}},
	)
	before := s.Snapshot()

	err := s.Import([]byte(`[{"pos": [1, 2], "color": `))
	var de *DeserializeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeserializeError, got %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 points after failed import, got %d", s.Len())
	}
	for i, p := range s.Points() {
		if p != before[i] {
			t.Errorf("point %d changed: %+v -> %+v", i, before[i], p)
		}
	}
}

func TestImportReplacesOnSuccess(t *testing.T) {
	s := newTestStore(Point{Pos: Pos(1, 1)})
	if err := s.Import([]byte("- pos: [5, 6]\n  color: [0.5, 0.5, 0.5]\n- pos: [7, 8]\n  color: [1, 1, 1]\n")); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", s.Len())
	}
	p, _ := s.At(1)
	if p.Pos != Pos(7, 8) {
		t.Errorf("expected (7,8), got %v", p.Pos)
	}
}
