package points

import "math/rand"

// Store holds the seed points in insertion order.
// It is single-writer: callers own the frame loop that mutates it.
type Store struct {
	pts []Point
	rng *rand.Rand
}

// NewStore creates an empty store. rng drives color generation.
func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Store{rng: rng}
}

// Len returns the number of seeds.
func (s *Store) Len() int {
	return len(s.pts)
}

// At returns the seed at index i.
func (s *Store) At(i int) (Point, bool) {
	if i < 0 || i >= len(s.pts) {
		return Point{}, false
	}
	return s.pts[i], true
}

// Points returns the backing slice. The view is only valid until the next
// mutation and must not be modified by the caller.
func (s *Store) Points() []Point {
	return s.pts
}

// Snapshot returns a copy of the current points.
func (s *Store) Snapshot() []Point {
	out := make([]Point, len(s.pts))
	copy(out, s.pts)
	return out
}

// Add appends a seed at pos with a random bright color and returns its index.
func (s *Store) Add(pos Position) int {
	s.pts = append(s.pts, Point{Pos: pos, Color: RandomColor(s.rng)})
	return len(s.pts) - 1
}

// Remove deletes the seed at i, shifting later seeds down by one.
// Out-of-range indices are ignored.
func (s *Store) Remove(i int) {
	if i < 0 || i >= len(s.pts) {
		return
	}
	s.pts = append(s.pts[:i], s.pts[i+1:]...)
}

// MoveTo overwrites the position of seed i.
func (s *Store) MoveTo(i int, pos Position) {
	if i < 0 || i >= len(s.pts) {
		return
	}
	s.pts[i].Pos = pos
}

// SetColor assigns a color to seed i, clamping channels into [0, 1].
func (s *Store) SetColor(i int, c Color) {
	if i < 0 || i >= len(s.pts) {
		return
	}
	s.pts[i].Color = c.Clamped()
}

// SetRandomColor gives seed i a new bright color.
func (s *Store) SetRandomColor(i int) {
	if i < 0 || i >= len(s.pts) {
		return
	}
	s.pts[i].Color = RandomColor(s.rng)
}

// RandomizeAllColors recolors every seed.
func (s *Store) RandomizeAllColors() {
	for i := range s.pts {
		s.pts[i].Color = RandomColor(s.rng)
	}
}

// Replace swaps the whole point list for pts. The store keeps its own copy.
func (s *Store) Replace(pts []Point) {
	s.pts = append(s.pts[:0:0], pts...)
}

// Nearest returns the index of the seed closest to pos by squared Euclidean
// distance, independent of the rendering metric. Ties go to the lowest
// index. ok is false when the store is empty.
func (s *Store) Nearest(pos Position) (idx int, ok bool) {
	return Nearest(s.pts, pos)
}

// Nearest is the store-independent form of Store.Nearest.
func Nearest(pts []Point, pos Position) (idx int, ok bool) {
	idx = -1
	var best int64
	for i, p := range pts {
		dx := int64(p.Pos[0]) - int64(pos[0])
		dy := int64(p.Pos[1]) - int64(pos[1])
		d := dx*dx + dy*dy
		if idx < 0 || d < best {
			idx, best = i, d
		}
	}
	return idx, idx >= 0
}

// Serialize encodes the current points in the clipboard format.
func (s *Store) Serialize() ([]byte, error) {
	return Marshal(s.pts)
}

// Import decodes data and, on success, replaces the store contents with it.
// On failure the store is left untouched and a *DeserializeError is returned.
func (s *Store) Import(data []byte) error {
	pts, err := Unmarshal(data)
	if err != nil {
		return err
	}
	s.Replace(pts)
	return nil
}
