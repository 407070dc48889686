package points

import (
	_ "embed"
	"log/slog"
	"math/rand"
	"os"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultRandomCount is the number of seeds generated when no usable default
// set is available.
const DefaultRandomCount = 5

// DefaultData returns the bundled startup point list.
func DefaultData() []byte {
	return defaultsYAML
}

// ReadData returns the contents of the point file at path, or the bundled
// set when path is empty. An unreadable file yields nil so that the random
// fallback of LoadDefault applies.
func ReadData(path string) []byte {
	if path == "" {
		return DefaultData()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("reading default points", "path", path, "error", err)
		return nil
	}
	return data
}

// LoadDefault parses data as the startup point list. When data is empty or
// malformed the error is logged and n random seeds within ±extent are
// returned instead.
func LoadDefault(data []byte, rng *rand.Rand, n int, extent int32) []Point {
	pts, err := Unmarshal(data)
	if err == nil {
		return pts
	}
	slog.Warn("default points unusable, generating random set", "error", err, "count", n)
	return RandomPoints(rng, n, extent)
}

// RandomPoints generates n random seeds within ±extent.
func RandomPoints(rng *rand.Rand, n int, extent int32) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = RandomPoint(rng, extent)
	}
	return pts
}
