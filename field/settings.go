package field

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/voronoi/metric"
)

// Mode selects which seed owns a location.
type Mode uint8

const (
	Nearest  Mode = iota // closest seed under the metric wins
	Farthest             // most distant seed wins
)

func (m Mode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Farthest:
		return "farthest"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts "nearest"/"near" and "farthest"/"far", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "near":
		return Nearest, nil
	case "farthest", "far":
		return Farthest, nil
	default:
		return Nearest, fmt.Errorf("unknown selection mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Nearest && m != Farthest {
		return nil, fmt.Errorf("invalid selection mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Settings is the process-wide field configuration: metric exponent and
// selection mode. The exponent is kept inside [metric.MinP, metric.MaxP].
type Settings struct {
	p    float64
	Mode Mode
}

// DefaultSettings returns p = 2 with Nearest selection.
func DefaultSettings() Settings {
	return Settings{p: metric.DefaultP, Mode: Nearest}
}

// NewSettings builds settings with p clamped into range.
func NewSettings(p float64, mode Mode) Settings {
	return Settings{p: metric.ClampP(p), Mode: mode}
}

// P returns the metric exponent.
func (s Settings) P() float64 {
	if s.p == 0 {
		return metric.DefaultP
	}
	return s.p
}

// SetP assigns the exponent, clamping it into range. It reports whether the
// requested value had to be clamped.
func (s *Settings) SetP(p float64) (clamped bool) {
	s.p = metric.ClampP(p)
	return s.p != p
}
