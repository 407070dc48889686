// Package interaction turns frame-batched pointer and keyboard events into
// point store edits: add, remove, drag and recolor.
package interaction

import "strings"

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Modifiers is the set of keyboard modifiers held down.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// None reports whether no modifier is held.
func (m Modifiers) None() bool { return m == 0 }

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		bit  Modifiers
		name string
	}{
		{ModShift, "shift"},
		{ModCtrl, "ctrl"},
		{ModAlt, "alt"},
		{ModSuper, "super"},
	} {
		if m&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "+")
}

// EventKind tags an Event.
type EventKind uint8

const (
	PointerPress EventKind = iota
	PointerRelease
	PointerMove
	ModifiersChange
	Resize
	Close
)

// Event is one buffered input event. Pointer coordinates are window pixels
// with the origin at the top-left corner.
type Event struct {
	Kind   EventKind
	Button Button
	Mods   Modifiers
	X, Y   float64
	Width  int
	Height int
}

// Press builds a pointer press event.
func Press(b Button) Event { return Event{Kind: PointerPress, Button: b} }

// Release builds a pointer release event.
func Release(b Button) Event { return Event{Kind: PointerRelease, Button: b} }

// Move builds a pointer move to window position (x, y).
func Move(x, y float64) Event { return Event{Kind: PointerMove, X: x, Y: y} }

// ModifiersChanged records the modifiers now held.
func ModifiersChanged(m Modifiers) Event { return Event{Kind: ModifiersChange, Mods: m} }

// Resized reports a new viewport size.
func Resized(w, h int) Event { return Event{Kind: Resize, Width: w, Height: h} }

// CloseRequested asks the frame loop to stop.
func CloseRequested() Event { return Event{Kind: Close} }
