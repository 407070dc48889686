package interaction

// ControlKind names a panel widget that edits a single seed.
type ControlKind uint8

const (
	ControlNone   ControlKind = iota
	ControlPointX             // x slider of a point row
	ControlPointY             // y slider of a point row
	ControlColor              // color picker of the selected point
)

// Control is one seed-editing widget: its kind and the seed index it edits.
type Control struct {
	Kind  ControlKind
	Index int
}

// Grab tracks which control a press landed on, until the button is
// released. Immediate-mode widgets report values every frame, so an edit
// is only taken from the control that owns the press.
type Grab struct {
	held    Control
	pressed bool
	down    bool
}

// Begin starts a frame with the primary button state. A new press or a
// released button drops the previous owner.
func (g *Grab) Begin(pressed, down bool) {
	g.pressed, g.down = pressed, down
	if pressed || !down {
		g.held = Control{}
	}
}

// Claim makes c the owner when this frame's press landed inside it.
func (g *Grab) Claim(c Control, inside bool) {
	if g.pressed && inside {
		g.held = c
	}
}

// Owns reports whether c holds the current press.
func (g *Grab) Owns(c Control) bool {
	return g.down && c.Kind != ControlNone && g.held == c
}

// Held returns the owning control, or the zero Control.
func (g *Grab) Held() Control {
	if !g.down {
		return Control{}
	}
	return g.held
}

// Forget drops ownership of any control editing index. Used when the seed
// goes away while the button is held.
func (g *Grab) Forget(index int) {
	if g.held.Kind != ControlNone && g.held.Index == index {
		g.held = Control{}
	}
}
