package desktop

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/interaction"
)

// inputState turns raylib's polled input state into the buffered events the
// interaction controller consumes.
type inputState struct {
	mods   interaction.Modifiers
	mouse  rl.Vector2
	primed bool
}

var buttonMap = []struct {
	rl  rl.MouseButton
	btn interaction.Button
}{
	{rl.MouseButtonLeft, interaction.ButtonPrimary},
	{rl.MouseButtonRight, interaction.ButtonSecondary},
	{rl.MouseButtonMiddle, interaction.ButtonMiddle},
}

// poll appends this frame's events to dst.
func (s *inputState) poll(dst []interaction.Event) []interaction.Event {
	// Window resize propagation
	if rl.IsWindowResized() {
		dst = append(dst, interaction.Resized(rl.GetScreenWidth(), rl.GetScreenHeight()))
	}

	if mods := heldModifiers(); mods != s.mods || !s.primed {
		s.mods = mods
		dst = append(dst, interaction.ModifiersChanged(mods))
	}

	if m := rl.GetMousePosition(); m != s.mouse || !s.primed {
		s.mouse = m
		dst = append(dst, interaction.Move(float64(m.X), float64(m.Y)))
	}
	s.primed = true

	for _, b := range buttonMap {
		if rl.IsMouseButtonPressed(b.rl) {
			dst = append(dst, interaction.Press(b.btn))
		}
		if rl.IsMouseButtonReleased(b.rl) {
			dst = append(dst, interaction.Release(b.btn))
		}
	}

	if rl.WindowShouldClose() {
		dst = append(dst, interaction.CloseRequested())
	}
	return dst
}

func heldModifiers() interaction.Modifiers {
	var m interaction.Modifiers
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= interaction.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		m |= interaction.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		m |= interaction.ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		m |= interaction.ModSuper
	}
	return m
}

// handleKeys processes keyboard shortcuts that are not point edits.
func (a *App) handleKeys() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Panel visibility
	if rl.IsKeyPressed(rl.KeyTab) {
		a.panel.Toggle()
	}

	// Mode toggle
	if rl.IsKeyPressed(rl.KeyM) {
		a.state.SetMode(1 - a.state.Settings.Mode)
	}

	// Exponent nudges with [ and ]
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		a.state.SetP(a.state.Settings.P() - 0.25)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		a.state.SetP(a.state.Settings.P() + 0.25)
	}
}
