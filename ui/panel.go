package ui

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/interaction"
	"github.com/pthm-cable/voronoi/metric"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/viewport"
)

var helpLines = []string{
	"Left drag: move nearest point",
	"Ctrl + left click: add a point",
	"Shift + left click: new random color",
	"Right click: remove nearest point",
}

// PanelState is what the panel shows for one frame.
type PanelState struct {
	Points   []points.Point
	Settings field.Settings
	Viewport viewport.Viewport
	GPU      bool // shader evaluation active
}

// Panel is the right-hand control panel: metric settings, clipboard
// buttons and one row per point.
type Panel struct {
	renderer    *Renderer
	width       int32
	visibleRows int
	visible     bool

	scroll   int
	selected int // row whose color picker is open, -1 for none
	holding  bool
	grab     interaction.Grab
	bounds   rl.Rectangle
}

// NewPanel creates a panel of the given width showing visibleRows point rows.
func NewPanel(width int32, visibleRows int) *Panel {
	return &Panel{
		renderer:    NewRenderer(),
		width:       width,
		visibleRows: max(visibleRows, 1),
		visible:     true,
		selected:    -1,
	}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	p.holding = false
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// WantsPointer reports whether the panel owns the pointer at mouse. Bounds
// come from the previous Draw. A press that started inside the panel keeps
// ownership until release, so slider drags that leave the panel do not
// reach the field.
func (p *Panel) WantsPointer(mouse rl.Vector2) bool {
	if !p.visible {
		return false
	}
	return p.holding || rl.CheckCollisionPointRec(mouse, p.bounds)
}

// Draw renders the panel and returns the edits made this frame.
func (p *Panel) Draw(state PanelState) []Action {
	if !p.visible {
		return nil
	}

	th := p.renderer.Theme
	screenW := int32(state.Viewport.Width)
	x := screenW - p.width - th.Padding
	y := th.Padding
	inner := float32(p.width - 2*th.Padding)

	rows := min(len(state.Points), p.visibleRows)
	height := th.LineHeight*int32(len(helpLines)+4) + th.RowHeight*int32(rows+5) + 3*th.Padding
	if p.selectedValid(state.Points) {
		height += 130
	}
	p.bounds = rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(p.width), Height: float32(height)}

	mouse := rl.GetMousePosition()
	hovered := rl.CheckCollisionPointRec(mouse, p.bounds)
	pressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if pressed && hovered {
		p.holding = true
	}
	if !down {
		p.holding = false
	}
	p.grab.Begin(pressed && hovered, down)

	p.renderer.DrawPanel(x, y, p.width, height)

	var actions []Action
	cx := float32(x + th.Padding)
	cy := y + th.Padding

	// Metric settings
	cy = p.renderer.DrawSectionHeader(int32(cx), cy, "Metric")
	p.renderer.DrawLabel(int32(cx), cy+4, "p")
	oldP := float32(state.Settings.P())
	newP := gui.SliderBar(
		rl.Rectangle{X: cx + 20, Y: float32(cy), Width: inner - 70, Height: 20},
		"", "",
		oldP, metric.MinP, metric.MaxP,
	)
	rl.DrawText(fmt.Sprintf("%.2f", state.Settings.P()), int32(cx+inner-42), cy+4, th.FontSize, th.ValueColor)
	if newP != oldP {
		actions = append(actions, Action{Kind: ActionSetP, P: float64(newP)})
	}
	cy += th.RowHeight

	oldMode := int32(state.Settings.Mode)
	newMode := gui.ToggleGroup(
		rl.Rectangle{X: cx, Y: float32(cy), Width: inner/2 - 2, Height: 20},
		"Nearest;Farthest",
		oldMode,
	)
	if newMode != oldMode {
		actions = append(actions, Action{Kind: ActionSetMode, Mode: field.Mode(newMode)})
	}
	cy += th.RowHeight

	// Clipboard and bulk actions
	half := inner/2 - 4
	if gui.Button(rl.Rectangle{X: cx, Y: float32(cy), Width: half, Height: 20}, "Copy points") {
		actions = append(actions, Action{Kind: ActionExport})
	}
	if gui.Button(rl.Rectangle{X: cx + half + 8, Y: float32(cy), Width: half, Height: 20}, "Paste points") {
		actions = append(actions, Action{Kind: ActionImport})
	}
	cy += th.RowHeight
	if gui.Button(rl.Rectangle{X: cx, Y: float32(cy), Width: half, Height: 20}, "Random colors") {
		actions = append(actions, Action{Kind: ActionRandomizeColors})
	}
	backend := "Backend: CPU"
	if state.GPU {
		backend = "Backend: GPU"
	}
	if gui.Button(rl.Rectangle{X: cx + half + 8, Y: float32(cy), Width: half, Height: 20}, backend) {
		actions = append(actions, Action{Kind: ActionToggleBackend})
	}
	cy += th.RowHeight + th.Padding/2

	for _, line := range helpLines {
		p.renderer.DrawLabel(int32(cx), cy, line)
		cy += th.LineHeight
	}
	cy += th.Padding / 2

	// Point rows
	cy = p.renderer.DrawSectionHeader(int32(cx), cy, fmt.Sprintf("Points (%d)", len(state.Points)))
	if hovered {
		p.scroll -= int(rl.GetMouseWheelMove())
	}
	p.scroll = max(0, min(p.scroll, len(state.Points)-p.visibleRows))

	extent := float32(state.Viewport.Extent())
	sliderW := (inner - 70) / 2
	for i := p.scroll; i < len(state.Points) && i < p.scroll+p.visibleRows; i++ {
		pt := state.Points[i]
		r, g, b := pt.Color.RGB255()
		swatch := rl.Rectangle{X: cx, Y: float32(cy + 2), Width: 16, Height: 16}
		p.renderer.DrawColorSwatch(int32(swatch.X), int32(swatch.Y), 16, rl.Color{R: r, G: g, B: b, A: 255}, i == p.selected)
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(mouse, swatch) {
			if p.selected == i {
				p.selected = -1
			} else {
				p.selected = i
			}
		}
		p.renderer.DrawLabel(int32(cx+22), cy+4, fmt.Sprintf("#%d", i+1))

		xCtl := interaction.Control{Kind: interaction.ControlPointX, Index: i}
		yCtl := interaction.Control{Kind: interaction.ControlPointY, Index: i}
		xRect := rl.Rectangle{X: cx + 48, Y: float32(cy), Width: sliderW, Height: 20}
		yRect := rl.Rectangle{X: cx + 52 + sliderW, Y: float32(cy), Width: sliderW, Height: 20}
		p.grab.Claim(xCtl, rl.CheckCollisionPointRec(mouse, xRect))
		p.grab.Claim(yCtl, rl.CheckCollisionPointRec(mouse, yRect))

		nx := gui.SliderBar(xRect, "", "", float32(pt.Pos.X()), -extent, extent)
		ny := gui.SliderBar(yRect, "", "", float32(pt.Pos.Y()), -extent, extent)
		// raygui clamps out-of-range values on every call; only the slider
		// that owns the press may move the point, and only along its axis.
		switch {
		case p.grab.Owns(xCtl) && int32(nx) != pt.Pos.X():
			actions = append(actions, Action{Kind: ActionMovePoint, Index: i, Pos: points.Pos(int32(nx), pt.Pos.Y())})
		case p.grab.Owns(yCtl) && int32(ny) != pt.Pos.Y():
			actions = append(actions, Action{Kind: ActionMovePoint, Index: i, Pos: points.Pos(pt.Pos.X(), int32(ny))})
		}

		if gui.Button(rl.Rectangle{X: cx + inner - 14, Y: float32(cy), Width: 14, Height: 20}, "x") {
			actions = append(actions, Action{Kind: ActionRemovePoint, Index: i})
			p.grab.Forget(i)
			if p.selected == i {
				p.selected = -1
			}
		}
		cy += th.RowHeight
	}

	// Color editor for the selected point
	if p.selectedValid(state.Points) {
		pt := state.Points[p.selected]
		cy += th.Padding / 2
		p.renderer.DrawLabel(int32(cx), cy, fmt.Sprintf("Color #%d", p.selected+1))
		r, g, b := pt.Color.RGB255()
		old := rl.Color{R: r, G: g, B: b, A: 255}
		pickerRect := rl.Rectangle{X: cx, Y: float32(cy + th.LineHeight), Width: 96, Height: 96}
		// The hue bar sits to the right of the square
		hit := pickerRect
		hit.Width += 32
		colorCtl := interaction.Control{Kind: interaction.ControlColor, Index: p.selected}
		p.grab.Claim(colorCtl, rl.CheckCollisionPointRec(mouse, hit))
		picked := gui.ColorPicker(pickerRect, "", old)
		// The picker round-trips through HSV, so its output drifts unless
		// the user is actually dragging it.
		if p.grab.Owns(colorCtl) && picked != old {
			actions = append(actions, Action{Kind: ActionSetColor, Index: p.selected, Color: fromRGBA(picked)})
		}
		if gui.Button(rl.Rectangle{X: cx + 130, Y: float32(cy + th.LineHeight), Width: 80, Height: 20}, "Random") {
			actions = append(actions, Action{Kind: ActionRandomColor, Index: p.selected})
		}
		p.renderer.DrawLabelValue(int32(cx+130), cy+th.LineHeight+28, "RGB", fmt.Sprintf("%d %d %d", r, g, b))
	}

	return actions
}

func (p *Panel) selectedValid(pts []points.Point) bool {
	return p.selected >= 0 && p.selected < len(pts)
}

func fromRGBA(c color.RGBA) points.Color {
	return points.Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
