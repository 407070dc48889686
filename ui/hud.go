package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Seeds   int
	P       float64
	Mode    string
	Backend string
	FPS     int32
	Cursor  [2]int32
}

// HUD renders the status line and control legend.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the status line at the bottom left.
func (h *HUD) Draw(data HUDData, screenHeight int32) {
	text := fmt.Sprintf("Seeds: %d | p=%.2f %s | %s | FPS: %d | (%d, %d)",
		data.Seeds, data.P, data.Mode, data.Backend, data.FPS, data.Cursor[0], data.Cursor[1])
	y := screenHeight - 44
	rl.DrawRectangle(6, y-2, rl.MeasureText(text, 14)+8, 18, rl.Color{R: 0, G: 0, B: 0, A: 140})
	rl.DrawText(text, 10, y, 14, rl.White)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawRectangle(6, screenHeight-24, rl.MeasureText(controls, 14)+8, 18, rl.Color{R: 0, G: 0, B: 0, A: 140})
	rl.DrawText(controls, 10, screenHeight-22, 14, rl.LightGray)
}
