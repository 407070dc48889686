// Package ui draws the explorer's control panel and HUD with raylib and
// raygui. Panels are immediate mode: each Draw call renders the current
// state and returns the edits the user made as Actions.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/points"
)

// ActionKind identifies a panel edit.
type ActionKind int

const (
	ActionSetP ActionKind = iota // P
	ActionSetMode                // Mode
	ActionMovePoint              // Index, Pos
	ActionSetColor               // Index, Color
	ActionRandomColor            // Index
	ActionRemovePoint            // Index
	ActionRandomizeColors        // all points
	ActionExport                 // copy points to clipboard
	ActionImport                 // replace points from clipboard
	ActionToggleBackend          // switch GPU / CPU evaluation
)

// Action is one edit made in a panel this frame.
type Action struct {
	Kind  ActionKind
	Index int
	P     float64
	Mode  field.Mode
	Pos   points.Position
	Color points.Color
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	SelectedColor  rl.Color
	Padding        int32
	LineHeight     int32
	RowHeight      int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		SelectedColor:  rl.Color{R: 240, G: 240, B: 240, A: 255},
		Padding:        10,
		LineHeight:     18,
		RowHeight:      24,
		LabelWidth:     70,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
