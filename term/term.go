// Package term is a terminal front-end for the explorer. Each character
// cell shows two vertically stacked field pixels using an upper half block
// with the top pixel as foreground and the bottom one as background.
package term

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/voronoi/app"
	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/interaction"
	"github.com/pthm-cable/voronoi/viewport"
)

const upperHalf = '▀'

// Viewer drives an app.State from tcell events and paints its frames.
type Viewer struct {
	screen tcell.Screen
	state  *app.State

	pending []interaction.Event
	buttons tcell.ButtonMask
	mods    interaction.Modifiers
	status  string
}

// NewViewer wraps an initialized screen. state must evaluate on the CPU.
func NewViewer(screen tcell.Screen, state *app.State) *Viewer {
	screen.EnableMouse()
	screen.HideCursor()
	state.SetCPU(true, 0)
	return &Viewer{screen: screen, state: state}
}

// Viewport returns the pixel viewport for the current screen size: one
// column per pixel, two pixels per row, last row kept for the status line.
func (v *Viewer) Viewport() viewport.Viewport {
	w, h := v.screen.Size()
	return viewport.New(w, 2*max(h-1, 0))
}

// Handle buffers one tcell event for the next frame. Key shortcuts that do
// not go through the interaction controller are applied immediately.
func (v *Viewer) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		v.pending = append(v.pending, interaction.Resized(w, 2*max(h-1, 0)))
		v.screen.Sync()
	}
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	if mods := modifiers(ev.Modifiers()); mods != v.mods {
		v.mods = mods
		v.pending = append(v.pending, interaction.ModifiersChanged(mods))
	}

	x, y := ev.Position()
	v.pending = append(v.pending, interaction.Move(float64(x), float64(2*y)))

	// tcell reports held buttons; presses and releases are the edges
	btns := ev.Buttons()
	for _, b := range []struct {
		mask tcell.ButtonMask
		btn  interaction.Button
	}{
		{tcell.ButtonPrimary, interaction.ButtonPrimary},
		{tcell.ButtonSecondary, interaction.ButtonSecondary},
		{tcell.ButtonMiddle, interaction.ButtonMiddle},
	} {
		was, is := v.buttons&b.mask != 0, btns&b.mask != 0
		switch {
		case is && !was:
			v.pending = append(v.pending, interaction.Press(b.btn))
		case was && !is:
			v.pending = append(v.pending, interaction.Release(b.btn))
		}
	}
	v.buttons = btns
}

func (v *Viewer) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.pending = append(v.pending, interaction.CloseRequested())
		return
	case tcell.KeyRune:
	default:
		return
	}

	s := v.state
	switch ev.Rune() {
	case 'q':
		v.pending = append(v.pending, interaction.CloseRequested())
	case 'm':
		if s.Settings.Mode == field.Nearest {
			s.SetMode(field.Farthest)
		} else {
			s.SetMode(field.Nearest)
		}
	case '[':
		s.SetP(s.Settings.P() - 0.25)
	case ']':
		s.SetP(s.Settings.P() + 0.25)
	case 'a':
		// Many terminals keep ctrl-click for themselves
		s.Store.Add(s.Controller.Cursor())
	case 'r':
		s.Store.RandomizeAllColors()
	case 'c':
		v.status = resultText("copied", s.Export())
	case 'v':
		v.status = resultText("pasted", s.ImportClipboard())
	}
}

// Step runs one frame with the buffered events and paints it. It reports
// false once a close was requested.
func (v *Viewer) Step() bool {
	f := v.state.Tick(v.pending, v.Viewport(), false)
	v.pending = v.pending[:0]
	if f.Close {
		return false
	}
	v.draw(f)
	return true
}

func (v *Viewer) draw(f app.Frame) {
	r := f.Raster
	if r != nil {
		for row := 0; 2*row < r.Height; row++ {
			for x := 0; x < r.Width; x++ {
				top := r.At(x, 2*row)
				bottom := r.At(x, 2*row+1)
				style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
				v.screen.SetContent(x, row, upperHalf, nil, style)
			}
		}
	}

	// Seed markers
	for _, p := range f.Points {
		x, y := f.Viewport.LogicalToRaster(int(p.Pos.X()), int(p.Pos.Y()))
		if !f.Viewport.Contains(x, y) {
			continue
		}
		_, bg, _ := v.cellStyle(x, y/2)
		v.screen.SetContent(x, y/2, '●', nil, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(bg))
	}

	v.drawStatus(f)
	v.screen.Show()
}

func (v *Viewer) cellStyle(x, y int) (fg, bg tcell.Color, attr tcell.AttrMask) {
	_, _, style, _ := v.screen.GetContent(x, y)
	return style.Decompose()
}

func (v *Viewer) drawStatus(f app.Frame) {
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	cur := v.state.Controller.Cursor()
	text := fmt.Sprintf(" %d seeds | p=%.2f %s | (%d, %d) | q quit  m mode  [ ] p  a add  c/v copy/paste %s",
		len(f.Points), f.Settings.P(), f.Settings.Mode, cur.X(), cur.Y(), v.status)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(text)
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		v.screen.SetContent(x, h-1, ch, nil, style)
	}
}

// Run polls events on a goroutine and steps at fps until a close request.
func (v *Viewer) Run(fps int) {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			v.Handle(ev)

		case <-ticker.C:
			if !v.Step() {
				return
			}
		}
	}
}

func modifiers(m tcell.ModMask) interaction.Modifiers {
	var out interaction.Modifiers
	if m&tcell.ModShift != 0 {
		out |= interaction.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= interaction.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= interaction.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= interaction.ModSuper
	}
	return out
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func resultText(done string, err error) string {
	if err != nil {
		slog.Debug("clipboard action failed", "error", err)
		return "| " + err.Error()
	}
	return "| " + done
}
