// Package desktop is the raylib front-end: window input, the control panel
// and field presentation around an app.State.
package desktop

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/voronoi/app"
	"github.com/pthm-cable/voronoi/config"
	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/interaction"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/renderer"
	"github.com/pthm-cable/voronoi/telemetry"
	"github.com/pthm-cable/voronoi/ui"
	"github.com/pthm-cable/voronoi/viewport"
)

const controlsText = "Tab: panel | M: nearest/farthest | [ ]: p | F11: fullscreen"

// Options configures the desktop front-end.
type Options struct {
	Config    *config.Config
	Seed      int64
	OutputDir string
	LogPerf   bool
}

// App is the desktop explorer. The raylib window must be open before
// NewApp is called.
type App struct {
	cfg    *config.Config
	state  *app.State
	render *renderer.Context
	panel  *ui.Panel
	hud    *ui.HUD
	input  inputState
	events []interaction.Event

	// Telemetry
	perf    *telemetry.PerfCollector
	output  *telemetry.OutputManager
	logPerf bool
	lastLog time.Time

	preferGPU bool
	frame     app.Frame
}

// NewApp builds the explorer state and allocates rendering resources.
// A *renderer.ResourceError is fatal for the caller.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	rng := rand.New(rand.NewSource(opts.Seed))
	vp := viewport.New(rl.GetScreenWidth(), rl.GetScreenHeight())

	rc, err := newRenderContext(cfg)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		rc.Unload()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("writing config snapshot", "error", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	pts := points.LoadDefault(points.ReadData(cfg.Points.DefaultFile), rng, cfg.Points.RandomCount, vp.Extent())

	a := &App{
		cfg:    cfg,
		render: rc,
		panel:  ui.NewPanel(int32(cfg.UI.PanelWidth), cfg.UI.VisibleRows),
		hud:    ui.NewHUD(),
		state: app.NewState(app.Options{
			Settings:  cfg.Derived.Settings,
			Points:    pts,
			Rand:      rng,
			Clipboard: app.WithFallback(app.SystemClipboard{}, raylibClipboard{}),
			Workers:   cfg.Field.Workers,
			Viewport:  vp,
			Perf:      perf,
		}),
		perf:      perf,
		output:    output,
		logPerf:   opts.LogPerf,
		lastLog:   time.Now(),
		preferGPU: cfg.Derived.UseGPU,
	}

	slog.Info("explorer started",
		"seed", opts.Seed,
		"points", len(pts),
		"p", cfg.Derived.Settings.P(),
		"mode", cfg.Derived.Settings.Mode.String(),
		"backend", cfg.Field.Backend,
	)
	return a, nil
}

// newRenderContext allocates rendering resources. A shader that fails to
// load drops the config to the CPU backend instead of aborting startup.
func newRenderContext(cfg *config.Config) (*renderer.Context, error) {
	opts := renderer.Options{
		UseGPU:       cfg.Derived.UseGPU,
		MaxGPUSeeds:  cfg.Field.MaxGPUSeeds,
		MarkerRadius: cfg.Points.MarkerRadius,
	}
	rc, err := renderer.NewContext(opts)
	var resErr *renderer.ResourceError
	if err == nil || !opts.UseGPU || !errors.As(err, &resErr) {
		return rc, err
	}

	slog.Warn("shader backend unavailable, using cpu evaluator", "error", err)
	cfg.FallbackToCPU(err)
	opts.UseGPU = false
	return renderer.NewContext(opts)
}

// Update drains input and advances the explorer state by one frame.
func (a *App) Update() {
	a.perf.StartTick()
	a.perf.StartPhase(telemetry.PhaseInput)

	a.handleKeys()

	vp := viewport.New(rl.GetScreenWidth(), rl.GetScreenHeight())
	captured := a.panel.WantsPointer(rl.GetMousePosition())
	a.events = a.input.poll(a.events[:0])

	cpu := !a.preferGPU || a.render.NeedsCPU(a.state.Store.Len())
	a.state.SetCPU(cpu, a.cfg.Field.Workers)
	a.frame = a.state.Tick(a.events, vp, captured)
}

// Draw presents the current frame. A returned *renderer.ResourceError
// means presentation cannot continue.
func (a *App) Draw() error {
	f := a.frame

	if f.Raster != nil {
		a.perf.StartPhase(telemetry.PhaseUpload)
		if err := a.render.UploadRaster(f.Raster); err != nil {
			return err
		}
	}

	a.perf.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	rl.ClearBackground(field.Background)

	a.render.DrawField(f.Points, f.Settings, f.Viewport, f.Raster != nil)
	a.render.DrawMarkers(f.Points, f.Viewport, f.Dragging, f.HasDrag)

	actions := a.panel.Draw(ui.PanelState{
		Points:   f.Points,
		Settings: f.Settings,
		Viewport: f.Viewport,
		GPU:      f.Raster == nil,
	})

	backend := "gpu"
	if f.Raster != nil {
		backend = "cpu"
	}
	cursor := a.state.Controller.Cursor()
	screenH := int32(f.Viewport.Height)
	a.hud.Draw(ui.HUDData{
		Seeds:   len(f.Points),
		P:       f.Settings.P(),
		Mode:    f.Settings.Mode.String(),
		Backend: backend,
		FPS:     rl.GetFPS(),
		Cursor:  [2]int32{cursor.X(), cursor.Y()},
	}, screenH)
	a.hud.DrawControls(screenH, controlsText)

	rl.EndDrawing()

	// Panel edits apply after presentation so the drawn rows stay
	// consistent with this frame's point slice.
	a.applyActions(actions)

	a.perf.EndTick()
	a.perf.RecordFrame()
	a.maybeLogPerf(f.Number)
	return nil
}

func (a *App) applyActions(actions []ui.Action) {
	s := a.state
	for _, act := range actions {
		switch act.Kind {
		case ui.ActionSetP:
			s.SetP(act.P)
		case ui.ActionSetMode:
			s.SetMode(act.Mode)
		case ui.ActionMovePoint:
			s.Store.MoveTo(act.Index, act.Pos)
		case ui.ActionSetColor:
			s.Store.SetColor(act.Index, act.Color)
		case ui.ActionRandomColor:
			s.Store.SetRandomColor(act.Index)
		case ui.ActionRemovePoint:
			s.RemovePoint(act.Index)
		case ui.ActionRandomizeColors:
			s.Store.RandomizeAllColors()
		case ui.ActionExport:
			// Failures are logged by State
			_ = s.Export()
		case ui.ActionImport:
			_ = s.ImportClipboard()
		case ui.ActionToggleBackend:
			a.togglePreferredBackend()
		}
	}
}

// togglePreferredBackend switches between shader and CPU evaluation. The
// shader is compiled on first use when the config started on the CPU.
func (a *App) togglePreferredBackend() {
	if a.preferGPU {
		a.preferGPU = false
		slog.Info("field backend", "backend", config.BackendCPU)
		return
	}
	if err := a.render.EnableGPU(a.cfg.Field.MaxGPUSeeds); err != nil {
		slog.Error("enabling shader backend", "error", err)
		return
	}
	a.preferGPU = true
	slog.Info("field backend", "backend", config.BackendGPU)
}

func (a *App) maybeLogPerf(frame int64) {
	interval := time.Duration(a.cfg.Telemetry.LogInterval * float64(time.Second))
	if interval <= 0 || time.Since(a.lastLog) < interval {
		return
	}
	a.lastLog = time.Now()

	stats := a.perf.Stats()
	if a.logPerf {
		stats.LogStats()
	}
	if err := a.output.WritePerf(stats, frame); err != nil {
		slog.Error("writing perf", "error", err)
	}
}

// ShouldClose reports whether the window was asked to close.
func (a *App) ShouldClose() bool {
	return a.frame.Close || rl.WindowShouldClose()
}

// Unload saves the final point set to the output directory and frees
// resources.
func (a *App) Unload() {
	if data, err := a.state.Store.Serialize(); err == nil {
		if err := a.output.WritePoints(data); err != nil {
			slog.Error("writing points", "error", err)
		}
	}
	if err := a.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
	a.state.Close()
	a.render.Unload()
}

// raylibClipboard uses the window system clipboard through GLFW. It only
// works while the window is open.
type raylibClipboard struct{}

func (raylibClipboard) ReadAll() (string, error) {
	return rl.GetClipboardText(), nil
}

func (raylibClipboard) WriteAll(text string) error {
	rl.SetClipboardText(text)
	return nil
}
