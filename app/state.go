// Package app owns the per-frame explorer state shared by the desktop
// and terminal front-ends.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/voronoi/field"
	"github.com/pthm-cable/voronoi/interaction"
	"github.com/pthm-cable/voronoi/points"
	"github.com/pthm-cable/voronoi/telemetry"
	"github.com/pthm-cable/voronoi/viewport"
)

// Options configures a State.
type Options struct {
	Settings  field.Settings
	Points    []points.Point
	Rand      *rand.Rand
	Clipboard Clipboard                // nil means SystemClipboard
	CPU       bool                     // evaluate the field on the CPU in Tick
	Workers   int                      // CPU evaluator workers, 0 = GOMAXPROCS
	Viewport  viewport.Viewport        // initial viewport for cursor mapping
	Perf      *telemetry.PerfCollector // optional
}

// Frame is the result of one Tick, handed to the presentation layer.
type Frame struct {
	Number   int64
	Viewport viewport.Viewport
	Points   []points.Point // borrowed until the next Tick
	Settings field.Settings
	Raster   *field.Raster // nil unless CPU evaluation is active
	Dragging int
	HasDrag  bool
	Changed  bool
	Close    bool
}

// State is the explorer's mutable state, passed explicitly through the
// frame loop.
type State struct {
	Store      *points.Store
	Settings   field.Settings
	Controller *interaction.Controller

	clipboard Clipboard
	evaluator *field.Evaluator
	cpu       bool
	perf      *telemetry.PerfCollector
	frame     int64
}

// NewState builds the state from opts.
func NewState(opts Options) *State {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	cb := opts.Clipboard
	if cb == nil {
		cb = SystemClipboard{}
	}

	s := &State{
		Store:      points.NewStore(rng),
		Settings:   opts.Settings,
		Controller: interaction.New(opts.Viewport),
		clipboard:  cb,
		perf:       opts.Perf,
	}
	s.Store.Replace(opts.Points)
	s.SetCPU(opts.CPU, opts.Workers)
	return s
}

// SetCPU switches CPU field evaluation on or off.
func (s *State) SetCPU(on bool, workers int) {
	s.cpu = on
	if on && s.evaluator == nil {
		s.evaluator = field.NewEvaluator(workers)
	}
}

// CPU reports whether Tick evaluates the field.
func (s *State) CPU() bool {
	return s.cpu
}

// Tick runs one frame: drain events into the store, then evaluate the field
// for vp when CPU evaluation is active. captured gates pointer actions for
// this frame.
func (s *State) Tick(events []interaction.Event, vp viewport.Viewport, captured bool) Frame {
	s.phase(telemetry.PhaseInput)
	res := s.Controller.Apply(s.Store, events, captured)
	s.Controller.EndFrame(vp)

	s.frame++
	f := Frame{
		Number:   s.frame,
		Viewport: vp,
		Points:   s.Store.Points(),
		Settings: s.Settings,
		Changed:  res.Changed,
		Close:    res.Close,
	}
	f.Dragging, f.HasDrag = s.Controller.Dragging()

	if s.cpu {
		s.phase(telemetry.PhaseEvaluate)
		f.Raster = s.evaluator.Evaluate(f.Points, s.Settings, vp.Width, vp.Height)
	}
	if s.perf != nil {
		s.perf.SetSeeds(len(f.Points))
	}
	return f
}

func (s *State) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

// SetP sets the metric exponent, clamping into range.
func (s *State) SetP(p float64) {
	if s.Settings.SetP(p) {
		slog.Debug("metric exponent clamped", "requested", p, "p", s.Settings.P())
	}
}

// SetMode sets the selection mode.
func (s *State) SetMode(m field.Mode) {
	s.Settings.Mode = m
}

// RemovePoint deletes a point from the panel, ending any drag since indices
// shift.
func (s *State) RemovePoint(i int) {
	s.Controller.CancelDrag()
	s.Store.Remove(i)
}

// Export copies the serialized point list to the clipboard.
// A missing clipboard provider is logged and returned.
func (s *State) Export() error {
	data, err := s.Store.Serialize()
	if err != nil {
		return fmt.Errorf("exporting points: %w", err)
	}
	if err := s.clipboard.WriteAll(string(data)); err != nil {
		logClipboardError("export", err)
		return err
	}
	slog.Info("points exported", "count", s.Store.Len())
	return nil
}

// ImportClipboard replaces the point set with the clipboard contents.
// On any failure the store is left untouched and the error is logged and
// returned; parse failures are *points.DeserializeError.
func (s *State) ImportClipboard() error {
	text, err := s.clipboard.ReadAll()
	if err != nil {
		logClipboardError("import", err)
		return err
	}
	if err := s.Store.Import([]byte(text)); err != nil {
		slog.Error("importing points", "error", err)
		return err
	}
	s.Controller.CancelDrag()
	slog.Info("points imported", "count", s.Store.Len())
	return nil
}

// Close releases the evaluator's workers.
func (s *State) Close() {
	if s.evaluator != nil {
		s.evaluator.Close()
	}
}

func logClipboardError(op string, err error) {
	if errors.Is(err, ErrClipboardUnavailable) {
		slog.Warn("no clipboard provider", "op", op)
		return
	}
	slog.Error("clipboard", "op", op, "error", err)
}
