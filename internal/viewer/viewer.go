// Package viewer runs the interactive frame loop: it resolves key presses into
// intents, applies them to the camera and renders one frame per step.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"go.uber.org/zap"

	"wirecam/hal"
	"wirecam/internal/canvas"
	"wirecam/internal/shapes"
	"wirecam/wire3d"
)

type Options struct {
	Camera wire3d.Camera
	Marker wire3d.Marker
	Mode   wire3d.RenderMode
	Shape  string

	// PollTimeout bounds the wait for input in each step; zero never blocks.
	PollTimeout time.Duration

	// Cols, Rows and CellAspect size the grid when no framebuffer is painted.
	Cols, Rows int
	CellAspect float64

	// Framebuffer paints each frame onto the HAL framebuffer with the HUD and
	// console.
	Framebuffer bool
	// ANSI, when set, receives each frame as terminal text.
	ANSI io.Writer

	Sinks []Sink
}

// Frame is one rendered frame. Segments is set in vertex mode only. Sinks must
// not keep Grid past the call.
type Frame struct {
	Seq      uint64
	Camera   wire3d.Camera
	Marker   wire3d.Marker
	Mode     wire3d.RenderMode
	Shape    string
	Segments []wire3d.Segment2
	Grid     *canvas.Canvas
}

// Sink receives every rendered frame on the loop goroutine.
type Sink interface {
	Frame(f *Frame) error
}

type SinkFunc func(f *Frame) error

func (fn SinkFunc) Frame(f *Frame) error { return fn(f) }

type Viewer struct {
	log *zap.Logger

	cam  wire3d.Camera
	home wire3d.Camera
	mode wire3d.RenderMode

	repo  *shapes.Repository
	shape wire3d.Shape

	grid       *canvas.Canvas
	cellAspect float64
	screen     *fbScreen
	ansi       io.Writer
	sinks      []Sink

	keys        <-chan hal.KeyEvent
	resizes     <-chan hal.Size
	pollTimeout time.Duration

	seq  uint64
	quit bool
}

func New(h hal.HAL, repo *shapes.Repository, opts Options, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	shape, err := repo.Get(opts.Shape)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		log:         log.Named("viewer"),
		cam:         opts.Camera,
		home:        opts.Camera,
		mode:        opts.Mode,
		repo:        repo,
		shape:       shape,
		cellAspect:  opts.CellAspect,
		ansi:        opts.ANSI,
		sinks:       slices.Clone(opts.Sinks),
		keys:        h.Input().Keyboard().Events(),
		resizes:     h.Display().Resizes(),
		pollTimeout: opts.PollTimeout,
	}
	if v.cellAspect <= 0 {
		v.cellAspect = wire3d.TerminalCellAspect
	}

	cols, rows := opts.Cols, opts.Rows
	if opts.Framebuffer {
		v.screen = newFBScreen(h.Display().Framebuffer())
		cols, rows = v.screen.grid()
		v.cellAspect = v.screen.cellAspect()
	}
	v.grid = canvas.New(cols, rows, opts.Marker)
	v.cam.AspectRatio = wire3d.AspectFor(cols, rows, v.cellAspect)

	v.log.Info("viewer ready",
		zap.String("shape", shape.Name),
		zap.Stringer("marker", opts.Marker),
		zap.Stringer("mode", v.mode),
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Float64("aspect", v.cam.AspectRatio),
	)
	v.console("shape %s", shape.Name)
	return v, nil
}

func (v *Viewer) Camera() wire3d.Camera   { return v.cam }
func (v *Viewer) Marker() wire3d.Marker   { return v.grid.Marker() }
func (v *Viewer) Mode() wire3d.RenderMode { return v.mode }
func (v *Viewer) ShapeName() string       { return v.shape.Name }
func (v *Viewer) Grid() *canvas.Canvas    { return v.grid }
func (v *Viewer) Quitting() bool          { return v.quit }
func (v *Viewer) Frames() uint64          { return v.seq }

// Step polls for input, applies at most one intent, renders a frame, and
// returns hal.ErrStop once a quit intent has been applied.
func (v *Viewer) Step(ctx context.Context) error {
	in, cmd, err := v.poll(ctx)
	if err != nil {
		return err
	}
	v.run(cmd)
	v.Apply(in)

	if err := v.Render(); err != nil {
		return err
	}
	if v.quit {
		return hal.ErrStop
	}
	return nil
}

// poll waits up to the poll timeout for one key press or resize.
func (v *Viewer) poll(ctx context.Context) (wire3d.Intent, command, error) {
	var timeout <-chan time.Time
	if v.pollTimeout > 0 {
		t := time.NewTimer(v.pollTimeout)
		defer t.Stop()
		timeout = t.C
	}

	for {
		if timeout == nil {
			select {
			case <-ctx.Done():
				return wire3d.Intent{}, cmdNone, ctx.Err()
			case s := <-v.resizes:
				return wire3d.Viewport(s.W, s.H), cmdNone, nil
			case ev, ok := <-v.keys:
				if !ok {
					v.keys = nil
					continue
				}
				in, cmd := resolve(ev)
				return in, cmd, nil
			default:
				return wire3d.Intent{}, cmdNone, nil
			}
		}

		select {
		case <-ctx.Done():
			return wire3d.Intent{}, cmdNone, ctx.Err()
		case <-timeout:
			return wire3d.Intent{}, cmdNone, nil
		case s := <-v.resizes:
			return wire3d.Viewport(s.W, s.H), cmdNone, nil
		case ev, ok := <-v.keys:
			if !ok {
				// A closed keyboard blocks forever from here on.
				v.keys = nil
				continue
			}
			in, cmd := resolve(ev)
			return in, cmd, nil
		}
	}
}

// Apply applies one intent to the viewer state.
func (v *Viewer) Apply(in wire3d.Intent) {
	if in.Kind != wire3d.IntentNone {
		v.log.Debug("intent", zap.Stringer("intent", in))
	}
	switch in.Kind {
	case wire3d.IntentQuit:
		v.quit = true
	case wire3d.IntentMove, wire3d.IntentLook:
		wire3d.ApplyCamera(&v.cam, in)
	case wire3d.IntentDrawMode:
		if in.Marker == v.grid.Marker() {
			return
		}
		v.grid.SetMarker(in.Marker)
		v.log.Info("marker changed", zap.Stringer("marker", in.Marker))
		v.console("marker %s", in.Marker)
	case wire3d.IntentRenderMode:
		if in.Mode == v.mode {
			return
		}
		v.mode = in.Mode
		v.log.Info("render mode changed", zap.Stringer("mode", in.Mode))
		v.console("mode %s", in.Mode)
	case wire3d.IntentViewport:
		v.resize(in.Width, in.Height)
	}
}

// resize takes the new surface size: pixels when painting the framebuffer,
// cells otherwise.
func (v *Viewer) resize(w, h int) {
	cols, rows := w, h
	if v.screen != nil {
		v.screen.layout()
		cols, rows = v.screen.grid()
	}
	v.grid.Resize(cols, rows)
	v.cam.AspectRatio = wire3d.AspectFor(cols, rows, v.cellAspect)
	v.log.Info("viewport changed",
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Float64("aspect", v.cam.AspectRatio),
	)
}

func (v *Viewer) run(cmd command) {
	switch cmd {
	case cmdReset:
		aspect := v.cam.AspectRatio
		v.cam = v.home
		v.cam.AspectRatio = aspect
		v.log.Info("camera reset")
		v.console("reset")
	case cmdNextShape:
		if err := v.SelectShape(v.repo.Next(v.shape.Name)); err != nil {
			v.log.Error("select shape", zap.Error(err))
		}
	}
}

// SelectShape makes the named shape the one on screen.
func (v *Viewer) SelectShape(name string) error {
	s, err := v.repo.Get(name)
	if err != nil {
		return err
	}
	v.shape = s
	v.log.Info("shape selected", zap.String("shape", name))
	v.console("shape %s", name)
	return nil
}

func (v *Viewer) console(format string, args ...any) {
	if v.screen != nil {
		v.screen.console.Printf(format, args...)
	}
}

// Render draws the current state and hands the frame to every output.
func (v *Viewer) Render() error {
	v.seq++
	v.grid.Clear()

	f := &Frame{
		Seq:    v.seq,
		Camera: v.cam,
		Marker: v.grid.Marker(),
		Mode:   v.mode,
		Shape:  v.shape.Name,
		Grid:   v.grid,
	}
	switch v.mode {
	case wire3d.RenderRaycast:
		v.raycast()
	default:
		f.Segments = slices.Collect(wire3d.Segments(v.cam, v.shape))
		for _, s := range f.Segments {
			v.grid.Line(s.A, s.B)
		}
	}

	status := statusLines(v.cam, f.Marker, v.mode, v.shape.Name)
	var errs []error
	if v.screen != nil {
		if err := v.screen.draw(v.grid, status); err != nil {
			errs = append(errs, fmt.Errorf("framebuffer: %w", err))
		}
	}
	if v.ansi != nil {
		if err := v.grid.WriteANSI(v.ansi, status...); err != nil {
			errs = append(errs, fmt.Errorf("ansi: %w", err))
		}
	}
	for _, s := range v.sinks {
		if err := s.Frame(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
