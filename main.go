// Command wirecam is a first-person wireframe viewer. It opens a window by
// default; -headless runs the same loop without one, optionally drawing to the
// terminal (-ansi) or serving frames over WebSocket (-serve).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wirecam/hal"
	"wirecam/internal/buildinfo"
	"wirecam/internal/config"
	"wirecam/internal/logging"
	"wirecam/internal/shapes"
	"wirecam/internal/snapshot"
	"wirecam/internal/stream"
	"wirecam/internal/viewer"
)

type flags struct {
	config   string
	headless bool
	frames   uint64
	hz       int
	keys     string
	stdin    bool
	ansi     bool
	serve    string
	shape    string
	shapes   string
	logLevel string
	snapshot string
	version  bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("wirecam", flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "YAML config file.")
	fs.BoolVar(&f.headless, "headless", false, "Run without a window.")
	fs.Uint64Var(&f.frames, "frames", 0, "Stop after N frames in headless mode (0 = config value).")
	fs.IntVar(&f.hz, "hz", -1, "Frame pacing in headless mode (0 = unpaced, -1 = config value).")
	fs.StringVar(&f.keys, "keys", "", `Scripted key presses, e.g. "ww<left><f9>Q".`)
	fs.BoolVar(&f.stdin, "stdin", false, "Read key presses from stdin.")
	fs.BoolVar(&f.ansi, "ansi", false, "Draw frames as text on stdout (headless).")
	fs.StringVar(&f.serve, "serve", "", "Serve frames over WebSocket on this address, e.g. :8080.")
	fs.StringVar(&f.shape, "shape", "", "Initial shape.")
	fs.StringVar(&f.shapes, "shapes", "", "Comma-separated YAML shape files to load.")
	fs.StringVar(&f.logLevel, "log-level", "", "debug|info|warn|error.")
	fs.StringVar(&f.snapshot, "snapshot", "", "Write the last frame as PNG on exit.")
	fs.BoolVar(&f.version, "version", false, "Print version and exit.")
	return f, fs.Parse(args)
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if f.version {
		fmt.Println("wirecam", buildinfo.String())
		return
	}
	if err := run(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.LoadFile(f.config); err != nil {
			return config.Config{}, err
		}
	}
	if f.frames > 0 {
		cfg.Headless.Frames = f.frames
	}
	if f.hz >= 0 {
		cfg.Headless.Hz = f.hz
	}
	if f.serve != "" {
		cfg.Stream.Addr = f.serve
	}
	if f.shape != "" {
		cfg.View.Shape = f.shape
	}
	if f.shapes != "" {
		cfg.Shapes.Files = append(cfg.Shapes.Files, strings.Split(f.shapes, ",")...)
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, cfg.Validate()
}

func run(f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log.Info("starting", zap.String("version", buildinfo.Short()), zap.Bool("headless", f.headless))

	repo := shapes.Builtin()
	for _, path := range cfg.Shapes.Files {
		names, err := repo.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load shapes: %w", err)
		}
		log.Info("shapes loaded", zap.String("file", path), zap.Strings("shapes", names))
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var kbds []hal.Keyboard
	if f.keys != "" {
		evs, err := hal.ParseKeys(f.keys)
		if err != nil {
			return err
		}
		kbds = append(kbds, hal.NewScriptedKeyboard(evs...))
	}
	if f.stdin {
		kbds = append(kbds, hal.NewStreamKeyboard(gctx, os.Stdin))
	}
	if !f.headless {
		kbds = append(kbds, hal.NewWindowKeyboard())
	}

	opts := viewer.Options{
		Camera:      cfg.NewCamera(),
		Marker:      cfg.Marker(),
		Mode:        cfg.Mode(),
		Shape:       cfg.View.Shape,
		PollTimeout: cfg.View.PollTimeout.Std(),
		Cols:        cfg.View.Cols,
		Rows:        cfg.View.Rows,
		CellAspect:  cfg.View.CellAspect,
		Framebuffer: !f.ansi,
	}
	if f.ansi {
		// Leave room for the status lines below the grid.
		opts.Rows = max(cfg.View.Rows-4, 1)
		opts.ANSI = os.Stdout
		_, _ = io.WriteString(os.Stdout, "\x1b[2J")
	}
	if !f.headless {
		// The window paces frames; waiting for input would stall it.
		opts.PollTimeout = 0
	}

	if cfg.Stream.Addr != "" {
		hub := stream.NewHub(log, cfg.Stream.WriteTimeout.Std())
		kbds = append(kbds, hub)
		opts.Sinks = append(opts.Sinks, hub)
		g.Go(func() error { return stream.Serve(gctx, cfg.Stream.Addr, cfg.Stream.Path, hub) })
	}

	var rec *snapshot.Recorder
	if f.snapshot != "" {
		so := snapshot.DefaultOptions()
		so.Height = 0
		rec = snapshot.NewRecorder(so, log)
		opts.Sinks = append(opts.Sinks, rec)
	}

	var kbd hal.Keyboard
	switch len(kbds) {
	case 0:
		kbd = hal.NewScriptedKeyboard()
	case 1:
		kbd = kbds[0]
	default:
		kbd = hal.MergeKeyboards(gctx, kbds...)
	}

	newApp := func(h hal.HAL) (func() error, error) {
		v, err := viewer.New(h, repo, opts, log)
		if err != nil {
			return nil, err
		}
		return func() error { return v.Step(gctx) }, nil
	}

	// The loop stays on the main goroutine; the window backend requires it.
	var loopErr error
	if f.headless {
		loopErr = hal.RunHeadless(gctx, hal.HeadlessConfig{
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Hz:       cfg.Headless.Hz,
			Frames:   cfg.Headless.Frames,
			Keyboard: kbd,
		}, newApp)
	} else {
		loopErr = hal.RunWindow(hal.WindowConfig{
			Title:    cfg.Window.Title + " (" + buildinfo.Short() + ")",
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Scale:    cfg.Window.Scale,
			TPS:      cfg.Window.TPS,
			Keyboard: kbd,
		}, newApp)
	}
	cancel()
	if errors.Is(loopErr, context.Canceled) {
		loopErr = nil
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && loopErr == nil {
		loopErr = err
	}

	if rec != nil {
		if err := rec.Save(f.snapshot); err != nil && loopErr == nil {
			loopErr = fmt.Errorf("snapshot: %w", err)
		}
	}
	if loopErr != nil {
		log.Error("stopped", zap.Error(loopErr))
	} else {
		log.Info("stopped")
	}
	return loopErr
}
