// Command wfsnap renders a single frame of a shape to a PNG file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"wirecam/hal"
	"wirecam/internal/config"
	"wirecam/internal/logging"
	"wirecam/internal/shapes"
	"wirecam/internal/snapshot"
	"wirecam/internal/viewer"
)

func main() {
	var (
		outPath    = flag.String("out", "", "Output PNG file.")
		cfgPath    = flag.String("config", "", "YAML config file.")
		shape      = flag.String("shape", "", "Shape to render (default from config).")
		shapeFiles = flag.String("shapes", "", "Comma-separated YAML shape files to load.")
		width      = flag.Int("w", 640, "Image width in pixels.")
		height     = flag.Int("h", 360, "Image height in pixels.")
		yaw        = flag.Float64("yaw", 0, "Camera yaw in degrees.")
		pitch      = flag.Float64("pitch", 0, "Camera pitch in degrees.")
		pos        = flag.String("pos", "", "Camera position x,y,z (default from config).")
		mode       = flag.String("mode", "", "vertex|raycast (default from config).")
		lineWidth  = flag.Float64("line-width", 1.5, "Stroke width in pixels.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: wfsnap -out frame.png [-config f] [-shape cube] [-w 640 -h 360] [-yaw deg -pitch deg -pos x,y,z] [-mode vertex|raycast]")
	}
	if *width <= 0 || *height <= 0 {
		fatalf("image size %dx%d: want positive", *width, *height)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.LoadFile(*cfgPath); err != nil {
			fatalf("%v", err)
		}
	}
	if *shape != "" {
		cfg.View.Shape = *shape
	}
	if *mode != "" {
		cfg.View.Mode = *mode
	}
	cfg.Camera.Yaw = *yaw
	cfg.Camera.Pitch = *pitch
	if *pos != "" {
		p, err := parseVec3(*pos)
		if err != nil {
			fatalf("pos: %v", err)
		}
		cfg.Camera.Position = p
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		fatalf("%v", err)
	}
	defer func() { _ = log.Sync() }()

	repo := shapes.Builtin()
	if *shapeFiles != "" {
		for _, path := range strings.Split(*shapeFiles, ",") {
			if _, err := repo.LoadFile(path); err != nil {
				fatalf("%v", err)
			}
		}
	}

	so := snapshot.DefaultOptions()
	so.Width, so.Height = *width, *height
	so.LineWidth = *lineWidth
	rec := snapshot.NewRecorder(so, log)

	// One cell per 4×8 pixels keeps the projection aspect equal to the image's.
	h := hal.New(hal.HostConfig{Width: *width, Height: *height, Keyboard: hal.NewScriptedKeyboard()})
	v, err := viewer.New(h, repo, viewer.Options{
		Camera:     cfg.NewCamera(),
		Marker:     cfg.Marker(),
		Mode:       cfg.Mode(),
		Shape:      cfg.View.Shape,
		Cols:       max(*width/4, 1),
		Rows:       max(*height/8, 1),
		CellAspect: 2,
		Sinks:      []viewer.Sink{rec},
	}, log)
	if err != nil {
		fatalf("%v", err)
	}
	if err := v.Render(); err != nil {
		fatalf("render: %v", err)
	}
	if err := rec.Save(*outPath); err != nil {
		fatalf("%v", err)
	}
}

func parseVec3(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("%q: want x,y,z", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
