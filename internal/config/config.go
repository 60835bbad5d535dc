// Package config holds the viewer configuration: defaults, YAML loading and
// validation.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"wirecam/wire3d"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Camera   Camera   `yaml:"camera"`
	View     View     `yaml:"view"`
	Window   Window   `yaml:"window"`
	Headless Headless `yaml:"headless"`
	Stream   Stream   `yaml:"stream"`
	Log      Log      `yaml:"log"`
	Shapes   Shapes   `yaml:"shapes"`
}

type Camera struct {
	Position    [3]float64 `yaml:"position"`
	Yaw         float64    `yaml:"yaw"`
	Pitch       float64    `yaml:"pitch"`
	FOV         float64    `yaml:"fov"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	MoveSpeed   float64    `yaml:"move_speed"`
	RotateSpeed float64    `yaml:"rotate_speed"`
}

type View struct {
	Marker string `yaml:"marker"`
	Mode   string `yaml:"mode"`
	Shape  string `yaml:"shape"`
	// PollTimeout bounds the wait for input in each frame.
	PollTimeout Duration `yaml:"poll_timeout"`
	// Cols and Rows size the character grid of text output.
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
	// CellAspect is the height/width ratio of one terminal cell.
	CellAspect float64 `yaml:"cell_aspect"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
	TPS    int    `yaml:"tps"`
}

type Headless struct {
	Hz     int    `yaml:"hz"`
	Frames uint64 `yaml:"frames"`
}

type Stream struct {
	Addr         string   `yaml:"addr"`
	Path         string   `yaml:"path"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

type Log struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type Shapes struct {
	Files []string `yaml:"files"`
}

func Default() Config {
	return Config{
		Camera: Camera{
			Position:    [3]float64{0, 0, -1},
			FOV:         wire3d.DefaultFOV,
			Near:        wire3d.DefaultNear,
			Far:         wire3d.DefaultFar,
			MoveSpeed:   wire3d.DefaultMoveSpeed,
			RotateSpeed: wire3d.DefaultRotateSpeed,
		},
		View: View{
			Marker:      wire3d.MarkerBraille.String(),
			Mode:        wire3d.RenderVertex.String(),
			Shape:       "cube",
			PollTimeout: Duration(500 * time.Millisecond),
			Cols:        80,
			Rows:        24,
			CellAspect:  wire3d.TerminalCellAspect,
		},
		Window: Window{
			Title:  "wirecam",
			Width:  320,
			Height: 200,
			Scale:  3,
			TPS:    30,
		},
		Headless: Headless{},
		Stream: Stream{
			Path:         "/ws",
			WriteTimeout: Duration(2 * time.Second),
		},
		Log: Log{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load decodes YAML over the defaults and validates the result. Unknown keys
// are rejected; an empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Load(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem at once, wrapped in ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	cam := c.Camera
	check(cam.FOV > 0 && cam.FOV < 180, "camera.fov %v: want (0, 180)", cam.FOV)
	check(cam.Near > 0, "camera.near %v: want > 0", cam.Near)
	check(cam.Far > cam.Near, "camera.far %v: want > near %v", cam.Far, cam.Near)
	check(cam.MoveSpeed > 0, "camera.move_speed %v: want > 0", cam.MoveSpeed)
	check(cam.RotateSpeed > 0, "camera.rotate_speed %v: want > 0", cam.RotateSpeed)
	check(cam.Pitch >= -wire3d.MaxPitch && cam.Pitch <= wire3d.MaxPitch,
		"camera.pitch %v: want within ±%v", cam.Pitch, wire3d.MaxPitch)

	if _, err := wire3d.ParseMarker(c.View.Marker); err != nil {
		errs = append(errs, fmt.Errorf("view.marker: %w", err))
	}
	if _, err := wire3d.ParseRenderMode(c.View.Mode); err != nil {
		errs = append(errs, fmt.Errorf("view.mode: %w", err))
	}
	check(c.View.PollTimeout >= 0, "view.poll_timeout %v: want >= 0", c.View.PollTimeout)
	check(c.View.Cols > 0 && c.View.Rows > 0, "view grid %dx%d: want positive", c.View.Cols, c.View.Rows)
	check(c.View.CellAspect > 0, "view.cell_aspect %v: want > 0", c.View.CellAspect)

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d: want positive", c.Window.Width, c.Window.Height)
	check(c.Window.Scale > 0, "window.scale %d: want > 0", c.Window.Scale)
	check(c.Window.TPS > 0, "window.tps %d: want > 0", c.Window.TPS)
	check(c.Headless.Hz >= 0, "headless.hz %d: want >= 0", c.Headless.Hz)
	check(c.Stream.Path != "" && c.Stream.Path[0] == '/', "stream.path %q: want absolute", c.Stream.Path)

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	check(c.Log.Encoding == "json" || c.Log.Encoding == "console", "log.encoding %q: want json or console", c.Log.Encoding)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// NewCamera builds the initial camera. The aspect ratio is left at the default
// until the viewer learns its viewport.
func (c Config) NewCamera() wire3d.Camera {
	cam := wire3d.DefaultCamera()
	cam.Position = wire3d.V3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2])
	cam.Yaw = c.Camera.Yaw
	cam.SetPitch(c.Camera.Pitch)
	cam.FOV = c.Camera.FOV
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	cam.MoveSpeed = c.Camera.MoveSpeed
	cam.RotateSpeed = c.Camera.RotateSpeed
	return cam
}

// Marker and Mode assume a validated config.
func (c Config) Marker() wire3d.Marker {
	m, _ := wire3d.ParseMarker(c.View.Marker)
	return m
}

func (c Config) Mode() wire3d.RenderMode {
	m, _ := wire3d.ParseRenderMode(c.View.Mode)
	return m
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalYAML() (any, error) { return d.String(), nil }

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}
