package snapshot

import (
	"image"
	"math"
	"slices"

	"go.uber.org/zap"

	"wirecam/internal/canvas"
	"wirecam/internal/viewer"
	"wirecam/wire3d"
)

// Recorder is a viewer sink that keeps the latest frame so it can be saved
// after the loop ends. A zero Options.Height is derived from the frame's
// aspect ratio.
type Recorder struct {
	opts Options
	log  *zap.Logger

	segs   []wire3d.Segment2
	grid   *canvas.Canvas
	mode   wire3d.RenderMode
	aspect float64
	seq    uint64
}

func NewRecorder(opts Options, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{opts: opts, log: log.Named("snapshot")}
}

func (r *Recorder) Frame(f *viewer.Frame) error {
	r.seq = f.Seq
	r.mode = f.Mode
	r.aspect = f.Camera.AspectRatio
	r.segs = slices.Clone(f.Segments)
	r.grid = f.Grid.Clone()
	return nil
}

// Image renders the latest frame, or nil before the first one.
func (r *Recorder) Image() image.Image {
	if r.grid == nil {
		return nil
	}
	o := r.opts
	if o.Height <= 0 {
		// Match the projection so the image is not stretched.
		o.Height = max(1, int(math.Round(float64(o.Width)*r.aspect)))
	}
	return Render(r.mode, r.segs, r.grid, o)
}

// Save writes the latest frame to path. It is a no-op before the first frame.
func (r *Recorder) Save(path string) error {
	img := r.Image()
	if img == nil {
		return nil
	}
	if err := WriteFile(path, img); err != nil {
		return err
	}
	r.log.Info("snapshot written", zap.String("path", path), zap.Uint64("frame", r.seq))
	return nil
}

// Render picks the rasterization that matches the render mode.
func Render(mode wire3d.RenderMode, segs []wire3d.Segment2, grid *canvas.Canvas, o Options) *image.RGBA {
	if mode == wire3d.RenderRaycast {
		return Grid(grid, o)
	}
	return Segments(segs, o)
}
