package snapshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirecam/internal/canvas"
	"wirecam/internal/viewer"
	"wirecam/wire3d"
)

func smallOptions() Options {
	o := DefaultOptions()
	o.Width, o.Height = 40, 20
	o.LineWidth = 2
	return o
}

func TestSegmentsStrokesLine(t *testing.T) {
	o := smallOptions()
	img := Segments([]wire3d.Segment2{{A: wire3d.V2(-1, 0), B: wire3d.V2(1, 0)}}, o)

	assert.Equal(t, o.FG, img.RGBAAt(20, 10))
	assert.Equal(t, o.FG, img.RGBAAt(20, 9))
	assert.Equal(t, o.BG, img.RGBAAt(20, 2))
	assert.Equal(t, o.BG, img.RGBAAt(0, 0))
}

func TestSegmentsZeroLengthIsDot(t *testing.T) {
	o := smallOptions()
	img := Segments([]wire3d.Segment2{{A: wire3d.V2(0, 0), B: wire3d.V2(0, 0)}}, o)
	assert.Equal(t, o.FG, img.RGBAAt(20, 10))
	assert.Equal(t, o.BG, img.RGBAAt(30, 10))
}

func TestGridFillsLitCells(t *testing.T) {
	o := smallOptions()
	g := canvas.New(2, 1, wire3d.MarkerBlock)
	g.Set(1, 0)
	img := Grid(g, o)

	assert.Equal(t, o.BG, img.RGBAAt(5, 5))
	assert.Equal(t, o.FG, img.RGBAAt(30, 10))
}

func TestRecorderSave(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(smallOptions(), nil)

	path := filepath.Join(dir, "none.png")
	require.NoError(t, r.Save(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	g := canvas.New(4, 2, wire3d.MarkerBraille)
	segs := []wire3d.Segment2{{A: wire3d.V2(-1, -1), B: wire3d.V2(1, 1)}}
	require.NoError(t, r.Frame(&viewer.Frame{Seq: 7, Segments: segs, Grid: g}))

	// The recorder owns copies.
	segs[0].A = wire3d.V2(0, 0)
	g.Set(0, 0)
	assert.Equal(t, wire3d.V2(-1, -1), r.segs[0].A)
	assert.Zero(t, r.grid.Lit())

	path = filepath.Join(dir, "frame.png")
	require.NoError(t, r.Save(path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestRecorderDerivesHeightFromAspect(t *testing.T) {
	o := smallOptions()
	o.Height = 0
	r := NewRecorder(o, nil)

	cam := wire3d.DefaultCamera()
	cam.AspectRatio = 0.25
	require.NoError(t, r.Frame(&viewer.Frame{Camera: cam, Grid: canvas.New(1, 1, wire3d.MarkerBlock)}))
	img := r.Image()
	require.NotNil(t, img)
	assert.Equal(t, 10, img.Bounds().Dy())
}
