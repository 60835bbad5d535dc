package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"

	"wirecam/hal"
)

func TestDisplayWindowClips(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	d := NewDisplay(fb).Window(image.Rect(2, 2, 6, 5))
	w, h := d.Size()
	assert.Equal(t, [2]int16{4, 3}, [2]int16{w, h})

	d.SetPixel(0, 0, white)
	d.SetPixel(4, 0, white)
	assert.Equal(t, uint16(0xFFFF), pixelAt(fb, 2, 2))
	assert.Equal(t, uint16(0), pixelAt(fb, 6, 2))

	require.NoError(t, d.FillRectangle(-5, -5, 100, 100, white))
	assert.Equal(t, uint16(0xFFFF), pixelAt(fb, 5, 4))
	assert.Equal(t, uint16(0), pixelAt(fb, 5, 5))
	assert.Equal(t, uint16(0), pixelAt(fb, 1, 2))
}

func TestDisplayRotation(t *testing.T) {
	d := NewDisplay(hal.NewFramebuffer(1, 1))
	assert.NoError(t, d.SetRotation(drivers.Rotation0))
	assert.ErrorIs(t, d.SetRotation(drivers.Rotation90), hal.ErrNotImplemented)
}

func TestScrollRegionShowsScrolledRows(t *testing.T) {
	fb := hal.NewFramebuffer(2, 4)
	s := NewScrollRegion(NewDisplay(fb))
	red := color.RGBA{R: 0xFF, A: 0xFF}

	s.SetPixel(0, 1, red)
	require.NoError(t, s.Display())
	assert.Equal(t, hal.RGB565(0xFF, 0, 0), pixelAt(fb, 0, 1))

	s.SetScroll(1)
	require.NoError(t, s.Display())
	assert.Equal(t, hal.RGB565(0xFF, 0, 0), pixelAt(fb, 0, 0))
	assert.Equal(t, uint16(0), pixelAt(fb, 0, 1))

	s.SetScroll(-1)
	require.NoError(t, s.Display())
	assert.Equal(t, hal.RGB565(0xFF, 0, 0), pixelAt(fb, 0, 2))
}
