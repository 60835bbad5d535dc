package canvas

import (
	"bytes"
	"image/color"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirecam/hal"
	"wirecam/wire3d"
)

func TestResolutionPerMarker(t *testing.T) {
	tests := []struct {
		m    wire3d.Marker
		w, h int
	}{
		{wire3d.MarkerBraille, 20, 40},
		{wire3d.MarkerHalfBlock, 10, 20},
		{wire3d.MarkerDot, 10, 10},
		{wire3d.MarkerBlock, 10, 10},
		{wire3d.MarkerBar, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			c := New(10, 10, tt.m)
			w, h := c.Resolution()
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestToGridCorners(t *testing.T) {
	c := New(10, 5, wire3d.MarkerBlock)
	x, y := c.ToGrid(wire3d.V2(-1, 1))
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})
	x, y = c.ToGrid(wire3d.V2(1, -1))
	assert.Equal(t, [2]int{9, 4}, [2]int{x, y})

	p := c.SubcellCenter(9, 4)
	assert.InDelta(t, 1, p.X, 1e-12)
	assert.InDelta(t, -1, p.Y, 1e-12)
}

func TestLineHorizontal(t *testing.T) {
	c := New(5, 3, wire3d.MarkerBlock)
	c.Line(wire3d.V2(-1, 0), wire3d.V2(1, 0))
	assert.Equal(t, "     \n█████\n     ", c.String())
}

func TestLineDiagonalIsSymmetric(t *testing.T) {
	a := New(6, 6, wire3d.MarkerBlock)
	a.Line(wire3d.V2(-1, 1), wire3d.V2(1, -1))
	b := New(6, 6, wire3d.MarkerBlock)
	b.Line(wire3d.V2(1, -1), wire3d.V2(-1, 1))
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, 6, a.Lit())
}

func TestBrailleGlyphs(t *testing.T) {
	c := New(1, 1, wire3d.MarkerBraille)
	assert.Equal(t, ' ', c.Rune(0, 0))
	c.Set(0, 0)
	assert.Equal(t, '⠁', c.Rune(0, 0))
	c.Set(1, 3)
	assert.Equal(t, rune(0x2881), c.Rune(0, 0))

	for y := 0; y < 4; y++ {
		c.Set(0, y)
		c.Set(1, y)
	}
	assert.Equal(t, '⣿', c.Rune(0, 0))
}

func TestHalfBlockAndSingleGlyphs(t *testing.T) {
	c := New(3, 1, wire3d.MarkerHalfBlock)
	c.Set(0, 0)
	c.Set(1, 1)
	c.Set(2, 0)
	c.Set(2, 1)
	assert.Equal(t, "▀▄█", c.String())

	for _, tt := range []struct {
		m wire3d.Marker
		r rune
	}{{wire3d.MarkerDot, '•'}, {wire3d.MarkerBlock, '█'}, {wire3d.MarkerBar, '▄'}} {
		c := New(1, 1, tt.m)
		c.Set(0, 0)
		assert.Equal(t, tt.r, c.Rune(0, 0), tt.m.String())
	}
}

func TestSetMarkerClears(t *testing.T) {
	c := New(4, 2, wire3d.MarkerBlock)
	c.Set(1, 1)
	c.SetMarker(wire3d.MarkerBraille)
	assert.Equal(t, 0, c.Lit())
	assert.Equal(t, wire3d.MarkerBraille, c.Marker())
	cols, rows := c.Size()
	assert.Equal(t, [2]int{4, 2}, [2]int{cols, rows})
}

func TestOutOfRangeIgnored(t *testing.T) {
	c := New(2, 2, wire3d.MarkerBlock)
	c.Set(-1, 0)
	c.Set(2, 0)
	c.Set(0, 5)
	assert.Equal(t, 0, c.Lit())
	assert.False(t, c.Get(-1, -1))
	assert.Equal(t, ' ', c.Rune(9, 9))

	empty := New(0, 0, wire3d.MarkerBlock)
	empty.Line(wire3d.V2(-1, -1), wire3d.V2(1, 1))
	assert.Equal(t, "", empty.String())
}

func TestDrawSegmentsCountsSegments(t *testing.T) {
	c := New(20, 10, wire3d.MarkerBraille)
	segs := []wire3d.Segment2{
		{A: wire3d.V2(-1, -1), B: wire3d.V2(1, 1)},
		{A: wire3d.V2(-1, 1), B: wire3d.V2(1, -1)},
	}
	n := c.DrawSegments(slices.Values(segs))
	assert.Equal(t, 2, n)
	assert.True(t, c.Get(0, 0))
	assert.True(t, c.Get(39, 0))
}

func TestWriteANSI(t *testing.T) {
	c := New(2, 1, wire3d.MarkerBlock)
	c.Set(0, 0)
	var buf bytes.Buffer
	require.NoError(t, c.WriteANSI(&buf, "pos: (0, 0, 0)"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b[H█ \x1b[K\r\n"))
	assert.Contains(t, out, "pos: (0, 0, 0)\x1b[K\r\n")
	assert.True(t, strings.HasSuffix(out, "\x1b[J"))
}

func pixelAt(fb hal.Framebuffer, x, y int) uint16 {
	off := y*fb.StrideBytes() + x*2
	buf := fb.Buffer()
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

func TestPaintBlockFillsCells(t *testing.T) {
	fb := hal.NewFramebuffer(8, 4)
	c := New(2, 1, wire3d.MarkerBlock)
	c.Set(1, 0)
	require.NoError(t, c.Paint(NewDisplay(fb), white, black))

	assert.Equal(t, uint16(0), pixelAt(fb, 0, 0))
	assert.Equal(t, uint16(0), pixelAt(fb, 3, 3))
	assert.Equal(t, uint16(0xFFFF), pixelAt(fb, 4, 0))
	assert.Equal(t, uint16(0xFFFF), pixelAt(fb, 7, 3))
}

func TestPaintBarUsesLowerHalf(t *testing.T) {
	fb := hal.NewFramebuffer(4, 8)
	c := New(1, 1, wire3d.MarkerBar)
	c.Set(0, 0)
	require.NoError(t, c.Paint(NewDisplay(fb), white, black))
	assert.Equal(t, uint16(0), pixelAt(fb, 0, 3))
	assert.Equal(t, uint16(0xFFFF), pixelAt(fb, 0, 4))
}
