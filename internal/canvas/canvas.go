// Package canvas rasterizes normalized 2D segments into a character-cell grid.
//
// Every cell holds a block of sub-cells whose layout depends on the marker: a
// Braille cell is 2×4 dots, a half-block cell 1×2, the remaining markers 1×1.
// The grid renders as text or paints onto a framebuffer.
package canvas

import (
	"iter"
	"math"
	"slices"
	"strings"

	"wirecam/wire3d"
)

// Canvas is a cell grid addressed in normalized device coordinates: (-1,-1) is
// the bottom-left corner, (1,1) the top-right.
type Canvas struct {
	cols, rows int
	marker     wire3d.Marker
	subW, subH int
	dots       []bool
}

func New(cols, rows int, m wire3d.Marker) *Canvas {
	c := &Canvas{marker: m}
	c.subW, c.subH = subcells(m)
	c.Resize(cols, rows)
	return c
}

func subcells(m wire3d.Marker) (w, h int) {
	switch m {
	case wire3d.MarkerBraille:
		return 2, 4
	case wire3d.MarkerHalfBlock:
		return 1, 2
	default:
		return 1, 1
	}
}

// Resize changes the cell dimensions and clears the grid.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 0)
	c.rows = max(rows, 0)
	c.dots = make([]bool, c.cols*c.subW*c.rows*c.subH)
}

// SetMarker switches the marker and clears the grid.
func (c *Canvas) SetMarker(m wire3d.Marker) {
	c.marker = m
	c.subW, c.subH = subcells(m)
	c.Resize(c.cols, c.rows)
}

func (c *Canvas) Marker() wire3d.Marker { return c.marker }

// Size returns the grid size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Resolution returns the grid size in sub-cells.
func (c *Canvas) Resolution() (w, h int) { return c.cols * c.subW, c.rows * c.subH }

func (c *Canvas) Clear() { clear(c.dots) }

// Set lights one sub-cell. Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	w, h := c.Resolution()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.dots[y*w+x] = true
}

func (c *Canvas) Get(x, y int) bool {
	w, h := c.Resolution()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	return c.dots[y*w+x]
}

// Lit reports the number of lit sub-cells.
func (c *Canvas) Lit() int {
	n := 0
	for _, d := range c.dots {
		if d {
			n++
		}
	}
	return n
}

// ToGrid maps a normalized point to the nearest sub-cell. Row 0 is the top.
func (c *Canvas) ToGrid(p wire3d.Vec2) (x, y int) {
	w, h := c.Resolution()
	x = int(math.Round((p.X + 1) / 2 * float64(w-1)))
	y = int(math.Round((1 - p.Y) / 2 * float64(h-1)))
	return x, y
}

// SubcellCenter is the inverse of ToGrid for the center of sub-cell (x, y).
func (c *Canvas) SubcellCenter(x, y int) wire3d.Vec2 {
	w, h := c.Resolution()
	var u, v float64
	if w > 1 {
		u = float64(x)/float64(w-1)*2 - 1
	}
	if h > 1 {
		v = 1 - float64(y)/float64(h-1)*2
	}
	return wire3d.Vec2{X: u, Y: v}
}

// Line draws a segment between two normalized points.
func (c *Canvas) Line(a, b wire3d.Vec2) {
	if c.cols == 0 || c.rows == 0 {
		return
	}
	x0, y0 := c.ToGrid(a)
	x1, y1 := c.ToGrid(b)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawSegments draws every segment of seq and returns how many were drawn.
func (c *Canvas) DrawSegments(seq iter.Seq[wire3d.Segment2]) int {
	n := 0
	for s := range seq {
		c.Line(s.A, s.B)
		n++
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// braille dot bits indexed by [y][x] within a 2×4 cell.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Rune returns the glyph for one cell.
func (c *Canvas) Rune(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return ' '
	}
	x0, y0 := col*c.subW, row*c.subH
	switch c.marker {
	case wire3d.MarkerBraille:
		var bits rune
		for y := 0; y < 4; y++ {
			for x := 0; x < 2; x++ {
				if c.Get(x0+x, y0+y) {
					bits |= brailleBits[y][x]
				}
			}
		}
		if bits == 0 {
			return ' '
		}
		return 0x2800 + bits
	case wire3d.MarkerHalfBlock:
		top, bottom := c.Get(x0, y0), c.Get(x0, y0+1)
		switch {
		case top && bottom:
			return '█'
		case top:
			return '▀'
		case bottom:
			return '▄'
		}
		return ' '
	}
	if !c.Get(x0, y0) {
		return ' '
	}
	switch c.marker {
	case wire3d.MarkerDot:
		return '•'
	case wire3d.MarkerBar:
		return '▄'
	}
	return '█'
}

// String renders the grid as rows of glyphs separated by newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			sb.WriteRune(c.Rune(col, row))
		}
	}
	return sb.String()
}

// Clone returns an independent copy of the grid.
func (c *Canvas) Clone() *Canvas {
	cp := *c
	cp.dots = slices.Clone(c.dots)
	return &cp
}
