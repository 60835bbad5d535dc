package canvas

import (
	"image/color"

	"wirecam/wire3d"
)

// Filler is the subset of a display needed to paint the grid.
type Filler interface {
	Size() (x, y int16)
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Paint draws the grid scaled to fill d: each cell becomes a block of pixels and
// each lit sub-cell a rectangle inside it shaped like the marker glyph.
func (c *Canvas) Paint(d Filler, fg, bg color.RGBA) error {
	w, h := d.Size()
	if err := d.FillRectangle(0, 0, w, h, bg); err != nil {
		return err
	}
	if c.cols == 0 || c.rows == 0 {
		return nil
	}

	cellW := int(w) / c.cols
	cellH := int(h) / c.rows
	if cellW == 0 || cellH == 0 {
		return nil
	}
	subW := max(cellW/c.subW, 1)
	subH := max(cellH/c.subH, 1)

	gw, gh := c.Resolution()
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			if !c.Get(x, y) {
				continue
			}
			col, row := x/c.subW, y/c.subH
			px := col*cellW + (x%c.subW)*subW
			py := row*cellH + (y%c.subH)*subH
			rx, ry, rw, rh := glyphRect(c.marker, px, py, subW, subH)
			if err := d.FillRectangle(int16(rx), int16(ry), int16(rw), int16(rh), fg); err != nil {
				return err
			}
		}
	}
	return nil
}

// glyphRect shrinks a sub-cell rectangle to the marker's glyph shape.
func glyphRect(m wire3d.Marker, x, y, w, h int) (int, int, int, int) {
	switch m {
	case wire3d.MarkerDot:
		dw, dh := max(w/2, 1), max(h/4, 1)
		return x + (w-dw)/2, y + (h-dh)/2, dw, dh
	case wire3d.MarkerBar:
		return x, y + h/2, w, h - h/2
	}
	return x, y, w, h
}
