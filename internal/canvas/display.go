package canvas

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"

	"wirecam/hal"
)

// Display adapts a hal.Framebuffer to the tinygo drivers.Displayer contract so
// tinyfont and tinyterm can draw on it. Coordinates are relative to the window
// rectangle and clipped to it.
type Display struct {
	fb  hal.Framebuffer
	win image.Rectangle
}

// NewDisplay covers the whole framebuffer.
func NewDisplay(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

// Window restricts the display to r (framebuffer pixels). An empty r covers the
// whole framebuffer.
func (d *Display) Window(r image.Rectangle) *Display {
	return &Display{fb: d.fb, win: r}
}

func (d *Display) bounds() image.Rectangle {
	full := image.Rect(0, 0, d.fb.Width(), d.fb.Height())
	if d.win.Empty() {
		return full
	}
	return d.win.Intersect(full)
}

var _ drivers.Displayer = (*Display)(nil)

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	b := d.bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	b := d.bounds()
	ix := b.Min.X + int(x)
	iy := b.Min.Y + int(y)
	if !(image.Point{X: ix, Y: iy}).In(b) {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	b := d.bounds()
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Add(b.Min).Intersect(b)
	if r.Empty() {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := py * stride
		for px := r.Min.X; px < r.Max.X; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// SetScroll is a no-op: the framebuffer has no scroll window.
func (d *Display) SetScroll(line int16) {}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return hal.ErrNotImplemented
	}
	return nil
}
