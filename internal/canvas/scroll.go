package canvas

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"

	"wirecam/hal"
)

// ScrollRegion is an off-screen RGB565 panel with a hardware-style vertical
// scroll offset: screen row y shows memory row (y+scroll) mod height. Display
// copies the visible rows into the target rectangle.
type ScrollRegion struct {
	w, h   int
	mem    []uint16
	scroll int
	dst    *Display
}

func NewScrollRegion(dst *Display) *ScrollRegion {
	w, h := dst.Size()
	return &ScrollRegion{
		w:   int(w),
		h:   int(h),
		mem: make([]uint16, int(w)*int(h)),
		dst: dst,
	}
}

var _ drivers.Displayer = (*ScrollRegion)(nil)

func (s *ScrollRegion) Size() (x, y int16) { return int16(s.w), int16(s.h) }

func (s *ScrollRegion) SetPixel(x, y int16, c color.RGBA) {
	if int(x) < 0 || int(y) < 0 || int(x) >= s.w || int(y) >= s.h {
		return
	}
	s.mem[int(y)*s.w+int(x)] = hal.RGB565(c.R, c.G, c.B)
}

func (s *ScrollRegion) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(image.Rect(0, 0, s.w, s.h))
	p := hal.RGB565(c.R, c.G, c.B)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := s.mem[py*s.w : (py+1)*s.w]
		for px := r.Min.X; px < r.Max.X; px++ {
			row[px] = p
		}
	}
	return nil
}

func (s *ScrollRegion) SetScroll(line int16) {
	if s.h == 0 {
		return
	}
	s.scroll = ((int(line) % s.h) + s.h) % s.h
}

func (s *ScrollRegion) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return hal.ErrNotImplemented
	}
	return nil
}

// Display copies the visible rows to the target; it does not present the
// framebuffer.
func (s *ScrollRegion) Display() error {
	for y := 0; y < s.h; y++ {
		src := s.mem[((y+s.scroll)%s.h)*s.w:]
		for x := 0; x < s.w; x++ {
			r, g, b := hal.RGB888From565(src[x])
			s.dst.SetPixel(int16(x), int16(y), color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
	return nil
}
