// Package snapshot rasterizes frames to anti-aliased images and writes them as
// PNG.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"wirecam/internal/canvas"
	"wirecam/wire3d"
)

type Options struct {
	Width, Height int
	// LineWidth is the stroke width in pixels.
	LineWidth float64
	FG, BG    color.RGBA
}

func DefaultOptions() Options {
	return Options{
		Width:     640,
		Height:    360,
		LineWidth: 1.5,
		FG:        color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
		BG:        color.RGBA{R: 0x00, G: 0x22, B: 0x66, A: 0xFF},
	}
}

func (o Options) newImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.BG), image.Point{}, draw.Src)
	return img
}

// toPixel maps normalized device coordinates onto the image, y pointing down.
func (o Options) toPixel(p wire3d.Vec2) (float32, float32) {
	x := (p.X + 1) / 2 * float64(o.Width)
	y := (1 - p.Y) / 2 * float64(o.Height)
	return float32(x), float32(y)
}

// Segments strokes each segment as a quad of the configured line width.
func Segments(segs []wire3d.Segment2, o Options) *image.RGBA {
	img := o.newImage()
	src := image.NewUniform(o.FG)
	r := vector.NewRasterizer(o.Width, o.Height)
	half := float32(math.Max(o.LineWidth, 0.5) / 2)

	for _, s := range segs {
		ax, ay := o.toPixel(s.A)
		bx, by := o.toPixel(s.B)

		// Unit direction; a zero-length segment becomes a square dot.
		dx, dy := bx-ax, by-ay
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			dx, dy = 1, 0
		} else {
			dx, dy = dx/l, dy/l
		}
		nx, ny := -dy*half, dx*half
		ax, ay = ax-dx*half, ay-dy*half
		bx, by = bx+dx*half, by+dy*half

		// Overlapping paths with opposite winding cancel in one pass, so each
		// segment is composited on its own.
		r.Reset(o.Width, o.Height)
		r.MoveTo(ax+nx, ay+ny)
		r.LineTo(bx+nx, by+ny)
		r.LineTo(bx-nx, by-ny)
		r.LineTo(ax-nx, ay-ny)
		r.ClosePath()
		r.Draw(img, img.Bounds(), src, image.Point{})
	}
	return img
}

// Grid fills the area of every lit sub-cell of g.
func Grid(g *canvas.Canvas, o Options) *image.RGBA {
	img := o.newImage()
	gw, gh := g.Resolution()
	if gw == 0 || gh == 0 {
		return img
	}
	src := image.NewUniform(o.FG)
	sx := float32(o.Width) / float32(gw)
	sy := float32(o.Height) / float32(gh)
	r := vector.NewRasterizer(o.Width, o.Height)
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			if !g.Get(x, y) {
				continue
			}
			x0, y0 := float32(x)*sx, float32(y)*sy
			r.MoveTo(x0, y0)
			r.LineTo(x0+sx, y0)
			r.LineTo(x0+sx, y0+sy)
			r.LineTo(x0, y0+sy)
			r.ClosePath()
		}
	}
	r.Draw(img, img.Bounds(), src, image.Point{})
	return img
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func WriteFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
