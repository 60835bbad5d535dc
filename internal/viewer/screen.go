package viewer

import (
	"image"

	"wirecam/hal"
	"wirecam/internal/canvas"
)

// Framebuffer cell size in pixels. A Braille cell is 2×4 dots, so each dot
// covers 2×2 pixels.
const (
	cellPxW = 4
	cellPxH = 8

	consoleLines = 3
)

// fbScreen lays out the framebuffer: the wireframe view on top with the HUD
// over it, the console strip below.
type fbScreen struct {
	fb      hal.Framebuffer
	view    *canvas.Display
	console *console
}

func newFBScreen(fb hal.Framebuffer) *fbScreen {
	s := &fbScreen{fb: fb}
	s.layout()
	return s
}

// layout recomputes the panels after a framebuffer resize. Console history is
// dropped.
func (s *fbScreen) layout() {
	w, h := s.fb.Width(), s.fb.Height()
	consoleH := min(consoleLines*fontHeight, h/3)
	root := canvas.NewDisplay(s.fb)
	s.view = root.Window(image.Rect(0, 0, w, h-consoleH))
	s.console = nil
	if consoleH >= fontHeight {
		s.console = newConsole(root.Window(image.Rect(0, h-consoleH, w, h)))
	}
}

// grid returns the cell grid that fills the view panel.
func (s *fbScreen) grid() (cols, rows int) {
	w, h := s.view.Size()
	return int(w) / cellPxW, int(h) / cellPxH
}

func (s *fbScreen) cellAspect() float64 { return float64(cellPxH) / float64(cellPxW) }

func (s *fbScreen) draw(grid *canvas.Canvas, status []string) error {
	if err := grid.Paint(s.view, colorFG, colorBG); err != nil {
		return err
	}
	drawHUD(s.view, status)
	if err := s.console.draw(); err != nil {
		return err
	}
	return s.fb.Present()
}
