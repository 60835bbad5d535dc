package viewer

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"wirecam/wire3d"
)

var (
	colorBG   = color.RGBA{R: 0x00, G: 0x22, B: 0x66, A: 0xFF}
	colorFG   = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorHUD  = color.RGBA{R: 0xFF, G: 0xD1, B: 0x4A, A: 0xFF}
	colorTerm = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xFF}
)

const (
	fontHeight = 10
	fontOffset = 6
)

var hudFont = &proggy.TinySZ8pt7b

// statusLines is the debug readout shown over the frame.
func statusLines(cam wire3d.Camera, m wire3d.Marker, mode wire3d.RenderMode, shape string) []string {
	p := cam.Position
	return []string{
		fmt.Sprintf("pos: (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z),
		fmt.Sprintf("yaw: %.1f", cam.Yaw),
		fmt.Sprintf("pitch: %.1f", cam.Pitch),
		fmt.Sprintf("%s %s %s", m, mode, shape),
	}
}

// drawHUD writes lines top-left; y is the baseline of each line.
func drawHUD(d drivers.Displayer, lines []string) {
	y := int16(fontHeight)
	for _, s := range lines {
		tinyfont.WriteLine(d, hudFont, 2, y, s, colorHUD)
		y += fontHeight
	}
}
