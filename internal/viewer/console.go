package viewer

import (
	"fmt"

	"tinygo.org/x/tinyterm"

	"wirecam/internal/canvas"
)

// console is a scrolling text strip that echoes viewer state changes.
type console struct {
	region *canvas.ScrollRegion
	term   *tinyterm.Terminal
}

func newConsole(d *canvas.Display) *console {
	region := canvas.NewScrollRegion(d)
	_ = region.FillRectangle(0, 0, 1<<14, 1<<14, colorTerm)
	t := tinyterm.NewTerminal(region)
	t.Configure(&tinyterm.Config{
		Font:       hudFont,
		FontHeight: fontHeight,
		FontOffset: fontOffset,
	})
	return &console{region: region, term: t}
}

func (c *console) Printf(format string, args ...any) {
	if c == nil {
		return
	}
	fmt.Fprintf(c.term, format+"\r\n", args...)
}

func (c *console) draw() error {
	if c == nil {
		return nil
	}
	return c.region.Display()
}
