package canvas

import (
	"bufio"
	"io"
)

// WriteANSI redraws the grid in place on a VT100 terminal, followed by the
// status lines.
func (c *Canvas) WriteANSI(w io.Writer, status ...string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\x1b[H")
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			bw.WriteRune(c.Rune(col, row))
		}
		bw.WriteString("\x1b[K\r\n")
	}
	for _, s := range status {
		bw.WriteString(s)
		bw.WriteString("\x1b[K\r\n")
	}
	bw.WriteString("\x1b[J")
	return bw.Flush()
}
