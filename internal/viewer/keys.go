package viewer

import (
	"wirecam/hal"
	"wirecam/wire3d"
)

// command is a viewer action outside the camera intents.
type command uint8

const (
	cmdNone command = iota
	cmdReset
	cmdNextShape
)

var runeIntents = map[rune]wire3d.Intent{
	'Q': wire3d.Quit(),
	'w': wire3d.Move(wire3d.Forward),
	's': wire3d.Move(wire3d.Backward),
	'a': wire3d.Move(wire3d.Left),
	'd': wire3d.Move(wire3d.Right),
	' ': wire3d.Move(wire3d.Up),
	'k': wire3d.Move(wire3d.Up),
	'j': wire3d.Move(wire3d.Down),
}

var codeIntents = map[hal.KeyCode]wire3d.Intent{
	hal.KeyEscape: wire3d.Quit(),
	hal.KeyUp:     wire3d.Look(wire3d.Up),
	hal.KeyDown:   wire3d.Look(wire3d.Down),
	hal.KeyLeft:   wire3d.Look(wire3d.Left),
	hal.KeyRight:  wire3d.Look(wire3d.Right),
	hal.KeyF1:     wire3d.DrawMode(wire3d.MarkerBraille),
	hal.KeyF2:     wire3d.DrawMode(wire3d.MarkerDot),
	hal.KeyF3:     wire3d.DrawMode(wire3d.MarkerHalfBlock),
	hal.KeyF4:     wire3d.DrawMode(wire3d.MarkerBlock),
	hal.KeyF5:     wire3d.DrawMode(wire3d.MarkerBar),
	hal.KeyF8:     wire3d.SetRenderMode(wire3d.RenderVertex),
	hal.KeyF9:     wire3d.SetRenderMode(wire3d.RenderRaycast),
}

// resolve maps one key event to at most one intent or command. Releases and
// unmapped keys resolve to nothing.
func resolve(ev hal.KeyEvent) (wire3d.Intent, command) {
	if !ev.Press {
		return wire3d.Intent{}, cmdNone
	}
	if ev.Rune != 0 {
		switch ev.Rune {
		case 'r':
			return wire3d.Intent{}, cmdReset
		case '\t':
			return wire3d.Intent{}, cmdNextShape
		}
		return runeIntents[ev.Rune], cmdNone
	}
	if ev.Code == hal.KeyTab {
		return wire3d.Intent{}, cmdNextShape
	}
	return codeIntents[ev.Code], cmdNone
}
