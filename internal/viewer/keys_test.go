package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wirecam/hal"
	"wirecam/wire3d"
)

func TestResolve(t *testing.T) {
	press := func(r rune) hal.KeyEvent { return hal.KeyEvent{Press: true, Rune: r} }
	key := func(c hal.KeyCode) hal.KeyEvent { return hal.KeyEvent{Press: true, Code: c} }

	tests := []struct {
		name string
		ev   hal.KeyEvent
		in   wire3d.Intent
		cmd  command
	}{
		{"Q quits", press('Q'), wire3d.Quit(), cmdNone},
		{"escape quits", key(hal.KeyEscape), wire3d.Quit(), cmdNone},
		{"lower q does nothing", press('q'), wire3d.Intent{}, cmdNone},
		{"w", press('w'), wire3d.Move(wire3d.Forward), cmdNone},
		{"s", press('s'), wire3d.Move(wire3d.Backward), cmdNone},
		{"a", press('a'), wire3d.Move(wire3d.Left), cmdNone},
		{"d", press('d'), wire3d.Move(wire3d.Right), cmdNone},
		{"space", press(' '), wire3d.Move(wire3d.Up), cmdNone},
		{"k", press('k'), wire3d.Move(wire3d.Up), cmdNone},
		{"j", press('j'), wire3d.Move(wire3d.Down), cmdNone},
		{"arrow up", key(hal.KeyUp), wire3d.Look(wire3d.Up), cmdNone},
		{"arrow left", key(hal.KeyLeft), wire3d.Look(wire3d.Left), cmdNone},
		{"f1", key(hal.KeyF1), wire3d.DrawMode(wire3d.MarkerBraille), cmdNone},
		{"f5", key(hal.KeyF5), wire3d.DrawMode(wire3d.MarkerBar), cmdNone},
		{"f8", key(hal.KeyF8), wire3d.SetRenderMode(wire3d.RenderVertex), cmdNone},
		{"f9", key(hal.KeyF9), wire3d.SetRenderMode(wire3d.RenderRaycast), cmdNone},
		{"f6 unmapped", key(hal.KeyF6), wire3d.Intent{}, cmdNone},
		{"r resets", press('r'), wire3d.Intent{}, cmdReset},
		{"tab cycles", key(hal.KeyTab), wire3d.Intent{}, cmdNextShape},
		{"release ignored", hal.KeyEvent{Rune: 'w'}, wire3d.Intent{}, cmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, cmd := resolve(tt.ev)
			assert.Equal(t, tt.in, in)
			assert.Equal(t, tt.cmd, cmd)
		})
	}
}
