package wire3d

import (
	"fmt"
	"strings"
)

// Direction is a movement or look direction.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

var directionNames = [...]string{"forward", "backward", "left", "right", "up", "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", d)
}

// RenderMode selects how a frame is produced.
type RenderMode uint8

const (
	// RenderVertex projects shape edges to line segments.
	RenderVertex RenderMode = iota
	// RenderRaycast casts one ray per output cell against shape bounds.
	RenderRaycast
)

func (m RenderMode) String() string {
	switch m {
	case RenderVertex:
		return "vertex"
	case RenderRaycast:
		return "raycast"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(s) {
	case "vertex", "":
		return RenderVertex, nil
	case "raycast", "ray":
		return RenderRaycast, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Marker selects the glyph set segments are drawn with.
type Marker uint8

const (
	MarkerBraille Marker = iota
	MarkerDot
	MarkerHalfBlock
	MarkerBlock
	MarkerBar
)

var markerNames = [...]string{"braille", "dot", "halfblock", "block", "bar"}

func (m Marker) String() string {
	if int(m) < len(markerNames) {
		return markerNames[m]
	}
	return fmt.Sprintf("marker(%d)", m)
}

func ParseMarker(s string) (Marker, error) {
	s = strings.ToLower(s)
	if s == "" {
		return MarkerBraille, nil
	}
	for i, n := range markerNames {
		if n == s {
			return Marker(i), nil
		}
	}
	return 0, fmt.Errorf("unknown marker %q", s)
}

// IntentKind tags an Intent.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentQuit
	IntentMove
	IntentLook
	IntentDrawMode
	IntentRenderMode
	IntentViewport
)

// Intent is a resolved user action. Only the fields matching Kind are meaningful.
type Intent struct {
	Kind IntentKind

	Dir    Direction  // IntentMove, IntentLook
	Marker Marker     // IntentDrawMode
	Mode   RenderMode // IntentRenderMode

	Width, Height int // IntentViewport
}

func Quit() Intent                      { return Intent{Kind: IntentQuit} }
func Move(d Direction) Intent           { return Intent{Kind: IntentMove, Dir: d} }
func Look(d Direction) Intent           { return Intent{Kind: IntentLook, Dir: d} }
func DrawMode(m Marker) Intent          { return Intent{Kind: IntentDrawMode, Marker: m} }
func SetRenderMode(m RenderMode) Intent { return Intent{Kind: IntentRenderMode, Mode: m} }
func Viewport(w, h int) Intent          { return Intent{Kind: IntentViewport, Width: w, Height: h} }

func (in Intent) String() string {
	switch in.Kind {
	case IntentNone:
		return "none"
	case IntentQuit:
		return "quit"
	case IntentMove:
		return "move " + in.Dir.String()
	case IntentLook:
		return "look " + in.Dir.String()
	case IntentDrawMode:
		return "marker " + in.Marker.String()
	case IntentRenderMode:
		return "render " + in.Mode.String()
	case IntentViewport:
		return fmt.Sprintf("viewport %dx%d", in.Width, in.Height)
	default:
		return fmt.Sprintf("intent(%d)", in.Kind)
	}
}

// ApplyCamera applies a Move or Look intent in place and reports whether the camera
// changed. Other kinds are ignored; IntentViewport needs the surface cell shape and
// is resolved by the caller through AspectFor.
func ApplyCamera(c *Camera, in Intent) bool {
	before := *c
	switch in.Kind {
	case IntentMove:
		step := c.MoveSpeed
		switch in.Dir {
		case Forward:
			c.Position = c.Position.Add(c.ForwardMovement().Scale(step))
		case Backward:
			c.Position = c.Position.Sub(c.ForwardMovement().Scale(step))
		case Left:
			c.Position = c.Position.Sub(c.Right().Scale(step))
		case Right:
			c.Position = c.Position.Add(c.Right().Scale(step))
		case Up:
			c.Position.Y += step
		case Down:
			c.Position.Y -= step
		}
	case IntentLook:
		switch in.Dir {
		case Up:
			c.SetPitch(c.Pitch + c.RotateSpeed)
		case Down:
			c.SetPitch(c.Pitch - c.RotateSpeed)
		case Left:
			c.Yaw -= c.RotateSpeed
		case Right:
			c.Yaw += c.RotateSpeed
		}
	}
	return *c != before
}

// TerminalCellAspect is the height/width ratio of a terminal character cell.
const TerminalCellAspect = 2.25

// AspectFor returns the projection aspect ratio for a surface of w×h cells whose
// cells are cellAspect times taller than wide.
func AspectFor(w, h int, cellAspect float64) float64 {
	if w <= 0 || h <= 0 {
		return DefaultAspectRatio
	}
	return float64(h) / float64(w) * cellAspect
}
