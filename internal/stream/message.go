package stream

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"

	"wirecam/internal/viewer"
	"wirecam/wire3d"
)

const (
	TypeHello = "hello"
	TypeFrame = "frame"
)

// Message is the JSON envelope sent to viewers.
type Message struct {
	Type string `json:"type"`
	// ID is the client id, set on hello.
	ID string `json:"id,omitempty"`

	Seq    uint64  `json:"seq,omitempty"`
	Shape  string  `json:"shape,omitempty"`
	Marker string  `json:"marker,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Camera *Camera `json:"camera,omitempty"`
	// Segments are x1,y1,x2,y2 in normalized device coordinates (vertex mode).
	Segments [][4]float64 `json:"segments,omitempty"`
	// Rows is the text rendition of the grid (raycast mode).
	Rows []string `json:"rows,omitempty"`
}

type Camera struct {
	Position [3]float64 `json:"position"`
	Yaw      float64    `json:"yaw"`
	Pitch    float64    `json:"pitch"`
}

// Input is what viewers may send back: a key script as accepted by
// hal.ParseKeys.
type Input struct {
	Keys string `json:"keys"`
}

func frameMessage(f *viewer.Frame) Message {
	p := f.Camera.Position
	m := Message{
		Type:   TypeFrame,
		Seq:    f.Seq,
		Shape:  f.Shape,
		Marker: f.Marker.String(),
		Mode:   f.Mode.String(),
		Camera: &Camera{
			Position: [3]float64{p.X, p.Y, p.Z},
			Yaw:      f.Camera.Yaw,
			Pitch:    f.Camera.Pitch,
		},
	}
	if f.Mode == wire3d.RenderRaycast {
		if f.Grid != nil {
			m.Rows = strings.Split(f.Grid.String(), "\n")
		}
		return m
	}
	m.Segments = make([][4]float64, len(f.Segments))
	for i, s := range f.Segments {
		m.Segments[i] = [4]float64{s.A.X, s.A.Y, s.B.X, s.B.Y}
	}
	return m
}

// contentHash identifies what a frame shows, ignoring its sequence number.
func contentHash(m *Message) uint64 {
	d := xxhash.New()
	var buf [8]byte
	f64 := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}
	str := func(s string) {
		d.WriteString(s)
		d.Write([]byte{0})
	}

	str(m.Shape)
	str(m.Marker)
	str(m.Mode)
	if m.Camera != nil {
		for _, v := range m.Camera.Position {
			f64(v)
		}
		f64(m.Camera.Yaw)
		f64(m.Camera.Pitch)
	}
	for _, s := range m.Segments {
		for _, v := range s {
			f64(v)
		}
	}
	for _, r := range m.Rows {
		str(r)
	}
	return d.Sum64()
}
