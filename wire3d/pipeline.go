package wire3d

import "iter"

// Segment2 is a device-space line segment.
type Segment2 struct {
	A, B Vec2
}

// Segment3 is a line segment in world or view space.
type Segment3 struct {
	A, B Vec3
}

// ViewSegment transforms a world-space segment to view space and clips it against
// the near and far planes.
func (c Camera) ViewSegment(s Segment3) (Segment3, bool) {
	a, b, ok := ClipNear(c.WorldToView(s.A), c.WorldToView(s.B), c.Near)
	if !ok {
		return Segment3{}, false
	}
	if c.Far > c.Near {
		a, b, ok = ClipFar(a, b, c.Far)
		if !ok {
			return Segment3{}, false
		}
	}
	return Segment3{A: a, B: b}, true
}

// ScreenSegment runs one world-space segment through the whole pipeline.
func (c Camera) ScreenSegment(s Segment3, vp Rect) (Segment2, bool) {
	v, ok := c.ViewSegment(s)
	if !ok {
		return Segment2{}, false
	}
	a, b, ok := ClipViewport(c.Project(v.A), c.Project(v.B), vp)
	if !ok {
		return Segment2{}, false
	}
	return Segment2{A: a, B: b}, true
}

// Segments returns the visible NDC segments of shapes as seen from c.
//
// The sequence is lazy and finite; it reads the camera and shapes when iterated,
// so callers must not mutate either until iteration finishes. Edges with an out of
// range vertex index are skipped.
func Segments(c Camera, shapes ...Shape) iter.Seq[Segment2] {
	return func(yield func(Segment2) bool) {
		for _, s := range shapes {
			n := len(s.Vertices)
			for _, e := range s.Edges {
				if e[0] < 0 || e[1] < 0 || e[0] >= n || e[1] >= n {
					continue
				}
				seg, ok := c.ScreenSegment(Segment3{A: s.Vertices[e[0]], B: s.Vertices[e[1]]}, NDC)
				if !ok {
					continue
				}
				if !yield(seg) {
					return
				}
			}
		}
	}
}
