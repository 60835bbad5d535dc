package wire3d

// Rect is an axis-aligned rectangle in device coordinates.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// NDC is the normalized device rectangle every surface maps to its full extent.
var NDC = Rect{XMin: -1, XMax: 1, YMin: -1, YMax: 1}

// ClipNear clips a camera-space segment against the plane z == nearZ and reports
// whether anything is left. Segments entirely at or behind the plane are dropped;
// segments entirely in front are returned unchanged. Otherwise the endpoint behind
// the plane is replaced by the crossing point, whose Z is exactly nearZ.
//
// Clipping happens before projection so the perspective divide never sees a depth
// close to zero.
func ClipNear(a, b Vec3, nearZ float64) (Vec3, Vec3, bool) {
	aIn := a.Z > nearZ
	bIn := b.Z > nearZ
	switch {
	case !aIn && !bIn:
		return Vec3{}, Vec3{}, false
	case aIn && bIn:
		return a, b, true
	}

	t := (nearZ - a.Z) / (b.Z - a.Z)
	p := a.Lerp(b, t)
	p.Z = nearZ
	if aIn {
		return a, p, true
	}
	return p, b, true
}

// ClipFar is ClipNear mirrored: it keeps the part of the segment at or in front
// of z == farZ.
func ClipFar(a, b Vec3, farZ float64) (Vec3, Vec3, bool) {
	aIn := a.Z <= farZ
	bIn := b.Z <= farZ
	switch {
	case !aIn && !bIn:
		return Vec3{}, Vec3{}, false
	case aIn && bIn:
		return a, b, true
	}

	t := (farZ - a.Z) / (b.Z - a.Z)
	p := a.Lerp(b, t)
	p.Z = farZ
	if aIn {
		return a, p, true
	}
	return p, b, true
}

// ClipViewport clips a device-space segment to r with the Liang-Barsky algorithm.
// A segment parallel to a boundary is kept only if it lies on the inside of it.
// Endpoints moved by clipping lie exactly on the boundary that clipped them.
func ClipViewport(a, b Vec2, r Rect) (Vec2, Vec2, bool) {
	t0, t1, enter, exit, ok := liangBarsky(a, b, r)
	if !ok {
		return Vec2{}, Vec2{}, false
	}

	d := b.Sub(a)
	ca, cb := a, b
	if enter >= 0 {
		ca = onBoundary(a.Add(d.Scale(t0)), r, enter)
	}
	if exit >= 0 {
		cb = onBoundary(a.Add(d.Scale(t1)), r, exit)
	}
	return ca, cb, true
}

const (
	edgeLeft = iota
	edgeRight
	edgeBottom
	edgeTop
)

// liangBarsky returns the surviving parameter range and the edges that set its
// lower and upper bound (-1 when the bound stayed at 0 or 1).
func liangBarsky(a, b Vec2, r Rect) (t0, t1 float64, enter, exit int, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 = 0, 1
	enter, exit = -1, -1

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X - r.XMin, r.XMax - a.X, a.Y - r.YMin, r.YMax - a.Y}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, -1, -1, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, -1, -1, false
			}
			if t > t0 {
				t0 = t
				enter = i
			}
		} else {
			if t < t0 {
				return 0, 0, -1, -1, false
			}
			if t < t1 {
				t1 = t
				exit = i
			}
		}
	}
	if t0 >= t1 {
		return 0, 0, -1, -1, false
	}
	return t0, t1, enter, exit, true
}

// onBoundary pins p to the clipping edge and removes interpolation error on the
// other axis.
func onBoundary(p Vec2, r Rect, edge int) Vec2 {
	switch edge {
	case edgeLeft:
		p.X = r.XMin
	case edgeRight:
		p.X = r.XMax
	case edgeBottom:
		p.Y = r.YMin
	case edgeTop:
		p.Y = r.YMax
	}
	p.X = clamp(p.X, r.XMin, r.XMax)
	p.Y = clamp(p.Y, r.YMin, r.YMax)
	return p
}
