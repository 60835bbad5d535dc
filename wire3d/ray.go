package wire3d

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// BoundsOf returns the smallest box containing pts. The zero box is returned for
// an empty slice.
func BoundsOf(pts []Vec3) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	b := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min = Vec3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)}
		b.Max = Vec3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)}
	}
	return b
}

func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// CastRay maps device coordinates u, v in [-1, 1] to a unit world-space ray
// direction. The camera-local ray is (u·tan(fov/2)·aspect, v·tan(fov/2), 1).
func (c Camera) CastRay(u, v float64) Vec3 {
	scale := c.focalScale()
	local := Vec3{X: u * scale * c.AspectRatio, Y: v * scale, Z: 1}.Normalize()
	return c.CameraToWorld(local)
}

// RayIntersectsAABB reports whether the ray origin + t*dir, t >= 0, hits box.
//
// This is the slab method. Zero direction components are not special-cased: the
// reciprocal becomes ±Inf and the slab bounds become ±Inf, which is what makes a
// ray parallel to a slab pass or fail correctly.
func RayIntersectsAABB(origin, dir Vec3, box AABB) bool {
	_, _, ok := raySlabs(origin, dir, box)
	return ok
}

// RayEntry is RayIntersectsAABB that also returns the distance along dir at which
// the ray enters box (0 if the origin is inside).
func RayEntry(origin, dir Vec3, box AABB) (float64, bool) {
	tmin, _, ok := raySlabs(origin, dir, box)
	if !ok {
		return 0, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, true
}

// RayHits casts from the camera position.
func (c Camera) RayHits(dir Vec3, box AABB) bool {
	return RayIntersectsAABB(c.Position, dir, box)
}

func raySlabs(origin, dir Vec3, box AABB) (tmin, tmax float64, ok bool) {
	tmin, tmax = slab(origin.X, 1/dir.X, box.Min.X, box.Max.X)
	tymin, tymax := slab(origin.Y, 1/dir.Y, box.Min.Y, box.Max.Y)
	if tmin > tymax || tymin > tmax {
		return 0, 0, false
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin, tzmax := slab(origin.Z, 1/dir.Z, box.Min.Z, box.Max.Z)
	if tmin > tzmax || tzmin > tmax {
		return 0, 0, false
	}
	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	if tmin > tmax || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

func slab(o, inv, lo, hi float64) (t0, t1 float64) {
	t0 = (lo - o) * inv
	t1 = (hi - o) * inv
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1
}
