package viewer

import "wirecam/wire3d"

// rayShade decides whether a sub-cell whose ray hit shape bounds is lit. It is
// the only shading policy of the raycast path.
func rayShade(hit bool) bool { return hit }

// raycast lights every sub-cell whose primary ray hits the active shape's
// bounding box.
func (v *Viewer) raycast() {
	box := v.shape.Bounds()
	w, h := v.grid.Resolution()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := v.grid.SubcellCenter(x, y)
			dir := screenRay(v.cam, p.X, p.Y)
			if rayShade(v.cam.RayHits(dir, box)) {
				v.grid.Set(x, y)
			}
		}
	}
}

// screenRay returns the ray through the point that Project maps to (u, v).
// CastRay scales u by the aspect ratio and Project scales it again, so u is
// divided by the square first.
func screenRay(c wire3d.Camera, u, v float64) wire3d.Vec3 {
	if a := c.AspectRatio; a != 0 {
		u /= a * a
	}
	return c.CastRay(u, v)
}
