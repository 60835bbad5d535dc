package shapes

import (
	"wirecam/wire3d"
)

// Cube returns an axis-aligned cube of edge length size centered on the origin.
func Cube(size float64) wire3d.Shape {
	h := size / 2
	return wire3d.Shape{
		Name: "cube",
		Vertices: []wire3d.Vec3{
			{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
			{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
		},
		Edges: []wire3d.Edge{
			// back face
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			// front face
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			// connecting edges
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// Pyramid returns a square pyramid with its base on y = -height/2.
func Pyramid(base, height float64) wire3d.Shape {
	b := base / 2
	h := height / 2
	return wire3d.Shape{
		Name: "pyramid",
		Vertices: []wire3d.Vec3{
			{X: -b, Y: -h, Z: -b}, {X: b, Y: -h, Z: -b}, {X: b, Y: -h, Z: b}, {X: -b, Y: -h, Z: b},
			{X: 0, Y: h, Z: 0},
		},
		Edges: []wire3d.Edge{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{0, 4}, {1, 4}, {2, 4}, {3, 4},
		},
	}
}

// Prism returns a triangular prism extruded along Z.
func Prism(side, depth float64) wire3d.Shape {
	s := side / 2
	d := depth / 2
	// Equilateral triangle with its centroid on the axis.
	top := s * 1.7320508075688772 * 2 / 3
	bottom := -top / 2
	return wire3d.Shape{
		Name: "prism",
		Vertices: []wire3d.Vec3{
			{X: -s, Y: bottom, Z: -d}, {X: s, Y: bottom, Z: -d}, {X: 0, Y: top, Z: -d},
			{X: -s, Y: bottom, Z: d}, {X: s, Y: bottom, Z: d}, {X: 0, Y: top, Z: d},
		},
		Edges: []wire3d.Edge{
			{0, 1}, {1, 2}, {2, 0},
			{3, 4}, {4, 5}, {5, 3},
			{0, 3}, {1, 4}, {2, 5},
		},
	}
}

// Tesseract returns a 4D hypercube of edge length size, perspective-projected to
// 3D from a viewpoint at w = wDist. A viewpoint inside the hypercube is moved out
// to three half-sizes to keep the projection finite.
func Tesseract(size, wDist float64) wire3d.Shape {
	h := size / 2
	if wDist <= h {
		wDist = h * 3
	}

	verts := make([]wire3d.Vec3, 0, 16)
	for i := 0; i < 16; i++ {
		x := coord(i, 0, h)
		y := coord(i, 1, h)
		z := coord(i, 2, h)
		w := coord(i, 3, h)

		k := wDist / (wDist - w)
		verts = append(verts, wire3d.Vec3{X: x * k, Y: y * k, Z: z * k})
	}

	// Two vertices share an edge when their corner bits differ in exactly one axis.
	edges := make([]wire3d.Edge, 0, 32)
	for i := 0; i < 16; i++ {
		for bit := 0; bit < 4; bit++ {
			j := i ^ (1 << bit)
			if i < j {
				edges = append(edges, wire3d.Edge{i, j})
			}
		}
	}

	return wire3d.Shape{Name: "tesseract", Vertices: verts, Edges: edges}
}

func coord(corner, axis int, h float64) float64 {
	if corner&(1<<axis) != 0 {
		return h
	}
	return -h
}

// Grid returns a square floor grid of n×n cells of the given size lying in the
// plane y = level.
func Grid(n int, cell, level float64) wire3d.Shape {
	if n < 1 {
		n = 1
	}
	half := float64(n) * cell / 2
	verts := make([]wire3d.Vec3, 0, 4*(n+1))
	edges := make([]wire3d.Edge, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		o := -half + float64(i)*cell
		base := len(verts)
		verts = append(verts,
			wire3d.Vec3{X: o, Y: level, Z: -half}, wire3d.Vec3{X: o, Y: level, Z: half},
			wire3d.Vec3{X: -half, Y: level, Z: o}, wire3d.Vec3{X: half, Y: level, Z: o},
		)
		edges = append(edges, wire3d.Edge{base, base + 1}, wire3d.Edge{base + 2, base + 3})
	}
	return wire3d.Shape{Name: "grid", Vertices: verts, Edges: edges}
}
