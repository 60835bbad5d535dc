package wire3d

import "fmt"

// Edge joins two vertices of a Shape by index.
type Edge [2]int

// Shape is an immutable wireframe: vertex positions plus edges between them.
type Shape struct {
	Name     string
	Vertices []Vec3
	Edges    []Edge
}

// Validate checks that every edge references an existing vertex.
func (s Shape) Validate() error {
	for i, e := range s.Edges {
		for _, idx := range e {
			if idx < 0 || idx >= len(s.Vertices) {
				return fmt.Errorf("shape %q: edge %d references vertex %d, have %d vertices", s.Name, i, idx, len(s.Vertices))
			}
		}
	}
	return nil
}

func (s Shape) Bounds() AABB { return BoundsOf(s.Vertices) }

// Translate returns a copy of s moved by d. Edges are shared with s.
func (s Shape) Translate(d Vec3) Shape {
	out := Shape{Name: s.Name, Edges: s.Edges, Vertices: make([]Vec3, len(s.Vertices))}
	for i, v := range s.Vertices {
		out.Vertices[i] = v.Add(d)
	}
	return out
}

// Scale returns a copy of s scaled about the origin by k. Edges are shared with s.
func (s Shape) Scale(k float64) Shape {
	out := Shape{Name: s.Name, Edges: s.Edges, Vertices: make([]Vec3, len(s.Vertices))}
	for i, v := range s.Vertices {
		out.Vertices[i] = v.Scale(k)
	}
	return out
}
