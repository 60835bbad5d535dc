// Package shapes is the shape repository: built-in wireframes plus shapes loaded
// from YAML files.
package shapes

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"wirecam/wire3d"
)

var ErrUnknownShape = errors.New("unknown shape")

// Repository holds validated shapes by name, in insertion order.
type Repository struct {
	byName map[string]wire3d.Shape
	order  []string
}

func NewRepository() *Repository {
	return &Repository{byName: make(map[string]wire3d.Shape)}
}

// Builtin returns a repository with the built-in shapes.
func Builtin() *Repository {
	r := NewRepository()
	for _, s := range []wire3d.Shape{
		Cube(1),
		Pyramid(1, 1),
		Prism(1, 1.5),
		Tesseract(1, 2),
		Grid(10, 1, -1),
	} {
		// Built-ins are valid by construction.
		_ = r.Add(s)
	}
	return r
}

// Add validates s and stores it, replacing any shape with the same name.
func (r *Repository) Add(s wire3d.Shape) error {
	if s.Name == "" {
		return errors.New("shape has no name")
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := r.byName[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.byName[s.Name] = s
	return nil
}

func (r *Repository) Get(name string) (wire3d.Shape, error) {
	s, ok := r.byName[name]
	if !ok {
		return wire3d.Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return s, nil
}

func (r *Repository) Names() []string { return slices.Clone(r.order) }

func (r *Repository) Len() int { return len(r.order) }

// Next returns the name following name in insertion order, wrapping around.
func (r *Repository) Next(name string) string {
	if len(r.order) == 0 {
		return ""
	}
	i := slices.Index(r.order, name)
	return r.order[(i+1)%len(r.order)]
}

// File is the on-disk shape format.
type File struct {
	Shapes []FileShape `yaml:"shapes"`
}

// FileShape describes one shape. Offset and Scale are applied to the vertices at
// load time; a zero Scale means 1.
type FileShape struct {
	Name     string       `yaml:"name"`
	Vertices [][3]float64 `yaml:"vertices"`
	Edges    [][2]int     `yaml:"edges"`
	Offset   [3]float64   `yaml:"offset,omitempty"`
	Scale    float64      `yaml:"scale,omitempty"`
}

func (fs FileShape) shape() wire3d.Shape {
	s := wire3d.Shape{
		Name:     fs.Name,
		Vertices: make([]wire3d.Vec3, len(fs.Vertices)),
		Edges:    make([]wire3d.Edge, len(fs.Edges)),
	}
	k := fs.Scale
	if k == 0 {
		k = 1
	}
	off := wire3d.Vec3{X: fs.Offset[0], Y: fs.Offset[1], Z: fs.Offset[2]}
	for i, v := range fs.Vertices {
		s.Vertices[i] = wire3d.Vec3{X: v[0], Y: v[1], Z: v[2]}.Scale(k).Add(off)
	}
	for i, e := range fs.Edges {
		s.Edges[i] = wire3d.Edge{e[0], e[1]}
	}
	return s
}

// LoadYAML decodes a shape file and adds every shape to r. Nothing is added if
// any shape is invalid.
func (r *Repository) LoadYAML(in io.Reader) ([]string, error) {
	var f File
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}

	parsed := make([]wire3d.Shape, 0, len(f.Shapes))
	for i, fs := range f.Shapes {
		if fs.Name == "" {
			return nil, fmt.Errorf("shape %d: missing name", i)
		}
		s := fs.shape()
		if err := s.Validate(); err != nil {
			return nil, err
		}
		parsed = append(parsed, s)
	}

	names := make([]string, 0, len(parsed))
	for _, s := range parsed {
		if err := r.Add(s); err != nil {
			return nil, err
		}
		names = append(names, s.Name)
	}
	return names, nil
}

// LoadFile is LoadYAML on the named file.
func (r *Repository) LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := r.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}
