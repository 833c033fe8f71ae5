package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Position = mgl32.Vec3
type Normal = mgl32.Vec3
type UV = mgl32.Vec2

// Material is an externally owned render resource. The combiner never looks
// inside it: two materials are "the same" only when they are the same
// pointer, and nil is a valid group key of its own.
type Material struct {
	Name string
}

// Surface is one drawable chunk of geometry referencing a single material.
// Positions, normals and UVs are parallel arrays; Indices holds triangles as
// index triples. Surfaces read from a source node are never mutated.
type Surface struct {
	Positions []Position
	Normals   []Normal
	UVs       []UV
	Indices   []uint32
	Material  *Material
}

func (s *Surface) VertexCount() int {
	return len(s.Positions)
}

func (s *Surface) TriangleCount() int {
	return len(s.Indices) / 3
}

type Mesh struct {
	Name     string
	Surfaces []*Surface
}

func (m *Mesh) SurfaceCount() int {
	if m == nil {
		return 0
	}
	return len(m.Surfaces)
}

// Merged is the committed output of one merge run: one surface per distinct
// material encountered, in first-seen order. It is replaced wholesale on the
// next merge or clear, never mutated per-surface.
type Merged struct {
	Surfaces []*Surface
}

func (m *Merged) SurfaceCount() int {
	if m == nil {
		return 0
	}
	return len(m.Surfaces)
}

// Shape is a static collision shape resource (triangle soup).
type Shape struct {
	Name     string
	Vertices []Position
	Indices  []uint32
}

// DeepCopy copies the shape together with its vertex and index arrays, so
// edits to the copy never alias the original resource.
func (s *Shape) DeepCopy() *Shape {
	if s == nil {
		return nil
	}
	d := &Shape{
		Name:     s.Name,
		Vertices: make([]Position, len(s.Vertices)),
		Indices:  make([]uint32, len(s.Indices)),
	}
	copy(d.Vertices, s.Vertices)
	copy(d.Indices, s.Indices)
	return d
}
