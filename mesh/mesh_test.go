package mesh

import "testing"

func TestShapeDeepCopy(t *testing.T) {
	original := &Shape{
		Name:     "box",
		Vertices: []Position{{0, 0, 0}, {1, 0, 0}},
		Indices:  []uint32{0, 1},
	}

	copied := original.DeepCopy()
	if copied == original {
		t.Fatalf("DeepCopy returned the same resource")
	}

	copied.Vertices[0] = Position{5, 5, 5}
	copied.Indices[0] = 7
	if original.Vertices[0] != (Position{0, 0, 0}) || original.Indices[0] != 0 {
		t.Errorf("Editing the copy mutated the original: %+v", original)
	}

	var nilShape *Shape
	if nilShape.DeepCopy() != nil {
		t.Errorf("DeepCopy of nil shape must stay nil")
	}
}

func TestSurfaceCounts(t *testing.T) {
	var nilMesh *Mesh
	if nilMesh.SurfaceCount() != 0 {
		t.Errorf("nil mesh surface count %d", nilMesh.SurfaceCount())
	}

	var nilMerged *Merged
	if nilMerged.SurfaceCount() != 0 {
		t.Errorf("nil merged surface count %d", nilMerged.SurfaceCount())
	}

	s := &Surface{
		Positions: []Position{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	if s.VertexCount() != 3 || s.TriangleCount() != 1 {
		t.Errorf("Surface counts %d/%d, expected 3/1", s.VertexCount(), s.TriangleCount())
	}
}
