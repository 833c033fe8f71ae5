package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGlobalTransformComposition(t *testing.T) {
	root := NewNode("root", KIND_SPATIAL)
	root.Transform = mgl32.Translate3D(1, 0, 0)

	child := NewNode("child", KIND_SPATIAL)
	child.Transform = mgl32.Translate3D(0, 2, 0)
	root.AttachChild(child)

	leaf := NewNode("leaf", KIND_SPATIAL)
	leaf.Transform = mgl32.Translate3D(0, 0, 3)
	child.AttachChild(leaf)

	got := mgl32.TransformCoordinate(mgl32.Vec3{}, leaf.GlobalTransform())
	expected := mgl32.Vec3{1, 2, 3}
	if got.Sub(expected).Len() > 1e-5 {
		t.Errorf("Leaf origin at %v, expected %v", got, expected)
	}
}

func TestAttachDetach(t *testing.T) {
	a := NewNode("a", KIND_SPATIAL)
	b := NewNode("b", KIND_SPATIAL)
	c := NewNode("c", KIND_SPATIAL)

	a.AttachChild(c)
	if c.Parent() != a || len(a.Children()) != 1 {
		t.Fatalf("Attach failed")
	}

	// Re-attach moves the node, it never ends up with two parents.
	b.AttachChild(c)
	if c.Parent() != b || len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Errorf("Reparenting left stale links: aChildren=%d bChildren=%d",
			len(a.Children()), len(b.Children()))
	}

	c.RemoveFromParent()
	if c.Parent() != nil || len(b.Children()) != 0 {
		t.Errorf("RemoveFromParent left stale links")
	}

	if !b.InsideTree(b) {
		t.Errorf("Node not inside its own tree")
	}
	if c.InsideTree(b) {
		t.Errorf("Detached node still inside tree")
	}
}

func TestFindPath(t *testing.T) {
	root := NewNode("root", KIND_SPATIAL)
	group := NewNode("group", KIND_SPATIAL)
	leaf := NewNode("leaf", KIND_SPATIAL)
	root.AttachChild(group)
	group.AttachChild(leaf)

	tests := []struct {
		path     string
		expected *Node
	}{
		{"", root},
		{"group", group},
		{"group/leaf", leaf},
		{"group/missing", nil},
		{"missing", nil},
	}
	for _, test := range tests {
		if got := root.FindPath(test.path); got != test.expected {
			t.Errorf("FindPath(%q)=%v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestDeferredQueue(t *testing.T) {
	var q DeferredQueue
	var order []int

	q.Defer(func() { order = append(order, 1) })
	q.Defer(func() { order = append(order, 2) })
	if q.Pending() != 2 {
		t.Errorf("Pending()=%d, expected 2", q.Pending())
	}

	q.Flush()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Actions ran as %v, expected submission order", order)
	}
	if q.Pending() != 0 {
		t.Errorf("Queue not empty after flush")
	}
	q.Flush()
}

const testScene = `
root:
  name: level
  children:
    - name: walls
      kind: mesh
      translation: [1, 2, 3]
      mesh:
        name: walls
        surfaces:
          - material: stone
            positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
            normals: [[0, 0, 1], [0, 0, 1], [0, 0, 1]]
            uvs: [[0, 0], [1, 0], [0, 1]]
            indices: [0, 1, 2]
    - name: floor
      kind: mesh
      visible: false
      mesh:
        name: floor
        surfaces:
          - material: stone
            positions: [[0, 0, 0], [0, 0, 1], [1, 0, 0]]
            indices: [0, 1, 2]
      overrides:
        0: grass
`

func TestLoader(t *testing.T) {
	root, err := NewLoader().Load(strings.NewReader(testScene))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if root.Name != "level" || len(root.Children()) != 2 {
		t.Fatalf("Unexpected root %q with %d children", root.Name, len(root.Children()))
	}

	walls := root.FindPath("walls")
	floor := root.FindPath("floor")
	if walls == nil || floor == nil {
		t.Fatalf("Child lookup failed")
	}

	if walls.Kind != KIND_MESH_INSTANCE || walls.Mesh.SurfaceCount() != 1 {
		t.Errorf("walls: kind=%v surfaces=%d", walls.Kind, walls.Mesh.SurfaceCount())
	}
	if !walls.Visible {
		t.Errorf("Visibility must default to true")
	}
	if floor.Visible {
		t.Errorf("Explicit visible: false ignored")
	}

	origin := mgl32.TransformCoordinate(mgl32.Vec3{}, walls.Transform)
	if origin.Sub(mgl32.Vec3{1, 2, 3}).Len() > 1e-5 {
		t.Errorf("walls translation %v, expected {1 2 3}", origin)
	}

	// Both surfaces name the same material, so they must share one resource.
	if walls.Mesh.Surfaces[0].Material != floor.Mesh.Surfaces[0].Material {
		t.Errorf("Material %q not shared by identity across nodes", "stone")
	}
	if walls.Mesh.Surfaces[0].Material.Name != "stone" {
		t.Errorf("Material name %q, expected stone", walls.Mesh.Surfaces[0].Material.Name)
	}

	if floor.EffectiveMaterial(0).Name != "grass" {
		t.Errorf("Override not effective, got %q", floor.EffectiveMaterial(0).Name)
	}
	if walls.EffectiveMaterial(0).Name != "stone" {
		t.Errorf("Effective material without override got %q", walls.EffectiveMaterial(0).Name)
	}
}

func TestLoaderRejectsBadIndices(t *testing.T) {
	const bad = `
root:
  name: level
  kind: mesh
  mesh:
    surfaces:
      - positions: [[0, 0, 0]]
        indices: [0, 1, 2]
`
	if _, err := NewLoader().Load(strings.NewReader(bad)); err == nil {
		t.Errorf("Loader accepted out-of-range indices")
	}
}
