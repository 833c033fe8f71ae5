package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/meshcombine/mesh"
)

type Kind int

const (
	KIND_SPATIAL Kind = iota
	KIND_MESH_INSTANCE
	KIND_STATIC_BODY
	KIND_COLLISION_SHAPE
)

func (k Kind) String() string {
	switch k {
	case KIND_SPATIAL:
		return "spatial"
	case KIND_MESH_INSTANCE:
		return "mesh"
	case KIND_STATIC_BODY:
		return "body"
	case KIND_COLLISION_SHAPE:
		return "shape"
	}
	return "unknown"
}

// Node is one element of the hierarchy snapshot the combiner operates on.
// Transform is the placement relative to the parent; global placement is
// composed on demand.
type Node struct {
	Name      string
	Kind      Kind
	Transform mgl32.Mat4
	Visible   bool

	// KIND_MESH_INSTANCE payload. MaterialOverrides maps a surface index to
	// a material that takes precedence over the one embedded in the mesh.
	Mesh              *mesh.Mesh
	MaterialOverrides map[int]*mesh.Material

	// KIND_COLLISION_SHAPE payload.
	Shape *mesh.Shape

	parent   *Node
	children []*Node
}

func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:      name,
		Kind:      kind,
		Transform: mgl32.Ident4(),
		Visible:   true,
	}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the live child list. Callers that mutate the tree while
// iterating must take a copy first.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) AttachChild(c *Node) {
	if c.parent != nil {
		c.parent.DetachChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) DetachChild(c *Node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.DetachChild(n)
	}
}

func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// InsideTree reports whether n is root itself or one of its descendants.
func (n *Node) InsideTree(root *Node) bool {
	for c := n; c != nil; c = c.parent {
		if c == root {
			return true
		}
	}
	return false
}

// GlobalTransform composes the local transforms of every ancestor down to n.
func (n *Node) GlobalTransform() mgl32.Mat4 {
	if n.parent == nil {
		return n.Transform
	}
	return n.parent.GlobalTransform().Mul4(n.Transform)
}

// FindPath resolves a slash-separated child path relative to n.
// Empty path returns n itself.
func (n *Node) FindPath(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		var next *Node
		for _, child := range cur.children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// EffectiveMaterial resolves the material used for surface index i of a mesh
// instance: an override set on the node wins over the material embedded in
// the surface.
func (n *Node) EffectiveMaterial(i int) *mesh.Material {
	if m, ex := n.MaterialOverrides[i]; ex {
		return m
	}
	if n.Mesh != nil && i < len(n.Mesh.Surfaces) {
		return n.Mesh.Surfaces[i].Material
	}
	return nil
}
