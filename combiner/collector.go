package combiner

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/meshcombine/mesh"
	"github.com/mogaika/meshcombine/scene"
	"github.com/mogaika/meshcombine/status"
)

// SurfaceRef is one unit of the collector's output: a single surface of a
// mesh-bearing node, the material that is effective for it, and the node's
// placement relative to the anchor.
type SurfaceRef struct {
	Surface   *mesh.Surface
	Material  *mesh.Material
	Transform mgl32.Mat4
	Source    *scene.Node
	Index     int
}

// Collector walks every descendant of the anchor depth-first and yields one
// SurfaceRef per surface found. Non-mesh grouping nodes are recursed into,
// since their subtrees may still carry meshes. The anchor itself is excluded
// through an explicit predicate rather than ad-hoc identity checks.
type Collector struct {
	anchor    *scene.Node
	exclude   func(*scene.Node) bool
	onSurface func(SurfaceRef)
	onSource  func(*scene.Node)
	yielded   bool
}

// NewCollector builds a collector rooted at anchor. onSurface receives every
// yielded surface; onSource is invoked exactly once per mesh-bearing node
// that contributed at least one surface (used for collision extraction).
func NewCollector(anchor *scene.Node, onSurface func(SurfaceRef), onSource func(*scene.Node)) *Collector {
	return &Collector{
		anchor:    anchor,
		exclude:   func(n *scene.Node) bool { return n == anchor },
		onSurface: onSurface,
		onSource:  onSource,
	}
}

// Collect drains the whole hierarchy and reports whether at least one
// surface was yielded.
func (c *Collector) Collect() bool {
	c.yielded = false
	invAnchor := c.anchor.GlobalTransform().Inv()
	c.walk(c.anchor, invAnchor)
	return c.yielded
}

func (c *Collector) walk(n *scene.Node, invAnchor mgl32.Mat4) {
	if !c.exclude(n) {
		c.process(n, invAnchor)
	}
	for _, child := range n.Children() {
		c.walk(child, invAnchor)
	}
}

func (c *Collector) process(n *scene.Node, invAnchor mgl32.Mat4) {
	if n.Mesh == nil {
		// Not mesh-bearing. Still recursed into by the caller.
		return
	}
	if n.Mesh.SurfaceCount() == 0 {
		status.Infof("[combiner] Skipping %q: mesh has no surfaces", n.Name)
		return
	}

	relative := invAnchor.Mul4(n.GlobalTransform())
	for iSurface, surface := range n.Mesh.Surfaces {
		c.onSurface(SurfaceRef{
			Surface:   surface,
			Material:  n.EffectiveMaterial(iSurface),
			Transform: relative,
			Source:    n,
			Index:     iSurface,
		})
		c.yielded = true
	}

	if c.onSource != nil {
		c.onSource(n)
	}
}
