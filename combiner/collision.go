package combiner

import (
	"github.com/mogaika/meshcombine/scene"
	"github.com/mogaika/meshcombine/status"
)

// collisionExtractor duplicates static collision shapes of processed mesh
// nodes under a configured destination node. Duplicates are held pending
// until the merge commits, then attached through the deferred queue; a merge
// that fails attaches nothing.
type collisionExtractor struct {
	dest    *scene.Node
	pending []*scene.Node
}

func newCollisionExtractor(anchor, dest *scene.Node) *collisionExtractor {
	if dest == nil {
		return &collisionExtractor{}
	}
	if !dest.InsideTree(anchor.Root()) {
		// Configuration anomaly: merge proceeds without collision copies.
		status.Warnf("[combiner] Collision destination %q is not attached to the scene, skipping collision extraction", dest.Name)
		return &collisionExtractor{}
	}
	return &collisionExtractor{dest: dest}
}

// extract inspects direct children of a processed mesh node for static
// bodies and copies every collision shape found inside them. Runs once per
// mesh-bearing node, not per surface.
func (e *collisionExtractor) extract(n *scene.Node) {
	if e.dest == nil {
		return
	}

	for _, body := range n.Children() {
		if body.Kind != scene.KIND_STATIC_BODY {
			continue
		}
		for _, shapeNode := range body.Children() {
			if shapeNode.Kind != scene.KIND_COLLISION_SHAPE {
				continue
			}
			if shapeNode.Shape == nil || len(shapeNode.Shape.Vertices) == 0 {
				status.Warnf("[combiner] Collision shape %q under %q has an empty shape resource, skipping",
					shapeNode.Name, n.Name)
				continue
			}

			duplicate := scene.NewNode(shapeNode.Name, scene.KIND_COLLISION_SHAPE)
			duplicate.Shape = shapeNode.Shape.DeepCopy()
			// Keeps the shape's world placement, matching the source
			// before any reparenting under the destination.
			duplicate.Transform = shapeNode.GlobalTransform()

			e.pending = append(e.pending, duplicate)
		}
	}
}

// schedule queues attachment of every pending duplicate under the
// destination. Called only after the merge committed.
func (e *collisionExtractor) schedule(queue *scene.DeferredQueue) {
	dest := e.dest
	for _, duplicate := range e.pending {
		d := duplicate
		queue.Defer(func() {
			dest.AttachChild(d)
		})
	}
	e.pending = nil
}

// discard drops pending duplicates of a merge that failed.
func (e *collisionExtractor) discard() {
	if len(e.pending) != 0 {
		status.Infof("[combiner] Discarding %d collision duplicates of a failed merge", len(e.pending))
		e.pending = nil
	}
}
