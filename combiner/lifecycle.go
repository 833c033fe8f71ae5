package combiner

import (
	"github.com/mogaika/meshcombine/scene"
	"github.com/mogaika/meshcombine/status"
)

// Clear removes every child of the collision destination and restores the
// anchor's direct children to visible. The caller drops its merged result
// alongside. Safe to call any number of times, including before any merge.
func Clear(anchor, dest *scene.Node) {
	if dest != nil {
		children := append([]*scene.Node{}, dest.Children()...)
		for _, child := range children {
			child.RemoveFromParent()
		}
		if len(children) != 0 {
			status.Infof("[combiner] Removed %d collision children from %q", len(children), dest.Name)
		}
	}

	if anchor != nil {
		SetChildrenVisible(anchor, true)
	}

	status.Infof("[combiner] Cleared merge state")
}

// SetChildrenVisible flips the visibility flag on direct children of the
// anchor only; deeper descendants follow their parents in the host engine.
func SetChildrenVisible(anchor *scene.Node, visible bool) {
	for _, child := range anchor.Children() {
		child.Visible = visible
	}
}

// EnterRunMode applies the delete-on-launch behavior at the tool's
// edit-to-run transition: the first direct child of the anchor is queued for
// removal, then the scan stops. Exactly one child is removed per invocation;
// callers relying on full cleanup should use Clear instead.
func EnterRunMode(anchor *scene.Node, deleteFirstChild bool, queue *scene.DeferredQueue) {
	if !deleteFirstChild {
		return
	}
	for _, child := range anchor.Children() {
		c := child
		status.Infof("[combiner] Removing %q on launch", c.Name)
		queue.Defer(func() {
			c.RemoveFromParent()
		})
		break
	}
}
