package scene

// DeferredQueue collects tree mutations that must not run while a traversal
// is in flight. The owner drains it at the next mutation-safe point, which
// for this tool is right after the traversal returns.
type DeferredQueue struct {
	actions []func()
}

func (q *DeferredQueue) Defer(action func()) {
	q.actions = append(q.actions, action)
}

func (q *DeferredQueue) Pending() int {
	return len(q.actions)
}

// Flush runs every queued action in submission order and empties the queue.
func (q *DeferredQueue) Flush() {
	actions := q.actions
	q.actions = nil
	for _, action := range actions {
		action()
	}
}
