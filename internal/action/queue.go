package action

// Queue is one entity's action queue: the live deque plus front/back
// staging buckets. Handlers invoked mid-dispatch append to staging,
// never to the deque directly — Normalize reconciles the two.
type Queue struct {
	actions  []Action
	toFront  []Action
	toBack   []Action
}

// NewQueue returns an empty action queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends action to back-staging, to run after everything currently
// queued.
func (q *Queue) Push(a Action) {
	q.toBack = append(q.toBack, a)
}

// PushFirst appends action to front-staging. Calling PushFirst multiple
// times before a Normalize and having the *first* call become the first
// to execute requires front-staging be drained in reverse (see
// Normalize).
func (q *Queue) PushFirst(a Action) {
	q.toFront = append(q.toFront, a)
}

// NeedsUpdate reports whether Normalize would change the live deque.
func (q *Queue) NeedsUpdate() bool {
	return len(q.toFront) > 0 || len(q.toBack) > 0
}

// Normalize drains front-staging into the deque front (reversed, so the
// first PushFirst call becomes the first to execute) and back-staging
// into the deque back.
func (q *Queue) Normalize() {
	for i := len(q.toFront) - 1; i >= 0; i-- {
		q.actions = append([]Action{q.toFront[i]}, q.actions...)
	}
	q.toFront = nil

	q.actions = append(q.actions, q.toBack...)
	q.toBack = nil
}

// Empty reports whether nothing is queued, counting staged actions that
// Normalize has not yet moved into the live deque.
func (q *Queue) Empty() bool {
	return len(q.actions) == 0 && len(q.toFront) == 0 && len(q.toBack) == 0
}

// PopFront removes and returns the action at the front of the live
// deque, or (nil, false) if empty.
func (q *Queue) PopFront() (Action, bool) {
	if len(q.actions) == 0 {
		return nil, false
	}
	a := q.actions[0]
	q.actions = q.actions[1:]
	return a, true
}

// PushFrontImmediate puts action back at the very front of the live
// deque — used by the driver to requeue an incomplete multi-tick action,
// and to restore the popped-but-not-yet-run action when staged inserts
// during Before invalidate the selection.
func (q *Queue) PushFrontImmediate(a Action) {
	q.actions = append([]Action{a}, q.actions...)
}

// Drain removes every queued action (live deque plus any staged but not
// yet normalized) for which predicate returns true, returning them in the
// order they were found so the caller can Interrupt each one. Used by
// combat exit and death handling to cancel queued actions via a
// predicate-driven drain.
func (q *Queue) Drain(predicate func(Action) bool) []Action {
	var drained []Action
	q.actions, drained = filterOut(q.actions, predicate, drained)
	q.toFront, drained = filterOut(q.toFront, predicate, drained)
	q.toBack, drained = filterOut(q.toBack, predicate, drained)
	return drained
}

func filterOut(actions []Action, predicate func(Action) bool, drained []Action) ([]Action, []Action) {
	kept := actions[:0:0]
	for _, a := range actions {
		if predicate(a) {
			drained = append(drained, a)
		} else {
			kept = append(kept, a)
		}
	}
	return kept, drained
}
