package extension

import (
	"fmt"
	"weak"
)

// AnyPoint subscribes a listener to every extension point's events.
const AnyPoint = ""

// listenerRef is one stored listener reference. Bound handles are held
// strongly (their own weak owner pointer controls liveness); func handles
// are held weakly so the table never keeps a caller's callback alive.
type listenerRef struct {
	kind   listenerKind
	strong *Listener
	wk     weak.Pointer[Listener]
}

func newListenerRef(l *Listener) listenerRef {
	if l.kind == kindBound {
		return listenerRef{kind: kindBound, strong: l}
	}
	return listenerRef{kind: kindFunc, wk: weak.Make(l)}
}

// resolve returns the handle and whether it is still live. Expiry is
// checked here, at dispatch time, never eagerly.
func (ref listenerRef) resolve() (*Listener, bool) {
	if ref.kind == kindBound {
		return ref.strong, ref.strong.alive()
	}
	l := ref.wk.Value()
	return l, l != nil
}

// listenerTable stores listener references per extension point id, with
// AnyPoint holding the wildcard subscriptions. Registration order is
// preserved within each bucket.
type listenerTable struct {
	byPoint map[string][]listenerRef
}

func newListenerTable() *listenerTable {
	return &listenerTable{byPoint: make(map[string][]listenerRef)}
}

func (t *listenerTable) add(l *Listener, pointID string) {
	t.byPoint[pointID] = append(t.byPoint[pointID], newListenerRef(l))
}

// remove unregisters the exact (handle, id) pair. Expired entries never
// match: removing a pair that is gone, or was never added, is an error.
func (t *listenerTable) remove(l *Listener, pointID string) error {
	refs := t.byPoint[pointID]
	for i, ref := range refs {
		live, ok := ref.resolve()
		if ok && live == l {
			t.byPoint[pointID] = append(refs[:i:i], refs[i+1:]...)
			return nil
		}
	}
	if pointID == AnyPoint {
		return fmt.Errorf("%w: wildcard", ErrInvalidListenerRemoval)
	}
	return fmt.Errorf("%w: %s", ErrInvalidListenerRemoval, pointID)
}

// refsFor returns a dispatch snapshot: listeners registered for the exact
// id first, then wildcard listeners, each in registration order. The
// snapshot keeps re-entrant registration during dispatch from affecting the
// in-flight event.
func (t *listenerTable) refsFor(pointID string) []listenerRef {
	exact := t.byPoint[pointID]
	wild := t.byPoint[AnyPoint]
	refs := make([]listenerRef, 0, len(exact)+len(wild))
	refs = append(refs, exact...)
	refs = append(refs, wild...)
	return refs
}

// prune drops expired entries from the buckets relevant to pointID. Called
// opportunistically after dispatch.
func (t *listenerTable) prune(pointID string) {
	t.pruneBucket(pointID)
	if pointID != AnyPoint {
		t.pruneBucket(AnyPoint)
	}
}

func (t *listenerTable) pruneBucket(key string) {
	refs := t.byPoint[key]
	live := refs[:0]
	for _, ref := range refs {
		if _, ok := ref.resolve(); ok {
			live = append(live, ref)
		}
	}
	if len(live) == 0 {
		delete(t.byPoint, key)
		return
	}
	t.byPoint[key] = live
}
