package extension

import "weak"

// listenerKind tags how a Listener's lifetime is tracked.
type listenerKind int

const (
	// kindFunc listeners wrap a free function. The registry holds the
	// handle weakly: once the caller drops its reference the listener
	// silently stops firing.
	kindFunc listenerKind = iota

	// kindBound listeners wrap a method of an owning object. The registry
	// holds the handle strongly, but the handle resolves the owner through
	// a weak pointer: it goes inert exactly when the owner is collected.
	kindBound
)

// ListenerFunc is the callback signature for extension point listeners.
type ListenerFunc func(r *Registry, ev ChangeEvent)

// Listener is a lifetime-aware handle to a listener callback. Handles are
// compared by identity: the same *Listener passed to
// AddExtensionPointListener must be passed to
// RemoveExtensionPointListener.
type Listener struct {
	kind  listenerKind
	call  ListenerFunc
	alive func() bool
}

// NewListener wraps a free function as a listener handle.
//
// The registry deliberately does not keep the handle alive: the caller must
// retain the returned *Listener for as long as it wants the callback to
// fire. Dropping the last reference silently (and lazily) unsubscribes.
// This trades surprise-free semantics for leak-avoidance and is part of the
// observable contract, not an implementation detail.
func NewListener(fn ListenerFunc) *Listener {
	return &Listener{
		kind:  kindFunc,
		call:  fn,
		alive: func() bool { return true },
	}
}

// BindTo wraps a method of owner as a listener handle. The handle tracks
// owner, not the transient method value: it stays live for as long as owner
// is reachable and goes inert once owner is collected, without keeping
// owner alive.
func BindTo[T any](owner *T, fn func(owner *T, r *Registry, ev ChangeEvent)) *Listener {
	wk := weak.Make(owner)
	return &Listener{
		kind: kindBound,
		call: func(r *Registry, ev ChangeEvent) {
			if o := wk.Value(); o != nil {
				fn(o, r, ev)
			}
		},
		alive: func() bool { return wk.Value() != nil },
	}
}
