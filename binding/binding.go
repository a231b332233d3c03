package binding

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/zjrosen/plugboard/extension"
	"github.com/zjrosen/plugboard/internal/log"
)

// Observer receives the outward "value changed" notification after a full
// replace. old is the cached view that was discarded (nil if the binding
// had never been read); new is the freshly computed view.
type Observer func(old, new *View)

// ItemObserver receives positional change events after they have been
// applied to the cached view, so old and new sub-ranges can be diffed
// cheaply instead of recomputing the whole list.
type ItemObserver func(ev extension.ChangeEvent)

// Binding is a live-updating read handle onto one extension point.
type Binding struct {
	reg     *extension.Registry
	pointID string
	id      string

	view          *View
	listener      *extension.Listener
	subscribed    bool
	closed        bool
	observers     []Observer
	itemObservers []ItemObserver
}

// New creates a binding for an extension point. If the point has a
// registered declaration its shape must be an ordered sequence; binding an
// undeclared point is permitted, mirroring the registry's permissive
// reads.
func New(reg *extension.Registry, pointID string) (*Binding, error) {
	if p, ok := reg.ExtensionPoint(pointID); ok && p.Shape != extension.ShapeList {
		return nil, fmt.Errorf("%w: cannot bind %s (%s)",
			extension.ErrInvalidBindingConfiguration, pointID, p.Shape)
	}
	return &Binding{
		reg:     reg,
		pointID: pointID,
		id:      uuid.NewString(),
	}, nil
}

// PointID returns the bound extension point id.
func (b *Binding) PointID() string { return b.pointID }

// Get returns the cached read-only view of the extension point, computing
// it from the registry and subscribing for change events on first use.
// Repeated calls return the same *View until the cache is invalidated.
func (b *Binding) Get() *View {
	if b.view == nil {
		b.view = newView(b, b.reg.Extensions(b.pointID))
		b.subscribe()
		log.Debug(log.CatBinding, "view computed", "binding", b.id, "point", b.pointID)
	}
	return b.view
}

// Invalidate discards the cached view. The next Get recomputes from the
// registry. No outward notification is fired.
func (b *Binding) Invalidate() {
	b.view = nil
}

// Observe registers an observer for full-replace changes.
func (b *Binding) Observe(fn Observer) {
	b.observers = append(b.observers, fn)
}

// ObserveItems registers an observer for positional changes.
func (b *Binding) ObserveItems(fn ItemObserver) {
	b.itemObservers = append(b.itemObservers, fn)
}

// Close unsubscribes the binding from the registry and drops the cache.
// It is idempotent. A closed binding can still be read; it simply stops
// tracking changes.
func (b *Binding) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.subscribed {
		_ = b.reg.RemoveExtensionPointListener(b.listener, b.pointID)
		b.subscribed = false
	}
	b.view = nil
}

// subscribe registers a bound listener whose owner is the binding itself:
// the registry holds the binding weakly and an unused binding remains
// collectable.
func (b *Binding) subscribe() {
	if b.subscribed || b.closed {
		return
	}
	b.listener = extension.BindTo(b, func(owner *Binding, _ *extension.Registry, ev extension.ChangeEvent) {
		owner.onEvent(ev)
	})
	b.reg.AddExtensionPointListener(b.listener, b.pointID)
	b.subscribed = true
}

func (b *Binding) onEvent(ev extension.ChangeEvent) {
	if ev.Splice != nil {
		// Incremental edit: patch the cached backing store through the
		// trusted path so it stays aligned with position-based events.
		if b.view != nil {
			b.view.splice(*ev.Splice, ev.Added)
		}
		for _, fn := range slices.Clone(b.itemObservers) {
			fn(ev)
		}
		return
	}

	old := b.view
	b.view = nil
	if len(b.observers) == 0 {
		return
	}
	next := b.Get()
	for _, fn := range slices.Clone(b.observers) {
		fn(old, next)
	}
}
