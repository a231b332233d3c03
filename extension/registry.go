package extension

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/plugboard/internal/log"
)

// Config configures a Registry.
type Config struct {
	// TracerProvider receives spans for registry mutations and dispatch.
	// When nil, a no-op provider is used and tracing has zero overhead.
	TracerProvider trace.TracerProvider
}

// Registry owns the mapping from extension point ids to contributed
// values and the listener subscriptions observing them. See the package
// documentation for the concurrency model.
type Registry struct {
	points    map[string]Point
	contribs  map[string]*contributionSet
	listeners *listenerTable
	tracer    trace.Tracer
}

// New creates an empty registry with tracing disabled.
func New() *Registry {
	return NewWithConfig(Config{})
}

// NewWithConfig creates an empty registry.
func NewWithConfig(cfg Config) *Registry {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &Registry{
		points:    make(map[string]Point),
		contribs:  make(map[string]*contributionSet),
		listeners: newListenerTable(),
		tracer:    tp.Tracer("plugboard/extension"),
	}
}

// AddExtensionPoint registers an extension point declaration. Registering
// an id twice replaces the declaration. Contributions that already exist
// under the id are not an error; they become visible through the declared
// point as-is and no synthetic change event is fired for them.
func (r *Registry) AddExtensionPoint(p Point) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.points[p.ID] = p
	log.Debug(log.CatRegistry, "extension point added", "id", p.ID)
	return nil
}

// RemoveExtensionPoint deletes an extension point declaration together
// with all of its contributions, and notifies matching listeners with a
// full-replace event removing the prior flattened value.
func (r *Registry) RemoveExtensionPoint(id string) error {
	if _, ok := r.points[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExtensionPoint, id)
	}
	delete(r.points, id)

	var old []any
	if set, ok := r.contribs[id]; ok {
		old = set.flatten()
		delete(r.contribs, id)
	}

	r.dispatch(ChangeEvent{PointID: id, Removed: old})
	log.Debug(log.CatRegistry, "extension point removed", "id", id)
	return nil
}

// ExtensionPoint returns the declaration registered under id.
func (r *Registry) ExtensionPoint(id string) (Point, bool) {
	p, ok := r.points[id]
	return p, ok
}

// ExtensionPoints returns all registered declarations, sorted by id.
func (r *Registry) ExtensionPoints() []Point {
	out := make([]Point, 0, len(r.points))
	for _, p := range r.points {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Point) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Extensions returns the flattened value contributed to an extension
// point. Reads are permissive: an id with no contributions, declared or
// not, yields an empty slice.
func (r *Registry) Extensions(id string) []any {
	return r.contributionSetFor(id).flatten()
}

// SetExtensions replaces the entire contributed value of a registered
// extension point with a single group. Listeners are notified with a
// full-replace event even when the new value equals the old one; callers
// are expected to avoid redundant calls.
func (r *Registry) SetExtensions(id string, items []any) error {
	if _, ok := r.points[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExtensionPoint, id)
	}

	_, span := r.tracer.Start(context.Background(), "extension.set",
		trace.WithAttributes(
			attribute.String("extension.point", id),
			attribute.Int("extension.count", len(items)),
		))
	defer span.End()

	old := r.contributionSetFor(id).replaceAll(items)
	r.dispatch(ChangeEvent{
		PointID: id,
		Added:   append([]any(nil), items...),
		Removed: old,
	})
	return nil
}

// ContributeGroup appends one plugin's contribution group to a registered
// extension point, preserving plugin registration order. Listeners are
// notified with a positional splice event so cache holders can apply the
// insert incrementally.
func (r *Registry) ContributeGroup(id string, items []any) (GroupID, error) {
	if _, ok := r.points[id]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownExtensionPoint, id)
	}

	_, span := r.tracer.Start(context.Background(), "extension.contribute",
		trace.WithAttributes(
			attribute.String("extension.point", id),
			attribute.Int("extension.count", len(items)),
		))
	defer span.End()

	gid, off := r.contributionSetFor(id).append(items)
	r.dispatch(ChangeEvent{
		PointID: id,
		Added:   append([]any(nil), items...),
		Splice:  &Splice{Start: off, End: off},
	})
	return gid, nil
}

// RetractGroup removes a contribution group. Listeners are notified with a
// positional splice event deleting the group's flattened range.
func (r *Registry) RetractGroup(id string, gid GroupID) error {
	if _, ok := r.points[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExtensionPoint, id)
	}
	items, off, ok := r.contributionSetFor(id).remove(gid)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrUnknownGroup, gid, id)
	}
	r.dispatch(ChangeEvent{
		PointID: id,
		Removed: append([]any(nil), items...),
		Splice:  &Splice{Start: off, End: off + len(items)},
	})
	return nil
}

// SetGroup replaces one contribution group's items in place, keeping the
// group's position. Listeners are notified with a positional splice event
// covering the group's old flattened range.
func (r *Registry) SetGroup(id string, gid GroupID, items []any) error {
	if _, ok := r.points[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownExtensionPoint, id)
	}
	old, off, ok := r.contributionSetFor(id).set(gid, items)
	if !ok {
		return fmt.Errorf("%w: %s in %s", ErrUnknownGroup, gid, id)
	}
	r.dispatch(ChangeEvent{
		PointID: id,
		Added:   append([]any(nil), items...),
		Removed: append([]any(nil), old...),
		Splice:  &Splice{Start: off, End: off + len(old)},
	})
	return nil
}

// AddExtensionPointListener subscribes a listener handle to change events
// for one extension point, or for every extension point when id is
// AnyPoint. See NewListener and BindTo for the lifetime semantics of the
// handle.
func (r *Registry) AddExtensionPointListener(l *Listener, id string) {
	r.listeners.add(l, id)
}

// RemoveExtensionPointListener unsubscribes the exact (handle, id) pair
// passed to AddExtensionPointListener.
func (r *Registry) RemoveExtensionPointListener(l *Listener, id string) error {
	return r.listeners.remove(l, id)
}

// contributionSetFor returns the contribution storage for id, creating it
// lazily. Storage exists independently of the declaration: reads and group
// bookkeeping are permitted before a Point is registered.
func (r *Registry) contributionSetFor(id string) *contributionSet {
	set, ok := r.contribs[id]
	if !ok {
		set = newContributionSet()
		r.contribs[id] = set
	}
	return set
}

// dispatch invokes listeners for the event: exact-id subscribers first,
// then wildcard subscribers, each in registration order. Expired handles
// are skipped silently and pruned afterwards.
func (r *Registry) dispatch(ev ChangeEvent) {
	refs := r.listeners.refsFor(ev.PointID)
	if len(refs) == 0 {
		return
	}

	_, span := r.tracer.Start(context.Background(), "extension.dispatch",
		trace.WithAttributes(
			attribute.String("extension.point", ev.PointID),
			attribute.Int("extension.listeners", len(refs)),
		))
	defer span.End()

	for _, ref := range refs {
		l, ok := ref.resolve()
		if !ok {
			continue
		}
		l.call(r, ev)
	}
	r.listeners.prune(ev.PointID)
}
