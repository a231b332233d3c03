package extension

import "fmt"

// Shape describes the collection shape of an extension point's aggregated
// value. Only ShapeList is currently bindable; the other shapes are
// declared for forward compatibility and rejected eagerly at registration.
type Shape int

const (
	// ShapeList is an ordered sequence. This is the only shape the
	// registry and binding layer support today.
	ShapeList Shape = iota

	// ShapeSet is an unordered collection. Reserved, not yet supported.
	ShapeSet

	// ShapeMap is a keyed collection. Reserved, not yet supported.
	ShapeMap
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeSet:
		return "set"
	case ShapeMap:
		return "map"
	default:
		return "unknown"
	}
}

// Point declares an extension point: its globally unique dotted id, the
// collection shape contributions must aggregate into, and a human-readable
// description.
type Point struct {
	ID          string
	Shape       Shape
	Description string
}

// Validate checks that the declaration can be registered. Non-list shapes
// are registrable; they are rejected later, at binding declaration time.
func (p Point) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: extension point must have an id", ErrInvalidBindingConfiguration)
	}
	return nil
}
