package binding

import (
	"reflect"
	"slices"

	"github.com/zjrosen/plugboard/extension"
	"github.com/zjrosen/plugboard/internal/log"
)

// Splice aliases the registry's positional range type.
type Splice = extension.Splice

// View is the read-only facade over a binding's cached extension list.
//
// The registry is the single source of truth: Len, At, Items and Equal
// re-derive from it on every call, so even a stale view never returns
// wrong data. The mutating methods are rejected no-ops: contributions must
// flow through the registry, never through a cached view. Rejections emit
// a warning diagnostic rather than panic so careless consumer code
// degrades to "no effect" instead of crashing the host mid-notification.
//
// The backing store is only written through splice, the trusted path the
// owning binding uses to stay aligned with positional change events.
type View struct {
	b     *Binding
	items []any
}

func newView(b *Binding, items []any) *View {
	return &View{b: b, items: items}
}

// Len returns the current number of extensions.
func (v *View) Len() int {
	return len(v.derive())
}

// At returns the extension at index i.
func (v *View) At(i int) any {
	return v.derive()[i]
}

// Items returns a copy of the current extension list.
func (v *View) Items() []any {
	return v.derive()
}

// Equal reports value equality between the current extension list and
// other.
func (v *View) Equal(other []any) bool {
	return slices.EqualFunc(v.derive(), other, reflect.DeepEqual)
}

// Append is rejected; the view is read-only.
func (v *View) Append(item any) {
	v.reject("Append")
}

// Insert is rejected; the view is read-only.
func (v *View) Insert(i int, item any) {
	v.reject("Insert")
}

// Set is rejected; the view is read-only.
func (v *View) Set(i int, item any) {
	v.reject("Set")
}

// Remove is rejected; the view is read-only.
func (v *View) Remove(i int) {
	v.reject("Remove")
}

// Pop is rejected; the view is read-only. It returns nil.
func (v *View) Pop() any {
	v.reject("Pop")
	return nil
}

// Clear is rejected; the view is read-only.
func (v *View) Clear() {
	v.reject("Clear")
}

func (v *View) reject(op string) {
	log.Warn(log.CatBinding, "extension point view cannot be mutated directly",
		"op", op, "point", v.b.pointID)
}

func (v *View) derive() []any {
	return v.b.reg.Extensions(v.b.pointID)
}

// splice applies a positional edit to the backing store. Trusted path,
// only called by the owning binding.
func (v *View) splice(s Splice, added []any) {
	out := make([]any, 0, len(v.items)-(s.End-s.Start)+len(added))
	out = append(out, v.items[:s.Start]...)
	out = append(out, added...)
	out = append(out, v.items[s.End:]...)
	v.items = out
}
