package binding

import (
	"github.com/zjrosen/plugboard/extension"
	"github.com/zjrosen/plugboard/internal/log"
)

// Table is the declarative binding surface: it lets a consumer object
// declare named properties bound to extension points and look them up by
// (owner, name). Owners are held strongly and compared by interface
// equality, so owners must be comparable (pointers in practice). An owner
// that goes away must call DisconnectAll; the table cannot observe
// destruction itself.
type Table struct {
	reg     *extension.Registry
	byOwner map[any]map[string]*Binding
}

// NewTable creates an empty binding table over a registry.
func NewTable(reg *extension.Registry) *Table {
	return &Table{
		reg:     reg,
		byOwner: make(map[any]map[string]*Binding),
	}
}

// Bind declares a property of owner named name as bound to an extension
// point, creating the binding lazily. Binding the same (owner, name) pair
// twice returns the existing binding regardless of pointID.
func (t *Table) Bind(owner any, name string, pointID string) (*Binding, error) {
	bindings, ok := t.byOwner[owner]
	if !ok {
		bindings = make(map[string]*Binding)
		t.byOwner[owner] = bindings
	}
	if b, ok := bindings[name]; ok {
		return b, nil
	}

	b, err := New(t.reg, pointID)
	if err != nil {
		return nil, err
	}
	bindings[name] = b
	log.Debug(log.CatBinding, "property bound", "name", name, "point", pointID)
	return b, nil
}

// Get returns the binding declared for (owner, name).
func (t *Table) Get(owner any, name string) (*Binding, bool) {
	b, ok := t.byOwner[owner][name]
	return b, ok
}

// DisconnectAll closes and forgets every binding declared for owner. It is
// idempotent and safe to call for an owner with no bindings.
func (t *Table) DisconnectAll(owner any) {
	for _, b := range t.byOwner[owner] {
		b.Close()
	}
	delete(t.byOwner, owner)
}
