// Package contrib provides declarative contribution machinery on top of
// the extension registry: per-component contribution tables consulted by
// a plugin host when instantiating a component, and YAML manifests
// declaring extension points.
package contrib

import (
	"github.com/zjrosen/plugboard/extension"
	"github.com/zjrosen/plugboard/internal/log"
)

// Provider produces the items one component contributes to one extension
// point. It is called each time the table is applied.
type Provider func() []any

type entry struct {
	pointID  string
	provider Provider
}

// Table maps providers to target extension point ids. A host builds one
// table per component type and applies it once per component instance;
// each provider's items land in the registry as one contribution group.
type Table struct {
	entries []entry
}

// NewTable creates an empty contribution table.
func NewTable() *Table {
	return &Table{}
}

// Contribute registers a provider for an extension point. Declaration
// order is preserved and becomes group order when applied.
func (t *Table) Contribute(pointID string, p Provider) {
	t.entries = append(t.entries, entry{pointID: pointID, provider: p})
}

// Points returns the distinct target extension point ids in declaration
// order.
func (t *Table) Points() []string {
	seen := make(map[string]struct{}, len(t.entries))
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		if _, ok := seen[e.pointID]; ok {
			continue
		}
		seen[e.pointID] = struct{}{}
		out = append(out, e.pointID)
	}
	return out
}

// Apply contributes every provider's items to the registry as one group
// per entry, in declaration order, and returns the created group ids. The
// first failing contribution aborts the apply; groups contributed before
// the failure remain.
func (t *Table) Apply(r *extension.Registry) ([]extension.GroupID, error) {
	gids := make([]extension.GroupID, 0, len(t.entries))
	for _, e := range t.entries {
		gid, err := r.ContributeGroup(e.pointID, e.provider())
		if err != nil {
			return gids, err
		}
		gids = append(gids, gid)
		log.Debug(log.CatContrib, "group contributed", "point", e.pointID, "group", gid)
	}
	return gids, nil
}
