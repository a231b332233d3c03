package extension

// Splice is a half-open positional range [Start, End) into the flattened
// extension list.
type Splice struct {
	Start int
	End   int
}

// ChangeEvent describes one mutation of one extension point.
//
// A nil Splice means a full replace: the old contents are Removed and the
// new contents are Added, and cache holders should recompute from the
// registry. A non-nil Splice is an incremental edit at that position:
// Removed occupied [Start, End) and has been replaced by Added, and cache
// holders may apply the edit in place instead of re-fetching.
type ChangeEvent struct {
	PointID string
	Added   []any
	Removed []any
	Splice  *Splice
}

// Apply splices the event into items and returns the result. It is the
// canonical interpretation of an event for holders that mirror the
// flattened list; a full-replace event yields Added.
func (ev ChangeEvent) Apply(items []any) []any {
	if ev.Splice == nil {
		out := make([]any, len(ev.Added))
		copy(out, ev.Added)
		return out
	}
	out := make([]any, 0, len(items)-(ev.Splice.End-ev.Splice.Start)+len(ev.Added))
	out = append(out, items[:ev.Splice.Start]...)
	out = append(out, ev.Added...)
	out = append(out, items[ev.Splice.End:]...)
	return out
}
