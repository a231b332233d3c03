package extension

import "github.com/google/uuid"

// GroupID identifies one plugin's contribution group within an extension
// point.
type GroupID string

// contributionSet is the storage for one extension point: an ordered
// sequence of groups, one per contributing plugin, in plugin registration
// order. The externally visible value is the flattened concatenation of all
// groups.
type contributionSet struct {
	order  []GroupID
	groups map[GroupID][]any
}

func newContributionSet() *contributionSet {
	return &contributionSet{groups: make(map[GroupID][]any)}
}

// flatten returns the concatenation of all groups, in group order, item
// order within group. Always returns a fresh slice.
func (c *contributionSet) flatten() []any {
	var n int
	for _, gid := range c.order {
		n += len(c.groups[gid])
	}
	out := make([]any, 0, n)
	for _, gid := range c.order {
		out = append(out, c.groups[gid]...)
	}
	return out
}

// offsetOf returns the flattened offset of the group's first item.
func (c *contributionSet) offsetOf(gid GroupID) int {
	var off int
	for _, g := range c.order {
		if g == gid {
			break
		}
		off += len(c.groups[g])
	}
	return off
}

// append adds a new group at the end and returns its id and flattened
// offset.
func (c *contributionSet) append(items []any) (GroupID, int) {
	gid := GroupID(uuid.NewString())
	off := c.offsetOf(gid)
	c.order = append(c.order, gid)
	c.groups[gid] = append([]any(nil), items...)
	return gid, off
}

// remove deletes a group, returning its items and flattened offset.
func (c *contributionSet) remove(gid GroupID) (items []any, off int, ok bool) {
	items, ok = c.groups[gid]
	if !ok {
		return nil, 0, false
	}
	off = c.offsetOf(gid)
	delete(c.groups, gid)
	for i, g := range c.order {
		if g == gid {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	return items, off, true
}

// set replaces a group's items in place, returning the old items and the
// group's flattened offset.
func (c *contributionSet) set(gid GroupID, items []any) (old []any, off int, ok bool) {
	old, ok = c.groups[gid]
	if !ok {
		return nil, 0, false
	}
	off = c.offsetOf(gid)
	c.groups[gid] = append([]any(nil), items...)
	return old, off, true
}

// replaceAll discards every group and stores items as a single group,
// returning the previous flattened value.
func (c *contributionSet) replaceAll(items []any) (old []any) {
	old = c.flatten()
	c.order = nil
	c.groups = make(map[GroupID][]any)
	c.append(items)
	return old
}
