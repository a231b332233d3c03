package extension

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// modelGroup mirrors one contribution group outside the registry.
type modelGroup struct {
	gid   GroupID
	items []any
}

func flattenModel(groups []modelGroup) []any {
	out := []any{}
	for _, g := range groups {
		out = append(out, g.items...)
	}
	return out
}

func drawItems(t *rapid.T, label string) []any {
	ints := rapid.SliceOfN(rapid.IntRange(0, 9), 0, 4).Draw(t, label)
	items := make([]any, len(ints))
	for i, v := range ints {
		items[i] = v
	}
	return items
}

// TestRegistry_GroupOpsMatchModel drives random sequences of group and
// replace operations and checks the flattened value against an
// independent model after every step.
func TestRegistry_GroupOpsMatchModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New()
		require.NoError(t, r.AddExtensionPoint(Point{ID: "p"}))

		var groups []modelGroup

		numOps := rapid.IntRange(1, 40).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			op := rapid.IntRange(0, 3).Draw(t, "op")
			switch {
			case op == 0:
				items := drawItems(t, "contribute")
				gid, err := r.ContributeGroup("p", items)
				require.NoError(t, err)
				groups = append(groups, modelGroup{gid: gid, items: items})

			case op == 1 && len(groups) > 0:
				idx := rapid.IntRange(0, len(groups)-1).Draw(t, "retractIdx")
				require.NoError(t, r.RetractGroup("p", groups[idx].gid))
				groups = append(groups[:idx], groups[idx+1:]...)

			case op == 2 && len(groups) > 0:
				idx := rapid.IntRange(0, len(groups)-1).Draw(t, "setIdx")
				items := drawItems(t, "setGroup")
				require.NoError(t, r.SetGroup("p", groups[idx].gid, items))
				groups[idx].items = items

			default:
				items := drawItems(t, "replace")
				require.NoError(t, r.SetExtensions("p", items))
				// SetExtensions collapses everything into one group whose
				// id the model does not track further.
				groups = []modelGroup{{gid: "", items: items}}
			}

			require.Equal(t, flattenModel(groups), r.Extensions("p"))
		}
	})
}

// TestRegistry_EventReplayReconstructsState checks that a listener which
// only applies change events to its own mirror, full replaces and
// positional splices alike, always converges on the registry's flattened
// value. This is the property the binding cache relies on.
func TestRegistry_EventReplayReconstructsState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := New()
		require.NoError(t, r.AddExtensionPoint(Point{ID: "p"}))

		mirror := []any{}
		h := NewListener(func(reg *Registry, ev ChangeEvent) {
			mirror = ev.Apply(mirror)
		})
		r.AddExtensionPointListener(h, "p")

		var gids []GroupID

		numOps := rapid.IntRange(1, 40).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			op := rapid.IntRange(0, 3).Draw(t, "op")
			switch {
			case op == 0:
				gid, err := r.ContributeGroup("p", drawItems(t, "contribute"))
				require.NoError(t, err)
				gids = append(gids, gid)

			case op == 1 && len(gids) > 0:
				idx := rapid.IntRange(0, len(gids)-1).Draw(t, "retractIdx")
				require.NoError(t, r.RetractGroup("p", gids[idx]))
				gids = append(gids[:idx], gids[idx+1:]...)

			case op == 2 && len(gids) > 0:
				idx := rapid.IntRange(0, len(gids)-1).Draw(t, "setIdx")
				require.NoError(t, r.SetGroup("p", gids[idx], drawItems(t, "setGroup")))

			default:
				require.NoError(t, r.SetExtensions("p", drawItems(t, "replace")))
				gids = nil
			}

			require.Equal(t, r.Extensions("p"), mirror)
		}

		runtime.KeepAlive(h)
	})
}
