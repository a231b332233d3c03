package contrib

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plugboard/extension"
)

func TestTable_ApplyContributesGroupsInOrder(t *testing.T) {
	r := extension.New()
	require.NoError(t, r.AddExtensionPoint(extension.Point{ID: "acme.messages"}))
	require.NoError(t, r.AddExtensionPoint(extension.Point{ID: "acme.commands"}))

	tbl := NewTable()
	tbl.Contribute("acme.messages", func() []any { return []any{"hello", "hola"} })
	tbl.Contribute("acme.commands", func() []any { return []any{"quit"} })
	tbl.Contribute("acme.messages", func() []any { return []any{"bonjour"} })

	gids, err := tbl.Apply(r)
	require.NoError(t, err)
	require.Len(t, gids, 3)

	require.Equal(t, []any{"hello", "hola", "bonjour"}, r.Extensions("acme.messages"))
	require.Equal(t, []any{"quit"}, r.Extensions("acme.commands"))
}

func TestTable_ApplyPerInstanceGroups(t *testing.T) {
	r := extension.New()
	require.NoError(t, r.AddExtensionPoint(extension.Point{ID: "acme.messages"}))

	tbl := NewTable()
	tbl.Contribute("acme.messages", func() []any { return []any{"hi"} })

	// One table applied per component instance: each apply lands as a
	// distinct retractable group.
	gids1, err := tbl.Apply(r)
	require.NoError(t, err)
	gids2, err := tbl.Apply(r)
	require.NoError(t, err)

	require.Equal(t, []any{"hi", "hi"}, r.Extensions("acme.messages"))

	require.NoError(t, r.RetractGroup("acme.messages", gids1[0]))
	require.Equal(t, []any{"hi"}, r.Extensions("acme.messages"))
	require.NoError(t, r.RetractGroup("acme.messages", gids2[0]))
}

func TestTable_ApplyStopsAtUnknownPoint(t *testing.T) {
	r := extension.New()
	require.NoError(t, r.AddExtensionPoint(extension.Point{ID: "known"}))

	tbl := NewTable()
	tbl.Contribute("known", func() []any { return []any{1} })
	tbl.Contribute("unknown", func() []any { return []any{2} })

	gids, err := tbl.Apply(r)
	require.ErrorIs(t, err, extension.ErrUnknownExtensionPoint)
	require.Len(t, gids, 1)
}

func TestTable_Points(t *testing.T) {
	tbl := NewTable()
	tbl.Contribute("a", func() []any { return nil })
	tbl.Contribute("b", func() []any { return nil })
	tbl.Contribute("a", func() []any { return nil })

	require.Equal(t, []string{"a", "b"}, tbl.Points())
}
