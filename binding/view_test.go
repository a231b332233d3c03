package binding

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/plugboard/internal/log"
)

func TestView_MutationsAreRejectedNoOps(t *testing.T) {
	r := newBoundRegistry(t, 1, 2)

	b, err := New(r, "x")
	require.NoError(t, err)
	defer b.Close()

	var buf bytes.Buffer
	log.SetWriter(&buf)
	defer log.SetWriter(os.Stderr)

	v := b.Get()
	v.Append(3)
	v.Insert(0, 0)
	v.Set(0, 99)
	v.Remove(1)
	require.Nil(t, v.Pop())
	v.Clear()

	// Neither the view nor the registry changed.
	require.Equal(t, []any{1, 2}, v.Items())
	require.Equal(t, []any{1, 2}, r.Extensions("x"))

	// Each rejection emitted a diagnostic instead of panicking.
	require.Equal(t, 6, bytes.Count(buf.Bytes(), []byte("cannot be mutated")))
}

func TestView_AccessorsRederiveFromRegistry(t *testing.T) {
	r := newBoundRegistry(t, "a", "b")

	b, err := New(r, "x")
	require.NoError(t, err)
	defer b.Close()

	stale := b.Get()
	require.NoError(t, r.SetExtensions("x", []any{"z"}))

	// The cache was discarded, but a holder of the old view still sees
	// the registry's current value: the registry is the source of truth.
	require.Equal(t, 1, stale.Len())
	require.Equal(t, "z", stale.At(0))
	require.Equal(t, []any{"z"}, stale.Items())
	require.True(t, stale.Equal([]any{"z"}))
	require.False(t, stale.Equal([]any{"a", "b"}))
}

func TestView_EqualIsValueEquality(t *testing.T) {
	r := newBoundRegistry(t, []string{"nested"}, 2)

	b, err := New(r, "x")
	require.NoError(t, err)
	defer b.Close()

	v := b.Get()
	require.True(t, v.Equal([]any{[]string{"nested"}, 2}))
	require.False(t, v.Equal([]any{[]string{"other"}, 2}))
	require.False(t, v.Equal([]any{2}))
}
