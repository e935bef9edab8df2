package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/builder"
	"github.com/gabereiser/qalg/storage"
)

func TestMemoryIterateSnapshotsRows(t *testing.T) {
	require := require.New(t)

	m := storage.NewMemory("people")
	m.Insert(map[string]any{"name": "Ada"})

	seq, err := m.Iterate(context.Background())
	require.NoError(err)

	m.Insert(map[string]any{"name": "Grace"}) // inserted after the snapshot

	v, ok, err := seq.Next(context.Background())
	require.NoError(err)
	require.True(ok)
	require.Equal(map[string]any{"name": "Ada"}, v)

	_, ok, err = seq.Next(context.Background())
	require.NoError(err)
	require.False(ok)
}

// TestEqualityFilterTranslatesNatively exercises the fast path: a direct
// equality Filter over this table gets served without falling back to
// the in-memory evaluator (property 4: when a backend accepts an AST,
// its result must agree with in-memory evaluation).
func TestEqualityFilterTranslatesNatively(t *testing.T) {
	require := require.New(t)

	m := storage.NewMemory("people")
	m.Insert(map[string]any{"name": "Ada", "age": 36})
	m.Insert(map[string]any{"name": "Grace", "age": 85})

	q := builder.C(m).Filter(builder.C0().Attr("name").Eq("Ada"))
	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{map[string]any{"name": "Ada", "age": 36}}, result)
}

// TestUnsupportedFilterFallsBackToInMemory exercises a predicate shape
// Translate rejects (a Gt rather than an Eq): the executor must fall
// back transparently and still produce the right answer.
func TestUnsupportedFilterFallsBackToInMemory(t *testing.T) {
	require := require.New(t)

	m := storage.NewMemory("people")
	m.Insert(map[string]any{"name": "Ada", "age": 36})
	m.Insert(map[string]any{"name": "Grace", "age": 85})

	q := builder.C(m).Filter(builder.C0().Attr("age").Gt(40))
	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{map[string]any{"name": "Grace", "age": 85}}, result)
}
