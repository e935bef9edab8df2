package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/builder"
	"github.com/gabereiser/qalg/storage"
)

func TestMultiSourceConcatenatesPartsInOrder(t *testing.T) {
	require := require.New(t)

	a := storage.NewMemory("a")
	a.Insert(map[string]any{"n": 1})
	b := storage.NewMemory("b")
	b.Insert(map[string]any{"n": 2})
	b.Insert(map[string]any{"n": 3})

	combined := storage.NewMultiSource("ab", a, b)
	q := builder.C(combined).Map(builder.C0().Attr("n"))
	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{1, 2, 3}, result)
}

func TestMultiSourceWithNoPartsIsEmpty(t *testing.T) {
	require := require.New(t)

	combined := storage.NewMultiSource("empty")
	result, err := builder.C(combined).Len().Execute(context.Background())
	require.NoError(err)
	require.Equal(int64(0), result)
}
