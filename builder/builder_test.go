package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/builder"
	"github.com/gabereiser/qalg/storage"
)

func TestAttrOnReservedNamePanics(t *testing.T) {
	require := require.New(t)
	require.Panics(func() {
		builder.C0().Attr("filter")
	})
}

func TestCtxPositiveDepthPanics(t *testing.T) {
	require := require.New(t)
	require.Panics(func() {
		builder.Ctx(1)
	})
}

func TestFilterKeywordShorthandConjoinsEquality(t *testing.T) {
	require := require.New(t)

	q := builder.C0().Filter(builder.Lift(true), builder.Kw("status", "active"))
	f, ok := q.Node().(*ast.Filter)
	require.True(ok)

	want := ast.NewAnd(&ast.Literal{Value: true}, ast.NewEq(
		ast.NewAttribute(&ast.CurrentContext{ScopeDepth: 0}, "status"),
		&ast.Literal{Value: "active"},
	))
	require.True(ast.Equal(want, f.Predicate))
}

func TestSortUnwrapsNegIntoReverseFlag(t *testing.T) {
	require := require.New(t)

	key := builder.C0().Attr("age").Neg()
	q := builder.C0().Sort(key)

	s, ok := q.Node().(*ast.Sort)
	require.True(ok)
	require.Len(s.Keys, 1)
	require.True(s.Keys[0].Reverse)
	require.True(ast.Equal(ast.NewAttribute(&ast.CurrentContext{ScopeDepth: 0}, "age"), s.Keys[0].Expr))
}

func TestGroupbyRejectsAggregateNameCollidingWithKey(t *testing.T) {
	require := require.New(t)

	m := storage.NewMemory("t")
	m.Insert(map[string]any{"k": "a"})

	q := builder.C(m).Groupby(builder.C0().Attr("k"), "", builder.Aggr("key", builder.C0().Sum()))
	_, err := q.Execute(context.Background())
	require.Error(err)
}

func TestLiftWrapsHostValuesAsLiterals(t *testing.T) {
	require := require.New(t)

	e := builder.Lift(7)
	lit, ok := e.Node().(*ast.Literal)
	require.True(ok)
	require.Equal(7, lit.Value)
}
