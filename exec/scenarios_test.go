package exec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/builder"
	"github.com/gabereiser/qalg/exec"
	"github.com/gabereiser/qalg/qerr"
	"github.com/gabereiser/qalg/storage"
)

// listSource is a minimal ast.Source/exec.Iterable over an already-built
// []any, used where storage.Memory's row-of-maps shape does not fit
// (plain numbers, nested lists).
type listSource struct {
	name  string
	items []any
}

func (s *listSource) SourceName() string { return s.name }
func (s *listSource) Iterate(ctx context.Context) (exec.Sequence, error) {
	return &listSeq{items: s.items}, nil
}

type listSeq struct {
	items []any
	i     int
}

func (s *listSeq) Next(ctx context.Context) (any, bool, error) {
	if s.i >= len(s.items) {
		return nil, false, nil
	}
	v := s.items[s.i]
	s.i++
	return v, true, nil
}

func memoryOf(t *testing.T, rows ...map[string]any) *storage.Memory {
	t.Helper()
	m := storage.NewMemory(t.Name())
	for _, r := range rows {
		m.Insert(r)
	}
	return m
}

// S1: storage.filter(C.age > 2).map(C.age).sort() over
// [{age:2},{age:5},{age:3}] yields [3, 5].
func TestScenarioS1(t *testing.T) {
	require := require.New(t)
	src := memoryOf(t,
		map[string]any{"age": 2},
		map[string]any{"age": 5},
		map[string]any{"age": 3},
	)

	q := builder.C(src).
		Filter(builder.C0().Attr("age").Gt(2)).
		Map(builder.C0().Attr("age")).
		Sort()

	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{3, 5}, result)
}

// S2: storage.filter(C > 1 & C < 4).sum() over [1,2,3,4] yields 5.
func TestScenarioS2(t *testing.T) {
	require := require.New(t)
	src := &listSource{name: "ints", items: []any{1, 2, 3, 4}}

	predicate := builder.C0().Gt(1).And(builder.C0().Lt(4))
	q := builder.C(src).Filter(predicate).Sum()

	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal(int64(5), result)
}

// S3: storage.groupby(C.k, total=C.map(C.v).sum()) over
// [{k:"a",v:1},{k:"b",v:2},{k:"a",v:3}] yields, in first-appearance
// order of k: [{key:"a",total:4},{key:"b",total:2}].
func TestScenarioS3(t *testing.T) {
	require := require.New(t)
	src := memoryOf(t,
		map[string]any{"k": "a", "v": 1},
		map[string]any{"k": "b", "v": 2},
		map[string]any{"k": "a", "v": 3},
	)

	total := builder.C0().Map(builder.C0().Attr("v")).Sum()
	q := builder.C(src).Groupby(builder.C0().Attr("k"), "key", builder.Aggr("total", total))

	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{
		map[string]any{"key": "a", "total": int64(4)},
		map[string]any{"key": "b", "total": int64(2)},
	}, result)
}

// S4: storage.filter(C.n == "A").one() over [{n:"A"},{n:"B"}] yields
// {n:"A"}; no match yields nil; two matches fails MultipleResults.
func TestScenarioS4(t *testing.T) {
	require := require.New(t)
	src := memoryOf(t,
		map[string]any{"n": "A"},
		map[string]any{"n": "B"},
	)

	q := builder.C(src).Filter(builder.C0().Attr("n").Eq("A")).One()
	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal(map[string]any{"n": "A"}, result)

	none := builder.C(src).Filter(builder.C0().Attr("n").Eq("Z")).One()
	result, err = none.Execute(context.Background())
	require.NoError(err)
	require.Nil(result)

	dup := memoryOf(t, map[string]any{"n": "A"}, map[string]any{"n": "A"})
	both := builder.C(dup).Filter(builder.C0().Attr("n").Eq("A")).One()
	_, err = both.Execute(context.Background())
	require.Error(err)
	require.True(qerr.MultipleResults.Is(err))
}

// S5: storage.map(C.len()) over [[1,2],[3,4,5]] yields [2, 3]; and
// storage.map(C.map(C(-1).len() + C)) over the same input yields
// [[3,4],[6,7,8]].
func TestScenarioS5(t *testing.T) {
	require := require.New(t)
	src := &listSource{name: "lists", items: []any{
		[]any{1, 2},
		[]any{3, 4, 5},
	}}

	lens := builder.C(src).Map(builder.C0().Len())
	result, err := lens.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{int64(2), int64(3)}, result)

	inner := builder.C0().Map(builder.Ctx(-1).Len().Add(builder.C0()))
	nested := builder.C(src).Map(inner)
	result, err = nested.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{
		[]any{int64(3), int64(4)},
		[]any{int64(6), int64(7), int64(8)},
	}, result)
}

// S6: storage.sort(-C.age) over [{age:1},{age:3},{age:2}] yields
// [{age:3},{age:2},{age:1}].
func TestScenarioS6(t *testing.T) {
	require := require.New(t)
	src := memoryOf(t,
		map[string]any{"age": 1},
		map[string]any{"age": 3},
		map[string]any{"age": 2},
	)

	q := builder.C(src).Sort(builder.C0().Attr("age").Neg())
	result, err := q.Execute(context.Background())
	require.NoError(err)
	require.Equal([]any{
		map[string]any{"age": 3},
		map[string]any{"age": 2},
		map[string]any{"age": 1},
	}, result)
}

// Property 6: And/Or short-circuit.
func TestShortCircuitAndOr(t *testing.T) {
	require := require.New(t)

	evaluated := false
	poison := &pureFalsePoison{evaluated: &evaluated}

	// And(false, poison) must not evaluate poison.
	q := builder.Lift(false).And(poisonExpr(poison))
	_, err := q.Execute(context.Background())
	require.NoError(err)
	require.False(evaluated)

	evaluated = false
	orQ := builder.Lift(true).Or(poisonExpr(poison))
	_, err = orQ.Execute(context.Background())
	require.NoError(err)
	require.False(evaluated)
}

// pureFalsePoison and poisonExpr let a test node record whether it was
// ever evaluated, by wrapping it as a StoredItems whose Iterate call
// flips a flag — used only to prove short-circuiting skips evaluation.
type pureFalsePoison struct {
	evaluated *bool
}

func (p *pureFalsePoison) SourceName() string { return "poison" }
func (p *pureFalsePoison) Iterate(ctx context.Context) (exec.Sequence, error) {
	*p.evaluated = true
	return &listSeq{}, nil
}

func poisonExpr(p *pureFalsePoison) builder.Expr {
	return builder.C(p).Len().Gt(0)
}
