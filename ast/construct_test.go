package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAndSimplification(t *testing.T) {
	require := require.New(t)

	x := &CurrentContext{ScopeDepth: 0}

	require.Equal(&Literal{Value: false}, NewAnd(&Literal{Value: false}, x))
	require.Equal(&Literal{Value: false}, NewAnd(x, &Literal{Value: false}))
	require.True(Equal(x, NewAnd(&Literal{Value: true}, x)))
	require.True(Equal(x, NewAnd(x, &Literal{Value: true})))

	plain := NewAnd(x, &Literal{Value: 1})
	_, ok := plain.(*And)
	require.True(ok)
}

func TestNewOrSimplification(t *testing.T) {
	require := require.New(t)

	x := &CurrentContext{ScopeDepth: 0}

	require.Equal(&Literal{Value: true}, NewOr(&Literal{Value: true}, x))
	require.Equal(&Literal{Value: true}, NewOr(x, &Literal{Value: true}))
	require.True(Equal(x, NewOr(&Literal{Value: false}, x)))
	require.True(Equal(x, NewOr(x, &Literal{Value: false})))
}

func TestNewAndFoldsRedundantConjunct(t *testing.T) {
	require := require.New(t)

	// Two distinct *Eq nodes, structurally identical: redundant() should
	// catch this via Hash+Equal and fold to the first operand rather than
	// building a new *And wrapping two copies of the same predicate.
	left := &Eq{BinaryOperands{&CurrentContext{ScopeDepth: 0}, &Literal{Value: 1}}}
	right := &Eq{BinaryOperands{&CurrentContext{ScopeDepth: 0}, &Literal{Value: 1}}}
	require.NotSame(left, right)

	got := NewAnd(left, right)
	require.Same(Node(left), got)

	_, isAnd := got.(*And)
	require.False(isAnd, "a redundant conjunction must not build an And node")
}

func TestNewOrFoldsRedundantDisjunct(t *testing.T) {
	require := require.New(t)

	left := &Eq{BinaryOperands{&CurrentContext{ScopeDepth: 1}, &Literal{Value: "x"}}}
	right := &Eq{BinaryOperands{&CurrentContext{ScopeDepth: 1}, &Literal{Value: "x"}}}
	require.NotSame(left, right)

	got := NewOr(left, right)
	require.Same(Node(left), got)

	_, isOr := got.(*Or)
	require.False(isOr, "a redundant disjunction must not build an Or node")
}

func TestNewAndDoesNotFoldDifferentConjuncts(t *testing.T) {
	require := require.New(t)

	left := &Eq{BinaryOperands{&CurrentContext{ScopeDepth: 0}, &Literal{Value: 1}}}
	right := &Eq{BinaryOperands{&CurrentContext{ScopeDepth: 0}, &Literal{Value: 2}}}

	got := NewAnd(left, right)
	and, ok := got.(*And)
	require.True(ok)
	require.Same(Node(left), and.Subject)
	require.Same(Node(right), and.Other)
}

func TestNewNotSimplification(t *testing.T) {
	require := require.New(t)

	require.Equal(&Literal{Value: false}, NewNot(&Literal{Value: true}))
	require.Equal(&Literal{Value: true}, NewNot(&Literal{Value: false}))

	x := &CurrentContext{ScopeDepth: 0}
	n, ok := NewNot(x).(*Not)
	require.True(ok)
	require.True(Equal(x, n.Subject))
}

func TestNewFilterIdentityAndFlattening(t *testing.T) {
	require := require.New(t)

	subject := &StoredItems{}
	p1 := &Eq{BinaryOperands{&CurrentContext{}, &Literal{Value: 1}}}
	p2 := &Eq{BinaryOperands{&CurrentContext{}, &Literal{Value: 2}}}

	require.True(Equal(subject, NewFilter(subject, &Literal{Value: true})))

	first := NewFilter(subject, p1)
	flattened := NewFilter(first, p2)

	f, ok := flattened.(*Filter)
	require.True(ok)
	require.True(Equal(subject, f.Subject))

	want := NewAnd(p1, p2)
	require.True(Equal(want, f.Predicate))
}

func TestLiftScalarsBecomeLiterals(t *testing.T) {
	require := require.New(t)

	n := Lift(42)
	lit, ok := n.(*Literal)
	require.True(ok)
	require.Equal(42, lit.Value)
}

func TestLiftSliceBecomesListCollection(t *testing.T) {
	require := require.New(t)

	n := Lift([]any{1, "a", true})
	c, ok := n.(*Collection)
	require.True(ok)
	require.Equal(ListKind, c.CKind)
	require.Len(c.Elems, 3)
}

func TestLiftMapBecomesSortedMappingCollection(t *testing.T) {
	require := require.New(t)

	n := Lift(map[string]any{"b": 2, "a": 1})
	c, ok := n.(*Collection)
	require.True(ok)
	require.Equal(MappingKind, c.CKind)
	require.Equal([]string{"a", "b"}, c.Keys)
}

func TestEqualityIsStructuralNotPointer(t *testing.T) {
	require := require.New(t)

	a := NewAdd(&Literal{Value: 1}, &Literal{Value: 2})
	b := NewAdd(&Literal{Value: 1}, &Literal{Value: 2})
	require.NotSame(a, b)
	require.True(Equal(a, b))

	c := NewAdd(&Literal{Value: 1}, &Literal{Value: 3})
	require.False(Equal(a, c))
}

func TestChainLeaf(t *testing.T) {
	require := require.New(t)

	src := &StoredItems{}
	q := NewFilter(src, &Literal{Value: true})
	q = NewAttribute(q, "name")
	q = NewLower(q)

	require.Same(src, ChainLeaf(q))
}

func TestChainStopsAtBinaryOperation(t *testing.T) {
	require := require.New(t)

	src := &StoredItems{}
	left := NewAttribute(src, "a")
	sum := NewAdd(left, &Literal{Value: 1})

	// Add has two subjects, so it is not part of any chain: the chain
	// rooted at sum is just itself.
	require.Equal([]Node{sum}, Chain(sum))
}
