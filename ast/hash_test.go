package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAgreesWithEqualForDistinctPointers(t *testing.T) {
	require := require.New(t)

	a := NewAdd(&Literal{Value: 1}, &Attribute{Subject: &StoredItems{Storage: nil}, Name: "x"})
	b := NewAdd(&Literal{Value: 1}, &Attribute{Subject: &StoredItems{Storage: nil}, Name: "x"})
	require.NotSame(a, b)
	require.True(Equal(a, b))

	ha, err := Hash(a)
	require.NoError(err)
	hb, err := Hash(b)
	require.NoError(err)
	require.Equal(ha, hb)
}

func TestHashDistinguishesDifferentChildren(t *testing.T) {
	require := require.New(t)

	a := NewAdd(&Literal{Value: 1}, &Literal{Value: 2})
	b := NewAdd(&Literal{Value: 1}, &Literal{Value: 3})
	require.False(Equal(a, b))

	ha, err := Hash(a)
	require.NoError(err)
	hb, err := Hash(b)
	require.NoError(err)
	require.NotEqual(ha, hb, "binary operands must not be skipped by reflection")
}

func TestHashDistinguishesDifferentUnarySubjects(t *testing.T) {
	require := require.New(t)

	a := NewLower(&Literal{Value: "a"})
	b := NewLower(&Literal{Value: "b"})

	ha, err := Hash(a)
	require.NoError(err)
	hb, err := Hash(b)
	require.NoError(err)
	require.NotEqual(ha, hb, "unary subject must not be skipped by reflection")
}
