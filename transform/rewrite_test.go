package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/ast"
)

var errRewriteFailed = errors.New("rewrite failed")

// TestNodeRewritesBottomUp mirrors the teacher's TestTransformUp shape:
// every Literal int doubles, bottom-up, and TreeIdentity reports whether
// anything changed.
func TestNodeRewritesBottomUp(t *testing.T) {
	require := require.New(t)

	tree := ast.NewAdd(
		&ast.Literal{Value: 1},
		ast.NewAdd(&ast.Literal{Value: 2}, &ast.Literal{Value: 3}),
	)

	doubled, same, err := Node(tree, func(n ast.Node) (ast.Node, TreeIdentity, error) {
		if lit, ok := n.(*ast.Literal); ok {
			if v, ok := lit.Value.(int); ok {
				return &ast.Literal{Value: v * 2}, NewTree, nil
			}
		}
		return n, SameTree, nil
	})
	require.NoError(err)
	require.Equal(NewTree, same)

	want := ast.NewAdd(
		&ast.Literal{Value: 2},
		ast.NewAdd(&ast.Literal{Value: 4}, &ast.Literal{Value: 6}),
	)
	require.True(ast.Equal(want, doubled))
}

func TestNodeReportsSameTreeWhenNothingChanges(t *testing.T) {
	require := require.New(t)

	tree := ast.NewAdd(&ast.Literal{Value: 1}, &ast.Literal{Value: 2})

	result, same, err := Node(tree, func(n ast.Node) (ast.Node, TreeIdentity, error) {
		return n, SameTree, nil
	})
	require.NoError(err)
	require.Equal(SameTree, same)
	require.Same(tree, result)
}

func TestNodePropagatesErrorFromNodeFunc(t *testing.T) {
	require := require.New(t)

	tree := ast.NewNot(&ast.Literal{Value: true})

	_, _, err := Node(tree, func(n ast.Node) (ast.Node, TreeIdentity, error) {
		if _, ok := n.(*ast.Literal); ok {
			// f itself fails; Node must return that error.
			return nil, SameTree, errRewriteFailed
		}
		return n, SameTree, nil
	})
	require.Error(err)
}
