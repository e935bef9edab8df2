package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/ast"
)

func TestCopyReplaceSubstitutesByIdentity(t *testing.T) {
	require := require.New(t)

	target := &ast.Literal{Value: 1}
	other := &ast.Literal{Value: 1} // structurally equal, different identity
	tree := ast.NewAdd(target, other)

	replacement := &ast.Literal{Value: 99}
	result := CopyReplace(tree, map[ast.Node]ast.Node{target: replacement})

	want := ast.NewAdd(&ast.Literal{Value: 99}, &ast.Literal{Value: 1})
	require.True(ast.Equal(want, result))
}

func TestCopyReplaceLeavesUnmatchedSubtreesShared(t *testing.T) {
	require := require.New(t)

	unmatched := ast.NewAdd(&ast.Literal{Value: 5}, &ast.Literal{Value: 6})
	tree := ast.NewAdd(unmatched, &ast.Literal{Value: 1})

	result := CopyReplace(tree, map[ast.Node]ast.Node{
		tree.(*ast.Add).Other: &ast.Literal{Value: 100},
	})

	add, ok := result.(*ast.Add)
	require.True(ok)
	require.Same(unmatched, add.Subject)
}

func TestCopyReplaceNoMatchReturnsOriginal(t *testing.T) {
	require := require.New(t)

	tree := ast.NewAdd(&ast.Literal{Value: 1}, &ast.Literal{Value: 2})
	result := CopyReplace(tree, map[ast.Node]ast.Node{&ast.Literal{Value: 999}: &ast.Literal{Value: 0}})
	require.Same(tree, result)
}
