package transform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/ast"
)

func TestWalkVisitsPreOrderWithEndSentinels(t *testing.T) {
	require := require.New(t)

	tree := ast.NewAdd(
		&ast.Literal{Value: 1},
		ast.NewAdd(&ast.Literal{Value: 2}, &ast.Literal{Value: 3}),
	)

	var order []string
	Inspect(tree, func(n ast.Node) bool {
		if n == nil {
			order = append(order, "<end>")
			return false
		}
		order = append(order, fmt.Sprintf("%T", n))
		return true
	})

	require.Equal([]string{
		"*ast.Add",
		"*ast.Literal",
		"<end>",
		"*ast.Add",
		"*ast.Literal",
		"<end>",
		"*ast.Literal",
		"<end>",
		"<end>",
		"<end>",
	}, order)
}

func TestInspectStopsWhenFuncReturnsFalse(t *testing.T) {
	require := require.New(t)

	tree := ast.NewAdd(&ast.Literal{Value: 1}, &ast.Literal{Value: 2})

	visited := 0
	Inspect(tree, func(n ast.Node) bool {
		visited++
		return false
	})

	require.Equal(1, visited)
}
