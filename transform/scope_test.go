package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabereiser/qalg/ast"
)

func TestWalkScopedIncrementsOnlyAcrossContextSwitchingChildren(t *testing.T) {
	require := require.New(t)

	// storage.filter(c(-1).x.map(c.y))
	inner := ast.NewAttribute(&ast.CurrentContext{ScopeDepth: 0}, "y")
	mapNode := &ast.Map{Subject: ast.NewAttribute(&ast.CurrentContext{ScopeDepth: -1}, "x"), NewValue: inner}
	filter := ast.NewFilter(&ast.StoredItems{}, mapNode)

	depths := map[ast.Node]int{}
	InspectScoped(filter, func(n ast.Node, depth int) bool {
		if n != nil {
			depths[n] = depth
		}
		return true
	})

	require.Equal(0, depths[filter])
	require.Equal(1, depths[mapNode])
	require.Equal(2, depths[inner])
}

func TestWalkScopedStopsWhenVisitorReturnsNil(t *testing.T) {
	require := require.New(t)

	tree := ast.NewFilter(&ast.StoredItems{}, &ast.Literal{Value: true})

	visits := 0
	InspectScoped(tree, func(n ast.Node, depth int) bool {
		visits++
		return false
	})
	require.Equal(1, visits)
}
