package exec

import (
	"context"
	"sort"

	"github.com/gabereiser/qalg/ast"
)

// evalSort materializes Subject, evaluates every key expression once per
// element (bound as the innermost context), and performs a single stable
// sort comparing keys lexicographically left to right, honoring each
// key's reverse flag. No keys at all sorts by element identity.
func (x *Executor) evalSort(ctx context.Context, n *ast.Sort, stack ctxStack) (any, error) {
	items, err := x.materializeSubject(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}
	keys := n.Keys
	if len(keys) == 0 {
		keys = []ast.SortKey{{Expr: &ast.CurrentContext{ScopeDepth: 0}}}
	}
	keyed := make([][]any, len(items))
	for i, item := range items {
		row := make([]any, len(keys))
		for j, k := range keys {
			v, err := x.eval(ctx, k.Expr, stack.push(item))
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		keyed[i] = row
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	var sortErr error
	sort.SliceStable(order, func(a, b int) bool {
		if sortErr != nil {
			return false
		}
		ra, rb := keyed[order[a]], keyed[order[b]]
		for i, k := range keys {
			if equalValues(ra[i], rb[i]) {
				continue
			}
			c, err := compare(ra[i], rb[i])
			if err != nil {
				sortErr = err
				return false
			}
			if k.Reverse {
				c = -c
			}
			return c < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := make([]any, len(items))
	for i, idx := range order {
		out[i] = items[idx]
	}
	return out, nil
}
