package exec

import (
	"context"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/qerr"
)

// evalGroupby partitions Subject by Key, preserving the order in which
// each distinct key value is first seen, then evaluates every Aggregate
// against the group's own sequence (bound as the innermost context,
// replacing the per-element binding the key was computed under). Each
// group is emitted as a mapping of {KeyName: key, agg.Name: value, ...}.
// An aggregate named the same as the key field is not disambiguated: it
// is reported as an error.
func (x *Executor) evalGroupby(ctx context.Context, n *ast.Groupby, stack ctxStack) (any, error) {
	items, err := x.materializeSubject(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}

	type group struct {
		key    any
		values []any
	}
	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, item := range items {
		k, err := x.eval(ctx, n.Key, stack.push(item))
		if err != nil {
			return nil, err
		}
		gk := valueKey(k)
		g, ok := groups[gk]
		if !ok {
			g = &group{key: k}
			groups[gk] = g
			order = append(order, gk)
		}
		g.values = append(g.values, item)
	}

	keyName := n.KeyName
	if keyName == "" {
		keyName = "key"
	}
	for _, a := range n.Aggregates {
		if a.Name == keyName {
			return nil, qerr.InvalidConstruction.New("groupby: aggregate name %q collides with the key field", a.Name)
		}
	}

	out := make([]any, 0, len(order))
	for _, gk := range order {
		g := groups[gk]
		row := make(map[string]any, 1+len(n.Aggregates))
		row[keyName] = g.key
		groupStack := stack.push(g.values)
		for _, a := range n.Aggregates {
			v, err := x.eval(ctx, a.Expr, groupStack)
			if err != nil {
				return nil, err
			}
			row[a.Name] = v
		}
		out = append(out, row)
	}
	return out, nil
}
