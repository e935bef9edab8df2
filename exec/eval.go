package exec

import (
	"context"
	"regexp"

	"github.com/spf13/cast"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/qerr"
)

// Item is the property interface the core consumes from backend-produced
// row values for Attribute lookups (spec §6): anything richer than a
// plain map[string]any can implement it.
type Item interface {
	Field(name string) (any, bool)
}

// eval is the single recursive evaluator: one case per ast.Kind, exactly
// as spec §4.4 enumerates. It has no side effects of its own (nothing is
// logged, nothing is cached across calls) so that two evaluations of the
// same AST against the same, restartable input always agree (spec §8's
// purity property).
func (x *Executor) eval(ctx context.Context, n ast.Node, stack ctxStack) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch t := n.(type) {
	case *ast.Literal:
		return t.Value, nil

	case *ast.CurrentContext:
		v, ok := stack.at(t.ScopeDepth)
		if !ok {
			return nil, qerr.UnboundContext.New(t.ScopeDepth, len(stack))
		}
		return v, nil

	case *ast.StoredItems:
		return x.iterate(ctx, t.Storage)

	case *ast.Collection:
		return x.evalCollection(ctx, t, stack)

	case *ast.Not:
		v, err := x.eval(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		return !truthy(v), nil

	case *ast.Neg:
		v, err := x.eval(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		if !isNumeric(v) {
			return nil, qerr.TypeMismatch.New("expected a number, got %T", v)
		}
		f, _ := cast.ToFloat64E(v)
		return negate(v, f), nil

	case *ast.Str:
		v, err := x.eval(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		return toDisplayString(v), nil

	case *ast.Lower:
		v, err := x.evalString(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		return lowerString(v), nil

	case *ast.Upper:
		v, err := x.evalString(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		return upperString(v), nil

	case *ast.Sum:
		return x.evalSum(ctx, t.Subject, stack)
	case *ast.Min:
		return x.evalExtremum(ctx, t.Subject, stack, -1)
	case *ast.Max:
		return x.evalExtremum(ctx, t.Subject, stack, 1)
	case *ast.Len:
		return x.evalLen(ctx, t.Subject, stack)
	case *ast.Distinct:
		return x.evalDistinct(ctx, t.Subject, stack)

	case *ast.Add:
		return x.evalBinaryArith(ctx, "+", t.Subject, t.Other, stack)
	case *ast.Sub:
		return x.evalBinaryArith(ctx, "-", t.Subject, t.Other, stack)
	case *ast.Mul:
		return x.evalBinaryArith(ctx, "*", t.Subject, t.Other, stack)
	case *ast.Div:
		return x.evalBinaryArith(ctx, "/", t.Subject, t.Other, stack)
	case *ast.Pow:
		return x.evalBinaryArith(ctx, "**", t.Subject, t.Other, stack)

	case *ast.Eq:
		return x.evalCompare(ctx, t.Subject, t.Other, stack, func(c int, eq bool) bool { return eq })
	case *ast.Ne:
		return x.evalCompare(ctx, t.Subject, t.Other, stack, func(c int, eq bool) bool { return !eq })
	case *ast.Lt:
		return x.evalCompare(ctx, t.Subject, t.Other, stack, func(c int, eq bool) bool { return !eq && c < 0 })
	case *ast.Le:
		return x.evalCompare(ctx, t.Subject, t.Other, stack, func(c int, eq bool) bool { return eq || c < 0 })
	case *ast.Gt:
		return x.evalCompare(ctx, t.Subject, t.Other, stack, func(c int, eq bool) bool { return !eq && c > 0 })
	case *ast.Ge:
		return x.evalCompare(ctx, t.Subject, t.Other, stack, func(c int, eq bool) bool { return eq || c > 0 })

	case *ast.And:
		a, err := x.eval(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		if !truthy(a) {
			return false, nil
		}
		b, err := x.eval(ctx, t.Other, stack)
		if err != nil {
			return nil, err
		}
		return truthy(b), nil

	case *ast.Or:
		a, err := x.eval(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		if truthy(a) {
			return true, nil
		}
		b, err := x.eval(ctx, t.Other, stack)
		if err != nil {
			return nil, err
		}
		return truthy(b), nil

	case *ast.Regex:
		subj, err := x.evalString(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		pat, err := x.evalString(ctx, t.Other, stack)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, qerr.TypeMismatch.New("invalid regular expression %q: %s", pat, err)
		}
		return re.MatchString(subj), nil

	case *ast.Attribute:
		v, err := x.eval(ctx, t.Subject, stack)
		if err != nil {
			return nil, err
		}
		return lookupAttribute(v, t.Name)

	case *ast.Index:
		return x.evalIndex(ctx, t, stack)

	case *ast.Slice:
		return x.evalSlice(ctx, t, stack)

	case *ast.Filter:
		return x.evalFilter(ctx, t, stack)

	case *ast.Map:
		return x.evalMap(ctx, t, stack)

	case *ast.Sort:
		return x.evalSort(ctx, t, stack)

	case *ast.Groupby:
		return x.evalGroupby(ctx, t, stack)

	case *ast.One:
		return x.evalOne(ctx, t, stack)

	default:
		return nil, qerr.TypeMismatch.New("unrecognized node kind %T", n)
	}
}

func (x *Executor) iterate(ctx context.Context, src ast.Source) (Sequence, error) {
	it, ok := src.(Iterable)
	if !ok {
		return nil, qerr.BackendFailure.New("storage %q does not support iteration", sourceName(src))
	}
	seq, err := it.Iterate(ctx)
	if err != nil {
		return nil, qerr.BackendFailure.New("%s", err)
	}
	return seq, nil
}

func sourceName(src ast.Source) string {
	if src == nil {
		return "<nil>"
	}
	return src.SourceName()
}

func (x *Executor) evalCollection(ctx context.Context, c *ast.Collection, stack ctxStack) (any, error) {
	values := make([]any, len(c.Elems))
	for i, e := range c.Elems {
		v, err := x.eval(ctx, e, stack)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	if c.CKind == ast.MappingKind {
		m := make(map[string]any, len(values))
		for i, k := range c.Keys {
			m[k] = values[i]
		}
		return m, nil
	}
	return values, nil
}

func (x *Executor) evalString(ctx context.Context, n ast.Node, stack ctxStack) (string, error) {
	v, err := x.eval(ctx, n, stack)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", qerr.TypeMismatch.New("expected a string, got %T", v)
	}
	return s, nil
}

func (x *Executor) evalBinaryArith(ctx context.Context, op string, subject, other ast.Node, stack ctxStack) (any, error) {
	a, err := x.eval(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	b, err := x.eval(ctx, other, stack)
	if err != nil {
		return nil, err
	}
	return arith(op, a, b)
}

func (x *Executor) evalCompare(ctx context.Context, subject, other ast.Node, stack ctxStack, judge func(cmp int, eq bool) bool) (any, error) {
	a, err := x.eval(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	b, err := x.eval(ctx, other, stack)
	if err != nil {
		return nil, err
	}
	if equalValues(a, b) {
		return judge(0, true), nil
	}
	c, err := compare(a, b)
	if err != nil {
		return nil, err
	}
	return judge(c, false), nil
}

func (x *Executor) evalIndex(ctx context.Context, n *ast.Index, stack ctxStack) (any, error) {
	v, err := x.eval(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}
	items, err := x.asSlice(ctx, v)
	if err != nil {
		return nil, err
	}
	idx := n.At
	if idx < 0 {
		idx += len(items)
	}
	if idx < 0 || idx >= len(items) {
		return nil, qerr.TypeMismatch.New("index %d out of range for sequence of length %d", n.At, len(items))
	}
	return items[idx], nil
}

func (x *Executor) evalSlice(ctx context.Context, n *ast.Slice, stack ctxStack) (any, error) {
	v, err := x.eval(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}
	items, err := x.asSlice(ctx, v)
	if err != nil {
		return nil, err
	}
	start, stop, step := sliceBounds(len(items), n.Start, n.Stop, n.Step)
	var out []any
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, items[i])
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, items[i])
		}
	}
	return newSliceSeq(out), nil
}

// asSlice materializes a value that must behave as a sequence for
// indexing/slicing purposes.
func (x *Executor) asSlice(ctx context.Context, v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	seq, err := toSeq(v)
	if err != nil {
		return nil, err
	}
	return materialize(ctx, seq)
}

func (x *Executor) evalFilter(ctx context.Context, n *ast.Filter, stack ctxStack) (any, error) {
	v, err := x.eval(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}
	src, err := toSeq(v)
	if err != nil {
		return nil, err
	}
	return funcSeq(func(ctx context.Context) (any, bool, error) {
		for {
			e, ok, err := src.Next(ctx)
			if err != nil || !ok {
				return nil, ok, err
			}
			keep, err := x.eval(ctx, n.Predicate, stack.push(e))
			if err != nil {
				return nil, false, err
			}
			if truthy(keep) {
				return e, true, nil
			}
		}
	}), nil
}

func (x *Executor) evalMap(ctx context.Context, n *ast.Map, stack ctxStack) (any, error) {
	v, err := x.eval(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}
	src, err := toSeq(v)
	if err != nil {
		return nil, err
	}
	return funcSeq(func(ctx context.Context) (any, bool, error) {
		e, ok, err := src.Next(ctx)
		if err != nil || !ok {
			return nil, ok, err
		}
		mapped, err := x.eval(ctx, n.NewValue, stack.push(e))
		if err != nil {
			return nil, false, err
		}
		return mapped, true, nil
	}), nil
}

func (x *Executor) evalOne(ctx context.Context, n *ast.One, stack ctxStack) (any, error) {
	v, err := x.eval(ctx, n.Subject, stack)
	if err != nil {
		return nil, err
	}
	items, err := x.asSlice(ctx, v)
	if err != nil {
		return nil, err
	}
	switch len(items) {
	case 0:
		if n.Default == nil {
			return nil, nil
		}
		return x.eval(ctx, n.Default, stack)
	case 1:
		return items[0], nil
	default:
		return nil, qerr.MultipleResults.New(len(items))
	}
}

func lookupAttribute(v any, name string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		val, ok := t[name]
		if !ok {
			return nil, qerr.TypeMismatch.New("no attribute %q", name)
		}
		return val, nil
	case Item:
		val, ok := t.Field(name)
		if !ok {
			return nil, qerr.TypeMismatch.New("no attribute %q", name)
		}
		return val, nil
	default:
		return nil, qerr.TypeMismatch.New("cannot look up attribute %q on %T", name, v)
	}
}

func negate(original any, f float64) any {
	if isIntegral(original) {
		return int64(-f)
	}
	return -f
}
