package exec

import (
	"context"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/qerr"
)

// evalSum, evalExtremum, evalLen, and evalDistinct implement the five
// aggregate node kinds (spec §4.4). Sum/Min/Max are defined only over a
// non-empty sequence; Len and Distinct tolerate (and correctly report on)
// an empty one.
func (x *Executor) evalSum(ctx context.Context, subject ast.Node, stack ctxStack) (any, error) {
	items, err := x.materializeSubject(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, qerr.EmptyAggregate.New("sum")
	}
	total := items[0]
	if isNumeric(total) {
		// A lone element gets the same integral normalization as a
		// pairwise sum, so an all-integer Sum is always int64.
		f, _ := cast.ToFloat64E(total)
		total = normalizeIfIntegral(f, total, total)
	}
	for _, v := range items[1:] {
		total, err = arith("+", total, v)
		if err != nil {
			return nil, err
		}
	}
	return total, nil
}

// evalExtremum computes Min (dir<0) or Max (dir>0).
func (x *Executor) evalExtremum(ctx context.Context, subject ast.Node, stack ctxStack, dir int) (any, error) {
	items, err := x.materializeSubject(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		name := "min"
		if dir > 0 {
			name = "max"
		}
		return nil, qerr.EmptyAggregate.New(name)
	}
	best := items[0]
	for _, v := range items[1:] {
		c, err := compare(v, best)
		if err != nil {
			return nil, err
		}
		if (dir < 0 && c < 0) || (dir > 0 && c > 0) {
			best = v
		}
	}
	return best, nil
}

func (x *Executor) evalLen(ctx context.Context, subject ast.Node, stack ctxStack) (any, error) {
	items, err := x.materializeSubject(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	return int64(len(items)), nil
}

func (x *Executor) evalDistinct(ctx context.Context, subject ast.Node, stack ctxStack) (any, error) {
	items, err := x.materializeSubject(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	return lo.UniqBy(items, valueKey), nil
}

func (x *Executor) materializeSubject(ctx context.Context, subject ast.Node, stack ctxStack) ([]any, error) {
	v, err := x.eval(ctx, subject, stack)
	if err != nil {
		return nil, err
	}
	return x.asSlice(ctx, v)
}
