package exec

import (
	"context"

	"github.com/gabereiser/qalg/qerr"
)

// Sequence is the in-memory executor's fundamental data plane: a lazy,
// not-necessarily-restartable ordered stream. Next returns ok=false once
// exhausted; err is non-nil only on a genuine failure (e.g. a backend I/O
// error), never to signal ordinary exhaustion.
type Sequence interface {
	Next(ctx context.Context) (value any, ok bool, err error)
}

// Iterable is the part of the storage collaborator interface the
// in-memory executor needs: a way to obtain the full, materialized
// contents of a StoredItems leaf as a Sequence. A concrete storage
// backend implements this structurally; the core never imports the
// storage package to check.
type Iterable interface {
	Iterate(ctx context.Context) (Sequence, error)
}

// sliceSeq adapts an already-materialized slice to Sequence.
type sliceSeq struct {
	items []any
	i     int
}

func newSliceSeq(items []any) *sliceSeq { return &sliceSeq{items: items} }

func (s *sliceSeq) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.i >= len(s.items) {
		return nil, false, nil
	}
	v := s.items[s.i]
	s.i++
	return v, true, nil
}

// funcSeq adapts a pull closure to Sequence, used by Filter/Map to stay
// lazy: each Next call pulls from the underlying sequence on demand
// rather than materializing it up front.
type funcSeq func(ctx context.Context) (any, bool, error)

func (f funcSeq) Next(ctx context.Context) (any, bool, error) { return f(ctx) }

// toSeq coerces an already-evaluated value into a Sequence: a Sequence
// passes through, a []any is wrapped, anything else is a TypeMismatch
// (the value did not come from a sequence-producing node).
func toSeq(v any) (Sequence, error) {
	switch t := v.(type) {
	case Sequence:
		return t, nil
	case []any:
		return newSliceSeq(t), nil
	default:
		return nil, qerr.TypeMismatch.New("expected a sequence, got %T", v)
	}
}

// materialize pulls every element of seq into a slice, respecting ctx
// cancellation. Sort, Groupby, Distinct, and the aggregates all need the
// full sequence; Filter and Map deliberately do not call this so they stay
// lazy under a pipeline of operators.
func materialize(ctx context.Context, seq Sequence) ([]any, error) {
	var out []any
	for {
		v, ok, err := seq.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
