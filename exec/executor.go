// Package exec is the in-memory query executor and the backend-dispatch
// seam (spec §4.4, §4.5): it evaluates any ast.Node tree directly, and
// optionally offers a storage collaborator the chance to translate a
// whole tree natively before falling back to in-memory evaluation.
package exec

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/qerr"
	"github.com/gabereiser/qalg/qlog"
)

// Translator is the optional, richer capability a storage collaborator
// can implement in addition to Iterable: a chance to execute an entire
// AST natively (e.g. push a Filter down into a SQL WHERE clause) instead
// of the core pulling every row through in-memory evaluation.
//
// Translate returns a qerr.UnsupportedByBackend error (or wraps one) for
// any part of the tree it cannot handle; the executor recovers from that
// specific error locally and falls back to plain in-memory evaluation of
// the same tree. Any other error aborts execution as a qerr.BackendFailure.
type Translator interface {
	Translate(ctx context.Context, root ast.Node) (any, error)
}

// Executor evaluates query-algebra trees. The zero value is usable and
// logs through qlog's default logger; set Logger to use a different one.
type Executor struct {
	Logger *logrus.Entry
}

// New returns an Executor logging through qlog's default logger.
func New() *Executor {
	return &Executor{Logger: qlog.Default()}
}

func (x *Executor) logger() *logrus.Entry {
	if x.Logger != nil {
		return x.Logger
	}
	return qlog.Default()
}

// Execute is the package-level convenience entry point most callers use:
// it runs root through a default Executor.
func Execute(ctx context.Context, root ast.Node) (any, error) {
	return New().Execute(ctx, root)
}

// Execute evaluates root, first offering the chain leaf's storage a
// chance to translate the whole tree natively (spec §4.5). Results that
// are themselves sequences, and sequences nested as elements of a list
// result, are materialized into a []any so every public
// Execute call returns a value the caller can range over directly,
// matching the "final value, not a lazy handle" contract of spec §4.4.
func (x *Executor) Execute(ctx context.Context, root ast.Node) (any, error) {
	log := x.logger().WithField("query_id", uuid.NewString())

	if leaf, ok := ast.ChainLeaf(root).(*ast.StoredItems); ok {
		if tr, ok := leaf.Storage.(Translator); ok {
			log.WithField("storage", sourceName(leaf.Storage)).Debug("attempting backend translation")
			v, err := tr.Translate(ctx, root)
			switch {
			case err == nil:
				return materializeResult(ctx, v)
			case qerr.UnsupportedByBackend.Is(err):
				log.WithField("storage", sourceName(leaf.Storage)).
					WithField("reason", err.Error()).
					Info("backend cannot translate query, falling back to in-memory execution")
			default:
				return nil, qerr.BackendFailure.Wrap(err, sourceName(leaf.Storage))
			}
		}
	}

	v, err := x.eval(ctx, root, nil)
	if err != nil {
		return nil, err
	}
	return materializeResult(ctx, v)
}

func materializeResult(ctx context.Context, v any) (any, error) {
	if seq, ok := v.(Sequence); ok {
		items, err := materialize(ctx, seq)
		if err != nil {
			return nil, err
		}
		v = items
	}
	items, ok := v.([]any)
	if !ok || items == nil {
		return v, nil
	}
	out := make([]any, len(items))
	for i, e := range items {
		m, err := materializeResult(ctx, e)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}
