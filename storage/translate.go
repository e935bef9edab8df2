package storage

import (
	"context"
	"reflect"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/exec"
	"github.com/gabereiser/qalg/qerr"
)

// Translate implements exec.Translator for Memory: it recognizes the one
// shape worth pushing down natively — an equality Filter directly over
// this table's rows, `storage.filter(C.attr == literal)` — and serves it
// with an index-free linear scan that skips constructing an intermediate
// Sequence of every row. Everything else (nested operators, other
// predicate shapes, a Filter over a different storage) is reported as
// qerr.UnsupportedByBackend, and the executor falls back to evaluating
// the whole tree in memory (spec §4.5's "transparent fallback").
func (m *Memory) Translate(ctx context.Context, root ast.Node) (any, error) {
	f, ok := root.(*ast.Filter)
	if !ok {
		return nil, qerr.UnsupportedByBackend.New("root is not a direct equality filter")
	}
	items, ok := f.Subject.(*ast.StoredItems)
	if !ok || items.Storage != m {
		return nil, qerr.UnsupportedByBackend.New("filter subject is not this table")
	}
	attr, value, ok := equalityPredicate(f.Predicate)
	if !ok {
		return nil, qerr.UnsupportedByBackend.New("predicate is not a single attribute equality")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []any
	for _, row := range m.rows {
		v, present := row[attr]
		if present && reflect.TypeOf(v) != reflect.TypeOf(value) {
			return nil, qerr.UnsupportedByBackend.New("field type differs from literal type")
		}
		if present && equalField(v, value) {
			cp := make(map[string]any, len(row))
			for k, val := range row {
				cp[k] = val
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func equalityPredicate(p ast.Node) (attr string, value any, ok bool) {
	eq, isEq := p.(*ast.Eq)
	if !isEq {
		return "", nil, false
	}
	a, isAttr := eq.Subject.(*ast.Attribute)
	if !isAttr {
		return "", nil, false
	}
	cc, innermost := a.Subject.(*ast.CurrentContext)
	if !innermost || cc.ScopeDepth != 0 {
		return "", nil, false
	}
	lit, isLit := eq.Other.(*ast.Literal)
	if !isLit {
		return "", nil, false
	}
	return a.Name, lit.Value, true
}

// equalField is a strict match: this fast path only ever fires for a
// literal whose Go type already matches the stored field's type (e.g. a
// string compared to a string). Anything looser falls through to
// UnsupportedByBackend above and gets the in-memory evaluator's richer
// numeric coercion instead.
func equalField(a, b any) bool {
	return a == b
}

var _ exec.Translator = (*Memory)(nil)
