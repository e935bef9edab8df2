package storage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/exec"
)

// Member is the capability MultiSource requires of each of its parts: a
// name (for SourceName composition) and the ability to be iterated.
type Member interface {
	ast.Source
	exec.Iterable
}

// MultiSource concatenates several independent StoredItems-compatible
// sources into one logical ast.Source, fetching each part's full Sequence
// concurrently before presenting it as a single ordered stream (parts in
// the order given, each part's own rows in its own order). This is the
// one place the executor's data plane touches concurrency: fetching N
// independent sources can overlap their I/O, but the sources are fully
// materialized up front rather than pulled lazily, and nothing about a
// single subtree's evaluation runs on more than one goroutine (spec §5's
// single-threaded evaluation guarantee is unaffected).
type MultiSource struct {
	name  string
	parts []Member
}

// NewMultiSource returns a MultiSource named name over parts, whose rows
// are concatenated left to right.
func NewMultiSource(name string, parts ...Member) *MultiSource {
	return &MultiSource{name: name, parts: parts}
}

// SourceName implements ast.Source.
func (m *MultiSource) SourceName() string { return m.name }

// Iterate implements exec.Iterable: it prefetches every part concurrently,
// bounded by faninLimit, then concatenates their rows in part order.
func (m *MultiSource) Iterate(ctx context.Context) (exec.Sequence, error) {
	results := make([][]any, len(m.parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(faninLimit)
	for i, p := range m.parts {
		i, p := i, p
		g.Go(func() error {
			seq, err := p.Iterate(gctx)
			if err != nil {
				return err
			}
			rows, err := drain(gctx, seq)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []any
	for _, rows := range results {
		all = append(all, rows...)
	}
	return &concatSeq{rows: all}, nil
}

// faninLimit bounds how many parts MultiSource.Iterate fetches at once.
const faninLimit = 4

func drain(ctx context.Context, seq exec.Sequence) ([]any, error) {
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

type concatSeq struct {
	rows []any
	i    int
}

func (s *concatSeq) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.i >= len(s.rows) {
		return nil, false, nil
	}
	v := s.rows[s.i]
	s.i++
	return v, true, nil
}

var _ ast.Source = (*MultiSource)(nil)
