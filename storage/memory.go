// Package storage provides a reference storage collaborator: an
// in-memory table of rows (map[string]any each) that satisfies ast.Source
// and exec.Iterable by construction, plus an optional Translator that
// pushes a narrow set of operations down natively and otherwise signals
// qerr.UnsupportedByBackend so the executor falls back to evaluating the
// rest of the tree in memory (spec §4.5).
//
// Nothing here is imported by ast or exec: the dependency runs one way,
// exactly as spec §3's layering requires.
package storage

import (
	"context"
	"sync"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/exec"
)

// Memory is a named, in-memory row set. Rows are snapshotted on Iterate,
// not referenced live, so a concurrently running query is unaffected by
// subsequent Insert calls (spec §5's concurrency model: a Source
// is safe to share, evaluation never mutates it).
type Memory struct {
	name string

	mu   sync.RWMutex
	rows []map[string]any
}

// NewMemory returns an empty, named in-memory table.
func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

// SourceName implements ast.Source.
func (m *Memory) SourceName() string { return m.name }

// Insert appends a copy of row to the table.
func (m *Memory) Insert(row map[string]any) {
	cp := make(map[string]any, len(row))
	for k, v := range row {
		cp[k] = v
	}
	m.mu.Lock()
	m.rows = append(m.rows, cp)
	m.mu.Unlock()
}

// Iterate implements exec.Iterable: it snapshots the current rows and
// returns a Sequence over that snapshot.
func (m *Memory) Iterate(ctx context.Context) (exec.Sequence, error) {
	m.mu.RLock()
	snapshot := make([]any, len(m.rows))
	for i, r := range m.rows {
		snapshot[i] = r
	}
	m.mu.RUnlock()
	return &rowSeq{rows: snapshot}, nil
}

type rowSeq struct {
	rows []any
	i    int
}

func (s *rowSeq) Next(ctx context.Context) (any, bool, error) {
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

var _ ast.Source = (*Memory)(nil)
