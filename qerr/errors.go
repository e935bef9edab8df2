// Package qerr defines the categorical error kinds raised by the query
// algebra's builder and executor, so hosts can pattern-match on stable
// identifiers rather than parsing messages.
package qerr

import "gopkg.in/src-d/go-errors.v1"

var (
	// InvalidConstruction is raised for builder misuse: assigning to an
	// AST attribute, iterating an AST directly, dict-style lookup on an
	// AST, calling a non-method attribute, or a positive scope depth.
	InvalidConstruction = errors.NewKind("invalid construction: %s")

	// UnboundContext is raised when a CurrentContext reference names a
	// scope that does not exist at evaluation time.
	UnboundContext = errors.NewKind("unbound context: scope depth %d exceeds stack of size %d")

	// TypeMismatch is raised when an operator is applied to evaluated
	// operands of incompatible kind.
	TypeMismatch = errors.NewKind("type mismatch: %s")

	// EmptyAggregate is raised by Sum/Min/Max over an empty sequence.
	EmptyAggregate = errors.NewKind("%s of an empty sequence")

	// MultipleResults is raised by One when its subject yields more than
	// one element.
	MultipleResults = errors.NewKind("one() expected at most one result, got %d")

	// UnsupportedByBackend signals that a storage translator cannot
	// handle a given AST; the core recovers from this locally and falls
	// back to in-memory execution.
	UnsupportedByBackend = errors.NewKind("unsupported by backend: %s")

	// BackendFailure wraps an error surfaced verbatim from the storage
	// layer.
	BackendFailure = errors.NewKind("backend failure: %s")
)
