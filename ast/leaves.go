package ast

import (
	"fmt"
	"strings"

	"github.com/gabereiser/qalg/qerr"
)

// Literal wraps a fully-evaluated constant. Every raw host value passed to
// the builder surface passes through Lift and ends up wrapped in one of
// these; argument slots never hold an unwrapped value of unknown kind.
type Literal struct {
	Value any
}

func (n *Literal) Kind() Kind                 { return KindLiteral }
func (n *Literal) Children() []Node           { return nil }
func (n *Literal) ContextSwitching() []bool   { return nil }
func (n *Literal) String() string             { return fmt.Sprintf("literal(%#v)", n.Value) }
func (n *Literal) equalSelf(other Node) bool {
	o := other.(*Literal)
	return literalEqual(n.Value, o.Value)
}

func (n *Literal) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, qerr.InvalidConstruction.New("literal takes no children")
	}
	return &Literal{Value: n.Value}, nil
}

func literalEqual(a, b any) (eq bool) {
	// Values flowing through Literal are restricted to the types Lift
	// produces (scalars, comparable by ==) plus slices/maps, which Lift
	// turns into Collection nodes rather than leaving them as raw
	// Literal values — so a plain == suffices here and avoids pulling in
	// reflect.DeepEqual for the common case. A handful of host values
	// (e.g. a raw, uncompared slice passed in by a caller that bypassed
	// Lift) are not comparable; == panics on those, so fall back to not
	// equal rather than crash structural comparison.
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// StoredItems is a reference to the full contents of an external storage.
type StoredItems struct {
	Storage Source
}

func (n *StoredItems) Kind() Kind               { return KindStoredItems }
func (n *StoredItems) Children() []Node         { return nil }
func (n *StoredItems) ContextSwitching() []bool { return nil }
func (n *StoredItems) String() string {
	if n.Storage == nil {
		return "storage"
	}
	return n.Storage.SourceName()
}
func (n *StoredItems) equalSelf(other Node) bool {
	o := other.(*StoredItems)
	return n.Storage == o.Storage
}
func (n *StoredItems) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, qerr.InvalidConstruction.New("stored_items takes no children")
	}
	return &StoredItems{Storage: n.Storage}, nil
}

// CurrentContext refers to the currently-bound element of an enclosing
// scope. ScopeDepth is non-positive: 0 is the innermost scope, -1 the
// next-outer, and so on.
type CurrentContext struct {
	ScopeDepth int
}

func (n *CurrentContext) Kind() Kind               { return KindCurrentContext }
func (n *CurrentContext) Children() []Node         { return nil }
func (n *CurrentContext) ContextSwitching() []bool { return nil }
func (n *CurrentContext) String() string {
	if n.ScopeDepth == 0 {
		return "c"
	}
	return fmt.Sprintf("c(%d)", n.ScopeDepth)
}
func (n *CurrentContext) equalSelf(other Node) bool {
	return n.ScopeDepth == other.(*CurrentContext).ScopeDepth
}
func (n *CurrentContext) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, qerr.InvalidConstruction.New("current_context takes no children")
	}
	return &CurrentContext{ScopeDepth: n.ScopeDepth}, nil
}

// NewCurrentContext constructs a CurrentContext reference. scopeDepth must
// be non-positive.
func NewCurrentContext(scopeDepth int) (*CurrentContext, error) {
	if scopeDepth > 0 {
		return nil, qerr.InvalidConstruction.New("scope depth must be non-positive, got %d", scopeDepth)
	}
	return &CurrentContext{ScopeDepth: scopeDepth}, nil
}

// CollectionKind distinguishes the three flavors of collection literal.
type CollectionKind int

const (
	ListKind CollectionKind = iota
	TupleKind
	MappingKind
)

func (k CollectionKind) String() string {
	switch k {
	case ListKind:
		return "list"
	case TupleKind:
		return "tuple"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Collection holds a lifted list, tuple, or mapping literal. For mapping
// collections, Keys is parallel to Elems (same length, same order); for
// list/tuple collections, Keys is nil. Collection values are not
// themselves context-switching: each element is an independently lifted
// subtree evaluated in the enclosing scope, not a new one (see SPEC_FULL
// §3, resolving an implementation quirk of the language this was ported
// from).
type Collection struct {
	CKind CollectionKind
	Elems []Node
	Keys  []string
}

func (n *Collection) Kind() Kind       { return KindCollection }
func (n *Collection) Children() []Node { return n.Elems }
func (n *Collection) ContextSwitching() []bool {
	return make([]bool, len(n.Elems))
}
func (n *Collection) String() string {
	parts := make([]string, len(n.Elems))
	for i, e := range n.Elems {
		if n.CKind == MappingKind {
			parts[i] = fmt.Sprintf("%s: %s", n.Keys[i], e.String())
		} else {
			parts[i] = e.String()
		}
	}
	switch n.CKind {
	case ListKind:
		return "[" + strings.Join(parts, ", ") + "]"
	case TupleKind:
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "{" + strings.Join(parts, ", ") + "}"
	}
}
func (n *Collection) equalSelf(other Node) bool {
	o := other.(*Collection)
	if n.CKind != o.CKind || len(n.Keys) != len(o.Keys) {
		return false
	}
	for i := range n.Keys {
		if n.Keys[i] != o.Keys[i] {
			return false
		}
	}
	return true
}
func (n *Collection) WithChildren(children ...Node) (Node, error) {
	if len(children) != len(n.Elems) {
		return nil, qerr.InvalidConstruction.New("collection: expected %d children, got %d", len(n.Elems), len(children))
	}
	keys := n.Keys
	if keys != nil {
		cp := make([]string, len(keys))
		copy(cp, keys)
		keys = cp
	}
	return &Collection{CKind: n.CKind, Elems: append([]Node(nil), children...), Keys: keys}, nil
}
