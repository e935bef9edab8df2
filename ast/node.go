// Package ast defines the closed set of query-algebra node variants, their
// construction rules (including the algebraic simplifications mandated at
// build time), and the structural primitives (equality, chain-leaf lookup)
// that the executor and backend translators pattern-match against.
//
// Nodes are immutable once constructed and safe to share across
// goroutines; there is no mutation API on any node type.
package ast

// Kind identifies a node variant. The set is closed: every Node
// implementation reports exactly one Kind, and the executor's evaluator
// has one case for each variant of this set.
type Kind int

const (
	KindLiteral Kind = iota
	KindStoredItems
	KindCurrentContext
	KindCollection

	KindNot
	KindNeg

	KindStr
	KindLower
	KindUpper

	KindSum
	KindMin
	KindMax
	KindLen
	KindDistinct

	KindAdd
	KindSub
	KindMul
	KindDiv
	KindPow

	KindEq
	KindNe
	KindLt
	KindLe
	KindGt
	KindGe

	KindAnd
	KindOr

	KindRegex

	KindAttribute
	KindIndex
	KindSlice

	KindFilter
	KindMap
	KindSort
	KindGroupby
	KindOne
)

var kindNames = [...]string{
	KindLiteral:        "Literal",
	KindStoredItems:    "StoredItems",
	KindCurrentContext: "CurrentContext",
	KindCollection:     "Collection",
	KindNot:            "Not",
	KindNeg:            "Neg",
	KindStr:            "Str",
	KindLower:          "Lower",
	KindUpper:          "Upper",
	KindSum:            "Sum",
	KindMin:            "Min",
	KindMax:            "Max",
	KindLen:            "Len",
	KindDistinct:       "Distinct",
	KindAdd:            "Add",
	KindSub:            "Sub",
	KindMul:            "Mul",
	KindDiv:            "Div",
	KindPow:            "Pow",
	KindEq:             "Eq",
	KindNe:             "Ne",
	KindLt:             "Lt",
	KindLe:             "Le",
	KindGt:             "Gt",
	KindGe:             "Ge",
	KindAnd:            "And",
	KindOr:             "Or",
	KindRegex:          "Regex",
	KindAttribute:      "Attribute",
	KindIndex:          "Index",
	KindSlice:          "Slice",
	KindFilter:         "Filter",
	KindMap:            "Map",
	KindSort:           "Sort",
	KindGroupby:        "Groupby",
	KindOne:            "One",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is the interface implemented by every AST variant. Argument slots
// that hold sub-expressions are exposed, in order, through Children; the
// parallel ContextSwitching tells a traverser which of those children are
// evaluated under a new, inner iteration scope. WithChildren returns a
// structurally updated copy with the same kind-specific data but the
// given children substituted in, one for one with Children's order; it is
// the mechanism transform.Node uses to rebuild a tree bottom-up without
// the transform package needing to know about every node type's private
// fields.
type Node interface {
	Kind() Kind
	Children() []Node
	ContextSwitching() []bool
	WithChildren(children ...Node) (Node, error)
	String() string

	// equalSelf compares kind-specific, non-child data (e.g. a literal's
	// value, an attribute's name, a scope depth). Equal uses it together
	// with recursive child comparison to implement the structural
	// equality required by spec: equality is over (variant, argument
	// tuple), not pointer identity.
	equalSelf(other Node) bool
}

// Source is the opaque handle a StoredItems leaf carries for an external
// storage collaborator. The core never calls methods on it directly;
// construction and traversal treat it as an inert reference. The
// executor's backend-dispatch step (see the exec package) type-asserts a
// Source against the richer interfaces it actually needs (iteration,
// native translation).
type Source interface {
	// SourceName returns a short label used only for String()/logging.
	SourceName() string
}

// Equal reports whether a and b are structurally equal: same Kind, same
// kind-specific data, and recursively equal children in the same order.
// Node identity (pointer equality) is irrelevant; two independently
// constructed trees with the same shape compare equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || !a.equalSelf(b) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// Chain returns the leftmost spine of subjects, deepest (the chain leaf)
// first, following only single-subject operation nodes: unary
// arithmetic/logic/string/aggregate ops, projection/selection, and
// sequence operators. Binary operations (arithmetic, comparison, logic,
// Regex) have two subjects and are not part of any chain; they terminate
// it. This identifies the AST's input source for backend dispatch (spec
// §4.5's "chain leaf").
func Chain(n Node) []Node {
	chain := []Node{n}
	for {
		s, ok := subjectOf(n)
		if !ok {
			return chain
		}
		chain = append([]Node{s}, chain...)
		n = s
	}
}

// ChainLeaf is a convenience for Chain(n)[0].
func ChainLeaf(n Node) Node {
	return Chain(n)[0]
}

func subjectOf(n Node) (Node, bool) {
	switch t := n.(type) {
	case *Not:
		return t.Subject, true
	case *Neg:
		return t.Subject, true
	case *Str:
		return t.Subject, true
	case *Lower:
		return t.Subject, true
	case *Upper:
		return t.Subject, true
	case *Sum:
		return t.Subject, true
	case *Min:
		return t.Subject, true
	case *Max:
		return t.Subject, true
	case *Len:
		return t.Subject, true
	case *Distinct:
		return t.Subject, true
	case *Attribute:
		return t.Subject, true
	case *Index:
		return t.Subject, true
	case *Slice:
		return t.Subject, true
	case *Filter:
		return t.Subject, true
	case *Map:
		return t.Subject, true
	case *Sort:
		return t.Subject, true
	case *Groupby:
		return t.Subject, true
	case *One:
		return t.Subject, true
	default:
		return nil, false
	}
}
