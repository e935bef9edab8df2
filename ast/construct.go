package ast

// Lift wraps an arbitrary host value into a Node. If v is already a Node
// it is returned unchanged. Slices become a list Collection and
// map[string]any becomes a mapping Collection (keys sorted for
// deterministic String() output); every other value becomes a Literal.
// All user values pass through Lift before occupying an argument slot, so
// no slot ever holds a raw, un-wrapped host value (spec §3's invariant).
func Lift(v any) Node {
	switch t := v.(type) {
	case Node:
		return t
	case []any:
		elems := make([]Node, len(t))
		for i, e := range t {
			elems[i] = Lift(e)
		}
		return &Collection{CKind: ListKind, Elems: elems}
	case map[string]any:
		return liftMapping(t)
	default:
		return &Literal{Value: v}
	}
}

func liftMapping(m map[string]any) *Collection {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	elems := make([]Node, len(keys))
	for i, k := range keys {
		elems[i] = Lift(m[k])
	}
	return &Collection{CKind: MappingKind, Elems: elems, Keys: keys}
}

func sortStrings(s []string) {
	// Small, fixed-size key lists (struct-like mapping literals): simple
	// insertion sort avoids pulling in sort.Strings for a handful of
	// elements, and keeps behavior obviously stable.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// NewList and NewTuple build Collection literals explicitly (Lift cannot
// distinguish a Go tuple from a list, since Go has no tuple literal type).
func NewList(items ...any) *Collection {
	elems := make([]Node, len(items))
	for i, it := range items {
		elems[i] = Lift(it)
	}
	return &Collection{CKind: ListKind, Elems: elems}
}

func NewTuple(items ...any) *Collection {
	c := NewList(items...)
	c.CKind = TupleKind
	return c
}

// NewMapping builds a mapping Collection from explicit key/value pairs,
// preserving the given order (unlike Lift's map[string]any path, which
// must sort for determinism since Go map iteration order is random).
func NewMapping(keys []string, values []any) *Collection {
	elems := make([]Node, len(values))
	for i, v := range values {
		elems[i] = Lift(v)
	}
	return &Collection{CKind: MappingKind, Elems: elems, Keys: append([]string(nil), keys...)}
}

func isLiteralBool(n Node, want bool) bool {
	lit, ok := n.(*Literal)
	if !ok {
		return false
	}
	b, ok := lit.Value.(bool)
	return ok && b == want
}

// NewNot builds a Not node, folding ~Literal(v) into Literal(!v).
func NewNot(subject Node) Node {
	if lit, ok := subject.(*Literal); ok {
		if b, ok := lit.Value.(bool); ok {
			return &Literal{Value: !b}
		}
	}
	return &Not{UnarySubject{subject}}
}

// NewAnd builds a conjunction, applying:
//
//	Literal(false) & x, x & Literal(false) -> Literal(false)
//	Literal(true)  & x, x & Literal(true)  -> x
//	x & x (structurally identical conjuncts)  -> x
func NewAnd(subject, other Node) Node {
	if isLiteralBool(subject, false) || isLiteralBool(other, false) {
		return &Literal{Value: false}
	}
	if isLiteralBool(subject, true) {
		return other
	}
	if isLiteralBool(other, true) {
		return subject
	}
	if redundant(subject, other) {
		return subject
	}
	return &And{BinaryOperands{subject, other}}
}

// NewOr builds a disjunction, applying:
//
//	Literal(true)  | x, x | Literal(true)  -> Literal(true)
//	Literal(false) | x, x | Literal(false) -> x
//	x | x (structurally identical disjuncts) -> x
func NewOr(subject, other Node) Node {
	if isLiteralBool(subject, true) || isLiteralBool(other, true) {
		return &Literal{Value: true}
	}
	if isLiteralBool(subject, false) {
		return other
	}
	if isLiteralBool(other, false) {
		return subject
	}
	if redundant(subject, other) {
		return subject
	}
	return &Or{BinaryOperands{subject, other}}
}

// NewFilter builds a Filter, applying:
//
//   - filter(Literal(true)) applied to any subject -> the subject
//     unchanged.
//   - filter(p2) applied to a subject that is already Filter(s, p1) ->
//     Filter(s, p1 & p2) (single-level flattening, preserving
//     evaluation order of the conjunction).
func NewFilter(subject, predicate Node) Node {
	if isLiteralBool(predicate, true) {
		return subject
	}
	if f, ok := subject.(*Filter); ok {
		return &Filter{Subject: f.Subject, Predicate: NewAnd(f.Predicate, predicate)}
	}
	return &Filter{Subject: subject, Predicate: predicate}
}

// NewAdd, NewSub, NewMul, NewDiv, NewPow, NewEq, NewNe, NewLt, NewLe,
// NewGt, NewGe, and NewNeg build their respective nodes without
// inspecting children: the spec mandates simplification only for Not,
// And, Or, and Filter.
func NewAdd(subject, other Node) Node { return &Add{BinaryOperands{subject, other}} }
func NewSub(subject, other Node) Node { return &Sub{BinaryOperands{subject, other}} }
func NewMul(subject, other Node) Node { return &Mul{BinaryOperands{subject, other}} }
func NewDiv(subject, other Node) Node { return &Div{BinaryOperands{subject, other}} }
func NewPow(subject, other Node) Node { return &Pow{BinaryOperands{subject, other}} }
func NewEq(subject, other Node) Node  { return &Eq{BinaryOperands{subject, other}} }
func NewNe(subject, other Node) Node  { return &Ne{BinaryOperands{subject, other}} }
func NewLt(subject, other Node) Node  { return &Lt{BinaryOperands{subject, other}} }
func NewLe(subject, other Node) Node  { return &Le{BinaryOperands{subject, other}} }
func NewGt(subject, other Node) Node  { return &Gt{BinaryOperands{subject, other}} }
func NewGe(subject, other Node) Node  { return &Ge{BinaryOperands{subject, other}} }
func NewNeg(subject Node) Node        { return &Neg{UnarySubject{subject}} }
func NewRegex(subject, pattern Node) Node { return &Regex{BinaryOperands{subject, pattern}} }
func NewStr(subject Node) Node        { return &Str{UnarySubject{subject}} }
func NewLower(subject Node) Node      { return &Lower{UnarySubject{subject}} }
func NewUpper(subject Node) Node      { return &Upper{UnarySubject{subject}} }
func NewSum(subject Node) Node        { return &Sum{UnarySubject{subject}} }
func NewMin(subject Node) Node        { return &Min{UnarySubject{subject}} }
func NewMax(subject Node) Node        { return &Max{UnarySubject{subject}} }
func NewLen(subject Node) Node        { return &Len{UnarySubject{subject}} }
func NewDistinct(subject Node) Node   { return &Distinct{UnarySubject{subject}} }
