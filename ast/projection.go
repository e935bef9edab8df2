package ast

import (
	"fmt"
)

// Attribute is field access by name. It is reserved strictly for data
// lookup; the reserved method names (filter, map, sort, ...) are exposed
// as named methods on the builder's Expr type instead of being smuggled
// through Attribute, per spec §9's "Attribute/method ambiguity" note.
type Attribute struct {
	Subject Node
	Name    string
}

func (n *Attribute) Kind() Kind               { return KindAttribute }
func (n *Attribute) Children() []Node         { return []Node{n.Subject} }
func (n *Attribute) ContextSwitching() []bool { return []bool{false} }
func (n *Attribute) String() string           { return fmt.Sprintf("%s.%s", n.Subject, n.Name) }
func (n *Attribute) equalSelf(other Node) bool {
	return n.Name == other.(*Attribute).Name
}
func (n *Attribute) WithChildren(children ...Node) (Node, error) {
	s, err := oneChild(KindAttribute, children)
	if err != nil {
		return nil, err
	}
	return &Attribute{Subject: s, Name: n.Name}, nil
}

// Index is positional lookup. A negative Index counts from the end of the
// sequence, mirroring spec §4.4's "Index allows negative indices from the
// end".
type Index struct {
	Subject Node
	At      int
}

func (n *Index) Kind() Kind               { return KindIndex }
func (n *Index) Children() []Node         { return []Node{n.Subject} }
func (n *Index) ContextSwitching() []bool { return []bool{false} }
func (n *Index) String() string           { return fmt.Sprintf("%s[%d]", n.Subject, n.At) }
func (n *Index) equalSelf(other Node) bool {
	return n.At == other.(*Index).At
}
func (n *Index) WithChildren(children ...Node) (Node, error) {
	s, err := oneChild(KindIndex, children)
	if err != nil {
		return nil, err
	}
	return &Index{Subject: s, At: n.At}, nil
}

// Slice is a sub-sequence lookup. Start, Stop, and Step are nil when
// omitted, matching Python slice semantics (`s[start:stop:step]`).
type Slice struct {
	Subject           Node
	Start, Stop, Step *int
}

func (n *Slice) Kind() Kind               { return KindSlice }
func (n *Slice) Children() []Node         { return []Node{n.Subject} }
func (n *Slice) ContextSwitching() []bool { return []bool{false} }
func (n *Slice) String() string {
	fmtPart := func(p *int) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("%d", *p)
	}
	return fmt.Sprintf("%s[%s:%s:%s]", n.Subject, fmtPart(n.Start), fmtPart(n.Stop), fmtPart(n.Step))
}
func (n *Slice) equalSelf(other Node) bool {
	o := other.(*Slice)
	return intPtrEqual(n.Start, o.Start) && intPtrEqual(n.Stop, o.Stop) && intPtrEqual(n.Step, o.Step)
}
func (n *Slice) WithChildren(children ...Node) (Node, error) {
	s, err := oneChild(KindSlice, children)
	if err != nil {
		return nil, err
	}
	return &Slice{Subject: s, Start: n.Start, Stop: n.Stop, Step: n.Step}, nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// NewAttribute, NewIndex, and NewSlice construct projection/selection
// nodes. They perform no simplification; they exist for symmetry with the
// other New* constructors used by the builder surface.
func NewAttribute(subject Node, name string) *Attribute { return &Attribute{Subject: subject, Name: name} }
func NewIndex(subject Node, at int) *Index              { return &Index{Subject: subject, At: at} }
func NewSlice(subject Node, start, stop, step *int) *Slice {
	return &Slice{Subject: subject, Start: start, Stop: stop, Step: step}
}
