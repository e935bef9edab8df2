package ast

import (
	"fmt"

	"github.com/gabereiser/qalg/qerr"
)

// UnarySubject is embedded by every single-child node whose only
// kind-specific data is its subject. It implements the Children,
// ContextSwitching, and equalSelf boilerplate once; each concrete type
// still defines its own Kind, WithChildren, and String so debug output
// reads like the operator it represents.
type UnarySubject struct {
	Subject Node
}

func (n UnarySubject) Children() []Node         { return []Node{n.Subject} }
func (n UnarySubject) ContextSwitching() []bool { return []bool{false} }
func (n UnarySubject) equalSelf(Node) bool      { return true }

func oneChild(kind Kind, children []Node) (Node, error) {
	if len(children) != 1 {
		return nil, qerr.InvalidConstruction.New("%s takes exactly one child, got %d", kind, len(children))
	}
	return children[0], nil
}

type Not struct{ UnarySubject }

func (n *Not) Kind() Kind      { return KindNot }
func (n *Not) String() string  { return fmt.Sprintf("~%s", n.Subject) }
func (n *Not) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindNot, c)
	if err != nil {
		return nil, err
	}
	return NewNot(s), nil
}

type Neg struct{ UnarySubject }

func (n *Neg) Kind() Kind     { return KindNeg }
func (n *Neg) String() string { return fmt.Sprintf("-%s", n.Subject) }
func (n *Neg) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindNeg, c)
	if err != nil {
		return nil, err
	}
	return &Neg{UnarySubject{s}}, nil
}

type Str struct{ UnarySubject }

func (n *Str) Kind() Kind     { return KindStr }
func (n *Str) String() string { return fmt.Sprintf("str(%s)", n.Subject) }
func (n *Str) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindStr, c)
	if err != nil {
		return nil, err
	}
	return &Str{UnarySubject{s}}, nil
}

type Lower struct{ UnarySubject }

func (n *Lower) Kind() Kind     { return KindLower }
func (n *Lower) String() string { return fmt.Sprintf("lower(%s)", n.Subject) }
func (n *Lower) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindLower, c)
	if err != nil {
		return nil, err
	}
	return &Lower{UnarySubject{s}}, nil
}

type Upper struct{ UnarySubject }

func (n *Upper) Kind() Kind     { return KindUpper }
func (n *Upper) String() string { return fmt.Sprintf("upper(%s)", n.Subject) }
func (n *Upper) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindUpper, c)
	if err != nil {
		return nil, err
	}
	return &Upper{UnarySubject{s}}, nil
}

type Sum struct{ UnarySubject }

func (n *Sum) Kind() Kind     { return KindSum }
func (n *Sum) String() string { return fmt.Sprintf("%s.sum()", n.Subject) }
func (n *Sum) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindSum, c)
	if err != nil {
		return nil, err
	}
	return &Sum{UnarySubject{s}}, nil
}

type Min struct{ UnarySubject }

func (n *Min) Kind() Kind     { return KindMin }
func (n *Min) String() string { return fmt.Sprintf("%s.min()", n.Subject) }
func (n *Min) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindMin, c)
	if err != nil {
		return nil, err
	}
	return &Min{UnarySubject{s}}, nil
}

type Max struct{ UnarySubject }

func (n *Max) Kind() Kind     { return KindMax }
func (n *Max) String() string { return fmt.Sprintf("%s.max()", n.Subject) }
func (n *Max) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindMax, c)
	if err != nil {
		return nil, err
	}
	return &Max{UnarySubject{s}}, nil
}

type Len struct{ UnarySubject }

func (n *Len) Kind() Kind     { return KindLen }
func (n *Len) String() string { return fmt.Sprintf("%s.len()", n.Subject) }
func (n *Len) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindLen, c)
	if err != nil {
		return nil, err
	}
	return &Len{UnarySubject{s}}, nil
}

type Distinct struct{ UnarySubject }

func (n *Distinct) Kind() Kind     { return KindDistinct }
func (n *Distinct) String() string { return fmt.Sprintf("%s.distinct()", n.Subject) }
func (n *Distinct) WithChildren(c ...Node) (Node, error) {
	s, err := oneChild(KindDistinct, c)
	if err != nil {
		return nil, err
	}
	return &Distinct{UnarySubject{s}}, nil
}
