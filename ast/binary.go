package ast

import (
	"fmt"

	"github.com/gabereiser/qalg/qerr"
)

// BinaryOperands is embedded by every two-child node whose only
// kind-specific data is Subject/Other; see UnarySubject for the rationale.
type BinaryOperands struct {
	Subject Node
	Other   Node
}

func (n BinaryOperands) Children() []Node         { return []Node{n.Subject, n.Other} }
func (n BinaryOperands) ContextSwitching() []bool { return []bool{false, false} }
func (n BinaryOperands) equalSelf(Node) bool      { return true }

func twoChildren(kind Kind, children []Node) (Node, Node, error) {
	if len(children) != 2 {
		return nil, nil, qerr.InvalidConstruction.New("%s takes exactly two children, got %d", kind, len(children))
	}
	return children[0], children[1], nil
}

type Add struct{ BinaryOperands }

func (n *Add) Kind() Kind     { return KindAdd }
func (n *Add) String() string { return fmt.Sprintf("(%s + %s)", n.Subject, n.Other) }
func (n *Add) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindAdd, c)
	if err != nil {
		return nil, err
	}
	return &Add{BinaryOperands{s, o}}, nil
}

type Sub struct{ BinaryOperands }

func (n *Sub) Kind() Kind     { return KindSub }
func (n *Sub) String() string { return fmt.Sprintf("(%s - %s)", n.Subject, n.Other) }
func (n *Sub) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindSub, c)
	if err != nil {
		return nil, err
	}
	return &Sub{BinaryOperands{s, o}}, nil
}

type Mul struct{ BinaryOperands }

func (n *Mul) Kind() Kind     { return KindMul }
func (n *Mul) String() string { return fmt.Sprintf("(%s * %s)", n.Subject, n.Other) }
func (n *Mul) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindMul, c)
	if err != nil {
		return nil, err
	}
	return &Mul{BinaryOperands{s, o}}, nil
}

type Div struct{ BinaryOperands }

func (n *Div) Kind() Kind     { return KindDiv }
func (n *Div) String() string { return fmt.Sprintf("(%s / %s)", n.Subject, n.Other) }
func (n *Div) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindDiv, c)
	if err != nil {
		return nil, err
	}
	return &Div{BinaryOperands{s, o}}, nil
}

type Pow struct{ BinaryOperands }

func (n *Pow) Kind() Kind     { return KindPow }
func (n *Pow) String() string { return fmt.Sprintf("(%s ** %s)", n.Subject, n.Other) }
func (n *Pow) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindPow, c)
	if err != nil {
		return nil, err
	}
	return &Pow{BinaryOperands{s, o}}, nil
}

type Eq struct{ BinaryOperands }

func (n *Eq) Kind() Kind     { return KindEq }
func (n *Eq) String() string { return fmt.Sprintf("(%s == %s)", n.Subject, n.Other) }
func (n *Eq) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindEq, c)
	if err != nil {
		return nil, err
	}
	return &Eq{BinaryOperands{s, o}}, nil
}

type Ne struct{ BinaryOperands }

func (n *Ne) Kind() Kind     { return KindNe }
func (n *Ne) String() string { return fmt.Sprintf("(%s != %s)", n.Subject, n.Other) }
func (n *Ne) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindNe, c)
	if err != nil {
		return nil, err
	}
	return &Ne{BinaryOperands{s, o}}, nil
}

type Lt struct{ BinaryOperands }

func (n *Lt) Kind() Kind     { return KindLt }
func (n *Lt) String() string { return fmt.Sprintf("(%s < %s)", n.Subject, n.Other) }
func (n *Lt) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindLt, c)
	if err != nil {
		return nil, err
	}
	return &Lt{BinaryOperands{s, o}}, nil
}

type Le struct{ BinaryOperands }

func (n *Le) Kind() Kind     { return KindLe }
func (n *Le) String() string { return fmt.Sprintf("(%s <= %s)", n.Subject, n.Other) }
func (n *Le) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindLe, c)
	if err != nil {
		return nil, err
	}
	return &Le{BinaryOperands{s, o}}, nil
}

type Gt struct{ BinaryOperands }

func (n *Gt) Kind() Kind     { return KindGt }
func (n *Gt) String() string { return fmt.Sprintf("(%s > %s)", n.Subject, n.Other) }
func (n *Gt) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindGt, c)
	if err != nil {
		return nil, err
	}
	return &Gt{BinaryOperands{s, o}}, nil
}

type Ge struct{ BinaryOperands }

func (n *Ge) Kind() Kind     { return KindGe }
func (n *Ge) String() string { return fmt.Sprintf("(%s >= %s)", n.Subject, n.Other) }
func (n *Ge) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindGe, c)
	if err != nil {
		return nil, err
	}
	return &Ge{BinaryOperands{s, o}}, nil
}

// And implements boolean conjunction. Use NewAnd, not a literal struct, to
// get the mandated construction-time simplifications.
type And struct{ BinaryOperands }

func (n *And) Kind() Kind     { return KindAnd }
func (n *And) String() string { return fmt.Sprintf("(%s & %s)", n.Subject, n.Other) }
func (n *And) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindAnd, c)
	if err != nil {
		return nil, err
	}
	return NewAnd(s, o), nil
}

// Or implements boolean disjunction. Use NewOr, not a literal struct, to
// get the mandated construction-time simplifications.
type Or struct{ BinaryOperands }

func (n *Or) Kind() Kind     { return KindOr }
func (n *Or) String() string { return fmt.Sprintf("(%s | %s)", n.Subject, n.Other) }
func (n *Or) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindOr, c)
	if err != nil {
		return nil, err
	}
	return NewOr(s, o), nil
}

// Regex tests Subject against the pattern held in Other (an expression,
// commonly a literal string) as a regular expression match.
type Regex struct{ BinaryOperands }

func (n *Regex) Kind() Kind     { return KindRegex }
func (n *Regex) String() string { return fmt.Sprintf("%s.matches(%s)", n.Subject, n.Other) }
func (n *Regex) WithChildren(c ...Node) (Node, error) {
	s, o, err := twoChildren(KindRegex, c)
	if err != nil {
		return nil, err
	}
	return &Regex{BinaryOperands{s, o}}, nil
}
