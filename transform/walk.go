// Package transform provides the structural traversal and rewrite
// primitives the executor and backend translators build on: a pre-order
// Walk/Inspect pair (modeled directly on the standard library's go/ast
// Walk), a post-order structural rewrite (Node/NodeFunc/TreeIdentity),
// and a scope-depth-aware walk that implements spec §4.3's traversal
// primitive.
package transform

import "github.com/gabereiser/qalg/ast"

// Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of node's children
// with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses an AST in pre-order, calling v.Visit for each node. It
// mirrors go/ast.Walk: entering node calls Visit(node); if that returns a
// non-nil visitor, Walk recurses into node's children with it and then
// calls Visit(nil) to mark that node's children are exhausted.
func Walk(v Visitor, node ast.Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	if node != nil {
		for _, child := range node.Children() {
			Walk(v, child)
		}
	}
	v.Visit(nil)
}

type inspector func(ast.Node) bool

func (f inspector) Visit(node ast.Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in pre-order, calling f for each node
// (including the nil sentinels Walk emits at the end of each node's
// children) until f returns false.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	Walk(inspector(f), node)
}
