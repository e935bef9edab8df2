package transform

import "github.com/gabereiser/qalg/ast"

// ScopeVisitor is like Visitor, but each call also receives the scope
// depth of the node being visited: 0 at the root, incremented by one on
// entry to each context-switching child (spec §4.3). A CurrentContext(d)
// node found at scope depth s refers to the binding introduced s+d levels
// down from the root — equivalently, the binding pushed by the (s+d)-th
// context switch on the path from the root.
type ScopeVisitor interface {
	VisitScoped(node ast.Node, depth int) ScopeVisitor
}

// WalkScoped traverses node in pre-order like Walk, threading depth the
// way spec §4.3 describes: entering a context-switching argument
// increments depth by one before recursing; entering any other argument
// leaves it unchanged.
func WalkScoped(v ScopeVisitor, node ast.Node, depth int) {
	if v = v.VisitScoped(node, depth); v == nil {
		return
	}
	if node != nil {
		children := node.Children()
		switches := node.ContextSwitching()
		for i, child := range children {
			d := depth
			if i < len(switches) && switches[i] {
				d++
			}
			WalkScoped(v, child, d)
		}
	}
	v.VisitScoped(nil, depth)
}

type scopeInspector func(node ast.Node, depth int) bool

func (f scopeInspector) VisitScoped(node ast.Node, depth int) ScopeVisitor {
	if f(node, depth) {
		return f
	}
	return nil
}

// InspectScoped is WalkScoped's Inspect-style convenience wrapper.
func InspectScoped(node ast.Node, f func(node ast.Node, depth int) bool) {
	WalkScoped(scopeInspector(f), node, 0)
}
