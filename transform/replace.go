package transform

import "github.com/gabereiser/qalg/ast"

// CopyReplace returns a structurally-updated copy of root in which every
// occurrence of a key of replacements (compared by identity, i.e. Go
// interface/pointer equality — not ast.Equal's structural comparison) is
// replaced by its mapped value. A matched node is replaced wholesale,
// subtree and all; unmatched subtrees are shared unchanged with the
// original tree. This is the foundation for executor and backend
// rewrites such as partial evaluation.
func CopyReplace(root ast.Node, replacements map[ast.Node]ast.Node) ast.Node {
	result, _ := copyReplace(root, replacements)
	return result
}

func copyReplace(n ast.Node, replacements map[ast.Node]ast.Node) (ast.Node, TreeIdentity) {
	if n == nil {
		return nil, SameTree
	}
	if repl, ok := replacements[n]; ok {
		return repl, NewTree
	}
	children := n.Children()
	if len(children) == 0 {
		return n, SameTree
	}
	newChildren := make([]ast.Node, len(children))
	changed := SameTree
	for i, c := range children {
		nc, same := copyReplace(c, replacements)
		newChildren[i] = nc
		if same == NewTree {
			changed = NewTree
		}
	}
	if changed == SameTree {
		return n, SameTree
	}
	wc, err := n.WithChildren(newChildren...)
	if err != nil {
		// n.WithChildren is only ever handed len(n.Children()) nodes
		// here, the one arity every implementation accepts; an error
		// means a node type violated its own Children()/WithChildren
		// contract.
		panic("transform: CopyReplace: " + n.Kind().String() + ".WithChildren rejected its own child count: " + err.Error())
	}
	return wc, NewTree
}
