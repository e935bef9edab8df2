package transform

import "github.com/gabereiser/qalg/ast"

// TreeIdentity reports whether a rewrite produced a structurally new tree
// (NewTree) or returned the original, unchanged (SameTree). Node threads
// this bottom-up: a node is SameTree only if its own rewrite step and
// every child's rewrite were all SameTree, so a single change anywhere in
// a subtree marks every ancestor NewTree.
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

// NodeFunc rewrites a single node (whose children, if any, have already
// been rewritten) to a replacement, reporting whether it actually changed
// anything.
type NodeFunc func(ast.Node) (ast.Node, TreeIdentity, error)

// Node applies f to every node of the tree rooted at n, bottom-up
// (children before parents): each child is rewritten first via a
// recursive call to Node, then, if any child changed, n is rebuilt with
// WithChildren, and finally f is applied to the (possibly rebuilt) node
// itself.
func Node(n ast.Node, f NodeFunc) (ast.Node, TreeIdentity, error) {
	if n == nil {
		return f(n)
	}

	children := n.Children()
	sameChildren := SameTree
	newChildren := make([]ast.Node, len(children))
	for i, c := range children {
		nc, same, err := Node(c, f)
		if err != nil {
			return n, SameTree, err
		}
		newChildren[i] = nc
		if same == NewTree {
			sameChildren = NewTree
		}
	}

	current := n
	if sameChildren == NewTree {
		wc, err := n.WithChildren(newChildren...)
		if err != nil {
			return n, SameTree, err
		}
		current = wc
	}

	result, same, err := f(current)
	if err != nil {
		return n, SameTree, err
	}
	if same == NewTree || sameChildren == NewTree {
		return result, NewTree, nil
	}
	return result, SameTree, nil
}
