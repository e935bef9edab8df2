// Package builder is the fluent, chainable surface users actually write
// queries against (spec §4.2). Every method returns a new Expr wrapping a
// freshly constructed ast.Node; nothing here mutates a previously returned
// Expr, matching the AST's own immutability.
//
// Misuse that the host language would catch structurally (assigning to an
// attribute, iterating an Expr, dict-style lookup, calling an undefined
// method) has no equivalent compile-time check in Go, so the handful of
// cases spec §4.2/§9 calls out as construction-time errors are raised by
// panicking with a qerr.InvalidConstruction, consistent with how this
// package signals any other construction-time misuse (see Ctx and Attr
// below). Evaluation errors, by contrast, are always returned,
// never panicked; only Execute can fail at evaluation time.
package builder

import (
	"context"

	"github.com/gabereiser/qalg/ast"
	"github.com/gabereiser/qalg/exec"
	"github.com/gabereiser/qalg/qerr"
)

// Expr wraps an ast.Node behind the fluent builder surface.
type Expr struct {
	node ast.Node
}

func wrap(n ast.Node) Expr { return Expr{node: n} }

// Node returns the underlying AST node, for callers that need to hand a
// built expression to transform.Walk, a Translator, or another component
// outside the builder surface.
func (e Expr) Node() ast.Node { return e.node }

func (e Expr) String() string { return e.node.String() }

func toNode(v any) ast.Node {
	if e, ok := v.(Expr); ok {
		return e.node
	}
	return ast.Lift(v)
}

// Lift wraps an arbitrary host value (including a nested list/mapping) as
// an Expr, for use as a literal operand alongside other Expr values.
func Lift(v any) Expr { return wrap(toNode(v)) }

// Source is implemented by anything an Expr's C() entry point can bind
// the query's storage to.
type Source = ast.Source

// C begins a query rooted at src's full contents (a StoredItems leaf).
func C(src Source) Expr {
	return wrap(&ast.StoredItems{Storage: src})
}

// Ctx returns an Expr referring to an enclosing scope's bound element.
// depth 0 is the innermost (current) scope; more negative values reach
// further out. A positive depth is a construction-time error: there is no
// such thing as looking "inward" from a scope.
func Ctx(depth int) Expr {
	n, err := ast.NewCurrentContext(depth)
	if err != nil {
		panic(err)
	}
	return wrap(n)
}

// C0 is shorthand for Ctx(0), the most common reference ("the current
// element") used to start a predicate or projection expression.
func C0() Expr { return Ctx(0) }

// Arithmetic.
func (e Expr) Add(other any) Expr { return wrap(ast.NewAdd(e.node, toNode(other))) }
func (e Expr) Sub(other any) Expr { return wrap(ast.NewSub(e.node, toNode(other))) }
func (e Expr) Mul(other any) Expr { return wrap(ast.NewMul(e.node, toNode(other))) }
func (e Expr) Div(other any) Expr { return wrap(ast.NewDiv(e.node, toNode(other))) }
func (e Expr) Pow(other any) Expr { return wrap(ast.NewPow(e.node, toNode(other))) }
func (e Expr) Neg() Expr          { return wrap(ast.NewNeg(e.node)) }

// Comparison.
func (e Expr) Eq(other any) Expr { return wrap(ast.NewEq(e.node, toNode(other))) }
func (e Expr) Ne(other any) Expr { return wrap(ast.NewNe(e.node, toNode(other))) }
func (e Expr) Lt(other any) Expr { return wrap(ast.NewLt(e.node, toNode(other))) }
func (e Expr) Le(other any) Expr { return wrap(ast.NewLe(e.node, toNode(other))) }
func (e Expr) Gt(other any) Expr { return wrap(ast.NewGt(e.node, toNode(other))) }
func (e Expr) Ge(other any) Expr { return wrap(ast.NewGe(e.node, toNode(other))) }

// Logic.
func (e Expr) Not() Expr          { return wrap(ast.NewNot(e.node)) }
func (e Expr) And(other any) Expr { return wrap(ast.NewAnd(e.node, toNode(other))) }
func (e Expr) Or(other any) Expr  { return wrap(ast.NewOr(e.node, toNode(other))) }

// Strings.
func (e Expr) Str() Expr              { return wrap(ast.NewStr(e.node)) }
func (e Expr) Lower() Expr            { return wrap(ast.NewLower(e.node)) }
func (e Expr) Upper() Expr            { return wrap(ast.NewUpper(e.node)) }
func (e Expr) Matches(pattern any) Expr { return wrap(ast.NewRegex(e.node, toNode(pattern))) }

// Aggregates/unary sequence operators.
func (e Expr) Sum() Expr      { return wrap(ast.NewSum(e.node)) }
func (e Expr) Min() Expr      { return wrap(ast.NewMin(e.node)) }
func (e Expr) Max() Expr      { return wrap(ast.NewMax(e.node)) }
func (e Expr) Len() Expr      { return wrap(ast.NewLen(e.node)) }
func (e Expr) Distinct() Expr { return wrap(ast.NewDistinct(e.node)) }

// Attr is named field access, reserved strictly for data lookup (spec
// §9's Attribute/method ambiguity note): the reserved operation names
// below are exposed as Expr methods, never through Attr.
func (e Expr) Attr(name string) Expr {
	switch name {
	case "filter", "map", "sort", "groupby", "one", "sum", "min", "max", "len",
		"distinct", "str", "lower", "upper", "matches":
		panic(qerr.InvalidConstruction.New("%q is a reserved operation name; call it as a method instead of Attr(%q)", name, name))
	}
	return wrap(ast.NewAttribute(e.node, name))
}

// Get is positional lookup (Expr's `[]`-style access): it builds an Index
// (negative counts from the end). Sub-sequences use Slice. Get accepts
// only an int, so a dict-style lookup by a non-integer key cannot be
// expressed.
func (e Expr) Get(at int) Expr { return wrap(ast.NewIndex(e.node, at)) }

// Slice builds a Slice node; a nil pointer means the bound was omitted.
func (e Expr) Slice(start, stop, step *int) Expr {
	return wrap(ast.NewSlice(e.node, start, stop, step))
}

// Execute runs the built expression through the default in-memory/
// backend-dispatching executor.
func (e Expr) Execute(ctx context.Context) (any, error) {
	return exec.Execute(ctx, e.node)
}
