package builder

import (
	"github.com/gabereiser/qalg/ast"
)

// Filter retains elements for which predicate is truthy. predicate is
// built using Ctx(0) to refer to the candidate element; kv supplies
// additional equality constraints ANDed in as a convenience (Kw builds a
// KV pair), mirroring a common shorthand for `.filter(C.x == 1, y=2)`.
func (e Expr) Filter(predicate Expr, kv ...KV) Expr {
	p := predicate.node
	for _, pair := range kv {
		eq := ast.NewEq(ast.NewAttribute(&ast.CurrentContext{ScopeDepth: 0}, pair.Key), toNode(pair.Value))
		p = ast.NewAnd(p, eq)
	}
	return wrap(ast.NewFilter(e.node, p))
}

// KV is a keyword-style equality constraint for Filter's shorthand form.
type KV struct {
	Key   string
	Value any
}

// Kw builds a KV pair.
func Kw(key string, value any) KV { return KV{Key: key, Value: value} }

// Map projects each element to newValue, built using Ctx(0) for the
// candidate element.
func (e Expr) Map(newValue Expr) Expr {
	return wrap(&ast.Map{Subject: e.node, NewValue: newValue.node})
}

// Sort orders elements by the given keys (or by element identity, if none
// given), stably and lexicographically. Each key built with .Neg() (e.g.
// C.Attr("age").Neg()) is automatically unwrapped into a descending key
// rather than an arithmetic negation, per spec §4.2's "sort(*keys)"
// convenience: this is the one place a Neg node is interpreted specially
// instead of evaluated arithmetically.
func (e Expr) Sort(keys ...Expr) Expr {
	sk := make([]ast.SortKey, len(keys))
	for i, k := range keys {
		if neg, ok := k.node.(*ast.Neg); ok {
			sk[i] = ast.SortKey{Expr: neg.Subject, Reverse: true}
			continue
		}
		sk[i] = ast.SortKey{Expr: k.node}
	}
	return wrap(&ast.Sort{Subject: e.node, Keys: sk})
}

// Agg is one named aggregate computed per group; Expr is built using
// Ctx(0) to refer to the group's own sequence.
type Agg struct {
	Name string
	Expr Expr
}

// Aggr builds an Agg pair.
func Aggr(name string, expr Expr) Agg { return Agg{Name: name, Expr: expr} }

// Groupby partitions elements by key (built using Ctx(0) for the
// candidate element) and evaluates each aggregate over the resulting
// group (built using Ctx(0) for the group's own sequence). keyName names
// the field the key is reported under in each emitted mapping; "" means
// "key". An aggregate with the same name as the key field is not
// renamed: Execute reports an error.
func (e Expr) Groupby(key Expr, keyName string, aggs ...Agg) Expr {
	as := make([]ast.Aggregate, len(aggs))
	for i, a := range aggs {
		as[i] = ast.Aggregate{Name: a.Name, Expr: a.Expr.node}
	}
	return wrap(&ast.Groupby{Subject: e.node, Key: key.node, Aggregates: as, KeyName: keyName})
}

// One extracts exactly one element, yielding def (or nil if def is not
// given) when Subject is empty; more than one element is an evaluation
// error (qerr.MultipleResults).
func (e Expr) One(def ...any) Expr {
	var d ast.Node
	if len(def) > 0 {
		d = toNode(def[0])
	}
	return wrap(&ast.One{Subject: e.node, Default: d})
}
