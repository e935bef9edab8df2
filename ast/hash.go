package ast

import "github.com/mitchellh/hashstructure"

// Hash computes a structural hash of n by reflecting over its own
// concrete fields, including every child Node transitively — the same
// dependency the teacher's go.mod declares for exactly this purpose
// ("compute a hash value for an arbitrary Go structure"). Two nodes that
// compare Equal hash the same, since Equal itself walks Kind, equalSelf,
// and Children over the identical field set hashstructure reflects over.
// A node carrying a field hashstructure cannot reflect over (none of the
// current node types do) reports an error rather than a wrong answer.
func Hash(n Node) (uint64, error) {
	return hashstructure.Hash(n, nil)
}

// redundant reports whether a and b are guaranteed structurally Equal,
// using Hash as a cheap pre-filter before the more expensive recursive
// Equal walk: used by NewAnd/NewOr to fold an idempotent `x & x` or
// `x | x` down to `x`. A Hash error (or a hash mismatch) just means "not
// provably redundant", never a false positive — Equal is still the
// deciding call whenever the hashes agree.
func redundant(a, b Node) bool {
	ha, err := Hash(a)
	if err != nil {
		return false
	}
	hb, err := Hash(b)
	if err != nil {
		return false
	}
	return ha == hb && Equal(a, b)
}
