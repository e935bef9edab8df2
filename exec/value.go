package exec

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/gabereiser/qalg/qerr"
)

// truthy mirrors the host-language notion of "truthy" the spec leans on
// for Filter predicates and And/Or short-circuiting: false, nil, zero
// numbers, and empty strings, []any slices, and mappings are falsy;
// everything else, including any lazy Sequence, is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, _ := cast.ToInt64E(t)
		return n != 0
	case float32, float64:
		f, _ := cast.ToFloat64E(t)
		return f != 0
	case []any:
		return len(t) != 0
	case map[string]any:
		return len(t) != 0
	default:
		return true
	}
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

// arith evaluates a binary arithmetic operator over two already-evaluated
// operands. Division is always true (float) division, per spec §4.1.
func arith(op string, a, b any) (any, error) {
	switch {
	case isNumeric(a) && isNumeric(b):
		af, _ := cast.ToFloat64E(a)
		bf, _ := cast.ToFloat64E(b)
		switch op {
		case "+":
			return normalizeIfIntegral(af+bf, a, b), nil
		case "-":
			return normalizeIfIntegral(af-bf, a, b), nil
		case "*":
			return normalizeIfIntegral(af*bf, a, b), nil
		case "/":
			if bf == 0 {
				return nil, qerr.TypeMismatch.New("division by zero")
			}
			return af / bf, nil
		case "**":
			return pow(af, bf), nil
		}
	case op == "+" && isString(a) && isString(b):
		return a.(string) + b.(string), nil
	}
	return nil, qerr.TypeMismatch.New("unsupported operand types for %s: %T and %T", op, a, b)
}

func isString(v any) bool { _, ok := v.(string); return ok }

// normalizeIfIntegral returns an int64 result when both operands were
// integral (so `2 + 3` stays `5`, not `5.0`), and a float64 result
// otherwise.
func normalizeIfIntegral(result float64, a, b any) any {
	if isIntegral(a) && isIntegral(b) {
		return int64(result)
	}
	return result
}

func isIntegral(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func pow(base, exp float64) float64 {
	if exp == 0 {
		return 1
	}
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	// exp is expected to be a small integral exponent in practice; a
	// simple repeated-multiplication loop avoids pulling in math.Pow's
	// float-exponent generality for the common case this algebra
	// exercises (integer powers over aggregate/arithmetic expressions).
	for i := 0; i < int(exp); i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

// compare returns -1, 0, or 1 for a < b, a == b, a > b respectively, over
// operands the comparison operators and Sort both need ordered.
func compare(a, b any) (int, error) {
	switch {
	case isNumeric(a) && isNumeric(b):
		af, _ := cast.ToFloat64E(a)
		bf, _ := cast.ToFloat64E(b)
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case isString(a) && isString(b):
		return strings.Compare(a.(string), b.(string)), nil
	default:
		return 0, qerr.TypeMismatch.New("uncomparable operand types: %T and %T", a, b)
	}
}

func equalValues(a, b any) bool {
	if isNumeric(a) && isNumeric(b) {
		af, _ := cast.ToFloat64E(a)
		bf, _ := cast.ToFloat64E(b)
		return af == bf
	}
	return a == b
}

// valueKey builds a canonical, comparable Go map key for an evaluated
// value, used by Distinct and Groupby to bucket elements whose natural
// type (e.g. a mapping) is not itself a valid Go map key.
func valueKey(v any) string {
	switch t := v.(type) {
	case map[string]any:
		var b strings.Builder
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sortStrings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s=%s;", k, valueKey(t[k]))
		}
		return "{" + b.String() + "}"
	case []any:
		var b strings.Builder
		for _, e := range t {
			fmt.Fprintf(&b, "%s,", valueKey(e))
		}
		return "[" + b.String() + "]"
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// toDisplayString renders an evaluated value the way Str() does: strings
// pass through unquoted, everything else uses its natural Go formatting.
func toDisplayString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func lowerString(s string) string { return strings.ToLower(s) }
func upperString(s string) string { return strings.ToUpper(s) }

// sliceBounds resolves possibly-nil, possibly-negative slice endpoints
// against a concrete length, mirroring Python slice semantics.
func sliceBounds(length int, start, stop, step *int) (int, int, int) {
	st := 1
	if step != nil {
		st = *step
		if st == 0 {
			st = 1
		}
	}
	var lo, hi int
	if st > 0 {
		lo, hi = 0, length
	} else {
		lo, hi = length-1, -length-1
	}
	resolve := func(p *int, def int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += length
		}
		return v
	}
	begin := resolve(start, lo)
	end := resolve(stop, hi)
	if st > 0 {
		if begin < 0 {
			begin = 0
		}
		if end > length {
			end = length
		}
	} else {
		if begin > length-1 {
			begin = length - 1
		}
		if end < -1 {
			end = -1
		}
	}
	return begin, end, st
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
