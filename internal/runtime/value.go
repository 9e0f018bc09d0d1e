// Package runtime holds the dynamic value model, the environment
// scope chain, and the class/instance machinery the interpreter
// drives, kept separate from the evaluator that walks the tree.
package runtime

import (
	"fmt"
	"strconv"
)

// Value is the dynamic sum from spec.md §3: Nil | Bool | Number |
// String | Callable | Instance. Go's nil represents Nil directly so
// zero-valued fields and missing map entries read naturally as the
// Lox nil value.
type Value any

// IsTruthy implements spec.md §3's truthiness rule: nil and false are
// false, everything else is true.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// Equal implements spec.md §4.5 equality: structural for primitives,
// identity for callables and instances (Go's == on the underlying
// pointer already gives identity semantics for those).
func Equal(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders a Value the way "print" and string concatenation
// do, per spec.md §4.5.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// TypeName returns a short label for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
