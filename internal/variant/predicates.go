package variant

import (
	"reflect"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// HasField accepts records that carry the key, whatever its value.
func HasField(name string) func(types.Record) bool {
	return func(r types.Record) bool { return r.Has(name) }
}

// FieldEquals accepts records whose value at name equals want. Numbers
// compare by value, so 17 matches the float64 17 of a decoded JSON record.
func FieldEquals(name string, want any) func(types.Record) bool {
	wantNum, wantIsNum := number(want)
	return func(r types.Record) bool {
		got, ok := r[name]
		if !ok {
			return false
		}
		if wantIsNum {
			n, isNum := number(got)
			return isNum && n == wantNum
		}
		return reflect.DeepEqual(got, want)
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Not negates a predicate.
func Not[V any](p func(V) bool) func(V) bool {
	return func(v V) bool { return !p(v) }
}

// Always accepts every value. Use it as the last variant of a set that
// needs a fallback.
func Always[V any](V) bool { return true }

// Enum builds a set over a closed list of string literals. Each literal
// is its own variant whose handler returns handle(literal). Values outside
// the list fail with ErrNoMatchingVariant.
func Enum[R any](name string, handle func(string) (R, error), literals ...string) types.VariantSet[string, R] {
	set := types.VariantSet[string, R]{Name: name}
	for _, lit := range literals {
		set.Variants = append(set.Variants, types.Variant[string, R]{
			Tag:       lit,
			Predicate: func(s string) bool { return s == lit },
			Handler:   handle,
		})
	}
	return set
}
