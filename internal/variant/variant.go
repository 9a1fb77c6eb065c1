// Package variant discriminates polymorphic values against an ordered set
// of named variants and dispatches to the matching handler.
package variant

import (
	"fmt"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// NoMatchError reports that no variant of a set accepted a value.
type NoMatchError struct {
	Set   string
	Value any
}

func (e *NoMatchError) Error() string {
	if e.Set == "" {
		return fmt.Sprintf("%v for %v", types.ErrNoMatchingVariant, e.Value)
	}
	return fmt.Sprintf("%v in %s for %v", types.ErrNoMatchingVariant, e.Set, e.Value)
}

func (e *NoMatchError) Unwrap() error { return types.ErrNoMatchingVariant }

// Classify returns the tag of the first variant, in declaration order,
// whose predicate accepts value. A set with no accepting variant yields a
// NoMatchError; this is a recoverable result, never a panic.
func Classify[V, R any](value V, set types.VariantSet[V, R]) (string, error) {
	v, err := match(value, set)
	if err != nil {
		return "", err
	}
	return v.Tag, nil
}

// Dispatch classifies value and runs the matched variant's handler. A
// variant without a handler returns the zero R.
func Dispatch[V, R any](value V, set types.VariantSet[V, R]) (R, error) {
	v, err := match(value, set)
	if err != nil {
		var zero R
		return zero, err
	}
	if v.Handler == nil {
		var zero R
		return zero, nil
	}
	return v.Handler(value)
}

func match[V, R any](value V, set types.VariantSet[V, R]) (types.Variant[V, R], error) {
	for _, v := range set.Variants {
		if v.Predicate != nil && v.Predicate(value) {
			return v, nil
		}
	}
	return types.Variant[V, R]{}, &NoMatchError{Set: set.Name, Value: value}
}
