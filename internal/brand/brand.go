// Package brand attaches nominal tags to numeric payloads and gates
// combination on tag equality.
//
// The tag lives in the value and is compared on every Combine, so values
// that are structurally identical (same payload type) but carry different
// brands cannot be mixed. Reading a payload never needs a tag check.
package brand

import (
	"fmt"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// MismatchError reports an attempt to combine values of different brands.
type MismatchError struct {
	Left  types.Tag
	Right types.Tag
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: %q vs %q", types.ErrBrandMismatch, e.Left, e.Right)
}

func (e *MismatchError) Unwrap() error { return types.ErrBrandMismatch }

// Wrap brands payload with tag.
func Wrap[N types.Number](tag types.Tag, payload N) types.Branded[N] {
	return types.Branded[N]{Tag: tag, Payload: payload}
}

// Unwrap returns the payload of v.
func Unwrap[N types.Number](v types.Branded[N]) N {
	return v.Payload
}

// Is reports whether v carries tag.
func Is[N types.Number](v types.Branded[N], tag types.Tag) bool {
	return v.Tag == tag
}

// Combine applies op to the payloads of a and b. Tags must be equal byte
// for byte; the result carries the shared tag.
func Combine[N types.Number](a, b types.Branded[N], op func(N, N) N) (types.Branded[N], error) {
	if a.Tag != b.Tag {
		return types.Branded[N]{}, &MismatchError{Left: a.Tag, Right: b.Tag}
	}
	return types.Branded[N]{Tag: a.Tag, Payload: op(a.Payload, b.Payload)}, nil
}

// Sum folds values with Add. Every value must carry tag; an empty list
// sums to zero.
func Sum[N types.Number](tag types.Tag, values ...types.Branded[N]) (types.Branded[N], error) {
	acc := Wrap[N](tag, 0)
	for _, v := range values {
		var err error
		if acc, err = Combine(acc, v, Add[N]); err != nil {
			return types.Branded[N]{}, err
		}
	}
	return acc, nil
}

// Add returns a + b.
func Add[N types.Number](a, b N) N { return a + b }

// Max returns the larger of a and b.
func Max[N types.Number](a, b N) N { return max(a, b) }

// Min returns the smaller of a and b.
func Min[N types.Number](a, b N) N { return min(a, b) }
