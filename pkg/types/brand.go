package types

import "golang.org/x/exp/constraints"

// Tag is the nominal brand carried by a Branded value.
type Tag string

// Number is any payload a Branded value can carry.
type Number interface {
	constraints.Integer | constraints.Float
}

// Branded is a numeric payload with an explicit nominal tag. Two Branded
// values with equal payload types but different tags are not
// interchangeable: brand-sensitive operations compare Tag at run time.
type Branded[N Number] struct {
	Tag     Tag `json:"tag"`
	Payload N   `json:"payload"`
}
