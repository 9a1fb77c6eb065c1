package types

// Variant is one named alternative of a discriminated union. Predicate
// decides membership; Handler runs when the variant is dispatched.
type Variant[V, R any] struct {
	Tag       string
	Predicate func(V) bool
	Handler   func(V) (R, error)
}

// VariantSet is an ordered list of variants keyed by a discriminator name.
// Predicates should be mutually exclusive; when they are not, the first
// variant in declaration order wins.
type VariantSet[V, R any] struct {
	Name     string
	Variants []Variant[V, R]
}

// Tags returns the variant tags in declaration order.
func (s VariantSet[V, R]) Tags() []string {
	tags := make([]string, 0, len(s.Variants))
	for _, v := range s.Variants {
		tags = append(tags, v.Tag)
	}
	return tags
}
