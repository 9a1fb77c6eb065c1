package types

// FieldSpec declares one field of a named record type.
type FieldSpec struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required" yaml:"required"`
	Readonly bool   `json:"readonly" yaml:"readonly"`
}

// SameFlags reports whether f and other agree on every flag. Two
// declarations of one field name may coexist only when SameFlags holds.
func (f FieldSpec) SameFlags(other FieldSpec) bool {
	return f.Required == other.Required && f.Readonly == other.Readonly
}

// Contribution is one registration site's partial declaration of a named
// type. Several contributions for the same name merge into one Schema.
type Contribution struct {
	Site    string      `json:"site,omitempty" yaml:"site,omitempty"`
	Fields  []FieldSpec `json:"fields" yaml:"fields"`
	Open    bool        `json:"open,omitempty" yaml:"open,omitempty"`
	Extends []string    `json:"extends,omitempty" yaml:"extends,omitempty"`
}

// Schema is the effective contract of a named record type: the merged
// fields of all its contributions in registration order.
type Schema struct {
	Name          string         `json:"name"`
	Fields        []FieldSpec    `json:"fields"`
	Open          bool           `json:"open"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

// Field returns the declaration of name, if any.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Required returns the names of required fields in schema order.
func (s Schema) Required() []string {
	return s.names(func(f FieldSpec) bool { return f.Required })
}

// Optional returns the names of optional fields in schema order.
func (s Schema) Optional() []string {
	return s.names(func(f FieldSpec) bool { return !f.Required })
}

// Readonly returns the names of readonly fields in schema order.
func (s Schema) Readonly() []string {
	return s.names(func(f FieldSpec) bool { return f.Readonly })
}

func (s Schema) names(keep func(FieldSpec) bool) []string {
	out := []string{}
	for _, f := range s.Fields {
		if keep(f) {
			out = append(out, f.Name)
		}
	}
	return out
}
