package schema

import (
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Merge folds contributions for the type name into one effective schema.
//
// Fields are concatenated in contribution order. A field declared again
// with identical flags keeps its first position; a field declared again
// with different Required or Readonly flags fails with ErrSchemaConflict.
// The schema is open if any contribution is open. Which fields exist, their
// flags, openness, and whether a conflict occurs do not depend on the
// order of contributions; only the field order does.
func Merge(name string, contributions []types.Contribution) (types.Schema, error) {
	s := types.Schema{
		Name:   name,
		Fields: []types.FieldSpec{},
	}
	index := make(map[string]int)

	for _, c := range contributions {
		if err := checkContribution(name, c); err != nil {
			return types.Schema{}, err
		}
		if c.Open {
			s.Open = true
		}
		for _, f := range c.Fields {
			if i, ok := index[f.Name]; ok {
				if !s.Fields[i].SameFlags(f) {
					return types.Schema{}, types.SchemaConflict(name, f.Name)
				}
				continue
			}
			index[f.Name] = len(s.Fields)
			s.Fields = append(s.Fields, f)
		}
		s.Contributions = append(s.Contributions, c)
	}
	return s, nil
}

// checkContribution enforces the per-contribution invariants: every field
// has a name and no name appears twice.
func checkContribution(name string, c types.Contribution) error {
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return &types.FieldError{Err: types.ErrInvalidName, Type: name}
		}
		if seen[f.Name] {
			return types.SchemaConflict(name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
