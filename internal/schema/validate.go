package schema

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Validate checks record against schema. Rules apply in order and stop at
// the first failure:
//
//  1. every required field must be present with a non-nil value, else
//     ErrMissingRequiredField (fields are checked in schema order);
//  2. every record key must be declared unless the schema is open, else
//     ErrUnknownField (keys are checked in sorted order).
//
// Readonly is not enforced: the validator sees one snapshot of the record
// and cannot observe later mutation. Value types are not checked.
func Validate(record types.Record, schema types.Schema) error {
	declared := make(map[string]bool, len(schema.Fields))
	for _, f := range schema.Fields {
		declared[f.Name] = true
		if !f.Required {
			continue
		}
		if v, ok := record[f.Name]; !ok || v == nil {
			return types.MissingRequiredField(schema.Name, f.Name)
		}
	}

	if schema.Open {
		return nil
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !declared[k] {
			return types.UnknownField(schema.Name, k)
		}
	}
	return nil
}

// ValidateAll validates records concurrently, at most limit at a time
// (limit <= 0 means no limit). The result has one entry per record, in
// input order; nil means the record is valid. Records not yet validated
// when ctx is done report ctx.Err().
func ValidateAll(ctx context.Context, records []types.Record, schema types.Schema, limit int) []error {
	errs := make([]error, len(records))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = Validate(rec, schema)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
