// Package schema holds the field-declaration registry, the merge engine
// that folds independent contributions for one type name into a single
// effective schema, and the record validator.
//
// Registration is append-only: a type name is created on first
// registration and only ever gains contributions. Merge and Validate are
// pure functions and safe to call from any goroutine; Registry serializes
// its own state.
package schema
