// Package types defines the shared data model for shapes: field
// declarations, schema contributions and effective schemas, records,
// variant sets, branded values, the row-store interfaces, and the standard
// error values every component returns.
package types
