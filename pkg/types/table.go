package types

import "errors"

// Table provides uniform CRUD operations over stored rows. It is the
// untyped data-access collaborator: it stores whatever record it is given
// and never validates field shape. Callers that need validation go
// through the typed rows façade.
type Table interface {
	// Get retrieves the row with the given ID.
	// Returns ErrNotFound if no row exists with that ID.
	Get(id RowID) (*Row, error)

	// Set creates or updates a row. When id is empty a new UUID v7 is
	// generated. Returns the actual ID used (generated or provided).
	Set(id RowID, row *Row) (RowID, error)

	// Delete removes the row with the given ID.
	// Returns ErrNotFound if no row exists with that ID.
	Delete(id RowID) error

	// Fetch returns all rows matching the filter. An empty filter returns
	// every row in the table. Recognized keys: "type_name" (string),
	// "limit" (int).
	Fetch(filter map[string]any) ([]*Row, error)
}

// Row operation errors.
var (
	ErrNotFound      = errors.New("row not found")
	ErrInvalidID     = errors.New("invalid row ID")
	ErrInvalidData   = errors.New("invalid row data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)
