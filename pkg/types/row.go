package types

import "time"

// Row is a stored record together with the name of the type it was
// validated against.
type Row struct {
	RowID     RowID     `json:"row_id"`
	TypeName  string    `json:"type_name"`
	Record    Record    `json:"record"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
