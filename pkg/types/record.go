package types

// Record maps field names to values. Records are owned by the caller;
// nothing in shapes retains one after a call returns.
type Record map[string]any

// Has reports whether the record carries the key, whatever its value.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RowID identifies a row in the row store. Rows get UUID v7 identifiers.
type RowID = string
