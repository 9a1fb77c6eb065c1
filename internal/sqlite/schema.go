package sqlite

// Schema DDL for the row store.
const (
	createRows = `CREATE TABLE rows (
    row_id TEXT PRIMARY KEY,
    type_name TEXT NOT NULL,
    record TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// timeLayout is a fixed-width RFC 3339 layout so stored timestamps sort
// lexically in time order. Values are parsed back with time.RFC3339Nano.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Index DDL for common queries.
const (
	idxRowsType = `CREATE INDEX idx_rows_type ON rows(type_name);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRows,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRowsType,
}
