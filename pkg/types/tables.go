package types

// Standard table names for Store.GetTable.
const (
	RowsTable = "rows"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	RowsTable,
}
