package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// loadRows inserts rows read from the mirror into SQLite. Loading is
// transactional: all rows load or none do. A later line for the same row
// ID replaces an earlier one.
func loadRows(db *sql.DB, rows []*types.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO rows (row_id, type_name, record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		rec, err := marshalRecord(r.Record)
		if err != nil {
			return fmt.Errorf("loading row %s: %w", r.RowID, err)
		}
		if _, err := stmt.Exec(r.RowID, r.TypeName, rec,
			r.CreatedAt.Format(timeLayout),
			r.UpdatedAt.Format(timeLayout)); err != nil {
			return fmt.Errorf("loading row %s: %w", r.RowID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
