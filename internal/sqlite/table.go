package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// table implements types.Table over the rows table. Every mutation is
// mirrored to rows.jsonl before it returns.
type table struct {
	name    string
	backend *Backend
}

const selectRow = "SELECT row_id, type_name, record, created_at, updated_at FROM rows"

// Get retrieves a row by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id types.RowID) (*types.Row, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}
	return scanRow(t.backend.db.QueryRow(selectRow+" WHERE row_id = ?", id))
}

// Set creates or updates a row. If both id and row.RowID are empty a UUID
// v7 is generated. Returns the row ID.
func (t *table) Set(id types.RowID, row *types.Row) (types.RowID, error) {
	if row == nil || row.TypeName == "" {
		return "", types.ErrInvalidData
	}
	rec, err := marshalRecord(row.Record)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC()
	switch {
	case id != "":
		row.RowID = id
	case row.RowID == "":
		row.RowID = newUUID()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	_, err = t.backend.db.Exec(`
		INSERT INTO rows (row_id, type_name, record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(row_id) DO UPDATE SET
			type_name = excluded.type_name,
			record = excluded.record,
			updated_at = excluded.updated_at`,
		row.RowID, row.TypeName, rec,
		row.CreatedAt.Format(timeLayout),
		row.UpdatedAt.Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("upserting row: %w", err)
	}

	if err := t.persistRowsJSONL(); err != nil {
		return "", err
	}
	return row.RowID, nil
}

// Delete removes a row by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id types.RowID) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	if !t.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := t.backend.db.Exec("DELETE FROM rows WHERE row_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting row: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting row: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return t.persistRowsJSONL()
}

// Fetch returns rows matching the filter, oldest first. Empty filter
// matches all.
func (t *table) Fetch(filter map[string]any) ([]*types.Row, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := selectRow
	var conditions []string
	var args []any

	if typeName, ok := filter["type_name"]; ok {
		tn, ok := typeName.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "type_name = ?")
		args = append(args, tn)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, row_id"

	if limit, ok := filter["limit"]; ok {
		l, ok := toInt(limit)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		if l > 0 {
			query += fmt.Sprintf(" LIMIT %d", l)
		}
	}

	return t.queryRows(query, args...)
}

func (t *table) queryRows(query string, args ...any) ([]*types.Row, error) {
	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching rows: %w", err)
	}
	defer rows.Close()

	results := []*types.Row{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// persistRowsJSONL rewrites rows.jsonl from the database. The caller must
// hold the backend write lock.
func (t *table) persistRowsJSONL() error {
	all, err := t.queryRows(selectRow + " ORDER BY created_at, row_id")
	if err != nil {
		return fmt.Errorf("reading rows for JSONL: %w", err)
	}
	return t.backend.mirror.save(all)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*types.Row, error) {
	var r types.Row
	var rec, createdAt, updatedAt string
	err := s.Scan(&r.RowID, &r.TypeName, &rec, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning row: %w", err)
	}
	if err := json.Unmarshal([]byte(rec), &r.Record); err != nil {
		return nil, fmt.Errorf("parsing row record: %w", err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing row created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing row updated_at: %w", err)
	}
	return &r, nil
}

// marshalRecord encodes a record for the record column. A nil record is
// stored as an empty object.
func marshalRecord(rec types.Record) (string, error) {
	if rec == nil {
		return "{}", nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// toInt converts common numeric filter values to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
