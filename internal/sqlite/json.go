package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// rowsFile is the JSONL mirror of the rows table.
const rowsFile = "rows.jsonl"

// rowJSON represents a row in rows.jsonl.
type rowJSON struct {
	RowID     string          `json:"row_id"`
	TypeName  string          `json:"type_name"`
	Record    json.RawMessage `json:"record"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// dehydrateRow converts a row into its JSONL form.
func dehydrateRow(r *types.Row) (rowJSON, error) {
	rec, err := marshalRecord(r.Record)
	if err != nil {
		return rowJSON{}, fmt.Errorf("marshaling record %s: %w", r.RowID, err)
	}
	return rowJSON{
		RowID:     r.RowID,
		TypeName:  r.TypeName,
		Record:    json.RawMessage(rec),
		CreatedAt: r.CreatedAt.Format(timeLayout),
		UpdatedAt: r.UpdatedAt.Format(timeLayout),
	}, nil
}

// hydrateRow parses a JSONL line into a row.
func hydrateRow(raw []byte) (*types.Row, error) {
	var rj rowJSON
	if err := json.Unmarshal(raw, &rj); err != nil {
		return nil, fmt.Errorf("parsing row: %w", err)
	}
	if rj.RowID == "" || rj.TypeName == "" {
		return nil, types.ErrInvalidData
	}
	r := &types.Row{RowID: rj.RowID, TypeName: rj.TypeName}
	if len(rj.Record) > 0 {
		if err := json.Unmarshal(rj.Record, &r.Record); err != nil {
			return nil, fmt.Errorf("parsing record %s: %w", rj.RowID, err)
		}
	}
	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, rj.CreatedAt); err != nil {
		return nil, fmt.Errorf("parsing row created_at: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339Nano, rj.UpdatedAt); err != nil {
		return nil, fmt.Errorf("parsing row updated_at: %w", err)
	}
	return r, nil
}
