// Package rows is the typed façade over the untyped row store. Records are
// validated against a registered schema before they reach the store; the
// store itself never checks shape.
package rows

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Validator checks a record against the schema registered for typeName.
// *schema.Registry satisfies it.
type Validator interface {
	Validate(typeName string, record types.Record) error
}

// Facade exposes insert, update, delete and get for one record type.
type Facade struct {
	typeName  string
	validator Validator
	table     types.Table
	logger    *zap.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLogger sets the logger used for row operations.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Facade) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New returns a façade that stores typeName records in table after
// checking them with v.
func New(typeName string, v Validator, table types.Table, opts ...Option) *Facade {
	f := &Facade{
		typeName:  typeName,
		validator: v,
		table:     table,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TypeName returns the record type the façade guards.
func (f *Facade) TypeName() string { return f.typeName }

// Insert validates record and stores it as a new row.
func (f *Facade) Insert(record types.Record) (types.RowID, error) {
	if err := f.validator.Validate(f.typeName, record); err != nil {
		f.logger.Debug("insert rejected", zap.String("type", f.typeName), zap.Error(err))
		return "", err
	}
	id, err := f.table.Set("", &types.Row{TypeName: f.typeName, Record: record.Clone()})
	if err != nil {
		return "", fmt.Errorf("inserting %s: %w", f.typeName, err)
	}
	f.logger.Info("row inserted", zap.String("type", f.typeName), zap.String("row_id", id))
	return id, nil
}

// Update validates record and replaces the row with the given id. It
// returns the same id. Returns ErrNotFound if the row does not exist or
// holds a different type.
func (f *Facade) Update(id types.RowID, record types.Record) (types.RowID, error) {
	if id == "" {
		return "", types.ErrInvalidID
	}
	if err := f.validator.Validate(f.typeName, record); err != nil {
		f.logger.Debug("update rejected",
			zap.String("type", f.typeName),
			zap.String("row_id", id),
			zap.Error(err))
		return "", err
	}
	existing, err := f.lookup(id)
	if err != nil {
		return "", err
	}
	_, err = f.table.Set(id, &types.Row{
		RowID:     id,
		TypeName:  f.typeName,
		Record:    record.Clone(),
		CreatedAt: existing.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("updating %s %s: %w", f.typeName, id, err)
	}
	f.logger.Info("row updated", zap.String("type", f.typeName), zap.String("row_id", id))
	return id, nil
}

// Delete removes the row with the given id.
func (f *Facade) Delete(id types.RowID) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if _, err := f.lookup(id); err != nil {
		return err
	}
	if err := f.table.Delete(id); err != nil {
		return fmt.Errorf("deleting %s %s: %w", f.typeName, id, err)
	}
	f.logger.Info("row deleted", zap.String("type", f.typeName), zap.String("row_id", id))
	return nil
}

// Get returns a copy of the record stored under id.
func (f *Facade) Get(id types.RowID) (types.Record, error) {
	row, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	return row.Record.Clone(), nil
}

// List returns up to limit rows of the façade's type, oldest first. A
// limit of zero or less returns all of them.
func (f *Facade) List(limit int) ([]*types.Row, error) {
	filter := map[string]any{"type_name": f.typeName}
	if limit > 0 {
		filter["limit"] = limit
	}
	return f.table.Fetch(filter)
}

func (f *Facade) lookup(id types.RowID) (*types.Row, error) {
	row, err := f.table.Get(id)
	if errors.Is(err, types.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %s", types.ErrNotFound, f.typeName, id)
	}
	if err != nil {
		return nil, err
	}
	if row.TypeName != f.typeName {
		return nil, fmt.Errorf("%w: %s holds %s, not %s", types.ErrNotFound, id, row.TypeName, f.typeName)
	}
	return row, nil
}
