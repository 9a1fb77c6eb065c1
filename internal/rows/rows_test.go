package rows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/shapes/internal/schema"
	"github.com/mesh-intelligence/shapes/internal/sqlite"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// recordingTable counts calls so tests can prove invalid records never
// reach the store.
type recordingTable struct {
	types.Table
	sets    int
	deletes int
}

func (r *recordingTable) Set(id types.RowID, row *types.Row) (types.RowID, error) {
	r.sets++
	return r.Table.Set(id, row)
}

func (r *recordingTable) Delete(id types.RowID) error {
	r.deletes++
	return r.Table.Delete(id)
}

func setup(t *testing.T, opts ...Option) (*Facade, *recordingTable, *schema.Registry) {
	t.Helper()

	reg := schema.NewRegistry()
	require.NoError(t, reg.Register("RowElement", []types.FieldSpec{
		{Name: "firstName", Required: true},
		{Name: "lastName", Required: true},
		{Name: "age"},
	}))
	require.NoError(t, reg.Register("Student", []types.FieldSpec{
		{Name: "firstName", Required: true},
	}))

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	tbl, err := b.GetTable(types.RowsTable)
	require.NoError(t, err)

	rec := &recordingTable{Table: tbl}
	return New("RowElement", reg, rec, opts...), rec, reg
}

func TestFacade_InsertUpdateDelete(t *testing.T) {
	f, _, _ := setup(t)

	id, err := f.Insert(types.Record{"firstName": "Guillaume", "lastName": "Salva"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	updated, err := f.Update(id, types.Record{"firstName": "Guillaume", "lastName": "Salva", "age": 23})
	require.NoError(t, err)
	assert.Equal(t, id, updated)

	got, err := f.Get(id)
	require.NoError(t, err)
	assert.Equal(t, float64(23), got["age"])

	require.NoError(t, f.Delete(id))
	_, err = f.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestFacade_InvalidRecordNeverReachesStore(t *testing.T) {
	f, tbl, _ := setup(t)

	_, err := f.Insert(types.Record{"firstName": "Guillaume"})
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	_, err = f.Insert(types.Record{"firstName": "G", "lastName": "S", "email": "x"})
	assert.ErrorIs(t, err, types.ErrUnknownField)

	id, err := f.Insert(types.Record{"firstName": "G", "lastName": "S"})
	require.NoError(t, err)
	_, err = f.Update(id, types.Record{"lastName": "S"})
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	assert.Equal(t, 1, tbl.sets)
}

func TestFacade_UnknownType(t *testing.T) {
	_, tbl, reg := setup(t)
	ghosts := New("Ghost", reg, tbl)

	_, err := ghosts.Insert(types.Record{})
	assert.ErrorIs(t, err, types.ErrUnknownType)
	assert.Zero(t, tbl.sets)
}

func TestFacade_MissingRows(t *testing.T) {
	f, tbl, _ := setup(t)

	_, err := f.Update("missing", types.Record{"firstName": "G", "lastName": "S"})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, f.Delete("missing"), types.ErrNotFound)
	assert.Zero(t, tbl.sets)
	assert.Zero(t, tbl.deletes)

	_, err = f.Update("", types.Record{"firstName": "G", "lastName": "S"})
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, f.Delete(""), types.ErrInvalidID)
}

func TestFacade_TypeIsolation(t *testing.T) {
	f, tbl, reg := setup(t)
	students := New("Student", reg, tbl)

	sid, err := students.Insert(types.Record{"firstName": "Ada"})
	require.NoError(t, err)

	// A RowElement façade cannot see or mutate a Student row.
	_, err = f.Get(sid)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, f.Delete(sid), types.ErrNotFound)

	_, err = f.Insert(types.Record{"firstName": "G", "lastName": "S"})
	require.NoError(t, err)

	list, err := f.List(0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "RowElement", list[0].TypeName)
}

func TestFacade_InsertCopiesRecord(t *testing.T) {
	f, _, _ := setup(t)

	rec := types.Record{"firstName": "G", "lastName": "S"}
	id, err := f.Insert(rec)
	require.NoError(t, err)
	rec["firstName"] = "changed"

	got, err := f.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "G", got["firstName"])
}

func TestFacade_Logging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	f, _, _ := setup(t, WithLogger(zap.New(core)))

	id, err := f.Insert(types.Record{"firstName": "G", "lastName": "S"})
	require.NoError(t, err)

	entries := logs.FilterMessage("row inserted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["row_id"])
}
