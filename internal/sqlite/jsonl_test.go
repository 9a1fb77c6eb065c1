package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

func TestMirror_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	m, err := openMirror(dir)
	require.NoError(t, err)

	created := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	in := []*types.Row{
		{RowID: "r1", TypeName: "RowElement", Record: types.Record{"firstName": "Ada"}, CreatedAt: created, UpdatedAt: created},
		{RowID: "r2", TypeName: "Teacher", Record: types.Record{}, CreatedAt: created, UpdatedAt: created.Add(time.Second)},
	}
	require.NoError(t, m.save(in))

	data, err := os.ReadFile(filepath.Join(dir, rowsFile))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))

	out, skipped, err := m.load()
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, out, 2)
	assert.Equal(t, "r1", out[0].RowID)
	assert.Equal(t, types.Record{"firstName": "Ada"}, out[0].Record)
	assert.True(t, created.Equal(out[0].CreatedAt))
	assert.Equal(t, "Teacher", out[1].TypeName)

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMirror_LoadSkipsUnreadableLines(t *testing.T) {
	dir := t.TempDir()
	good := `{"row_id":"r1","type_name":"T","record":{"a":1},"created_at":"2026-01-02T03:04:05.000000000Z","updated_at":"2026-01-02T03:04:05.000000000Z"}`
	content := strings.Join([]string{
		good,
		"",
		"{broken",
		`{"row_id":"","type_name":"T","record":{},"created_at":"","updated_at":""}`,
		`{"row_id":"r2","type_name":"T","record":{},"created_at":"yesterday","updated_at":""}`,
		good, // no trailing newline
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, rowsFile), []byte(content), 0o644))

	m, err := openMirror(dir)
	require.NoError(t, err)
	out, skipped, err := m.load()
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, out, 2)
	assert.Equal(t, types.Record{"a": float64(1)}, out[0].Record)
}

func TestOpenMirror_KeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, rowsFile)

	_, err := openMirror(dir)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	_, err = openMirror(dir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestAttach_WarnsOnSkippedLines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, rowsFile), []byte("{broken\n"), 0o644))

	core, logs := observer.New(zap.WarnLevel)
	b := NewBackend(WithLogger(zap.New(core)))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })

	entries := logs.FilterMessage("skipped unreadable rows.jsonl lines").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1, entries[0].ContextMap()["skipped"])
}
