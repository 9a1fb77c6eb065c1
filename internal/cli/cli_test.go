package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shapes/internal/config"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// env holds the isolated directories of one CLI test.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	return env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI in-process and returns stdout.
func (e env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, got, "shapes v")
	assert.Contains(t, got, "github.com/mesh-intelligence/shapes")

	// version never loads configuration
	_, err = os.Stat(e.configDir)
	assert.True(t, os.IsNotExist(err))
}

func TestInit(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, got, "initialized successfully")
	assert.FileExists(t, filepath.Join(e.configDir, "config.yaml"))
	assert.DirExists(t, filepath.Join(e.configDir, "schemas"))
	assert.FileExists(t, filepath.Join(e.dataDir, "rows.jsonl"))
}

func TestSchemaList(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "schema", "list")
	require.NoError(t, err)
	assert.Equal(t, "Directors\nRowElement\nStudent\nSubjects.Teacher\nTeacher\n", got)

	got, err = e.run(t, "", "--json", "schema", "list")
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(got), &names))
	assert.Len(t, names, 5)
}

func TestSchemaShow(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "schema", "show", "Subjects.Teacher")
	require.NoError(t, err)
	assert.Contains(t, got, "name: Subjects.Teacher")
	assert.Contains(t, got, "experienceTeachingReact")
	assert.Contains(t, got, "subjects/cpp")

	_, err = e.run(t, "", "schema", "show", "Ghost")
	assert.ErrorIs(t, err, types.ErrUnknownType)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestSchemaFilesMergeWithCatalog(t *testing.T) {
	e := newEnv(t)
	dir := filepath.Join(e.configDir, "schemas")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.yaml"), []byte(
		"types:\n  - name: Subjects.Teacher\n    fields:\n      - name: experienceTeachingGo\n"), 0o644))

	_, err := e.run(t, "", "validate", "Subjects.Teacher",
		`{"firstName":"Rob","lastName":"Pike","experienceTeachingGo":15}`)
	assert.NoError(t, err)
}

func TestSchemaFileConflictFailsStartup(t *testing.T) {
	e := newEnv(t)
	dir := filepath.Join(e.configDir, "schemas")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(
		"types:\n  - name: Teacher\n    fields:\n      - name: firstName\n        required: true\n"), 0o644))

	_, err := e.run(t, "", "schema", "list")
	assert.ErrorIs(t, err, types.ErrSchemaConflict)
}

func TestSchemaExportImport(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "schema", "export", "Teacher")
	require.NoError(t, err)
	assert.Contains(t, got, `"openapi": "3.0.3"`)
	assert.Contains(t, got, `"readOnly": true`)

	doc := `{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{},
"components":{"schemas":{
"Course":{"type":"object","properties":{"code":{"type":"string"}},"required":["code"],"additionalProperties":false},
"Room":{"type":"object","properties":{"number":{"type":"integer"}},"required":["number"]}}}}`
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err = e.run(t, "", "schema", "import", path)
	require.NoError(t, err)
	assert.Contains(t, got, "imported 2 types")
	assert.FileExists(t, filepath.Join(e.configDir, "schemas", "courses.yaml"))

	// The imported site is loaded on the next run.
	_, err = e.run(t, "", "validate", "Course", `{"code":"CS101"}`)
	assert.NoError(t, err)
	_, err = e.run(t, "", "validate", "Course", `{"code":"CS101","room":4}`)
	assert.ErrorIs(t, err, types.ErrUnknownField)

	// Without additionalProperties a schema accepts extra fields.
	_, err = e.run(t, "", "validate", "Room", `{"number":4,"floor":1}`)
	assert.NoError(t, err)
}

func TestSchemaImport_ExistingSite(t *testing.T) {
	e := newEnv(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(first, []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{},
"components":{"schemas":{"Course":{"type":"object","properties":{"code":{"type":"string"}},"required":["code"]}}}}`), 0o644))
	second := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(second, []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{},
"components":{"schemas":{"Course":{"type":"object","properties":{"code":{"type":"string"},"title":{"type":"string"}},"required":["code","title"]}}}}`), 0o644))

	_, err := e.run(t, "", "schema", "import", first)
	require.NoError(t, err)
	file := filepath.Join(e.configDir, "schemas", "catalog.yaml")
	before, err := os.ReadFile(file)
	require.NoError(t, err)

	_, err = e.run(t, "", "schema", "import", second)
	assert.ErrorIs(t, err, config.ErrSchemaFileExists)
	assert.Equal(t, exitUserError, exitCode(err))
	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	// --force replaces the site; the old flags do not conflict with the new.
	_, err = e.run(t, "", "schema", "import", "--force", second)
	require.NoError(t, err)
	_, err = e.run(t, "", "validate", "Course", `{"code":"CS101"}`)
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)
	_, err = e.run(t, "", "validate", "Course", `{"code":"CS101","title":"Intro"}`)
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantErr error
	}{
		{
			name: "open teacher accepts extra fields",
			args: []string{"Teacher", `{"firstName":"John","lastName":"Doe","fullTimeEmployee":false,"location":"London","contract":false}`},
		},
		{
			name:    "closed student rejects extra fields",
			args:    []string{"Student", `{"firstName":"J","lastName":"D","age":1,"location":"x","email":"e"}`},
			wantErr: types.ErrUnknownField,
		},
		{
			name:    "director missing inherited field",
			args:    []string{"Directors", `{"firstName":"John","lastName":"Doe","numberOfReports":17}`},
			wantErr: types.ErrMissingRequiredField,
		},
		{
			name:  "stdin",
			args:  []string{"RowElement", "-"},
			stdin: `{"firstName":"Guillaume","lastName":"Salva"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.run(t, tt.stdin, append([]string{"validate"}, tt.args...)...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, exitUserError, exitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, got, "valid")
		})
	}
}

func TestValidate_Batch(t *testing.T) {
	e := newEnv(t)
	valid := `{"firstName":"Guillaume","lastName":"Salva"}`
	missing := `{"firstName":"Ada"}`
	extra := `{"firstName":"Grace","lastName":"Hopper","rank":"RADM"}`

	t.Run("array", func(t *testing.T) {
		got, err := e.run(t, "["+valid+","+valid+"]", "validate", "RowElement", "-")
		require.NoError(t, err)
		assert.Equal(t, "1\tvalid\n2\tvalid\n", got)
	})

	t.Run("lines in input order", func(t *testing.T) {
		stdin := strings.Join([]string{valid, missing, valid, extra}, "\n") + "\n"
		got, err := e.run(t, stdin, "validate", "--jobs", "2", "RowElement", "-")
		assert.ErrorIs(t, err, types.ErrMissingRequiredField)
		assert.Equal(t, exitUserError, exitCode(err))
		assert.Contains(t, err.Error(), "2 of 4 RowElement records invalid")

		lines := strings.Split(strings.TrimSpace(got), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "1\tvalid", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "2\tinvalid\t"))
		assert.Contains(t, lines[1], "lastName")
		assert.Equal(t, "3\tvalid", lines[2])
		assert.True(t, strings.HasPrefix(lines[3], "4\tinvalid\t"))
		assert.Contains(t, lines[3], "rank")
	})

	t.Run("json", func(t *testing.T) {
		got, err := e.run(t, "["+valid+","+extra+"]", "--json", "validate", "RowElement", "-")
		assert.ErrorIs(t, err, types.ErrUnknownField)
		var results []recordResult
		require.NoError(t, json.Unmarshal([]byte(got), &results))
		require.Len(t, results, 2)
		assert.Equal(t, recordResult{Index: 1, Valid: true}, results[0])
		assert.Equal(t, 2, results[1].Index)
		assert.False(t, results[1].Valid)
		assert.NotEmpty(t, results[1].Error)
	})

	t.Run("element not an object", func(t *testing.T) {
		_, err := e.run(t, "["+valid+",null]", "validate", "RowElement", "-")
		assert.Error(t, err)
	})
}

func TestValidate_BadJSON(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "", "validate", "Teacher", "{nope")
	assert.Error(t, err)
	_, err = e.run(t, "", "validate", "Teacher", "[1,2]")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "classify", `{"firstName":"John","numberOfReports":17}`)
	require.NoError(t, err)
	assert.Equal(t, "Director: John is a Director managing 17 faculty members\n", got)

	got, err = e.run(t, "", "--json", "classify", `{"firstName":"Jane"}`)
	require.NoError(t, err)
	var res map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &res))
	assert.Equal(t, "Teacher", res["tag"])
}

func TestCredits(t *testing.T) {
	e := newEnv(t)

	got, err := e.run(t, "", "credits", "sum", "30", "25")
	require.NoError(t, err)
	assert.Equal(t, "Major Credits: 55 (toward primary degree)\n", got)

	got, err = e.run(t, "", "credits", "sum", "--brand", "minor", "12", "minor:3")
	require.NoError(t, err)
	assert.Equal(t, "Minor Credits: 15 (toward specialization)\n", got)

	_, err = e.run(t, "", "credits", "sum", "30", "minor:12")
	assert.ErrorIs(t, err, types.ErrBrandMismatch)

	_, err = e.run(t, "", "credits", "sum", "--brand", "elective", "3")
	assert.Error(t, err)

	got, err = e.run(t, "", "credits", "check", "120", "30")
	require.NoError(t, err)
	assert.Equal(t, "Graduation Requirements Met! Major: 120/120, Minor: 30/30\n", got)

	_, err = e.run(t, "", "credits", "check", "minor:120", "30")
	assert.ErrorIs(t, err, types.ErrBrandMismatch)
}

func TestRows(t *testing.T) {
	e := newEnv(t)

	got, err := e.run(t, "", "rows", "insert", "RowElement", `{"firstName":"Guillaume","lastName":"Salva"}`)
	require.NoError(t, err)
	id := strings.TrimSpace(got)
	require.NotEmpty(t, id)

	got, err = e.run(t, "", "rows", "update", "RowElement", id, `{"firstName":"Guillaume","lastName":"Salva","age":23}`)
	require.NoError(t, err)
	assert.Equal(t, id, strings.TrimSpace(got))

	got, err = e.run(t, "", "rows", "get", "RowElement", id)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &rec))
	assert.Equal(t, float64(23), rec["age"])

	got, err = e.run(t, "", "rows", "list", "RowElement")
	require.NoError(t, err)
	assert.Contains(t, got, id)

	_, err = e.run(t, "", "rows", "insert", "RowElement", `{"firstName":"Only"}`)
	assert.ErrorIs(t, err, types.ErrMissingRequiredField)

	_, err = e.run(t, "", "rows", "get", "Student", id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = e.run(t, "", "rows", "delete", "RowElement", id)
	require.NoError(t, err)
	_, err = e.run(t, "", "rows", "delete", "RowElement", id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = e.run(t, "", "rows", "insert", "Ghost", `{}`)
	assert.ErrorIs(t, err, types.ErrUnknownType)
}

func TestDemo(t *testing.T) {
	e := newEnv(t)
	got, err := e.run(t, "", "demo")
	require.NoError(t, err)

	for _, want := range []string{
		"Salaam! I'm Sarah Wilson, a full-time educator at our institution in Boston.",
		"Jane is a Director managing 25 faculty members",
		"5 educators valid as Teacher",
		"printTeacher(\"John\", \"Doe\"): J. Doe",
		"casual: M. Johnson",
		"J. Smith\nComputer Science\nFull-time Faculty\nColumbia University\nNew York",
		"Alice: Currently working",
		"createEmployee(200): Getting to work",
		"createEmployee($500): Getting to director tasks",
		"Teaching History",
		"Available Teacher: Guillaume",
		"More credits needed. Major: 83/120, Minor: 37/30",
		"brand mismatch",
		"deleted ",
	} {
		assert.Contains(t, got, want)
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrUnknownField))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("disk"))))
}
