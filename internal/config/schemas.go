package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// SchemaFile is one registration site on disk.
type SchemaFile struct {
	Site  string     `yaml:"site"`
	Types []TypeDecl `yaml:"types"`
}

// TypeDecl is one type's contribution inside a schema file.
type TypeDecl struct {
	Name    string            `yaml:"name"`
	Open    bool              `yaml:"open,omitempty"`
	Extends []string          `yaml:"extends,omitempty"`
	Fields  []types.FieldSpec `yaml:"fields"`
}

// Contribution converts d into a registry contribution from site.
func (d TypeDecl) Contribution(site string) types.Contribution {
	return types.Contribution{
		Site:    site,
		Fields:  d.Fields,
		Open:    d.Open,
		Extends: d.Extends,
	}
}

// Registrar accepts contributions. *schema.Registry satisfies it.
type Registrar interface {
	RegisterContribution(typeName string, c types.Contribution) error
}

// ParseSchemaFile decodes a schema file. Unknown keys are rejected. When
// the file names no site, defaultSite is used.
func ParseSchemaFile(r io.Reader, defaultSite string) (SchemaFile, error) {
	var f SchemaFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return SchemaFile{}, fmt.Errorf("parse schema file: %w", err)
	}
	if f.Site == "" {
		f.Site = defaultSite
	}
	return f, nil
}

// LoadSchemas registers every *.yaml and *.yml file in dir, in lexical
// order, except the file names in skip. Each file is its own registration
// site. A missing dir registers nothing. Returns the number of
// contributions registered.
func LoadSchemas(dir string, reg Registrar, skip ...string) (int, error) {
	files, err := schemaFiles(dir)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, path := range files {
		if slices.Contains(skip, filepath.Base(path)) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return n, fmt.Errorf("read %s: %w", path, err)
		}
		site := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		f, err := ParseSchemaFile(bytes.NewReader(data), site)
		if err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		for _, decl := range f.Types {
			if err := reg.RegisterContribution(decl.Name, decl.Contribution(f.Site)); err != nil {
				return n, fmt.Errorf("%s: %w", path, err)
			}
			n++
		}
	}
	return n, nil
}

// ErrSchemaFileExists is returned by WriteSchemaFile when it would replace
// an existing file.
var ErrSchemaFileExists = errors.New("schema file already exists")

// WriteSchemaFile encodes f as YAML into dir/name. An existing file is
// replaced only when overwrite is set.
func WriteSchemaFile(dir, name string, f SchemaFile, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create schemas dir: %w", err)
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal schema file: %w", err)
	}

	path := filepath.Join(dir, name)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	fh, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrSchemaFileExists, path)
	}
	if err != nil {
		return fmt.Errorf("create schema file: %w", err)
	}
	if _, err := fh.Write(data); err != nil {
		fh.Close()
		return fmt.Errorf("write schema file: %w", err)
	}
	return fh.Close()
}

// SchemaFileExists reports whether dir/name exists.
func SchemaFileExists(dir, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat schema file: %w", err)
	}
	return true, nil
}

func schemaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
