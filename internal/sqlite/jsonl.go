package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// maxLine bounds one rows.jsonl line; records larger than this are skipped
// as malformed.
const maxLine = 4 << 20

// mirror is the rows.jsonl file. It holds one row per line, oldest first,
// and is rewritten whole after every mutation.
type mirror struct {
	path string
}

// openMirror returns the mirror in dataDir, creating an empty file when
// there is none.
func openMirror(dataDir string) (*mirror, error) {
	m := &mirror{path: filepath.Join(dataDir, rowsFile)}
	_, err := os.Stat(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(m.path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", rowsFile, err)
		}
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", m.path, err)
	}
	return m, nil
}

// load returns every row in the file. Lines that do not hold a row (bad
// JSON, no ID or type name, bad timestamps) are skipped and counted.
func (m *mirror) load() ([]*types.Row, int, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", m.path, err)
	}
	defer f.Close()

	var rows []*types.Row
	skipped := 0
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		switch {
		case len(bytes.TrimSpace(line)) == 0:
		case len(line) > maxLine:
			skipped++
		default:
			if row, herr := hydrateRow(line); herr != nil {
				skipped++
			} else {
				rows = append(rows, row)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", m.path, err)
		}
	}
	return rows, skipped, nil
}

// save replaces the file with rows, one JSON object per line.
func (m *mirror) save(rows []*types.Row) error {
	return atomicWrite(m.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, r := range rows {
			line, err := dehydrateRow(r)
			if err != nil {
				return err
			}
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("encoding row %s: %w", r.RowID, err)
			}
		}
		return nil
	})
}

// atomicWrite writes path through a temp file in the same directory that
// is synced and renamed over path. Readers see the old or the new content,
// never a partial file.
func atomicWrite(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
