package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shapes/internal/rows"
	"github.com/mesh-intelligence/shapes/pkg/sqlite"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(out(cmd), string(data))
	return nil
}

// readArg returns the bytes of a JSON argument. "-" reads stdin.
func readArg(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, sysError(fmt.Errorf("read stdin: %w", err))
	}
	return data, nil
}

// parseRecord decodes a JSON object argument. "-" reads it from stdin.
func parseRecord(cmd *cobra.Command, arg string) (types.Record, error) {
	data, err := readArg(cmd, arg)
	if err != nil {
		return nil, err
	}
	var rec types.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid JSON record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("invalid JSON record: expected an object")
	}
	return rec, nil
}

// parseRecords decodes a JSON object, a JSON array of objects, or a stream
// of objects one per line. "-" reads from stdin.
func parseRecords(cmd *cobra.Command, arg string) ([]types.Record, error) {
	data, err := readArg(cmd, arg)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	var recs []types.Record
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("invalid JSON records: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		for {
			var rec types.Record
			err := dec.Decode(&rec)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("invalid JSON record %d: %w", len(recs)+1, err)
			}
			recs = append(recs, rec)
		}
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("invalid JSON record: no records")
	}
	for i, rec := range recs {
		if rec == nil {
			return nil, fmt.Errorf("invalid JSON record %d: expected an object", i+1)
		}
	}
	return recs, nil
}

// attachStore attaches the SQLite backend for the resolved data dir. The
// caller must Detach it.
func (a *app) attachStore() (types.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	backend := sqlite.NewBackend(a.logger)
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach store: %w", err))
	}
	return backend, nil
}

// withFacade attaches the store, builds a façade for typeName, and runs fn.
func (a *app) withFacade(typeName string, fn func(*rows.Facade) error) error {
	if _, err := a.registry.Lookup(typeName); err != nil {
		return err
	}
	backend, err := a.attachStore()
	if err != nil {
		return err
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.RowsTable)
	if err != nil {
		return sysError(err)
	}
	return fn(rows.New(typeName, a.registry, table, rows.WithLogger(a.logger)))
}

// readFile reads a file argument.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// recordJSON renders a record on one line.
func recordJSON(rec types.Record) string {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(rec))
	}
	return string(data)
}
