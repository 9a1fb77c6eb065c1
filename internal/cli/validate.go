package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shapes/internal/schema"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// recordResult is the JSON rendering of one batch validation result.
type recordResult struct {
	Index int    `json:"index"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "validate <type> <json|->",
		Short: "Validate JSON records against a registered type",
		Long: "Validate checks one JSON object, a JSON array of objects, or one object per\n" +
			"line. Batches are validated concurrently and reported in input order; the\n" +
			"command fails if any record is invalid.",
		Example: `  shapes validate Teacher '{"firstName":"Sarah","lastName":"Wilson","fullTimeEmployee":true,"location":"Boston"}'
  echo '{"firstName":"Ada"}' | shapes validate Student -
  shapes validate RowElement - < rows.jsonl`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName := args[0]
			recs, err := parseRecords(cmd, args[1])
			if err != nil {
				return err
			}
			s, err := a.registry.Lookup(typeName)
			if err != nil {
				return err
			}
			if len(recs) == 1 {
				return a.validateOne(cmd, s, recs[0])
			}
			return a.validateBatch(cmd, s, recs, jobs)
		},
	}
	cmd.Flags().IntVar(&jobs, "jobs", 4, "records validated at once (0 for no limit)")
	return cmd
}

func (a *app) validateOne(cmd *cobra.Command, s types.Schema, rec types.Record) error {
	if err := schema.Validate(rec, s); err != nil {
		return err
	}
	if a.flags.jsonMode {
		return printJSON(cmd, map[string]any{"type": s.Name, "valid": true})
	}
	fmt.Fprintf(out(cmd), "valid %s\n", s.Name)
	return nil
}

func (a *app) validateBatch(cmd *cobra.Command, s types.Schema, recs []types.Record, jobs int) error {
	errs := schema.ValidateAll(cmd.Context(), recs, s, jobs)

	var first error
	invalid := 0
	results := make([]recordResult, len(errs))
	for i, err := range errs {
		results[i] = recordResult{Index: i + 1, Valid: err == nil}
		if err == nil {
			continue
		}
		results[i].Error = err.Error()
		invalid++
		if first == nil {
			first = err
		}
	}

	if a.flags.jsonMode {
		if err := printJSON(cmd, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out(cmd), "%d\tvalid\n", r.Index)
			} else {
				fmt.Fprintf(out(cmd), "%d\tinvalid\t%s\n", r.Index, r.Error)
			}
		}
	}
	a.logger.Debug("batch validated",
		zap.String("type", s.Name),
		zap.Int("records", len(recs)),
		zap.Int("invalid", invalid),
		zap.Int("jobs", jobs))

	if first != nil {
		return fmt.Errorf("%d of %d %s records invalid: %w", invalid, len(recs), s.Name, first)
	}
	return nil
}
