package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shapes/internal/school"
	"github.com/mesh-intelligence/shapes/internal/variant"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <json|->",
		Short: "Classify an educator record as Teacher or Director",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := parseRecord(cmd, args[0])
			if err != nil {
				return err
			}
			tag, err := variant.Classify(rec, school.Educators)
			if err != nil {
				return err
			}
			desc, err := school.Describe(rec)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, map[string]string{"tag": tag, "description": desc})
			}
			fmt.Fprintf(out(cmd), "%s: %s\n", tag, desc)
			return nil
		},
	}
}
