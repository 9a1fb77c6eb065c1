package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shapes/internal/rows"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

func newRowsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Store validated records",
		Long:  "Rows inserts, updates, deletes, and reads records through the typed façade.\nRecords are validated against their type before they reach the store.",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list <type>",
		Short: "List stored rows of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFacade(args[0], func(f *rows.Facade) error {
				rs, err := f.List(limit)
				if err != nil {
					return sysError(err)
				}
				if a.flags.jsonMode {
					return printJSON(cmd, rs)
				}
				for _, r := range rs {
					fmt.Fprintf(out(cmd), "%s\t%s\n", r.RowID, recordJSON(r.Record))
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum rows to list (0 for all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "insert <type> <json|->",
			Short: "Insert a record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := parseRecord(cmd, args[1])
				if err != nil {
					return err
				}
				return a.withFacade(args[0], func(f *rows.Facade) error {
					id, err := f.Insert(rec)
					if err != nil {
						return err
					}
					return a.printID(cmd, id)
				})
			},
		},
		&cobra.Command{
			Use:   "update <type> <id> <json|->",
			Short: "Replace a stored record",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := parseRecord(cmd, args[2])
				if err != nil {
					return err
				}
				return a.withFacade(args[0], func(f *rows.Facade) error {
					id, err := f.Update(args[1], rec)
					if err != nil {
						return err
					}
					return a.printID(cmd, id)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <type> <id>",
			Short: "Delete a stored record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withFacade(args[0], func(f *rows.Facade) error {
					if err := f.Delete(args[1]); err != nil {
						return err
					}
					fmt.Fprintf(out(cmd), "deleted %s\n", args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get <type> <id>",
			Short: "Print a stored record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withFacade(args[0], func(f *rows.Facade) error {
					rec, err := f.Get(args[1])
					if err != nil {
						return err
					}
					return printJSON(cmd, rec)
				})
			},
		},
		list,
	)
	return cmd
}

func (a *app) printID(cmd *cobra.Command, id types.RowID) error {
	if a.flags.jsonMode {
		return printJSON(cmd, map[string]string{"row_id": id})
	}
	fmt.Fprintln(out(cmd), id)
	return nil
}
