package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shapes/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Create the configuration directory with a default config.yaml and a schemas/\ndirectory, then initialize the row store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// config.yaml was written by the root pre-run.
			if err := os.MkdirAll(paths.SchemasDir(a.configDir), 0o755); err != nil {
				return sysError(fmt.Errorf("create schemas dir: %w", err))
			}

			backend, err := a.attachStore()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			fmt.Fprintln(out(cmd), "shapes initialized successfully")
			return nil
		},
	}
}
