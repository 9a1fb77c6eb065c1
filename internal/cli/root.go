// Package cli implements the shapes command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/shapes/internal/config"
	"github.com/mesh-intelligence/shapes/internal/logging"
	"github.com/mesh-intelligence/shapes/internal/paths"
	"github.com/mesh-intelligence/shapes/internal/schema"
	"github.com/mesh-intelligence/shapes/internal/school"
	"github.com/mesh-intelligence/shapes/pkg/shapes"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by subcommands once the root pre-run has loaded
// configuration and schemas.
type app struct {
	flags     rootFlags
	configDir string
	settings  config.Settings
	logger    *zap.Logger
	registry  *schema.Registry
}

// NewRootCmd creates the top-level "shapes" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "shapes",
		Short:   "Structural and nominal record validation",
		Long:    "shapes registers record types from independent sites, validates records\nagainst the merged result, and stores valid records in a local row store.",
		Version: shapes.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.shapes-db)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newSchemaCmd(a),
		newValidateCmd(a),
		newClassifyCmd(a),
		newCreditsCmd(a),
		newRowsCmd(a),
		newDemoCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// setup loads config.yaml, builds the logger, and registers the school
// catalog plus every schema file.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := config.Load(configDir)
	if err != nil {
		return sysError(err)
	}
	settings, err := config.Decode(v)
	if err != nil {
		return sysError(err)
	}

	logger, err := logging.New(a.flags.verbose || settings.Verbose)
	if err != nil {
		return sysError(err)
	}

	a.configDir = configDir
	a.settings = settings
	a.logger = logger

	reg, err := a.buildRegistry()
	if err != nil {
		return err
	}
	a.registry = reg
	return nil
}

// buildRegistry registers the school catalog and every schema file except
// the names in skip.
func (a *app) buildRegistry(skip ...string) (*schema.Registry, error) {
	reg := schema.NewRegistry(schema.WithLogger(a.logger))
	if err := school.Register(reg); err != nil {
		return nil, err
	}
	n, err := config.LoadSchemas(paths.SchemasDir(a.configDir), reg, skip...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("schemas loaded",
		zap.String("config_dir", a.configDir),
		zap.Int("file_contributions", n),
		zap.Strings("skipped", skip))
	return reg, nil
}

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to a process exit code. Errors without an
// explicit code are caller mistakes.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// out returns the command's stdout writer.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

// storeConfig returns the store configuration for the resolved data dir.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	return a.settings.StoreConfig(dataDir), nil
}
