package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shapes/internal/config"
	"github.com/mesh-intelligence/shapes/internal/export"
	"github.com/mesh-intelligence/shapes/internal/paths"
	"github.com/mesh-intelligence/shapes/pkg/shapes"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect, export, and import registered schemas",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered type names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				names := a.registry.Names()
				if a.flags.jsonMode {
					return printJSON(cmd, names)
				}
				for _, n := range names {
					fmt.Fprintln(out(cmd), n)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <type>",
			Short: "Show the effective schema of a type",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.registry.Lookup(args[0])
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(cmd, s)
				}
				return printSchemaYAML(cmd, s)
			},
		},
		&cobra.Command{
			Use:   "export [type...]",
			Short: "Export schemas as an OpenAPI 3 document",
			Long:  "Export renders the named types, or every registered type, as OpenAPI\ncomponent schemas and prints the document as JSON.",
			RunE: func(cmd *cobra.Command, args []string) error {
				names := args
				if len(names) == 0 {
					names = a.registry.Names()
				}
				schemas := make([]types.Schema, 0, len(names))
				for _, n := range names {
					s, err := a.registry.Lookup(n)
					if err != nil {
						return err
					}
					schemas = append(schemas, s)
				}
				doc := export.Document("shapes", shapes.Version, schemas...)
				if err := doc.Validate(cmd.Context()); err != nil {
					return sysError(fmt.Errorf("validate export: %w", err))
				}
				return printJSON(cmd, doc)
			},
		},
		newSchemaImportCmd(a),
	)
	return cmd
}

func newSchemaImportCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <openapi-file>",
		Short: "Import OpenAPI component schemas as a schema file",
		Long: "Import reads the component schemas of an OpenAPI document, checks that they\n" +
			"merge with the registered types, and writes them to the schemas directory\n" +
			"as a new registration site named after the file. An existing site is\n" +
			"replaced only with --force.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importSchemas(cmd, args[0], force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing schema file of the same site")
	return cmd
}

func (a *app) importSchemas(cmd *cobra.Command, path string, force bool) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	site := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	contribs, err := export.Load(cmd.Context(), data, site)
	if err != nil {
		return err
	}

	dir := paths.SchemasDir(a.configDir)
	fileName := site + ".yaml"
	exists, err := config.SchemaFileExists(dir, fileName)
	if err != nil {
		return sysError(err)
	}
	reg := a.registry
	if exists {
		if !force {
			return fmt.Errorf("%w: %s (use --force to replace it)",
				config.ErrSchemaFileExists, filepath.Join(dir, fileName))
		}
		// The replaced site must not take part in the merge check.
		if reg, err = a.buildRegistry(fileName); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(contribs))
	for n := range contribs {
		names = append(names, n)
	}
	sort.Strings(names)

	file := config.SchemaFile{Site: site}
	for _, n := range names {
		c := contribs[n]
		if err := reg.RegisterContribution(n, c); err != nil {
			return err
		}
		file.Types = append(file.Types, config.TypeDecl{Name: n, Open: c.Open, Fields: c.Fields})
	}

	if err := config.WriteSchemaFile(dir, fileName, file, force); err != nil {
		return sysError(err)
	}
	a.registry = reg
	fmt.Fprintf(out(cmd), "imported %d types into %s\n", len(names), filepath.Join(dir, fileName))
	return nil
}

// schemaView is the YAML rendering of an effective schema.
type schemaView struct {
	Name   string            `yaml:"name"`
	Open   bool              `yaml:"open"`
	Fields []types.FieldSpec `yaml:"fields"`
	Sites  []string          `yaml:"sites,omitempty"`
}

func printSchemaYAML(cmd *cobra.Command, s types.Schema) error {
	view := schemaView{Name: s.Name, Open: s.Open, Fields: s.Fields}
	for _, c := range s.Contributions {
		if c.Site != "" {
			view.Sites = append(view.Sites, c.Site)
		}
	}
	data, err := yaml.Marshal(&view)
	if err != nil {
		return sysError(fmt.Errorf("marshal schema: %w", err))
	}
	_, err = out(cmd).Write(data)
	return err
}
