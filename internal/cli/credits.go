package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shapes/internal/brand"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

func newCreditsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Sum and check branded credit counts",
	}

	var tag string
	sum := &cobra.Command{
		Use:   "sum <n>...",
		Short: "Sum credits of one brand",
		Long:  "Sum adds credit counts. Each count may carry its own brand as major:N or\nminor:N; unprefixed counts take the --brand value. Mixed brands fail.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := parseBrand(tag)
			if err != nil {
				return err
			}
			values := make([]brand.Credits, 0, len(args))
			for _, arg := range args {
				c, err := parseCredits(arg, def)
				if err != nil {
					return err
				}
				values = append(values, c)
			}
			total, err := brand.Sum(def, values...)
			if err != nil {
				return err
			}
			summary, err := brand.CreditSummary(total)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, total)
			}
			fmt.Fprintln(out(cmd), summary)
			return nil
		},
	}
	sum.Flags().StringVar(&tag, "brand", "major", "brand for unprefixed counts (major or minor)")

	check := &cobra.Command{
		Use:   "check <major> <minor>",
		Short: "Check graduation requirements",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			major, err := parseCredits(args[0], brand.MajorCredits)
			if err != nil {
				return err
			}
			minor, err := parseCredits(args[1], brand.MinorCredits)
			if err != nil {
				return err
			}
			status, err := brand.CheckGraduation(major, minor)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd, status)
			}
			fmt.Fprintln(out(cmd), status)
			return nil
		},
	}

	cmd.AddCommand(sum, check)
	return cmd
}

func parseBrand(s string) (types.Tag, error) {
	switch s {
	case "major":
		return brand.MajorCredits, nil
	case "minor":
		return brand.MinorCredits, nil
	default:
		return "", fmt.Errorf("unknown brand %q (valid: major, minor)", s)
	}
}

// parseCredits reads "N", "major:N", or "minor:N".
func parseCredits(arg string, def types.Tag) (brand.Credits, error) {
	tag, num := def, arg
	if prefix, rest, ok := strings.Cut(arg, ":"); ok {
		t, err := parseBrand(prefix)
		if err != nil {
			return brand.Credits{}, err
		}
		tag, num = t, rest
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return brand.Credits{}, fmt.Errorf("invalid credit count %q", arg)
	}
	return brand.Wrap(tag, n), nil
}
