package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/headroom/internal/compare"
	"github.com/spf13/cobra"
)

func init() {
	compareCmd.Flags().StringSlice("template", nil, "Built-in scenario template (repeatable)")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc scenario as name:amount=N (repeatable)")
	compareCmd.Flags().Float64("add-ordinary", 0, "Additional ordinary income in the base scenario")
	compareCmd.Flags().Float64("add-ltcg", 0, "Additional long-term capital gains in the base scenario")
	compareCmd.Flags().Bool("list", false, "List templates and transforms")

	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare [year]",
	Short: "Compare planning scenarios against the current ledger",
	Long: "Compare Roth conversions, gain harvesting, deferrals and ad-hoc adjustments\n" +
		"side by side: bracket, headroom and threshold position for each.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		ce := compare.NewCompareEngine(a.engine)
		w := cmd.OutOrStdout()

		if list, _ := cmd.Flags().GetBool("list"); list {
			fmt.Fprintln(w, "Templates:")
			for _, name := range ce.TemplateRegistry.List() {
				tmpl, _ := ce.TemplateRegistry.Get(name)
				fmt.Fprintf(w, "  %-22s %s\n", name, tmpl.Description)
			}
			fmt.Fprintf(w, "Transforms: %s\n", strings.Join(ce.TransformRegistry.List(), ", "))
			return nil
		}

		templates, _ := cmd.Flags().GetStringSlice("template")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		if len(templates) == 0 && len(transforms) == 0 {
			templates = []string{"roth_10k", "roth_25k", "harvest_10k"}
		}

		year, err := a.yearArg(args, 0)
		if err != nil {
			return err
		}
		source, closeFn, err := a.source()
		if err != nil {
			return err
		}
		defer closeFn()

		income, err := source.Summary(ctx(cmd), year)
		if err == nil {
			var set *compare.ComparisonSet
			set, err = ce.Compare(income, adjustmentFlags(cmd), compare.CompareOptions{Templates: templates, Transforms: transforms})
			if err == nil {
				return writeComparison(cmd, set, a.format())
			}
		}
		if a.explain(w, err, year) {
			return nil
		}
		return err
	},
}

func writeComparison(cmd *cobra.Command, set *compare.ComparisonSet, format string) error {
	w := cmd.OutOrStdout()
	var (
		out string
		err error
	)
	switch strings.ToLower(format) {
	case "", "table", "console", "text", "txt":
		out = (&compare.TableFormatter{}).Format(set)
	case "compact":
		out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
		out += "\n"
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(set)
	default:
		return fmt.Errorf("unknown format %q (available: table, compact, json, csv)", format)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
