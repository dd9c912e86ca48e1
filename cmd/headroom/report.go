package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/config"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	reportCmd.Flags().Float64("add-ordinary", 0, "Hypothetical additional ordinary income")
	reportCmd.Flags().Float64("add-ltcg", 0, "Hypothetical additional long-term capital gains")
	insightsCmd.Flags().Float64("add-ordinary", 0, "Hypothetical additional ordinary income")
	insightsCmd.Flags().Float64("add-ltcg", 0, "Hypothetical additional long-term capital gains")
	bracketsCmd.Flags().String("status", "", "Filing status (default: the year's profile, else single)")

	rootCmd.AddCommand(reportCmd, insightsCmd, equityCmd, bracketsCmd)
}

func adjustmentFlags(cmd *cobra.Command) domain.ScenarioInputs {
	ordinary, _ := cmd.Flags().GetFloat64("add-ordinary")
	ltcg, _ := cmd.Flags().GetFloat64("add-ltcg")
	return domain.NewScenarioInputs(ordinary, ltcg)
}

func writeReport(w io.Writer, report *calculation.Report, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var reportCmd = &cobra.Command{
	Use:   "report [year]",
	Short: "Show bracket headroom and threshold insights for a year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
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

		report, err := a.engine.ReportForYear(ctx(cmd), source, year, adjustmentFlags(cmd))
		if err != nil {
			if a.explain(cmd.OutOrStdout(), err, year) {
				return nil
			}
			return err
		}
		return writeReport(cmd.OutOrStdout(), report, a.format())
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights [year]",
	Short: "List secondary thresholds ranked by urgency",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
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
		if err != nil {
			if a.explain(cmd.OutOrStdout(), err, year) {
				return nil
			}
			return err
		}

		insights := a.engine.Insights(income, adjustmentFlags(cmd))
		w := cmd.OutOrStdout()
		if a.format() == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(insights)
		}
		if len(insights) == 0 {
			fmt.Fprintln(w, "No threshold data available")
			return nil
		}
		for _, in := range insights {
			fmt.Fprintf(w, "%-12s %-32s limit %14s  proximity %14s\n",
				in.Status, in.Detail.Label, output.FormatCurrency(in.Detail.Limit), output.FormatCurrency(in.Proximity))
		}
		return nil
	},
}

var equityCmd = &cobra.Command{
	Use:   "equity [year] <events.yaml>",
	Short: "Project equity events (exercises, vests, sales) onto headroom",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		year, eventsFile := a.settings.Year(), args[0]
		if len(args) == 2 {
			if year, err = a.yearArg(args, 0); err != nil {
				return err
			}
			eventsFile = args[1]
		}

		events, err := config.NewInputParser().LoadEquityEvents(eventsFile)
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
			var report *calculation.Report
			report, err = a.engine.SimulateEquity(income, events.Adjustment, events.Events)
			if err == nil {
				return writeReport(cmd.OutOrStdout(), report, a.format())
			}
		}
		if a.explain(cmd.OutOrStdout(), err, year) {
			return nil
		}
		return err
	},
}

var bracketsCmd = &cobra.Command{
	Use:   "brackets [year]",
	Short: "Print the bracket table for a year and filing status",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		year, err := a.yearArg(args, 0)
		if err != nil {
			return err
		}

		status, err := bracketStatus(cmd, a, year)
		if err != nil {
			return err
		}

		table, err := a.provider.BracketTable(year, status)
		if err != nil {
			if a.explain(cmd.OutOrStdout(), err, year) {
				return nil
			}
			return err
		}

		w := cmd.OutOrStdout()
		if a.format() == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(table)
		}
		fmt.Fprintf(w, "%d %s (standard deduction %s)\n", table.Year, status.Label(), output.FormatCurrency(table.StandardDeduction))
		for _, b := range table.Brackets {
			upper := "and up"
			if !b.IsTop() {
				upper = "to " + output.FormatCurrency(b.Upper.Decimal)
			}
			fmt.Fprintf(w, "  %6s  %14s %s\n", output.FormatRate(b.Rate), output.FormatCurrency(b.Lower), upper)
		}
		return nil
	},
}

// bracketStatus resolves --status, falling back to the year's profile.
func bracketStatus(cmd *cobra.Command, a *app, year int) (domain.FilingStatus, error) {
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		return domain.ParseFilingStatus(raw)
	}
	if source, closeFn, err := a.source(); err == nil {
		defer closeFn()
		if income, err := source.Summary(ctx(cmd), year); err == nil && income.HasProfile() {
			return income.FilingStatus, nil
		}
	}
	return domain.Single, nil
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
