package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	profileSetCmd.Flags().String("status", "", "Filing status (single, mfj, mfs, hoh)")
	profileSetCmd.Flags().String("std-deduction", "", "Standard deduction (default: the published amount)")
	_ = profileSetCmd.MarkFlagRequired("status")

	profileCmd.AddCommand(profileSetCmd, profileInitCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage per-year filing profiles",
}

// resolveDeduction parses raw, or looks up the published deduction when raw
// is empty.
func resolveDeduction(a *app, year int, status domain.FilingStatus, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw != "" {
		d, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid standard deduction %q", raw)
		}
		if d.IsNegative() {
			return decimal.Zero, fmt.Errorf("standard deduction cannot be negative")
		}
		return d, nil
	}
	d, err := a.provider.DefaultStandardDeduction(year, status)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no published deduction for %d, pass --std-deduction: %w", year, err)
	}
	return d, nil
}

var profileSetCmd = &cobra.Command{
	Use:   "set [year]",
	Short: "Set the filing status and standard deduction for a year",
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
		rawStatus, _ := cmd.Flags().GetString("status")
		status, err := domain.ParseFilingStatus(rawStatus)
		if err != nil {
			return err
		}
		rawStd, _ := cmd.Flags().GetString("std-deduction")
		std, err := resolveDeduction(a, year, status, rawStd)
		if err != nil {
			return err
		}

		db, err := a.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		profile := domain.FilingProfile{Year: year, FilingStatus: status, StandardDeduction: std}
		if err := db.SaveProfile(ctx(cmd), profile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d profile: %s, standard deduction %s\n", year, status.Label(), output.FormatCurrency(std))
		return nil
	},
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a filing profile interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		yearStr := strconv.Itoa(a.settings.Year())
		status := string(domain.Single)
		var stdStr string

		options := make([]huh.Option[string], 0, len(domain.FilingStatuses))
		for _, fs := range domain.FilingStatuses {
			options = append(options, huh.NewOption(fs.Label(), string(fs)))
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Tax year").
					Value(&yearStr).
					Validate(func(s string) error {
						if _, err := a.yearArg([]string{s}, 0); err != nil {
							return err
						}
						return nil
					}),
				huh.NewSelect[string]().
					Title("Filing status").
					Options(options...).
					Value(&status),
				huh.NewInput().
					Title("Standard deduction").
					Description("Leave blank for the published amount").
					Value(&stdStr),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}

		year, _ := a.yearArg([]string{yearStr}, 0)
		fs := domain.FilingStatus(status)
		std, err := resolveDeduction(a, year, fs, stdStr)
		if err != nil {
			return err
		}

		db, err := a.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveProfile(ctx(cmd), domain.FilingProfile{Year: year, FilingStatus: fs, StandardDeduction: std}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d profile: %s, standard deduction %s\n", year, fs.Label(), output.FormatCurrency(std))
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [year]",
	Short: "Show the filing profile and income total for a year",
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

		summary, err := source.Summary(ctx(cmd), year)
		if err != nil {
			if a.explain(cmd.OutOrStdout(), err, year) {
				return nil
			}
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Year:               %d\n", summary.Year)
		fmt.Fprintf(w, "Filing status:      %s\n", summary.FilingStatus.Label())
		fmt.Fprintf(w, "Standard deduction: %s\n", output.FormatCurrency(summary.StandardDeduction))
		fmt.Fprintf(w, "Total income:       %s\n", output.FormatCurrency(summary.TotalIncome))
		return nil
	},
}
