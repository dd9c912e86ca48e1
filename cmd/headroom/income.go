package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/headroom/internal/config"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	incomeAddCmd.Flags().Int("year", 0, "Tax year (default: configured year)")
	incomeAddCmd.Flags().String("source", string(domain.SourceWages), "Income source")
	incomeAddCmd.Flags().String("desc", "", "Description")
	incomeAddCmd.Flags().String("date", "", "Date received (YYYY-MM-DD)")

	incomeCmd.AddCommand(incomeAddCmd, incomeListCmd, incomeRmCmd)
	ledgerCmd.AddCommand(ledgerImportCmd)
	rootCmd.AddCommand(incomeCmd, ledgerCmd)
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Record and list income entries",
}

var incomeAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Add an income entry (negative amounts record losses)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(args[0], "$"), ",", ""))
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = a.settings.Year()
		}
		rawSource, _ := cmd.Flags().GetString("source")
		source, err := domain.ParseIncomeSource(rawSource)
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("desc")

		entry := domain.IncomeEntry{Year: year, Source: source, Amount: amount, Description: desc}
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			if entry.Date, err = time.Parse("2006-01-02", raw); err != nil {
				return fmt.Errorf("invalid date %q: %w", raw, err)
			}
		}

		db, err := a.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		entry, err = db.AddIncome(ctx(cmd), entry)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s %s (%d)\n", entry.ID, output.FormatCurrency(entry.Amount), entry.Source, entry.Year)
		return nil
	},
}

var incomeListCmd = &cobra.Command{
	Use:   "list [year]",
	Short: "List income entries for a year",
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

		var entries []domain.IncomeEntry
		if flagLedger != "" {
			ledger, err := config.NewInputParser().LoadLedger(flagLedger)
			if err != nil {
				return err
			}
			for _, e := range ledger.Income {
				if e.Year == year {
					entries = append(entries, e)
				}
			}
		} else {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			if entries, err = db.ListIncome(ctx(cmd), year); err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintf(w, "No income recorded for %d\n", year)
			return nil
		}
		for _, e := range entries {
			date := ""
			if !e.Date.IsZero() {
				date = e.Date.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%5d  %-10s %-20s %14s  %s\n", e.ID, date, e.Source, output.FormatCurrency(e.Amount), e.Description)
		}
		fmt.Fprintln(w)
		totals := domain.TotalsBySource(entries)
		for _, src := range domain.IncomeSources {
			if total, ok := totals[src]; ok {
				fmt.Fprintf(w, "  %-20s %14s\n", src, output.FormatCurrency(total))
			}
		}
		return nil
	},
}

var incomeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an income entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		db, err := a.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteIncome(ctx(cmd), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
		return nil
	},
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Import YAML ledger files",
}

var ledgerImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles and income entries from a YAML ledger file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		ledger, err := config.NewInputParser().LoadLedger(args[0])
		if err != nil {
			return err
		}
		db, err := a.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ImportLedger(ctx(cmd), ledger.Profiles, ledger.Income)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles and %d income entries\n", len(ledger.Profiles), n)
		return nil
	},
}
