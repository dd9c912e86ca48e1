package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/config"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/store"
	"github.com/rgehrsitz/headroom/internal/tables"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagDB     string
	flagLedger string
	flagDebug  bool
	flagFormat string
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "headroom %s (commit %s, built %s)\n", version, commit, date)
			if flagDebug {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "headroom",
	Short: "Tax bracket headroom planner",
	Long: "Plan annual taxable income against federal bracket thresholds: headroom to the next\n" +
		"bracket, what-if adjustments, equity events and IRMAA/NIIT/QBI proximity.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default $XDG_CONFIG_HOME/headroom/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagLedger, "ledger", "", "Read income from a YAML ledger file instead of the database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format (table, json, csv)")

	rootCmd.AddCommand(versionCmd())
}

// app bundles what every command needs: settings, tables and the engine.
type app struct {
	settings config.Settings
	provider *tables.Provider
	engine   *calculation.Engine
	logger   calculation.Logger
}

func loadApp() (*app, error) {
	settings, err := config.LoadSettings(flagConfig)
	if err != nil {
		return nil, err
	}

	var logger calculation.Logger = calculation.NopLogger{}
	if flagDebug {
		logger = simpleCLILogger{}
	}

	fsys := tables.DefaultFS()
	if dir := settings.Data.TablesDir; dir != "" {
		logger.Debugf("using tables from %s", dir)
		fsys = os.DirFS(dir)
	}
	provider := tables.NewProvider(fsys)

	thresholds, err := tables.LoadThresholds(fsys)
	if err != nil {
		logger.Warnf("threshold data unavailable: %v", err)
	}

	engine := calculation.NewEngine(provider, nil)
	if thresholds != nil {
		engine.Thresholds = thresholds
	}
	engine.SetLogger(logger)

	return &app{settings: settings, provider: provider, engine: engine, logger: logger}, nil
}

func (a *app) dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return a.settings.Data.DBPath
}

func (a *app) format() string {
	if flagFormat != "" {
		return flagFormat
	}
	return a.settings.General.Format
}

// source opens the ledger the summary is read from. The returned close
// function is never nil.
func (a *app) source() (calculation.LedgerSource, func() error, error) {
	if flagLedger != "" {
		ledger, err := config.NewInputParser().LoadLedger(flagLedger)
		if err != nil {
			return nil, nil, err
		}
		return ledger, func() error { return nil }, nil
	}
	db, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

// openStore opens the database for commands that write to the ledger.
func (a *app) openStore() (*store.Ledger, error) {
	if flagLedger != "" {
		return nil, fmt.Errorf("--ledger files are read-only; import them with 'headroom ledger import'")
	}
	return store.Open(a.dbPath())
}

// yearArg parses args[i] as a year, or returns the configured default.
func (a *app) yearArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return a.settings.Year(), nil
	}
	year, err := strconv.Atoi(args[i])
	if err != nil || year < 1913 || year > 2100 {
		return 0, fmt.Errorf("invalid year %q", args[i])
	}
	return year, nil
}

// explain prints a message for the expected data gaps and reports whether
// err was one of them.
func (a *app) explain(w io.Writer, err error, year int) bool {
	switch {
	case errors.Is(err, domain.ErrMissingProfile):
		fmt.Fprintf(w, "No filing profile for %d.\n", year)
		fmt.Fprintf(w, "Add one with: headroom profile set %d --status single\n", year)
		return true
	case errors.Is(err, domain.ErrTablesUnavailable):
		fmt.Fprintf(w, "No bracket table for %d.\n", year)
		if years, yerr := a.provider.Years(); yerr == nil && len(years) > 0 {
			fmt.Fprintf(w, "Available years: %v\n", years)
		}
		return true
	}
	return false
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
