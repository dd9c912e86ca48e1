package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui [year]",
	Short: "Explore adjustments interactively",
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
			// the model shows the missing profile and lets the user switch years
			a.logger.Debugf("summary for %d: %v", year, err)
			income = domain.IncomeSummary{Year: year}
		}

		p := tea.NewProgram(tui.NewModel(a.engine, source, income), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}
