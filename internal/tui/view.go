package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/output"
	"github.com/rgehrsitz/headroom/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{m.renderTitleBar()}

	if m.err != nil || m.report == nil {
		sections = append(sections, m.renderError())
	} else {
		sections = append(sections, m.renderMetrics(), m.renderGauge())
	}

	sections = append(sections, m.renderSliders())
	if m.err == nil && m.report != nil {
		sections = append(sections, m.renderInsights())
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitleBar renders the application title and year
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("HEADROOM")
	sub := fmt.Sprintf("%d", m.income.Year)
	if m.income.HasProfile() {
		sub += " · " + m.income.FilingStatus.Label()
	}
	if m.editingYear {
		sub = "year: " + m.yearInput.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, SubtitleStyle.Render(sub))
}

func (m Model) renderMetrics() string {
	cmp := m.report.Comparison
	base, scen := cmp.Baseline, cmp.Scenario

	taxable := components.NewMetricCard("Taxable income", output.FormatCurrency(scen.TaxableIncome))
	if delta := scen.TaxableIncome.Sub(base.TaxableIncome); !delta.IsZero() {
		taxable.WithChange(delta.IsPositive(), !delta.IsPositive(), output.FormatCurrency(delta.Abs()))
	}

	rate := components.NewMetricCard("Marginal rate", output.FormatRate(scen.BracketRate))
	if change := cmp.RateChange(); !change.IsZero() {
		rate.WithChange(change.IsPositive(), !change.IsPositive(), output.FormatRate(change.Abs()))
	}

	next := "top bracket"
	if scen.DollarsToNextBracket.Valid {
		next = output.FormatCurrency(scen.DollarsToNextBracket.Decimal)
	}
	headroom := components.NewMetricCard("To next bracket", next)

	return components.MetricRow([]*components.MetricCard{taxable, rate, headroom})
}

func (m Model) renderGauge() string {
	return BorderStyle.Render(m.gauge.View(m.report.Comparison.Scenario))
}

func (m Model) renderSliders() string {
	parts := make([]string, 0, len(m.sliders))
	for i := range m.sliders {
		parts = append(parts, m.sliders[i].Render())
	}
	return BorderStyle.Render(strings.Join(parts, "\n\n"))
}

func (m Model) renderInsights() string {
	if len(m.report.Insights) == 0 {
		return SubtitleStyle.Render("No threshold data for this year")
	}

	var sb strings.Builder
	if m.report.ThresholdsYear != m.income.Year {
		sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("using %d thresholds", m.report.ThresholdsYear)) + "\n")
	}
	for i, in := range m.report.Insights {
		if i > 0 {
			sb.WriteString("\n")
		}
		status := output.StatusStyle(in.Status).Render(fmt.Sprintf("%-11s", in.Status))
		sb.WriteString(fmt.Sprintf("%s %-28s %14s", status, in.Detail.Label, output.FormatCurrency(in.Proximity)))
	}
	return BorderStyle.Render(sb.String())
}

// renderError explains why no report could be built
func (m Model) renderError() string {
	switch {
	case errors.Is(m.err, domain.ErrMissingProfile):
		return ErrorStyle.Render(fmt.Sprintf("No filing profile for %d.", m.income.Year)) +
			"\n" + InfoStyle.Render("Add one with: headroom profile set")
	case errors.Is(m.err, domain.ErrTablesUnavailable):
		return ErrorStyle.Render(fmt.Sprintf("No bracket table for %d.", m.income.Year))
	case m.err != nil:
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	return ""
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	bindings := m.keys.shortHelp()
	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.Help().Desc == "year" && m.source == nil {
			continue
		}
		shortcuts = append(shortcuts, StatusKeyStyle.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}
