package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
)

var (
	headingStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	exceededStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	approachingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	clearStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)

// StatusStyle returns the style used for an insight status.
func StatusStyle(s domain.ThresholdStatus) lipgloss.Style {
	switch s {
	case domain.StatusExceeded:
		return exceededStyle
	case domain.StatusApproaching:
		return approachingStyle
	default:
		return clearStyle
	}
}

// TableFormatter formats the report as a console table
type TableFormatter struct{}

func (tf TableFormatter) Name() string { return "table" }

// Format generates the console report
func (tf TableFormatter) Format(report *calculation.Report) ([]byte, error) {
	var sb strings.Builder
	s := report.Summary
	cmp := report.Comparison
	withScenario := !cmp.Adjustment.IsZero()

	sb.WriteString(headingStyle.Render(fmt.Sprintf("TAX HEADROOM %d (%s)", s.Year, s.FilingStatus.Label())))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Total Income:        %s\n", FormatCurrency(s.TotalIncome)))
	sb.WriteString(fmt.Sprintf("Standard Deduction:  %s\n", FormatCurrency(s.StandardDeduction)))
	if withScenario {
		sb.WriteString(fmt.Sprintf("Adjustment:          %s ordinary, %s long-term gains\n",
			FormatCurrency(cmp.Adjustment.AdditionalOrdinaryIncome),
			FormatCurrency(cmp.Adjustment.AdditionalLongTermCapitalGains)))
	}
	sb.WriteString("\n")

	labelWidth := 22
	colWidth := 20
	row := func(label, base, scen string) {
		if withScenario {
			sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, label, colWidth, base, colWidth, scen))
			return
		}
		sb.WriteString(fmt.Sprintf("%-*s %*s\n", labelWidth, label, colWidth, base))
	}

	row("", "Baseline", "Scenario")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	b, sc := cmp.Baseline, cmp.Scenario
	row("Taxable Income", FormatCurrency(b.TaxableIncome), FormatCurrency(sc.TaxableIncome))
	row("Marginal Rate", FormatRate(b.BracketRate), FormatRate(sc.BracketRate))
	row("Bracket Floor", FormatCurrency(b.BracketLower), FormatCurrency(sc.BracketLower))
	row("Bracket Ceiling", formatOptional(b.BracketUpper, "none"), formatOptional(sc.BracketUpper, "none"))
	row("To Next Bracket", formatOptional(b.DollarsToNextBracket, "top bracket"), formatOptional(sc.DollarsToNextBracket, "top bracket"))
	if withScenario && cmp.CrossesBracket() {
		change := cmp.RateChange()
		sb.WriteString(fmt.Sprintf("\nScenario moves into the %s bracket (%s%s)\n",
			FormatRate(sc.BracketRate), sign(change.IsNegative()), FormatRate(change.Abs())))
	}

	if len(report.Equity) > 0 {
		sb.WriteString("\n" + headingStyle.Render("EQUITY EVENTS") + "\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, imp := range report.Equity {
			label := imp.Event.Label
			if label == "" {
				label = string(imp.Event.Kind)
			}
			sb.WriteString(fmt.Sprintf("%-30s ordinary %14s  long-term %14s\n",
				label, FormatCurrency(imp.OrdinaryIncome), FormatCurrency(imp.LongTermCapitalGain)))
		}
	}

	sb.WriteString("\n" + headingStyle.Render("THRESHOLDS") + "\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	if len(report.Insights) == 0 {
		sb.WriteString(mutedStyle.Render("No threshold data available") + "\n")
		return []byte(sb.String()), nil
	}
	if report.ThresholdsYear != 0 && report.ThresholdsYear != s.Year {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("Using %d threshold data", report.ThresholdsYear)) + "\n")
	}
	for _, in := range report.Insights {
		status := StatusStyle(in.Status).Render(fmt.Sprintf("%-12s", in.Status))
		sb.WriteString(fmt.Sprintf("%s %-32s %14s %14s\n",
			status, in.Detail.Label, FormatCurrency(in.Detail.Limit), FormatCurrency(in.Proximity)))
	}

	if len(report.Markers) > 0 {
		sb.WriteString("\nTaxable-income equivalents\n")
		for _, mk := range report.Markers {
			sb.WriteString(fmt.Sprintf("  %-32s %14s\n", mk.Label, FormatCurrency(mk.TaxableEquivalent)))
		}
	}

	return []byte(sb.String()), nil
}

func sign(negative bool) string {
	if negative {
		return "-"
	}
	return "+"
}
