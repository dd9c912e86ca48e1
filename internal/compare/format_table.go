package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/headroom/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("HEADROOM SCENARIO COMPARISON %d (%s)\n", compSet.Year, compSet.FilingStatus.Label()))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Taxable",
		numWidth, "Bracket",
		numWidth, "To Next",
		numWidth, "Thresholds"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Taxable Income:   %s$%s\n",
				tf.deltaSymbol(alt.TaxableDiffFromBase), tf.formatDecimal(alt.TaxableDiffFromBase.Abs())))
			if !alt.RateDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Marginal Rate:    %s%s\n",
					tf.deltaSymbol(alt.RateDiffFromBase), output.FormatRate(alt.RateDiffFromBase.Abs())))
			}
			if alt.HeadroomDiffFromBase.Valid && !alt.HeadroomDiffFromBase.Decimal.IsZero() {
				sb.WriteString(fmt.Sprintf("  Headroom:         %s$%s\n",
					tf.deltaSymbol(alt.HeadroomDiffFromBase.Decimal), tf.formatDecimal(alt.HeadroomDiffFromBase.Decimal.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	toNext := "top bracket"
	if result.Headroom.DollarsToNextBracket.Valid {
		toNext = "$" + tf.formatDecimal(result.Headroom.DollarsToNextBracket.Decimal)
	}

	thresholds := fmt.Sprintf("%d/%d", result.Exceeded, result.Approaching)

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.Headroom.TaxableIncome),
		numWidth, output.FormatRate(result.Headroom.BracketRate),
		numWidth, toNext,
		numWidth, thresholds)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign prefix for a delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		rate := output.FormatRate(alt.Headroom.BracketRate)
		if alt.CrossesBracket {
			rate += "*"
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, rate))
	}

	return sb.String()
}
