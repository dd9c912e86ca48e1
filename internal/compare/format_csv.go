package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Additional Ordinary",
		"Additional LTCG",
		"Taxable Income",
		"Bracket Rate",
		"Dollars To Next Bracket",
		"Thresholds Exceeded",
		"Thresholds Approaching",
		"Taxable Diff from Base",
		"Rate Diff from Base",
		"Crosses Bracket",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	headroom := ""
	if result.Headroom.DollarsToNextBracket.Valid {
		headroom = result.Headroom.DollarsToNextBracket.Decimal.StringFixed(2)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Adjustment.AdditionalOrdinaryIncome.StringFixed(2),
		result.Adjustment.AdditionalLongTermCapitalGains.StringFixed(2),
		result.Headroom.TaxableIncome.StringFixed(2),
		result.Headroom.BracketRate.StringFixed(4),
		headroom,
		strconv.Itoa(result.Exceeded),
		strconv.Itoa(result.Approaching),
		result.TaxableDiffFromBase.StringFixed(2),
		result.RateDiffFromBase.StringFixed(4),
		strconv.FormatBool(result.CrossesBracket),
	}
}
