package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per headroom result or threshold insight.
type CSVFormatter struct{}

func (cf CSVFormatter) Name() string { return "csv" }

// Format generates CSV output for the report
func (cf CSVFormatter) Format(report *calculation.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Record", "Name", "Status", "Amount", "Rate", "Lower", "Upper", "Remaining"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if err := w.Write(cf.headroomRow("baseline", report.Comparison.Baseline)); err != nil {
		return nil, err
	}
	if !report.Comparison.Adjustment.IsZero() {
		if err := w.Write(cf.headroomRow("scenario", report.Comparison.Scenario)); err != nil {
			return nil, err
		}
	}

	for _, in := range report.Insights {
		row := []string{
			"insight",
			in.Detail.Key,
			in.Status.String(),
			in.Detail.Limit.StringFixed(2),
			"", "", "",
			in.Proximity.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (cf CSVFormatter) headroomRow(name string, r domain.HeadroomResult) []string {
	return []string{
		"headroom",
		name,
		"",
		r.TaxableIncome.StringFixed(2),
		r.BracketRate.StringFixed(4),
		r.BracketLower.StringFixed(2),
		optionalFixed(r.BracketUpper),
		optionalFixed(r.DollarsToNextBracket),
	}
}

func optionalFixed(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
