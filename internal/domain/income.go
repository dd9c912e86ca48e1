package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// IncomeSource categorizes a ledger entry. Categorization does not affect the
// headroom math; every source counts toward total income.
type IncomeSource string

const (
	SourceWages              IncomeSource = "wages"
	SourceSelfEmployment     IncomeSource = "self_employment"
	SourceInterest           IncomeSource = "interest"
	SourceDividends          IncomeSource = "dividends"
	SourceCapitalGains       IncomeSource = "capital_gains"
	SourceEquityCompensation IncomeSource = "equity_compensation"
	SourceRetirement         IncomeSource = "retirement"
	SourceOther              IncomeSource = "other"
)

// IncomeSources lists every canonical source.
var IncomeSources = []IncomeSource{
	SourceWages, SourceSelfEmployment, SourceInterest, SourceDividends,
	SourceCapitalGains, SourceEquityCompensation, SourceRetirement, SourceOther,
}

// legacy names written by earlier versions of the ledger format
var incomeSourceAliases = map[string]IncomeSource{
	"salary":        SourceWages,
	"w2":            SourceWages,
	"w-2":           SourceWages,
	"paycheck":      SourceWages,
	"bonus":         SourceWages,
	"1099":          SourceSelfEmployment,
	"freelance":     SourceSelfEmployment,
	"business":      SourceSelfEmployment,
	"contract":      SourceSelfEmployment,
	"bank_interest": SourceInterest,
	"dividend":      SourceDividends,
	"qualified_div": SourceDividends,
	"capital_gain":  SourceCapitalGains,
	"ltcg":          SourceCapitalGains,
	"stcg":          SourceCapitalGains,
	"rsu":           SourceEquityCompensation,
	"espp":          SourceEquityCompensation,
	"nso":           SourceEquityCompensation,
	"stock_options": SourceEquityCompensation,
	"equity":        SourceEquityCompensation,
	"pension":       SourceRetirement,
	"ira":           SourceRetirement,
	"401k":          SourceRetirement,
	"misc":          SourceOther,
}

// ParseIncomeSource maps canonical and legacy names to a source. Unknown names
// fall back to SourceOther; an empty string is rejected.
func ParseIncomeSource(s string) (IncomeSource, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", fmt.Errorf("income source is required")
	}
	key = strings.ReplaceAll(key, " ", "_")
	for _, src := range IncomeSources {
		if string(src) == key {
			return src, nil
		}
	}
	if src, ok := incomeSourceAliases[key]; ok {
		return src, nil
	}
	return SourceOther, nil
}

// UnmarshalYAML decodes a source through ParseIncomeSource.
func (src *IncomeSource) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseIncomeSource(raw)
	if err != nil {
		return err
	}
	*src = parsed
	return nil
}

// IncomeEntry is one line in a year's income ledger.
type IncomeEntry struct {
	ID          int64           `yaml:"-" json:"id"`
	Year        int             `yaml:"year" json:"year"`
	Source      IncomeSource    `yaml:"source" json:"source"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description" json:"description"`
	Date        time.Time       `yaml:"date" json:"date"`
}

// FilingProfile holds the per-year filing status and standard deduction.
type FilingProfile struct {
	Year              int             `yaml:"year" json:"year"`
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
}

// IncomeSummary is the read-only view of a year's ledger that the calculators
// consume.
type IncomeSummary struct {
	Year              int             `json:"year"`
	FilingStatus      FilingStatus    `json:"filingStatus"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
}

// NewIncomeSummary builds a summary from raw float totals, clamping non-finite
// values to zero.
func NewIncomeSummary(year int, status FilingStatus, standardDeduction, totalIncome float64) IncomeSummary {
	return IncomeSummary{
		Year:              year,
		FilingStatus:      status,
		StandardDeduction: NonNegative(FiniteAmount(standardDeduction)),
		TotalIncome:       FiniteAmount(totalIncome),
	}
}

// SummarizeLedger totals entries for the profile's year.
func SummarizeLedger(profile FilingProfile, entries []IncomeEntry) IncomeSummary {
	total := decimal.Zero
	for _, e := range entries {
		if e.Year == profile.Year {
			total = total.Add(e.Amount)
		}
	}
	return IncomeSummary{
		Year:              profile.Year,
		FilingStatus:      profile.FilingStatus,
		StandardDeduction: NonNegative(profile.StandardDeduction),
		TotalIncome:       total,
	}
}

// HasProfile reports whether the summary carries a usable filing profile.
func (s IncomeSummary) HasProfile() bool {
	return s.FilingStatus.Valid()
}

// TotalsBySource groups entry amounts by source.
func TotalsBySource(entries []IncomeEntry) map[IncomeSource]decimal.Decimal {
	totals := make(map[IncomeSource]decimal.Decimal)
	for _, e := range entries {
		totals[e.Source] = totals[e.Source].Add(e.Amount)
	}
	return totals
}
