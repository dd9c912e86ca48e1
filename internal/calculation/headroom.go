package calculation

import (
	"fmt"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeHeadroom places the year's taxable income, after applying the
// scenario adjustment, in the bracket table and reports how many dollars
// remain before the next bracket begins.
//
// Taxable income is total income plus adjustment minus the standard
// deduction, floored at zero. The active bracket is the highest one whose
// lower bound does not exceed taxable income, falling back to the lowest.
func ComputeHeadroom(income domain.IncomeSummary, adjustment domain.ScenarioInputs, table domain.BracketTable) (domain.HeadroomResult, error) {
	if len(table.Brackets) == 0 {
		return domain.HeadroomResult{}, fmt.Errorf("%w: empty bracket table for %d/%s", domain.ErrTablesUnavailable, table.Year, table.FilingStatus)
	}

	adjustedTotal := income.TotalIncome.Add(adjustment.TotalAdjustment())
	taxableIncome := domain.NonNegative(adjustedTotal.Sub(income.StandardDeduction))

	brackets := table.Sorted()
	active := brackets[0]
	for _, b := range brackets {
		if b.Lower.GreaterThan(taxableIncome) {
			break
		}
		active = b
	}

	result := domain.HeadroomResult{
		TaxableIncome: taxableIncome,
		BracketRate:   active.Rate,
		BracketLower:  active.Lower,
		BracketUpper:  active.Upper,
	}
	if !active.IsTop() {
		result.DollarsToNextBracket = domain.Amount(domain.NonNegative(active.Upper.Decimal.Sub(taxableIncome)))
	}
	return result, nil
}

// ComputeBaselineHeadroom is ComputeHeadroom with no scenario adjustment.
func ComputeBaselineHeadroom(income domain.IncomeSummary, table domain.BracketTable) (domain.HeadroomResult, error) {
	return ComputeHeadroom(income, domain.ScenarioInputs{}, table)
}

// ScenarioComparison pairs the baseline and adjusted results for one summary.
type ScenarioComparison struct {
	Adjustment domain.ScenarioInputs `json:"adjustment"`
	Baseline   domain.HeadroomResult `json:"baseline"`
	Scenario   domain.HeadroomResult `json:"scenario"`
}

// CompareScenario runs the same calculation with and without the adjustment.
func CompareScenario(income domain.IncomeSummary, adjustment domain.ScenarioInputs, table domain.BracketTable) (ScenarioComparison, error) {
	baseline, err := ComputeBaselineHeadroom(income, table)
	if err != nil {
		return ScenarioComparison{}, err
	}
	scenario, err := ComputeHeadroom(income, adjustment, table)
	if err != nil {
		return ScenarioComparison{}, err
	}
	return ScenarioComparison{Adjustment: adjustment, Baseline: baseline, Scenario: scenario}, nil
}

// RateChange is the difference in marginal rate between scenario and baseline.
func (c ScenarioComparison) RateChange() decimal.Decimal {
	return c.Scenario.BracketRate.Sub(c.Baseline.BracketRate)
}

// CrossesBracket reports whether the adjustment moves income into a different
// bracket.
func (c ScenarioComparison) CrossesBracket() bool {
	return !c.Scenario.BracketLower.Equal(c.Baseline.BracketLower)
}
