package compare

import (
	"fmt"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one scenario's headroom and threshold position.
type ComparisonResult struct {
	ScenarioName string                `json:"scenarioName"`
	Description  string                `json:"description"`
	Adjustment   domain.ScenarioInputs `json:"adjustment"`
	Headroom     domain.HeadroomResult `json:"headroom"`

	// Threshold counts
	Exceeded    int `json:"exceeded"`
	Approaching int `json:"approaching"`

	// Comparison to base
	TaxableDiffFromBase  decimal.Decimal          `json:"taxableDiffFromBase"`
	RateDiffFromBase     decimal.Decimal          `json:"rateDiffFromBase"`
	HeadroomDiffFromBase decimal.NullDecimal      `json:"headroomDiffFromBase"`
	CrossesBracket       bool                     `json:"crossesBracket"`
	NewlyExceeded        []domain.ThresholdDetail `json:"newlyExceeded,omitempty"`

	exceededKeys map[string]bool
	nextTier     domain.ThresholdDetail
}

// ComparisonSet is a base scenario plus its alternatives for one year.
type ComparisonSet struct {
	Year               int                 `json:"year"`
	FilingStatus       domain.FilingStatus `json:"filingStatus"`
	BaseScenarioName   string              `json:"baseScenarioName"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
}

// MetricsCalculator derives comparison metrics from engine results.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics summarizes one scenario's headroom and insights.
func (mc *MetricsCalculator) CalculateMetrics(name string, adjustment domain.ScenarioInputs, headroom domain.HeadroomResult, insights []domain.ThresholdInsight) ComparisonResult {
	result := ComparisonResult{
		ScenarioName: name,
		Adjustment:   adjustment,
		Headroom:     headroom,
		exceededKeys: map[string]bool{},
	}
	for _, in := range insights {
		switch in.Status {
		case domain.StatusExceeded:
			result.Exceeded++
			result.exceededKeys[in.Detail.Key] = true
		case domain.StatusApproaching:
			result.Approaching++
		}
		if in.Detail.Kind == domain.KindMeansTestedTier {
			result.nextTier = in.Detail
		}
	}
	return result
}

// CalculateComparison fills the deltas of scenario against base. insights
// are the scenario's, used to name thresholds the base had not exceeded.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult, insights []domain.ThresholdInsight) ComparisonResult {
	scenario.TaxableDiffFromBase = scenario.Headroom.TaxableIncome.Sub(base.Headroom.TaxableIncome)
	scenario.RateDiffFromBase = scenario.Headroom.BracketRate.Sub(base.Headroom.BracketRate)
	scenario.CrossesBracket = !scenario.Headroom.BracketLower.Equal(base.Headroom.BracketLower)

	if scenario.Headroom.DollarsToNextBracket.Valid && base.Headroom.DollarsToNextBracket.Valid {
		scenario.HeadroomDiffFromBase = domain.Amount(
			scenario.Headroom.DollarsToNextBracket.Decimal.Sub(base.Headroom.DollarsToNextBracket.Decimal))
	}

	// Only the next tier is evaluated, so a tier passed on the way up shows
	// as a change of next tier rather than as an exceeded insight.
	if base.nextTier.Key != "" && scenario.nextTier.Key != base.nextTier.Key &&
		scenario.nextTier.Limit.GreaterThan(base.nextTier.Limit) && !base.exceededKeys[base.nextTier.Key] {
		scenario.NewlyExceeded = append(scenario.NewlyExceeded, base.nextTier)
	}
	for _, in := range insights {
		if in.Status == domain.StatusExceeded && !base.exceededKeys[in.Detail.Key] {
			scenario.NewlyExceeded = append(scenario.NewlyExceeded, in.Detail)
		}
	}
	return scenario
}

// GenerateRecommendations summarizes which alternatives keep the base
// bracket and which cross a bracket or threshold.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Largest added income that keeps the base bracket and crosses nothing
	var best *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CrossesBracket || len(alt.NewlyExceeded) > 0 || !alt.TaxableDiffFromBase.IsPositive() {
			continue
		}
		if best == nil || alt.TaxableDiffFromBase.GreaterThan(best.TaxableDiffFromBase) {
			best = alt
		}
	}
	if best != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Room Used: %s adds %s of taxable income and stays in the %s bracket",
				best.ScenarioName, output.FormatCurrency(best.TaxableDiffFromBase), output.FormatRate(base.Headroom.BracketRate)))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.CrossesBracket {
			recommendations = append(recommendations,
				fmt.Sprintf("Bracket Change: %s moves income into the %s bracket",
					alt.ScenarioName, output.FormatRate(alt.Headroom.BracketRate)))
		}
		for _, d := range alt.NewlyExceeded {
			recommendations = append(recommendations,
				fmt.Sprintf("Threshold Crossed: %s exceeds %s (%s)",
					alt.ScenarioName, d.Label, output.FormatCurrency(d.Limit)))
		}
	}

	return recommendations
}
