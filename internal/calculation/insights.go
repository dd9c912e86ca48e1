package calculation

import (
	"sort"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ApproachingFloor is the minimum width of the approaching band.
	ApproachingFloor = decimal.NewFromInt(5000)
	// ApproachingFraction scales the band to the threshold's size.
	ApproachingFraction = decimal.NewFromFloat(0.10)
)

// EvaluateInsights measures adjusted gross income against the secondary
// thresholds and returns the insights ranked most urgent first.
//
// These thresholds are defined on gross income, so the standard deduction is
// not subtracted. Of the means-tested tiers only the next one above income is
// reported (the highest tier once all are exceeded); surtax and QBI phase-in
// are always reported. A summary without a filing profile yields no insights.
func EvaluateInsights(income domain.IncomeSummary, adjustment domain.ScenarioInputs, thresholds domain.TaxThresholds) []domain.ThresholdInsight {
	if !income.HasProfile() {
		return []domain.ThresholdInsight{}
	}
	total := income.TotalIncome.Add(adjustment.TotalAdjustment())

	insights := make([]domain.ThresholdInsight, 0, 3)
	if tier, ok := nextMeansTestedTier(thresholds.MeansTestedTiers, total); ok {
		insights = append(insights, newInsight(tier, total))
	}
	if thresholds.Surtax.Key != "" {
		insights = append(insights, newInsight(thresholds.Surtax, total))
	}
	if thresholds.QBIPhaseIn.Key != "" {
		insights = append(insights, newInsight(thresholds.QBIPhaseIn, total))
	}
	RankInsights(insights)
	return insights
}

// nextMeansTestedTier finds the lowest tier whose limit is above income, or
// the highest tier when income is above all of them.
func nextMeansTestedTier(tiers []domain.ThresholdDetail, income decimal.Decimal) (domain.ThresholdDetail, bool) {
	if len(tiers) == 0 {
		return domain.ThresholdDetail{}, false
	}
	sorted := make([]domain.ThresholdDetail, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Limit.LessThan(sorted[j].Limit) })

	for _, tier := range sorted {
		if tier.Limit.GreaterThan(income) {
			return tier, true
		}
	}
	return sorted[len(sorted)-1], true
}

func newInsight(detail domain.ThresholdDetail, income decimal.Decimal) domain.ThresholdInsight {
	proximity := detail.Limit.Sub(income)
	return domain.ThresholdInsight{
		Detail:    detail,
		Status:    ClassifyThreshold(proximity, detail.Limit),
		Proximity: proximity,
	}
}

// ApproachingBand is the distance below a limit that counts as approaching:
// 10% of the limit, but never less than 5000.
func ApproachingBand(limit decimal.Decimal) decimal.Decimal {
	return decimal.Max(ApproachingFloor, limit.Mul(ApproachingFraction))
}

// ClassifyThreshold maps a proximity (limit minus income) to a status.
func ClassifyThreshold(proximity, limit decimal.Decimal) domain.ThresholdStatus {
	switch {
	case proximity.LessThanOrEqual(decimal.Zero):
		return domain.StatusExceeded
	case proximity.LessThanOrEqual(ApproachingBand(limit)):
		return domain.StatusApproaching
	default:
		return domain.StatusClear
	}
}

// RankInsights orders insights exceeded, approaching, clear; then by
// proximity ascending; then by key so the order is total.
func RankInsights(insights []domain.ThresholdInsight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return insightLess(insights[i], insights[j])
	})
}

func insightLess(a, b domain.ThresholdInsight) bool {
	if a.Status != b.Status {
		return a.Status < b.Status
	}
	if cmp := a.Proximity.Cmp(b.Proximity); cmp != 0 {
		return cmp < 0
	}
	return a.Detail.Key < b.Detail.Key
}

// TaxableEquivalent converts a gross-income limit to the taxable income it
// corresponds to, for placing markers on a taxable-income scale.
func TaxableEquivalent(detail domain.ThresholdDetail, standardDeduction decimal.Decimal) decimal.Decimal {
	return domain.NonNegative(detail.Limit.Sub(standardDeduction))
}
