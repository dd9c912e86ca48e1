package calculation

import (
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

// EquityImpact is the income one equity event adds to the year.
type EquityImpact struct {
	Event               domain.EquityEvent `json:"event"`
	OrdinaryIncome      decimal.Decimal    `json:"ordinaryIncome"`
	LongTermCapitalGain decimal.Decimal    `json:"longTermCapitalGain"`
}

// EquityEventImpact computes the regular-tax income from one event:
//   - NSO exercise: bargain element (FMV - strike) x shares, ordinary, floored at 0
//   - ISO exercise: no regular income
//   - RSU vest: FMV x shares, ordinary
//   - share sale: (sale - basis) x shares, long-term gain or ordinary, signed
func EquityEventImpact(e domain.EquityEvent) EquityImpact {
	impact := EquityImpact{Event: e}
	switch e.Kind {
	case domain.EventNSOExercise:
		spread := domain.NonNegative(e.FairMarketValue.Sub(e.StrikePrice))
		impact.OrdinaryIncome = spread.Mul(e.Shares)
	case domain.EventRSUVest:
		impact.OrdinaryIncome = e.FairMarketValue.Mul(e.Shares)
	case domain.EventShareSale:
		gain := e.SalePrice.Sub(e.CostBasis).Mul(e.Shares)
		if e.LongTerm {
			impact.LongTermCapitalGain = gain
		} else {
			impact.OrdinaryIncome = gain
		}
	case domain.EventISOExercise:
		// bargain element is an AMT preference only
	}
	return impact
}

// EquityAdjustment folds a set of events into one scenario adjustment.
func EquityAdjustment(events []domain.EquityEvent) (domain.ScenarioInputs, []EquityImpact) {
	var total domain.ScenarioInputs
	impacts := make([]EquityImpact, 0, len(events))
	for _, e := range events {
		impact := EquityEventImpact(e)
		impacts = append(impacts, impact)
		total = total.Add(domain.ScenarioInputs{
			AdditionalOrdinaryIncome:       impact.OrdinaryIncome,
			AdditionalLongTermCapitalGains: impact.LongTermCapitalGain,
		})
	}
	return total, impacts
}
