package domain

import "github.com/shopspring/decimal"

// ScenarioInputs is a hypothetical additive adjustment applied on top of the
// ledger total. The zero value is the baseline.
type ScenarioInputs struct {
	AdditionalOrdinaryIncome       decimal.Decimal `yaml:"additional_ordinary_income" json:"additionalOrdinaryIncome"`
	AdditionalLongTermCapitalGains decimal.Decimal `yaml:"additional_long_term_capital_gains" json:"additionalLongTermCapitalGains"`
}

// NewScenarioInputs builds an adjustment from floats, clamping non-finite
// values to zero.
func NewScenarioInputs(ordinary, longTermGains float64) ScenarioInputs {
	return ScenarioInputs{
		AdditionalOrdinaryIncome:       FiniteAmount(ordinary),
		AdditionalLongTermCapitalGains: FiniteAmount(longTermGains),
	}
}

// TotalAdjustment is the signed sum of both deltas.
func (s ScenarioInputs) TotalAdjustment() decimal.Decimal {
	return s.AdditionalOrdinaryIncome.Add(s.AdditionalLongTermCapitalGains)
}

// IsZero reports whether s is the baseline scenario.
func (s ScenarioInputs) IsZero() bool {
	return s.AdditionalOrdinaryIncome.IsZero() && s.AdditionalLongTermCapitalGains.IsZero()
}

// Equal compares by value; decimal.Decimal cannot be compared with ==.
func (s ScenarioInputs) Equal(other ScenarioInputs) bool {
	return s.AdditionalOrdinaryIncome.Equal(other.AdditionalOrdinaryIncome) &&
		s.AdditionalLongTermCapitalGains.Equal(other.AdditionalLongTermCapitalGains)
}

// Add combines two adjustments.
func (s ScenarioInputs) Add(other ScenarioInputs) ScenarioInputs {
	return ScenarioInputs{
		AdditionalOrdinaryIncome:       s.AdditionalOrdinaryIncome.Add(other.AdditionalOrdinaryIncome),
		AdditionalLongTermCapitalGains: s.AdditionalLongTermCapitalGains.Add(other.AdditionalLongTermCapitalGains),
	}
}
