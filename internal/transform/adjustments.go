package transform

import (
	"fmt"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(0)
}

// AddOrdinaryIncome adds a signed amount of ordinary income (bonus, side
// income, or a negative amount for an extra pre-tax contribution).
type AddOrdinaryIncome struct {
	Amount decimal.Decimal
}

func (a *AddOrdinaryIncome) Name() string { return "add_ordinary" }

func (a *AddOrdinaryIncome) Description() string {
	return fmt.Sprintf("Add %s ordinary income", money(a.Amount))
}

func (a *AddOrdinaryIncome) Validate(domain.ScenarioInputs) error { return nil }

func (a *AddOrdinaryIncome) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	return base.Add(domain.ScenarioInputs{AdditionalOrdinaryIncome: a.Amount}), nil
}

// AddLongTermGains adds a signed amount of long-term capital gains.
type AddLongTermGains struct {
	Amount decimal.Decimal
}

func (a *AddLongTermGains) Name() string { return "add_ltcg" }

func (a *AddLongTermGains) Description() string {
	return fmt.Sprintf("Add %s long-term capital gains", money(a.Amount))
}

func (a *AddLongTermGains) Validate(domain.ScenarioInputs) error { return nil }

func (a *AddLongTermGains) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	return base.Add(domain.ScenarioInputs{AdditionalLongTermCapitalGains: a.Amount}), nil
}

// RothConversion converts a pre-tax balance; the converted amount is
// ordinary income.
type RothConversion struct {
	Amount decimal.Decimal
}

func (r *RothConversion) Name() string { return "roth_conversion" }

func (r *RothConversion) Description() string {
	return fmt.Sprintf("Convert %s to Roth", money(r.Amount))
}

func (r *RothConversion) Validate(domain.ScenarioInputs) error {
	if !r.Amount.IsPositive() {
		return NewTransformError(r.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", r.Amount), nil)
	}
	return nil
}

func (r *RothConversion) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	return base.Add(domain.ScenarioInputs{AdditionalOrdinaryIncome: r.Amount}), nil
}

// HarvestGains realizes long-term gains.
type HarvestGains struct {
	Amount decimal.Decimal
}

func (h *HarvestGains) Name() string { return "harvest_gains" }

func (h *HarvestGains) Description() string {
	return fmt.Sprintf("Harvest %s of long-term gains", money(h.Amount))
}

func (h *HarvestGains) Validate(domain.ScenarioInputs) error {
	if !h.Amount.IsPositive() {
		return NewTransformError(h.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", h.Amount), nil)
	}
	return nil
}

func (h *HarvestGains) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	return base.Add(domain.ScenarioInputs{AdditionalLongTermCapitalGains: h.Amount}), nil
}

// DeferIncome moves ordinary income out of the year, e.g. a deferred
// compensation election or an additional pre-tax contribution.
type DeferIncome struct {
	Amount decimal.Decimal
}

func (d *DeferIncome) Name() string { return "defer_income" }

func (d *DeferIncome) Description() string {
	return fmt.Sprintf("Defer %s of ordinary income", money(d.Amount))
}

func (d *DeferIncome) Validate(domain.ScenarioInputs) error {
	if !d.Amount.IsPositive() {
		return NewTransformError(d.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", d.Amount), nil)
	}
	return nil
}

func (d *DeferIncome) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	return base.Add(domain.ScenarioInputs{AdditionalOrdinaryIncome: d.Amount.Neg()}), nil
}

// EquityEvents stacks the income from a set of equity events.
type EquityEvents struct {
	Label  string
	Events []domain.EquityEvent
}

func (e *EquityEvents) Name() string { return "equity_events" }

func (e *EquityEvents) Description() string {
	if e.Label != "" {
		return e.Label
	}
	return fmt.Sprintf("Apply %d equity events", len(e.Events))
}

func (e *EquityEvents) Validate(domain.ScenarioInputs) error {
	if len(e.Events) == 0 {
		return NewTransformError(e.Name(), "validate", "no events", nil)
	}
	return nil
}

func (e *EquityEvents) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	adj, _ := calculation.EquityAdjustment(e.Events)
	return base.Add(adj), nil
}
