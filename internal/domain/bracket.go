package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// TaxBracket is a contiguous taxable-income range taxed at one marginal rate.
// Upper is invalid for the top bracket.
type TaxBracket struct {
	Lower decimal.Decimal     `json:"lower"`
	Upper decimal.NullDecimal `json:"upper"`
	Rate  decimal.Decimal     `json:"rate"`
}

// IsTop reports whether the bracket has no upper bound.
func (b TaxBracket) IsTop() bool {
	return !b.Upper.Valid
}

// BracketTable is the ordinary-income bracket schedule for one year and
// filing status. StandardDeduction is the default deduction published with
// the table; the profile's own deduction is what calculations use.
type BracketTable struct {
	Year              int             `json:"year"`
	FilingStatus      FilingStatus    `json:"filingStatus"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	Brackets          []TaxBracket    `json:"brackets"`
}

// Sorted returns a copy of the brackets ordered by lower bound.
func (t BracketTable) Sorted() []TaxBracket {
	sorted := make([]TaxBracket, len(t.Brackets))
	copy(sorted, t.Brackets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Lower.LessThan(sorted[j].Lower)
	})
	return sorted
}

// Validate checks that the brackets are non-empty, contiguous, have unique
// lower bounds, rates in [0,1), and exactly one unbounded top bracket.
func (t BracketTable) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("bracket table %d/%s has no brackets", t.Year, t.FilingStatus)
	}
	sorted := t.Sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Lower.Equal(sorted[i-1].Lower) {
			return fmt.Errorf("bracket %d: duplicate lower bound %s", i, sorted[i].Lower)
		}
	}
	one := decimal.NewFromInt(1)
	tops := 0
	for i, b := range sorted {
		if b.Lower.IsNegative() {
			return fmt.Errorf("bracket %d: lower bound cannot be negative", i)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("bracket %d: rate %s must be in [0, 1)", i, b.Rate)
		}
		if b.IsTop() {
			tops++
			if i != len(sorted)-1 {
				return fmt.Errorf("bracket %d: unbounded bracket must be the highest", i)
			}
			continue
		}
		if b.Upper.Decimal.LessThanOrEqual(b.Lower) {
			return fmt.Errorf("bracket %d: upper bound %s must exceed lower bound %s", i, b.Upper.Decimal, b.Lower)
		}
		if i+1 < len(sorted) && !b.Upper.Decimal.Equal(sorted[i+1].Lower) {
			return fmt.Errorf("bracket %d: upper bound %s does not meet next lower bound %s", i, b.Upper.Decimal, sorted[i+1].Lower)
		}
	}
	if tops != 1 {
		return fmt.Errorf("bracket table %d/%s must have exactly one unbounded bracket, found %d", t.Year, t.FilingStatus, tops)
	}
	return nil
}

// HeadroomResult is where taxable income sits in a bracket table.
// DollarsToNextBracket is invalid exactly when BracketUpper is.
type HeadroomResult struct {
	TaxableIncome        decimal.Decimal     `json:"taxableIncome"`
	BracketRate          decimal.Decimal     `json:"bracketRate"`
	BracketLower         decimal.Decimal     `json:"bracketLower"`
	BracketUpper         decimal.NullDecimal `json:"bracketUpper"`
	DollarsToNextBracket decimal.NullDecimal `json:"dollarsToNextBracket"`
}

// IsTopBracket reports whether no higher bracket exists.
func (r HeadroomResult) IsTopBracket() bool {
	return !r.BracketUpper.Valid
}
