package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/tui/tuistyles"
)

// BracketGauge shows how far taxable income sits through its bracket.
type BracketGauge struct {
	bar progress.Model
}

// NewBracketGauge creates a gauge of the given width.
func NewBracketGauge(width int) BracketGauge {
	return BracketGauge{bar: progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)}
}

// Fill is the share of the bracket already used. The top bracket is full.
func Fill(r domain.HeadroomResult) float64 {
	if r.IsTopBracket() {
		return 1
	}
	span := r.BracketUpper.Decimal.Sub(r.BracketLower)
	if !span.IsPositive() {
		return 1
	}
	f, _ := r.TaxableIncome.Sub(r.BracketLower).Div(span).Float64()
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// View renders the bar with the bracket's bounds.
func (g BracketGauge) View(r domain.HeadroomResult) string {
	upper := "∞"
	if !r.IsTopBracket() {
		upper = "$" + r.BracketUpper.Decimal.StringFixed(0)
	}
	bounds := tuistyles.MetricLabelStyle.Render(fmt.Sprintf("$%s … %s", r.BracketLower.StringFixed(0), upper))
	return g.bar.ViewAs(Fill(r)) + "\n" + bounds
}
