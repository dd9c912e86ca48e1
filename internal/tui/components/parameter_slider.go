// Package components holds reusable TUI widgets.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/headroom/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider is an adjustable dollar amount bounded by Min and Max.
type ParameterSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider starting at zero.
func NewParameterSlider(label string, min, max, step int64) *ParameterSlider {
	return &ParameterSlider{
		Label: label,
		Value: decimal.Zero,
		Min:   decimal.NewFromInt(min),
		Max:   decimal.NewFromInt(max),
		Step:  decimal.NewFromInt(step),
		Width: 30,
	}
}

// WithDescription adds a description line
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves the value up by n steps, stopping at Max.
func (p *ParameterSlider) Increment(n int) {
	p.SetValue(p.Value.Add(p.Step.Mul(decimal.NewFromInt(int64(n)))))
}

// Decrement moves the value down by n steps, stopping at Min.
func (p *ParameterSlider) Decrement(n int) {
	p.SetValue(p.Value.Sub(p.Step.Mul(decimal.NewFromInt(int64(n)))))
}

// SetValue sets the value, clamping to the range.
func (p *ParameterSlider) SetValue(v decimal.Decimal) {
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, v))
}

// Fraction is the value's position within the range, from 0 to 1.
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	f, _ := p.Value.Sub(p.Min).Div(span).Float64()
	return f
}

// Render returns the styled slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(signedDollars(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderBar())

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description))
	}
	return content.String()
}

func (p *ParameterSlider) renderBar() string {
	pos := int(math.Round(float64(p.Width-1) * p.Fraction()))
	if pos < 0 {
		pos = 0
	}
	if pos > p.Width-1 {
		pos = p.Width - 1
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	bar.WriteString(thumbStyle.Render("●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-1-pos)))
	bar.WriteString("]")
	return bar.String()
}

func signedDollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return fmt.Sprintf("-$%s", d.Abs().StringFixed(0))
	}
	return fmt.Sprintf("+$%s", d.StringFixed(0))
}
