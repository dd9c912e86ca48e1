package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/tui/components"
)

const (
	sliderOrdinary = iota
	sliderLongTerm
	sliderCount
)

// Model is the scenario explorer: two adjustment sliders over one year's
// ledger summary.
type Model struct {
	engine *calculation.Engine
	source calculation.LedgerSource

	income  domain.IncomeSummary
	sliders [sliderCount]components.ParameterSlider
	focus   int

	// last computed adjustment and its report
	inputs       domain.ScenarioInputs
	computed     bool
	report       *calculation.Report
	err          error
	computations int

	editingYear bool
	yearInput   textinput.Model

	gauge components.BracketGauge
	keys  keyMap

	width  int
	height int
}

// NewModel creates a model for income. source may be nil, in which case the
// year cannot be switched.
func NewModel(engine *calculation.Engine, source calculation.LedgerSource, income domain.IncomeSummary) Model {
	ordinary := components.NewParameterSlider("Additional ordinary income", -50000, 250000, 1000).
		WithDescription("wages, bonuses, option exercises, Roth conversions").
		SetFocused(true)
	longTerm := components.NewParameterSlider("Additional long-term gains", -50000, 250000, 1000).
		WithDescription("share sales held over a year")

	ti := textinput.New()
	ti.Placeholder = "2025"
	ti.CharLimit = 4
	ti.Width = 6

	m := Model{
		engine:    engine,
		source:    source,
		income:    income,
		sliders:   [sliderCount]components.ParameterSlider{*ordinary, *longTerm},
		yearInput: ti,
		gauge:     components.NewBracketGauge(40),
		keys:      defaultKeyMap(),
		width:     80,
		height:    24,
	}
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Inputs is the adjustment currently selected on the sliders.
func (m Model) Inputs() domain.ScenarioInputs {
	return domain.ScenarioInputs{
		AdditionalOrdinaryIncome:       m.sliders[sliderOrdinary].Value,
		AdditionalLongTermCapitalGains: m.sliders[sliderLongTerm].Value,
	}
}

// Report returns the latest report, or nil with the error that prevented it.
func (m Model) Report() (*calculation.Report, error) {
	return m.report, m.err
}

// recompute rebuilds the report when the selected adjustment differs from
// the last one computed. It reports whether a computation ran.
func (m *Model) recompute() bool {
	inputs := m.Inputs()
	if m.computed && inputs.Equal(m.inputs) {
		return false
	}
	m.inputs = inputs
	m.computed = true
	m.computations++
	m.report, m.err = m.engine.Report(m.income, inputs)
	return true
}

func loadSummaryCmd(source calculation.LedgerSource, year int) tea.Cmd {
	return func() tea.Msg {
		summary, err := source.Summary(context.Background(), year)
		if err != nil {
			summary.Year = year
		}
		return SummaryLoadedMsg{Summary: summary, Err: err}
	}
}
