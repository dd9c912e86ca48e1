package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/tables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedger map[int]domain.IncomeSummary

func (s stubLedger) Summary(_ context.Context, year int) (domain.IncomeSummary, error) {
	if sum, ok := s[year]; ok {
		return sum, nil
	}
	return domain.IncomeSummary{Year: year}, domain.ErrMissingProfile
}

func newTestModel(t *testing.T, source calculation.LedgerSource) Model {
	t.Helper()
	thresholds, err := tables.LoadDefaultThresholds()
	require.NoError(t, err)
	engine := calculation.NewEngine(tables.NewDefaultProvider(), thresholds)
	return NewModel(engine, source, domain.NewIncomeSummary(2024, domain.Single, 14600, 100000))
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	keyRight      = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft       = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown       = tea.KeyMsg{Type: tea.KeyDown}
	keyShiftRight = tea.KeyMsg{Type: tea.KeyShiftRight}
	keyEnter      = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc        = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_ComputesBaseline(t *testing.T) {
	m := newTestModel(t, nil)

	report, err := m.Report()
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, m.Inputs().IsZero())
	assert.Equal(t, 1, m.computations)
	assert.True(t, report.Comparison.Scenario.TaxableIncome.Equal(decimal.NewFromInt(85400)))
}

func TestModel_AdjustOrdinary(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyShiftRight, keyShiftRight, keyRight)

	assert.True(t, m.Inputs().AdditionalOrdinaryIncome.Equal(decimal.NewFromInt(21000)))
	assert.True(t, m.Inputs().AdditionalLongTermCapitalGains.IsZero())

	report, err := m.Report()
	require.NoError(t, err)
	assert.True(t, report.Comparison.Scenario.TaxableIncome.Equal(decimal.NewFromInt(106400)))
	assert.True(t, report.Comparison.CrossesBracket())
	assert.Equal(t, 4, m.computations)
}

func TestModel_FocusMovesToLongTermGains(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyDown, keyRight)

	assert.True(t, m.Inputs().AdditionalOrdinaryIncome.IsZero())
	assert.True(t, m.Inputs().AdditionalLongTermCapitalGains.Equal(decimal.NewFromInt(1000)))
	assert.True(t, m.sliders[sliderLongTerm].IsFocused)
	assert.False(t, m.sliders[sliderOrdinary].IsFocused)
}

func TestModel_RecomputesOnlyOnChange(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.computations

	m = press(t, m, keyRight, keyLeft)
	assert.Equal(t, before+2, m.computations, "each distinct adjustment is computed")

	m = press(t, m, keyDown, keyDown)
	assert.Equal(t, before+2, m.computations, "focus changes do not recompute")

	m = press(t, m, runeKey("0"))
	assert.Equal(t, before+2, m.computations, "resetting a zero slider changes nothing")
}

func TestModel_SliderClampsAtRange(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 40; i++ {
		m = press(t, m, keyShiftRight)
	}
	assert.True(t, m.Inputs().AdditionalOrdinaryIncome.Equal(decimal.NewFromInt(250000)))
}

func TestModel_ResetAll(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyRight, keyDown, keyRight, runeKey("r"))
	assert.True(t, m.Inputs().IsZero())
}

func TestModel_YearSwitch(t *testing.T) {
	ledger := stubLedger{
		2025: domain.NewIncomeSummary(2025, domain.MarriedFilingJointly, 31500, 240000),
	}
	m := newTestModel(t, ledger)

	m = press(t, m, runeKey("y"))
	require.True(t, m.editingYear)
	m.yearInput.SetValue("2025")

	next, cmd := m.Update(keyEnter)
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.False(t, m.editingYear)

	next, _ = m.Update(cmd())
	m = next.(Model)
	report, err := m.Report()
	require.NoError(t, err)
	assert.Equal(t, 2025, report.Summary.Year)
	assert.Equal(t, domain.MarriedFilingJointly, report.Summary.FilingStatus)
	assert.Contains(t, m.View(), "Married Filing Jointly")
}

func TestModel_YearSwitchMissingProfile(t *testing.T) {
	m := newTestModel(t, stubLedger{})
	m = press(t, m, runeKey("y"))
	m.yearInput.SetValue("2030")

	_, cmd := m.Update(keyEnter)
	next, _ := m.Update(cmd())
	m = next.(Model)

	_, err := m.Report()
	assert.True(t, errors.Is(err, domain.ErrMissingProfile))
	assert.Contains(t, m.View(), "No filing profile for 2030")
}

func TestModel_YearEditCancel(t *testing.T) {
	m := newTestModel(t, stubLedger{})
	m = press(t, m, runeKey("y"), keyEsc)
	assert.False(t, m.editingYear)
	assert.Equal(t, 2024, m.income.Year)
}

func TestModel_YearDisabledWithoutSource(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runeKey("y"))
	assert.False(t, m.editingYear)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()

	assert.Contains(t, view, "HEADROOM")
	assert.Contains(t, view, "Single")
	assert.Contains(t, view, "Taxable income")
	assert.Contains(t, view, "Additional ordinary income")
	assert.Contains(t, view, "IRMAA tier 1")
}
