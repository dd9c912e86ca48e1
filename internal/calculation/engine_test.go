package calculation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	tables map[int]domain.BracketTable
	calls  int
}

func (f *fakeProvider) BracketTable(year int, status domain.FilingStatus) (domain.BracketTable, error) {
	f.calls++
	t, ok := f.tables[year]
	if !ok || t.FilingStatus != status {
		return domain.BracketTable{}, fmt.Errorf("%w: %d/%s", domain.ErrTablesUnavailable, year, status)
	}
	return t, nil
}

type fakeThresholds struct {
	byYear map[int]domain.TaxThresholds
}

func (f fakeThresholds) Lookup(year int, status domain.FilingStatus) (domain.TaxThresholds, bool) {
	t, ok := f.byYear[year]
	return t, ok && t.FilingStatus == status
}

type fakeLedger struct {
	summaries map[int]domain.IncomeSummary
}

func (f fakeLedger) Summary(_ context.Context, year int) (domain.IncomeSummary, error) {
	s, ok := f.summaries[year]
	if !ok {
		return domain.IncomeSummary{}, fmt.Errorf("%w %d", domain.ErrMissingProfile, year)
	}
	return s, nil
}

// TestLogger records messages for assertions.
type TestLogger struct {
	messages []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.add("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.add("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.add("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.add("ERROR", format, args...) }

func (l *TestLogger) add(level, format string, args ...any) {
	l.messages = append(l.messages, level+": "+fmt.Sprintf(format, args...))
}

func newTestEngine() (*Engine, *fakeProvider) {
	provider := &fakeProvider{tables: map[int]domain.BracketTable{2024: exampleTable()}}
	thresholds := fakeThresholds{byYear: map[int]domain.TaxThresholds{2024: exampleThresholds()}}
	return NewEngine(provider, thresholds), provider
}

func TestEngine_SetLogger(t *testing.T) {
	engine, _ := newTestEngine()
	assert.IsType(t, NopLogger{}, engine.Logger)

	custom := &TestLogger{}
	engine.SetLogger(custom)
	assert.Equal(t, custom, engine.Logger)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "nil should install the no-op logger")
}

func TestEngine_Headroom(t *testing.T) {
	engine, _ := newTestEngine()

	result, err := engine.Headroom(summary(50000), domain.ScenarioInputs{})
	require.NoError(t, err)
	assert.True(t, result.DollarsToNextBracket.Decimal.Equal(dec(9325)))
}

func TestEngine_Headroom_MissingProfile(t *testing.T) {
	engine, provider := newTestEngine()
	income := summary(50000)
	income.FilingStatus = ""

	_, err := engine.Headroom(income, domain.ScenarioInputs{})
	assert.True(t, errors.Is(err, domain.ErrMissingProfile))
	assert.Zero(t, provider.calls, "no table lookup without a profile")
}

func TestEngine_Headroom_TablesUnavailable(t *testing.T) {
	engine, _ := newTestEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	income := summary(50000)
	income.Year = 2031

	_, err := engine.Headroom(income, domain.ScenarioInputs{})
	assert.True(t, errors.Is(err, domain.ErrTablesUnavailable))
	assert.NotEmpty(t, logger.messages)
}

func TestEngine_Insights(t *testing.T) {
	engine, _ := newTestEngine()
	assert.Len(t, engine.Insights(summary(150000), domain.ScenarioInputs{}), 3)

	missingYear := summary(150000)
	missingYear.Year = 1999
	assert.Empty(t, engine.Insights(missingYear, domain.ScenarioInputs{}))

	noProfile := summary(150000)
	noProfile.FilingStatus = ""
	assert.Empty(t, engine.Insights(noProfile, domain.ScenarioInputs{}))

	engine.Thresholds = nil
	assert.Empty(t, engine.Insights(summary(150000), domain.ScenarioInputs{}))
}

func TestEngine_Report(t *testing.T) {
	engine, _ := newTestEngine()

	report, err := engine.Report(summary(50000), domain.NewScenarioInputs(10000, 0))
	require.NoError(t, err)

	assert.Equal(t, 2024, report.ThresholdsYear)
	assert.True(t, report.Comparison.Baseline.BracketRate.Equal(exampleTable().Brackets[1].Rate))
	assert.True(t, report.Comparison.Scenario.IsTopBracket())
	assert.Len(t, report.Insights, 3)
	require.Len(t, report.Markers, 5)
	for _, m := range report.Markers {
		assert.True(t, m.TaxableEquivalent.Equal(m.Limit.Sub(dec(14600))), m.Key)
	}
}

func TestEngine_SimulateEquity(t *testing.T) {
	engine, _ := newTestEngine()
	events := []domain.EquityEvent{{Kind: domain.EventRSUVest, Shares: dec(80), FairMarketValue: dec(125)}}

	report, err := engine.SimulateEquity(summary(50000), domain.ScenarioInputs{}, events)
	require.NoError(t, err)
	require.Len(t, report.Equity, 1)
	assert.True(t, report.Comparison.Adjustment.AdditionalOrdinaryIncome.Equal(dec(10000)))
	assert.True(t, report.Comparison.Scenario.IsTopBracket())
}

func TestEngine_ReportForYear(t *testing.T) {
	engine, _ := newTestEngine()
	ledger := fakeLedger{summaries: map[int]domain.IncomeSummary{2024: summary(60000)}}

	report, err := engine.ReportForYear(context.Background(), ledger, 2024, domain.ScenarioInputs{})
	require.NoError(t, err)
	assert.True(t, report.Comparison.Baseline.TaxableIncome.Equal(dec(45400)))

	_, err = engine.ReportForYear(context.Background(), ledger, 2023, domain.ScenarioInputs{})
	assert.True(t, errors.Is(err, domain.ErrMissingProfile))
}
