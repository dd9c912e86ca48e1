package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

// BracketTableProvider supplies bracket tables. Implementations return an
// error wrapping domain.ErrTablesUnavailable when a table is missing.
type BracketTableProvider interface {
	BracketTable(year int, status domain.FilingStatus) (domain.BracketTable, error)
}

// ThresholdSource supplies secondary thresholds, applying its own year
// fallback. ok is false when nothing usable exists.
type ThresholdSource interface {
	Lookup(year int, status domain.FilingStatus) (domain.TaxThresholds, bool)
}

// LedgerSource supplies the read-only income summary for a year. It returns
// an error wrapping domain.ErrMissingProfile when the year has no profile.
type LedgerSource interface {
	Summary(ctx context.Context, year int) (domain.IncomeSummary, error)
}

// ThresholdMarker positions a gross-income threshold on the taxable-income
// scale.
type ThresholdMarker struct {
	Key               string               `json:"key"`
	Label             string               `json:"label"`
	Kind              domain.ThresholdKind `json:"kind"`
	Limit             decimal.Decimal      `json:"limit"`
	TaxableEquivalent decimal.Decimal      `json:"taxableEquivalent"`
}

// Report is everything a renderer needs for one year and scenario.
type Report struct {
	Summary        domain.IncomeSummary      `json:"summary"`
	Comparison     ScenarioComparison        `json:"comparison"`
	Insights       []domain.ThresholdInsight `json:"insights"`
	ThresholdsYear int                       `json:"thresholdsYear,omitempty"`
	Markers        []ThresholdMarker         `json:"markers,omitempty"`
	Equity         []EquityImpact            `json:"equity,omitempty"`
}

// Engine wires the pure calculators to their table sources.
type Engine struct {
	Brackets   BracketTableProvider
	Thresholds ThresholdSource
	Logger     Logger
}

// NewEngine creates an engine over the given sources.
func NewEngine(brackets BracketTableProvider, thresholds ThresholdSource) *Engine {
	return &Engine{Brackets: brackets, Thresholds: thresholds, Logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// table resolves the bracket table for a summary.
func (e *Engine) table(income domain.IncomeSummary) (domain.BracketTable, error) {
	if !income.HasProfile() {
		return domain.BracketTable{}, fmt.Errorf("%w %d", domain.ErrMissingProfile, income.Year)
	}
	table, err := e.Brackets.BracketTable(income.Year, income.FilingStatus)
	if err != nil {
		e.Logger.Warnf("bracket table lookup failed for %d/%s: %v", income.Year, income.FilingStatus, err)
		return domain.BracketTable{}, err
	}
	return table, nil
}

// Headroom computes bracket headroom for the summary under the adjustment.
func (e *Engine) Headroom(income domain.IncomeSummary, adjustment domain.ScenarioInputs) (domain.HeadroomResult, error) {
	table, err := e.table(income)
	if err != nil {
		return domain.HeadroomResult{}, err
	}
	result, err := ComputeHeadroom(income, adjustment, table)
	if err != nil {
		return domain.HeadroomResult{}, err
	}
	e.Logger.Debugf("headroom %d/%s: taxable=%s rate=%s", income.Year, income.FilingStatus, result.TaxableIncome, result.BracketRate)
	return result, nil
}

// Insights evaluates secondary thresholds. It returns an empty slice when the
// summary has no profile or no dataset covers the year.
func (e *Engine) Insights(income domain.IncomeSummary, adjustment domain.ScenarioInputs) []domain.ThresholdInsight {
	thresholds, ok := e.thresholds(income)
	if !ok {
		return []domain.ThresholdInsight{}
	}
	return EvaluateInsights(income, adjustment, thresholds)
}

func (e *Engine) thresholds(income domain.IncomeSummary) (domain.TaxThresholds, bool) {
	if !income.HasProfile() || e.Thresholds == nil {
		return domain.TaxThresholds{}, false
	}
	thresholds, ok := e.Thresholds.Lookup(income.Year, income.FilingStatus)
	if !ok {
		e.Logger.Infof("no threshold data for %d/%s", income.Year, income.FilingStatus)
		return domain.TaxThresholds{}, false
	}
	if thresholds.Year != income.Year {
		e.Logger.Debugf("thresholds for %d fell back to %d", income.Year, thresholds.Year)
	}
	return thresholds, true
}

// Report builds the baseline/scenario comparison, ranked insights and
// taxable-income markers for one summary.
func (e *Engine) Report(income domain.IncomeSummary, adjustment domain.ScenarioInputs) (*Report, error) {
	table, err := e.table(income)
	if err != nil {
		return nil, err
	}
	comparison, err := CompareScenario(income, adjustment, table)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Summary:    income,
		Comparison: comparison,
		Insights:   []domain.ThresholdInsight{},
	}
	if thresholds, ok := e.thresholds(income); ok {
		report.ThresholdsYear = thresholds.Year
		report.Insights = EvaluateInsights(income, adjustment, thresholds)
		report.Markers = markersFor(thresholds, income.StandardDeduction)
	}
	return report, nil
}

// SimulateEquity reports the effect of the equity events stacked on any
// additional adjustment.
func (e *Engine) SimulateEquity(income domain.IncomeSummary, base domain.ScenarioInputs, events []domain.EquityEvent) (*Report, error) {
	equityAdj, impacts := EquityAdjustment(events)
	report, err := e.Report(income, base.Add(equityAdj))
	if err != nil {
		return nil, err
	}
	report.Equity = impacts
	return report, nil
}

// ReportForYear loads the summary from source and builds its report.
func (e *Engine) ReportForYear(ctx context.Context, source LedgerSource, year int, adjustment domain.ScenarioInputs) (*Report, error) {
	income, err := source.Summary(ctx, year)
	if err != nil {
		return nil, err
	}
	return e.Report(income, adjustment)
}

func markersFor(t domain.TaxThresholds, standardDeduction decimal.Decimal) []ThresholdMarker {
	details := make([]domain.ThresholdDetail, 0, len(t.MeansTestedTiers)+2)
	details = append(details, t.MeansTestedTiers...)
	details = append(details, t.Surtax, t.QBIPhaseIn)

	markers := make([]ThresholdMarker, 0, len(details))
	for _, d := range details {
		if d.Key == "" {
			continue
		}
		markers = append(markers, ThresholdMarker{
			Key:               d.Key,
			Label:             d.Label,
			Kind:              d.Kind,
			Limit:             d.Limit,
			TaxableEquivalent: TaxableEquivalent(d, standardDeduction),
		})
	}
	return markers
}
