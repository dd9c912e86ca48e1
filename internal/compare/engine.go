package compare

import (
	"fmt"

	"github.com/rgehrsitz/headroom/internal/calculation"
	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/rgehrsitz/headroom/internal/transform"
)

// Scenario is a named sequence of transforms applied on top of the base
// adjustment.
type Scenario struct {
	Name        string
	Description string
	Transforms  []transform.ScenarioTransform
}

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the base adjustment
	Templates        []string // Built-in template names
	Transforms       []string // Ad-hoc transform specs, one scenario each
}

// Compare resolves the options into scenarios and compares them against
// the base adjustment.
func (ce *CompareEngine) Compare(income domain.IncomeSummary, base domain.ScenarioInputs, options CompareOptions) (*ComparisonSet, error) {
	scenarios := make([]Scenario, 0, len(options.Templates)+len(options.Transforms))

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		scenarios = append(scenarios, Scenario{Name: tmpl.Name, Description: tmpl.Description, Transforms: tmpl.Transforms})
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, Scenario{Name: spec, Description: t.Description(), Transforms: []transform.ScenarioTransform{t}})
	}

	name := options.BaseScenarioName
	if name == "" {
		name = "base"
	}
	return ce.CompareScenarios(income, name, base, scenarios)
}

// CompareScenarios compares explicit scenarios against the base adjustment.
func (ce *CompareEngine) CompareScenarios(income domain.IncomeSummary, baseName string, base domain.ScenarioInputs, scenarios []Scenario) (*ComparisonSet, error) {
	baseResult, _, err := ce.evaluate(income, baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult.Description = "Current ledger"
	if !base.IsZero() {
		baseResult.Description = "Current ledger with adjustment"
	}

	alternatives := []ComparisonResult{}
	for _, sc := range scenarios {
		adjustment, err := transform.ApplyTransforms(base, sc.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply scenario %s: %w", sc.Name, err)
		}

		altResult, insights, err := ce.evaluate(income, sc.Name, adjustment)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", sc.Name, err)
		}
		altResult.Description = sc.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult, insights)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		Year:               income.Year,
		FilingStatus:       income.FilingStatus,
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) evaluate(income domain.IncomeSummary, name string, adjustment domain.ScenarioInputs) (ComparisonResult, []domain.ThresholdInsight, error) {
	headroom, err := ce.CalcEngine.Headroom(income, adjustment)
	if err != nil {
		return ComparisonResult{}, nil, err
	}
	insights := ce.CalcEngine.Insights(income, adjustment)
	return ce.MetricsCalculator.CalculateMetrics(name, adjustment, headroom, insights), insights, nil
}
