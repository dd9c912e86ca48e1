package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/headroom/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages named scenario templates.
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms.
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register adds a template to the registry.
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive).
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted.
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates returns the common planning moves.
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, k := range []int64{10, 25, 50} {
		amount := decimal.NewFromInt(k * 1000)
		suffix := decimal.NewFromInt(k).String() + "k"

		roth := &RothConversion{Amount: amount}
		registry.Register(Template{
			Name:        "roth_" + suffix,
			Description: roth.Description(),
			Transforms:  []ScenarioTransform{roth},
		})

		harvest := &HarvestGains{Amount: amount}
		registry.Register(Template{
			Name:        "harvest_" + suffix,
			Description: harvest.Description(),
			Transforms:  []ScenarioTransform{harvest},
		})
	}

	registry.Register(Template{
		Name:        "defer_10k",
		Description: "Defer $10000 of ordinary income",
		Transforms:  []ScenarioTransform{&DeferIncome{Amount: decimal.NewFromInt(10000)}},
	})

	registry.Register(Template{
		Name:        "roth_and_harvest_25k",
		Description: "Convert $25000 to Roth and harvest $25000 of long-term gains",
		Transforms: []ScenarioTransform{
			&RothConversion{Amount: decimal.NewFromInt(25000)},
			&HarvestGains{Amount: decimal.NewFromInt(25000)},
		},
	})

	return registry
}

// ApplyTemplate applies a template's transforms to base.
func ApplyTemplate(base domain.ScenarioInputs, t Template) (domain.ScenarioInputs, error) {
	return ApplyTransforms(base, t.Transforms)
}
