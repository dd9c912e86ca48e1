package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, as used by
// the --transform flag.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a registry with the built-in transforms.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{factories: make(map[string]TransformFactory)}

	registry.Register("add_ordinary", amountFactory("add_ordinary", true, func(d decimal.Decimal) ScenarioTransform {
		return &AddOrdinaryIncome{Amount: d}
	}))
	registry.Register("add_ltcg", amountFactory("add_ltcg", true, func(d decimal.Decimal) ScenarioTransform {
		return &AddLongTermGains{Amount: d}
	}))
	registry.Register("roth_conversion", amountFactory("roth_conversion", false, func(d decimal.Decimal) ScenarioTransform {
		return &RothConversion{Amount: d}
	}))
	registry.Register("harvest_gains", amountFactory("harvest_gains", false, func(d decimal.Decimal) ScenarioTransform {
		return &HarvestGains{Amount: d}
	}))
	registry.Register("defer_income", amountFactory("defer_income", false, func(d decimal.Decimal) ScenarioTransform {
		return &DeferIncome{Amount: d}
	}))

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the registered transform names, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value", for example
// "roth_conversion:amount=25000". A bare number is shorthand for amount.
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				if len(params) == 0 && !strings.Contains(paramsStr, ",") {
					params["amount"] = strings.TrimSpace(paramPair)
					continue
				}
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func amountFactory(name string, allowNegative bool, build func(decimal.Decimal) ScenarioTransform) TransformFactory {
	return func(params map[string]string) (ScenarioTransform, error) {
		raw, ok := params["amount"]
		if !ok {
			return nil, fmt.Errorf("%s requires 'amount' parameter", name)
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(raw, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid amount value: %w", err)
		}
		if !allowNegative && amount.IsNegative() {
			return nil, fmt.Errorf("%s amount must not be negative", name)
		}
		return build(amount), nil
	}
}
