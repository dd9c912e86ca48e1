package transform

import (
	"fmt"

	"github.com/rgehrsitz/headroom/internal/domain"
)

// ScenarioTransform is a composable change to a scenario adjustment. Applying
// a transform never mutates its input.
type ScenarioTransform interface {
	// Apply returns the adjustment with this transform applied.
	Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error)

	// Name returns the registry identifier (e.g. "roth_conversion").
	Name() string

	// Description returns a human-readable summary.
	Description() string

	// Validate checks the parameters without applying.
	Validate(base domain.ScenarioInputs) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base domain.ScenarioInputs, transforms []ScenarioTransform) (domain.ScenarioInputs, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return domain.ScenarioInputs{}, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(name, operation, reason string, err error) *TransformError {
	return &TransformError{TransformName: name, Operation: operation, Reason: reason, Err: err}
}
