// Package transform provides composable what-if operations over salary
// package records. Each transform takes a record and produces a modified
// deep copy, so chained scenarios never alias the original.
package transform

import (
	"fmt"

	"github.com/itrgo/itrgo/internal/domain"
)

// RecordTransform is one what-if modification of a salary package record.
type RecordTransform interface {
	// Apply returns a modified deep copy of the base record.
	Apply(base *domain.SalaryPackageRecord) (*domain.SalaryPackageRecord, error)

	// Name returns a short identifier, e.g. "switch_regime".
	Name() string

	// Description returns a human-readable summary of the modification.
	Description() string

	// Validate checks the transform parameters against the base record
	// without applying it.
	Validate(base *domain.SalaryPackageRecord) error
}

// ApplyTransforms applies transforms in sequence, each one receiving the
// output of the previous. With no transforms it returns a deep copy.
func ApplyTransforms(base *domain.SalaryPackageRecord, transforms []RecordTransform) (*domain.SalaryPackageRecord, error) {
	if base == nil {
		return nil, fmt.Errorf("base record cannot be nil")
	}
	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}
