package transform

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/itrgo/itrgo/internal/domain"
)

// Template is a named, pre-parameterized transform chain for common what-if
// questions.
type Template struct {
	Name        string
	Description string
	Transforms  []RecordTransform
}

// Registry holds templates by name.
type Registry struct {
	templates map[string]Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds or replaces a template.
func (r *Registry) Register(t Template) {
	r.templates[t.Name] = t
}

// Get looks a template up by name.
func (r *Registry) Get(name string) (Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Names lists registered template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltInTemplates returns the standard what-if templates for a record. The
// regime switch targets whichever regime the record is not already on; the
// 80C top-up fills the gap to the ceiling from the active rules.
func BuiltInTemplates(base *domain.SalaryPackageRecord, rules *domain.TaxYearRules) *Registry {
	registry := NewRegistry()

	registry.Register(Template{
		Name:        "switch_regime",
		Description: "Same package under the other tax regime",
		Transforms:  []RecordTransform{SwitchRegime{Target: base.Regime.Other()}},
	})
	registry.Register(Template{
		Name:        "mid_year_raise_10",
		Description: "A 10% raise landing at the midpoint of the tax year",
		Transforms: []RecordTransform{SalaryRevision{
			EffectiveFrom: base.TaxYear.Start.AddDate(0, 6, 0),
			RaisePercent:  decimal.NewFromInt(10),
		}},
	})
	registry.Register(Template{
		Name:        "max_80c",
		Description: "Top up section 80C investment to the statutory ceiling",
		Transforms: []RecordTransform{TopUp80C{
			Amount: rules.Deductions.Section80CCeiling.SubFloor(base.Deductions.Section80C.ContributionSum()),
		}},
	})
	return registry
}
