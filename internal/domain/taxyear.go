package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TaxYear is an Indian fiscal year, 1 April through 31 March, labelled like
// "2025-26".
type TaxYear struct {
	Label string    `yaml:"label" json:"label"`
	Start time.Time `yaml:"start" json:"start"`
	End   time.Time `yaml:"end" json:"end"`
}

// ParseTaxYear parses a "YYYY-YY" label into a TaxYear.
func ParseTaxYear(label string) (TaxYear, error) {
	parts := strings.Split(strings.TrimSpace(label), "-")
	if len(parts) != 2 {
		return TaxYear{}, fmt.Errorf("invalid tax year %q (want YYYY-YY)", label)
	}
	startYear, err := strconv.Atoi(parts[0])
	if err != nil || startYear < 1900 || startYear > 2200 {
		return TaxYear{}, fmt.Errorf("invalid tax year %q (want YYYY-YY)", label)
	}
	endPart, err := strconv.Atoi(parts[1])
	if err != nil || endPart != (startYear+1)%100 {
		return TaxYear{}, fmt.Errorf("tax year %q does not end the year after it starts", label)
	}
	return TaxYear{
		Label: fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100),
		Start: time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// MustTaxYear is ParseTaxYear for compile-time-known labels in tests and
// built-in defaults.
func MustTaxYear(label string) TaxYear {
	ty, err := ParseTaxYear(label)
	if err != nil {
		panic(err)
	}
	return ty
}

// Days returns the number of days in the fiscal year.
func (ty TaxYear) Days() int {
	return int(ty.End.Sub(ty.Start).Hours()/24) + 1
}

func (ty TaxYear) String() string {
	return ty.Label
}

func (ty TaxYear) IsZero() bool {
	return ty.Label == ""
}

func (ty TaxYear) MarshalYAML() (interface{}, error) {
	return ty.Label, nil
}

func (ty *TaxYear) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTaxYear(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*ty = parsed
	return nil
}
