package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Money is an immutable rupee amount backed by fixed-point decimal arithmetic.
// Floats exist only at the I/O boundary; all internal math is exact. Every
// operation returns a new value.
type Money struct {
	amount decimal.Decimal
}

// Zero is the distinguished zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// FromDecimal wraps a decimal as Money.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// FromFloat converts a boundary float into Money.
func FromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// FromInt converts a whole-rupee amount into Money.
func FromInt(n int64) Money {
	return Money{amount: decimal.NewFromInt(n)}
}

// FromString parses a numeric string into Money. Construction from a
// non-numeric value fails; it never produces NaN or Inf.
func FromString(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Zero(), fmt.Errorf("cannot parse money from empty string")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Zero(), fmt.Errorf("cannot parse money from %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other. The result may be negative; callers that need a
// floor at zero use SubFloor.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// SubFloor returns m - other clamped at zero.
func (m Money) SubFloor(other Money) Money {
	d := m.amount.Sub(other.amount)
	if d.IsNegative() {
		return Zero()
	}
	return Money{amount: d}
}

// Mul scales the amount by a decimal factor (rate, fraction of a year, etc.).
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// MulInt scales the amount by an integer count.
func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// Div divides the amount by a decimal divisor.
func (m Money) Div(divisor decimal.Decimal) Money {
	return Money{amount: m.amount.Div(divisor)}
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if m.LessThanOrEqual(other) {
		return m
	}
	return other
}

// Max returns the larger of m and other.
func (m Money) Max(other Money) Money {
	if m.GreaterThanOrEqual(other) {
		return m
	}
	return other
}

// ClampZero floors a negative amount at zero.
func (m Money) ClampZero() Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

// Round rounds to the given number of decimal places, half away from zero.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// Decimal exposes the underlying decimal for rate math at call sites that
// need it (never for storage).
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 converts to a boundary float. Output edge only.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON emits the amount as a plain JSON number with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = Zero()
		return nil
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) MarshalYAML() (interface{}, error) {
	return m.amount.String(), nil
}

func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" || value.Value == "" {
		*m = Zero()
		return nil
	}
	parsed, err := FromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = parsed
	return nil
}

// intToDecimal is shorthand for scaling by whole-number counts.
func intToDecimal(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// SumMoney adds a series of amounts.
func SumMoney(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
