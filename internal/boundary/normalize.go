// Package boundary converts loosely-shaped transport payloads into typed
// domain entities. All "guess which shape the caller sent" tolerance lives
// here: nested or flat maps, snake_case or camelCase keys, numbers carried as
// strings, and null/NaN sentinels all normalize to safe zero values with a
// recorded warning. The pure calculators never see malformed input.
package boundary

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/itrgo/itrgo/internal/domain"
)

// Normalizer accumulates warnings while coercing one payload.
type Normalizer struct {
	warnings []string
}

// NewNormalizer creates a fresh normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Warnings lists every substitution made while normalizing.
func (n *Normalizer) Warnings() []string {
	return n.warnings
}

func (n *Normalizer) warnf(format string, args ...any) {
	n.warnings = append(n.warnings, fmt.Sprintf(format, args...))
}

// ParseJSON decodes a JSON payload into the generic map shape the normalizer
// consumes.
func ParseJSON(data []byte) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload JSON: %w", err)
	}
	return payload, nil
}

// get looks a field up under any of its accepted spellings.
func (n *Normalizer) get(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// section returns a nested map section, tolerating a flat payload by
// returning the parent itself so flat keys still resolve.
func (n *Normalizer) section(m map[string]any, keys ...string) (map[string]any, bool) {
	v, ok := n.get(m, keys...)
	if !ok {
		return m, false
	}
	nested, ok := v.(map[string]any)
	if !ok {
		n.warnf("field %s is not an object; ignoring", keys[0])
		return m, false
	}
	return nested, true
}

// Money coerces any boundary representation of an amount. Null, empty
// strings, and NaN/null sentinels fall back to zero with a warning; they are
// normal intermediate states, never fatal.
func (n *Normalizer) Money(field string, v any) domain.Money {
	switch value := v.(type) {
	case nil:
		return domain.Zero()
	case float64:
		return domain.FromFloat(value)
	case float32:
		return domain.FromFloat(float64(value))
	case int:
		return domain.FromInt(int64(value))
	case int64:
		return domain.FromInt(value)
	case uint64:
		return domain.FromInt(int64(value))
	case json.Number:
		parsed, err := domain.FromString(value.String())
		if err != nil {
			n.warnf("field %s: unparseable number %q, using zero", field, value.String())
			return domain.Zero()
		}
		return parsed
	case string:
		trimmed := strings.TrimSpace(value)
		lower := strings.ToLower(trimmed)
		if trimmed == "" || lower == "null" || lower == "nan" || lower == "none" {
			return domain.Zero()
		}
		parsed, err := domain.FromString(trimmed)
		if err != nil {
			n.warnf("field %s: unparseable amount %q, using zero", field, value)
			return domain.Zero()
		}
		return parsed
	default:
		n.warnf("field %s: unsupported amount type %T, using zero", field, v)
		return domain.Zero()
	}
}

func (n *Normalizer) moneyField(m map[string]any, keys ...string) domain.Money {
	v, ok := n.get(m, keys...)
	if !ok {
		return domain.Zero()
	}
	return n.Money(keys[0], v)
}

// Int coerces an integer field, falling back to zero.
func (n *Normalizer) Int(field string, v any) int {
	switch value := v.(type) {
	case nil:
		return 0
	case float64:
		return int(value)
	case int:
		return value
	case int64:
		return int(value)
	case json.Number:
		i, err := value.Int64()
		if err != nil {
			n.warnf("field %s: unparseable integer %q, using zero", field, value.String())
			return 0
		}
		return int(i)
	case string:
		parsed, err := domain.FromString(value)
		if err != nil {
			n.warnf("field %s: unparseable integer %q, using zero", field, value)
			return 0
		}
		return int(parsed.Decimal().IntPart())
	default:
		n.warnf("field %s: unsupported integer type %T, using zero", field, v)
		return 0
	}
}

func (n *Normalizer) intField(m map[string]any, keys ...string) int {
	v, ok := n.get(m, keys...)
	if !ok {
		return 0
	}
	return n.Int(keys[0], v)
}

// Rate coerces a decimal rate field, falling back to zero.
func (n *Normalizer) rateField(m map[string]any, keys ...string) decimal.Decimal {
	return n.moneyField(m, keys...).Decimal()
}

func (n *Normalizer) boolField(m map[string]any, keys ...string) bool {
	v, ok := n.get(m, keys...)
	if !ok {
		return false
	}
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return strings.EqualFold(strings.TrimSpace(value), "true")
	default:
		n.warnf("field %s: unsupported boolean type %T, using false", keys[0], v)
		return false
	}
}

func (n *Normalizer) stringField(m map[string]any, keys ...string) string {
	v, ok := n.get(m, keys...)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		n.warnf("field %s: expected string, got %T", keys[0], v)
		return ""
	}
	return strings.TrimSpace(s)
}

func (n *Normalizer) dateField(m map[string]any, keys ...string) time.Time {
	s := n.stringField(m, keys...)
	if s == "" {
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		n.warnf("field %s: unparseable date %q, ignoring", keys[0], s)
		return time.Time{}
	}
	return parsed
}
