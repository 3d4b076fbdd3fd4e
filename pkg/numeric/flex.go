package numeric

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Flex is a decimal that tolerates sloppy serialized input. Persisted state
// written by older versions (and by hand) stores numbers variously as JSON
// numbers, quoted strings, empty strings or null; Flex coerces all of them
// on the way in and always marshals back out as a bare number.
type Flex struct {
	decimal.Decimal
}

// NewFlex wraps a decimal.
func NewFlex(d decimal.Decimal) Flex { return Flex{d} }

// FlexFromFloat wraps a float, coercing non-finite values to zero.
func FlexFromFloat(f float64) Flex { return Flex{CoerceFloat(f)} }

// FlexFromInt wraps an integer.
func FlexFromInt(n int64) Flex { return Flex{decimal.NewFromInt(n)} }

// UnmarshalJSON accepts a number, a quoted string, or null.
func (f *Flex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Decimal = CoerceString(s)
		return nil
	}
	f.Decimal = CoerceString(string(data))
	return nil
}

// MarshalJSON emits a bare number.
func (f Flex) MarshalJSON() ([]byte, error) {
	return []byte(f.Decimal.String()), nil
}

// UnmarshalYAML accepts scalar nodes of any flavor.
func (f *Flex) UnmarshalYAML(value *yaml.Node) error {
	f.Decimal = CoerceString(value.Value)
	return nil
}

// MarshalYAML emits a plain scalar.
func (f Flex) MarshalYAML() (interface{}, error) {
	return f.Decimal.String(), nil
}
