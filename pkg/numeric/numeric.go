// Package numeric provides lenient numeric coercion for user-editable
// fields. Every value a user can type passes through here before it is used
// in arithmetic, so downstream math always operates on finite decimals and
// blank or invalid input counts as zero rather than erroring.
package numeric

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceString parses s as a decimal number. Blank strings, unparsable
// strings, NaN and infinities all coerce to zero.
func CoerceString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	// decimal rejects forms strconv accepts, like "inf" and hex floats;
	// fall back to float parsing so those still coerce instead of erroring.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// CoerceFloat converts f to a decimal, treating NaN and infinities as zero.
func CoerceFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Coerce normalizes an arbitrary value into a finite decimal. Strings are
// parsed, numeric types converted, nil and anything unrecognized become
// zero.
func Coerce(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case Flex:
		return x.Decimal
	case string:
		return CoerceString(x)
	case float64:
		return CoerceFloat(x)
	case float32:
		return CoerceFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case int32:
		return decimal.NewFromInt(int64(x))
	default:
		return decimal.Zero
	}
}
