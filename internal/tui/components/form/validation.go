package form

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberKind constrains how a text value parses numerically.
type NumberKind int

const (
	// NumberNone performs no numeric parsing.
	NumberNone NumberKind = iota
	// NumberInt requires a whole number.
	NumberInt
	// NumberFloat requires a decimal number.
	NumberFloat
)

// FieldValidation holds runtime validation rules for a form field.
type FieldValidation struct {
	Required  bool
	MaxLength int
	Number    NumberKind
	Min       *float64 // inclusive lower bound, numeric fields only
	Max       *float64 // inclusive upper bound, numeric fields only
}

// ValidateText checks a text value against the validation rules and returns
// an empty string when the value is acceptable.
func (v FieldValidation) ValidateText(value string) string {
	value = strings.TrimSpace(value)
	if v.Required && value == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	if v.MaxLength > 0 && len(value) > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}

	switch v.Number {
	case NumberInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return "must be a whole number"
		}
		return v.checkBounds(float64(n))
	case NumberFloat:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "must be a number"
		}
		return v.checkBounds(n)
	}

	return ""
}

func (v FieldValidation) checkBounds(n float64) string {
	if v.Min != nil && n < *v.Min {
		return fmt.Sprintf("must be at least %g", *v.Min)
	}
	if v.Max != nil && n > *v.Max {
		return fmt.Sprintf("must be at most %g", *v.Max)
	}
	return ""
}

// Bound is a convenience for building pointer bounds inline.
func Bound(n float64) *float64 {
	return &n
}
