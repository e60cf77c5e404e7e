package analysis

import (
	"math"
	"strconv"
	"strings"
)

// Column coercion policies. Each column states its policy once:
//
//	MON, YEAR          ParseInt           non-numeric -> null
//	EUS, GUS, WUS, HUS ParseFloat         non-numeric -> null
//	                   (Yearly reads null as 0, Seasonal drops the row)

// ParseFloat parses a numeric field. Blank, non-numeric and NaN values are null.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// ParseInt parses an integer field. Integral floats such as "7.0" are
// accepted; anything else that is not a whole number is null.
func ParseInt(s string) *int {
	v := ParseFloat(s)
	if v == nil || math.Abs(*v) > math.MaxInt32 || *v != math.Trunc(*v) {
		return nil
	}
	i := int(*v)
	return &i
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
