package pricing

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// ToNumber coerces a raw form value into a number. Empty strings, partial
// edits, and anything else that does not parse to a finite number become 0.
// It never fails: fields are frequently blank or mid-edit and the math has
// to keep working.
func ToNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Number is a float64 that tolerates sloppy JSON: numbers, numeric strings,
// empty strings, and null all decode without error. Unparsable input decodes
// to 0. Every numeric Configuration field goes through this type, so no cost
// math ever reads a raw value.
type Number float64

// UnmarshalJSON implements json.Unmarshaler. It never returns an error.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		*n = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*n = Number(ToNumber(s))
	return nil
}

// Value returns the plain float64.
func (n Number) Value() float64 {
	return float64(n)
}
