package gen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseNumber parses the NUM field of a number block. "Infinity" and
// "-Infinity" are accepted, an empty field is zero.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, nil
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// FormatNumber renders a finite number the shortest way that reads back
// to the same value, switching to exponent notation for very small and
// very large magnitudes.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if abs := math.Abs(v); abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var numberLiteral = regexp.MustCompile(`^\s*-?\d+(\.\d+)?\s*$`)

// IsNumber reports whether code is a plain decimal literal.
func IsNumber(code string) bool {
	return numberLiteral.MatchString(code)
}

// ParseBool parses a TRUE/FALSE dropdown field.
func ParseBool(s string) (bool, error) {
	switch s {
	case "TRUE":
		return true, nil
	case "FALSE":
		return false, nil
	}
	return false, NewUnsupportedOperationError("boolean", s)
}

// RepeatCount returns the iteration count of a repeat block when it is
// known at generation time. The count is truncated toward zero. Counts
// outside the int range are left to the generated code.
func RepeatCount(code string) (int, bool) {
	if !IsNumber(code) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(code), 64)
	if err != nil {
		return 0, false
	}
	v = math.Trunc(v)
	if v < math.MinInt || v >= math.MaxInt {
		return 0, false
	}
	return int(v), true
}
