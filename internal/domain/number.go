package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Placeholders substituted for absent fields in rendered output.
const (
	MarkerUnknown = "Unknown"
	MarkerNA      = "N/A"
)

// ParseNumber coerces a loosely typed JSON value into a float.
// Numbers, json.Number and numeric strings parse; everything else, including
// nil, "N/A", NaN and infinities, is absent and yields nil.
func ParseNumber(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseCount is ParseNumber restricted to whole numbers.
func ParseCount(v any) *int {
	f := ParseNumber(v)
	if f == nil || *f != math.Trunc(*f) {
		return nil
	}
	n := int(*f)
	return &n
}

// formatNumber renders a float without trailing zeros: 27 -> "27", 4.6430 -> "4.643".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return MarkerNA
	}
	return formatNumber(*v)
}

func formatOptionalCount(v *int) string {
	if v == nil {
		return MarkerNA
	}
	return strconv.Itoa(*v)
}

// stringValue renders a scalar JSON value as text. Missing, null and
// composite values fall back to def.
func stringValue(v any, def string) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return formatNumber(s)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return def
	}
}
