package rules

// #region imports
import (
	"strconv"
	"strings"
)

// #endregion

// #region unit-suffixes

// unitSuffixes are the measurement decorations stripped before parsing.
// Longest-match first so "wt%" is removed before "%".
var unitSuffixes = []string{
	"wt%", "mg/L", "mg/l", "ppm", "ppb", "‰", "%",
}

// #endregion

// #region number

// Number is the single total numeric coercion routine. Numbers pass through;
// strings are cleaned of uncertainty/unit markup (leading "±", trailing "%"
// or unit suffix) and parsed. Anything malformed, empty, or non-scalar
// returns ok=false, and "no value" never satisfies any operator.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		return parseDecorated(n)
	}
	return 0, false
}

// #endregion

// #region parse-decorated

func parseDecorated(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "±")
	s = strings.TrimPrefix(s, "+")
	for _, suffix := range unitSuffixes {
		if trimmed, ok := strings.CutSuffix(s, suffix); ok {
			s = trimmed
			break
		}
	}
	s = strings.TrimSpace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// #endregion
