package rules

// #region imports
import (
	"math"

	"github.com/petralab/classifier/internal/scheme"
)

// #endregion

// equalityTolerance absorbs floating-point noise in == comparisons.
const equalityTolerance = 1e-4

// #region evaluate

// Evaluate applies one rule to one sample. It never fails: a missing field,
// an unparsable value, an unknown operator, or a malformed rule (absent
// operand or bounds) all evaluate to false.
func Evaluate(sample map[string]any, rule scheme.Rule) bool {
	raw, ok := sample[rule.Field]
	if !ok {
		return false
	}
	x, ok := Number(raw)
	if !ok {
		return false
	}

	switch rule.Operator {
	case scheme.OpGreater:
		return rule.Value != nil && x > *rule.Value
	case scheme.OpLess:
		return rule.Value != nil && x < *rule.Value
	case scheme.OpGreaterEqual:
		return rule.Value != nil && x >= *rule.Value
	case scheme.OpLessEqual:
		return rule.Value != nil && x <= *rule.Value
	case scheme.OpEqual:
		return rule.Value != nil && math.Abs(x-*rule.Value) <= equalityTolerance
	case scheme.OpBetween:
		return between(x, rule.Min, rule.Max)
	case scheme.OpNotBetween:
		// Exact complement of between, both bounds inclusive. A malformed
		// bound pair yields false for both operators.
		if rule.Min == nil || rule.Max == nil {
			return false
		}
		return !between(x, rule.Min, rule.Max)
	}
	return false
}

// #endregion

// #region between

// between is inclusive at both ends.
func between(x float64, min, max *float64) bool {
	if min == nil || max == nil {
		return false
	}
	return x >= *min && x <= *max
}

// #endregion
