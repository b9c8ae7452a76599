// Package engine orchestrates per-sample classification: input
// normalization, uncertainty cleanup, derived-field computation, and
// ordered rule walking against a published scheme registry.
package engine

// #region imports
import (
	"github.com/petralab/classifier/internal/derive"
	"github.com/petralab/classifier/internal/rules"
	"github.com/petralab/classifier/internal/scheme"
)

// #endregion

// #region engine

// Engine classifies samples against the schemes in its registry. Classify is
// a pure function of (sample, scheme id, registry snapshot), so one Engine
// may be shared by concurrent callers as long as registry updates are
// published via Registry.Replace.
type Engine struct {
	registry *scheme.Registry
}

// New creates an engine over the given registry.
func New(registry *scheme.Registry) *Engine {
	return &Engine{registry: registry}
}

// #endregion

// #region classify

// Classify runs one sample through the named scheme and returns the first
// matching classification in declared order. It never fails: bad input, an
// unknown scheme, and a sample nothing matches each map to a reserved
// sentinel result with confidence 0.
func (e *Engine) Classify(sample any, schemeID string) Result {
	fields, ok := normalize(sample)
	if !ok {
		return sentinel(LabelInvalidSample)
	}

	s := e.registry.Get(schemeID)
	if s == nil {
		return sentinel(LabelSchemeNotFound)
	}

	cleaned := cleanFields(fields)
	cleaned = derive.Compute(cleaned)

	for _, cl := range s.Classifications {
		if matches(cleaned, cl) {
			return Result{Label: cl.Name, Confidence: cl.Confidence, Color: cl.Color}
		}
	}
	return sentinel(LabelUnclassified)
}

// #endregion

// #region matching

// matches applies a classification's combination mode. An empty rule list
// never matches, regardless of mode.
func matches(sample map[string]any, cl scheme.Classification) bool {
	if len(cl.Rules) == 0 {
		return false
	}
	if cl.Logic == scheme.CombineAny {
		for _, r := range cl.Rules {
			if rules.Evaluate(sample, r) {
				return true
			}
		}
		return false
	}
	for _, r := range cl.Rules {
		if !rules.Evaluate(sample, r) {
			return false
		}
	}
	return true
}

// #endregion

// #region normalize

// normalize accepts the map shapes callers actually hand us. Anything not
// map-shaped (a slice, a bare scalar, nil) is an invalid sample.
func normalize(sample any) (map[string]any, bool) {
	switch m := sample.(type) {
	case map[string]any:
		return m, m != nil
	case map[string]float64:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	}
	return nil, false
}

// cleanFields strips uncertainty markup ("±5.2%" → 5.2) from every field
// that coerces to a number, into a fresh map. The caller's map is never
// mutated. Unparsable values are kept as-is; they count as "no value" at
// evaluation time.
func cleanFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if n, ok := rules.Number(v); ok {
			out[k] = n
		} else {
			out[k] = v
		}
	}
	return out
}

// #endregion

// #region available

// AvailableSchemes lists the registry's schemes for display layers.
func (e *Engine) AvailableSchemes() []scheme.Info {
	return e.registry.Available()
}

// #endregion
