package scheme

// #region imports
import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// #endregion

// #region definition-schema

// definitionSchema is the structural contract a raw scheme definition must
// meet before decoding. Only top-level shape is enforced here: per-rule
// problems (unknown operator, missing operand) degrade to non-matching rules
// at evaluation time instead of rejecting the whole scheme.
const definitionSchema = `{
	"type": "object",
	"required": ["name", "version", "classifications", "required_fields"],
	"properties": {
		"id":              {"type": "string"},
		"name":            {"type": "string", "minLength": 1},
		"version":         {"type": "string", "minLength": 1},
		"required_fields": {"type": "array", "items": {"type": "string"}},
		"classifications": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name":       {"type": "string"},
					"color":      {"type": "string"},
					"confidence": {"type": "number", "minimum": 0, "maximum": 1},
					"logic":      {"type": "string"},
					"rules":      {"type": "array"}
				}
			}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledDefinitionSchema compiles the embedded JSON Schema once.
func compiledDefinitionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(definitionSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse definition schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("scheme://definition.json", doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("scheme://definition.json")
	})
	return compiledSchema, compileErr
}

// #endregion

// #region load

// Load validates a raw scheme definition and decodes it into a Scheme.
// This is the single hard-failure point in the system: a definition missing
// name, version, classifications, or required_fields is rejected with an
// error. Everything downstream degrades softly.
func Load(def map[string]any) (*Scheme, error) {
	if def == nil {
		return nil, fmt.Errorf("scheme definition is nil")
	}

	compiled, err := compiledDefinitionSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(normalizeJSON(def)); err != nil {
		return nil, fmt.Errorf("invalid scheme definition: %w", err)
	}

	s := &Scheme{
		ID:      stringAt(def, "id"),
		Name:    stringAt(def, "name"),
		Version: stringAt(def, "version"),
	}
	if s.ID == "" {
		s.ID = s.Name
	}

	for _, f := range sliceAt(def, "required_fields") {
		if fs, ok := f.(string); ok {
			s.RequiredFields = append(s.RequiredFields, fs)
		}
	}

	for _, c := range sliceAt(def, "classifications") {
		cm, ok := c.(map[string]any)
		if !ok {
			continue
		}
		s.Classifications = append(s.Classifications, decodeClassification(cm))
	}

	return s, nil
}

// #endregion

// #region decode

func decodeClassification(cm map[string]any) Classification {
	cl := Classification{
		Name:       stringAt(cm, "name"),
		Color:      stringAt(cm, "color"),
		Confidence: floatAt(cm, "confidence"),
		Logic:      CombineAll,
	}
	if logic := stringAt(cm, "logic"); logic == string(CombineAny) {
		cl.Logic = CombineAny
	}
	if cl.Confidence < 0 {
		cl.Confidence = 0
	}
	if cl.Confidence > 1 {
		cl.Confidence = 1
	}

	for _, r := range sliceAt(cm, "rules") {
		rm, ok := r.(map[string]any)
		if !ok {
			continue
		}
		cl.Rules = append(cl.Rules, decodeRule(rm))
	}
	return cl
}

// decodeRule keeps malformed rules rather than dropping them: a rule with a
// missing operand or unknown operator stays in the list and evaluates false.
func decodeRule(rm map[string]any) Rule {
	r := Rule{
		Field:    stringAt(rm, "field"),
		Operator: Operator(stringAt(rm, "operator")),
	}
	r.Value = floatPtrAt(rm, "value")
	r.Min = floatPtrAt(rm, "min")
	r.Max = floatPtrAt(rm, "max")

	// A two-element value pair is an alternate spelling of min/max bounds.
	if pair, ok := rm["value"].([]any); ok && len(pair) == 2 && r.Min == nil && r.Max == nil {
		if lo, ok := toFloat(pair[0]); ok {
			r.Min = &lo
		}
		if hi, ok := toFloat(pair[1]); ok {
			r.Max = &hi
		}
		r.Value = nil
	}
	return r
}

// #endregion

// #region accessors

// normalizeJSON round-trips a definition through encoding/json so the
// validator sees plain JSON types regardless of how the map was produced
// (YAML decoding yields ints where JSON would yield float64).
func normalizeJSON(def map[string]any) any {
	b, err := json.Marshal(def)
	if err != nil {
		return def
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return def
	}
	return out
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func sliceAt(m map[string]any, key string) []any {
	s, _ := m[key].([]any)
	return s
}

func floatAt(m map[string]any, key string) float64 {
	f, _ := toFloat(m[key])
	return f
}

func floatPtrAt(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// #endregion
