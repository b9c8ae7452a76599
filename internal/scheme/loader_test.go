package scheme

import (
	"testing"
)

func validDefinition() map[string]any {
	return map[string]any{
		"id":              "collagen_preservation",
		"name":            "Bone Collagen Preservation",
		"version":         "1.2",
		"required_fields": []any{"C_N_Ratio"},
		"classifications": []any{
			map[string]any{
				"name":       "PRESERVED",
				"color":      "#4CAF50",
				"confidence": 0.95,
				"logic":      "ALL",
				"rules": []any{
					map[string]any{"field": "C_N_Ratio", "operator": "between", "min": 2.9, "max": 3.6},
				},
			},
		},
	}
}

func TestLoadValidDefinition(t *testing.T) {
	s, err := Load(validDefinition())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.ID != "collagen_preservation" {
		t.Errorf("id: got %q", s.ID)
	}
	if s.Version != "1.2" {
		t.Errorf("version: got %q", s.Version)
	}
	if len(s.RequiredFields) != 1 || s.RequiredFields[0] != "C_N_Ratio" {
		t.Errorf("required fields: got %v", s.RequiredFields)
	}
	if len(s.Classifications) != 1 {
		t.Fatalf("classifications: got %d", len(s.Classifications))
	}

	cl := s.Classifications[0]
	if cl.Name != "PRESERVED" || cl.Confidence != 0.95 || cl.Logic != CombineAll {
		t.Errorf("classification decoded wrong: %+v", cl)
	}
	if len(cl.Rules) != 1 {
		t.Fatalf("rules: got %d", len(cl.Rules))
	}
	r := cl.Rules[0]
	if r.Operator != OpBetween || r.Min == nil || *r.Min != 2.9 || r.Max == nil || *r.Max != 3.6 {
		t.Errorf("rule decoded wrong: %+v", r)
	}
}

// TestLoadRejectsMissingKeys covers the single hard-failure path in the
// system: a definition missing a required top-level key.
func TestLoadRejectsMissingKeys(t *testing.T) {
	for _, key := range []string{"name", "version", "classifications", "required_fields"} {
		t.Run("missing-"+key, func(t *testing.T) {
			def := validDefinition()
			delete(def, key)
			if _, err := Load(def); err == nil {
				t.Errorf("expected error for missing %s", key)
			}
		})
	}
}

func TestLoadRejectsNilAndWrongShape(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Error("expected error for nil definition")
	}

	def := validDefinition()
	def["classifications"] = "not a list"
	if _, err := Load(def); err == nil {
		t.Error("expected error for non-list classifications")
	}
}

func TestLoadIDDefaultsToName(t *testing.T) {
	def := validDefinition()
	delete(def, "id")
	s, err := Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ID != "Bone Collagen Preservation" {
		t.Errorf("id fallback: got %q", s.ID)
	}
}

func TestLoadBoundPairValue(t *testing.T) {
	def := validDefinition()
	cls := def["classifications"].([]any)
	cls[0].(map[string]any)["rules"] = []any{
		map[string]any{"field": "C_N_Ratio", "operator": "between", "value": []any{2.9, 3.6}},
	}

	s, err := Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := s.Classifications[0].Rules[0]
	if r.Min == nil || *r.Min != 2.9 || r.Max == nil || *r.Max != 3.6 {
		t.Errorf("bound pair not decoded into min/max: %+v", r)
	}
	if r.Value != nil {
		t.Errorf("scalar value should be cleared for bound pair: %v", *r.Value)
	}
}

// TestLoadKeepsMalformedRules: rule-level problems are not load failures.
// The rule stays in the list and evaluates to false at classification time.
func TestLoadKeepsMalformedRules(t *testing.T) {
	def := validDefinition()
	cls := def["classifications"].([]any)
	cls[0].(map[string]any)["rules"] = []any{
		map[string]any{"field": "C_N_Ratio", "operator": "regex_match", "value": 1.0},
		map[string]any{"field": "C_N_Ratio", "operator": ">"},
	}

	s, err := Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rules := s.Classifications[0].Rules
	if len(rules) != 2 {
		t.Fatalf("expected both rules kept, got %d", len(rules))
	}
	if rules[0].Operator != "regex_match" {
		t.Errorf("unknown operator not preserved: %q", rules[0].Operator)
	}
	if rules[1].Value != nil {
		t.Error("missing operand should stay nil")
	}
}

func TestLoadAnyLogicAndConfidenceDefaults(t *testing.T) {
	def := validDefinition()
	cls := def["classifications"].([]any)
	cm := cls[0].(map[string]any)
	cm["logic"] = "ANY"
	delete(cm, "confidence")

	s, err := Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cl := s.Classifications[0]
	if cl.Logic != CombineAny {
		t.Errorf("logic: got %q", cl.Logic)
	}
	if cl.Confidence != 0 {
		t.Errorf("confidence default: got %v", cl.Confidence)
	}
}

func TestLoadFromYAML(t *testing.T) {
	raw := []byte(`
id: water_hardness
name: Water Hardness
version: "1.0"
required_fields: [CaCO3]
classifications:
  - name: SOFT
    color: "#B3E5FC"
    confidence: 1.0
    logic: ALL
    rules:
      - field: CaCO3
        operator: "<"
        value: 60
`)
	def, err := ParseYAML(raw)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	s, err := Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ID != "water_hardness" || len(s.Classifications) != 1 {
		t.Errorf("yaml scheme decoded wrong: %+v", s)
	}
	r := s.Classifications[0].Rules[0]
	if r.Operator != OpLess || r.Value == nil || *r.Value != 60 {
		t.Errorf("yaml rule decoded wrong: %+v", r)
	}
}
