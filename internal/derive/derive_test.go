package derive

import (
	"math"
	"testing"
)

func TestComputeRatios(t *testing.T) {
	tests := []struct {
		name   string
		sample map[string]any
		field  string
		want   float64
	}{
		{"zr-nb", map[string]any{"Zr": 200.0, "Nb": 10.0}, "Zr_Nb_Ratio", 20.0},
		{"nb-yb", map[string]any{"Nb": 30.0, "Yb": 3.0}, "Nb_Yb_Ratio", 10.0},
		{"th-yb", map[string]any{"Th": 1.0, "Yb": 2.0}, "Th_Yb_Ratio", 0.5},
		{"error-ratio", map[string]any{"Zr": 200.0, "Zr_error": "±5.0"}, "Zr_Error_Ratio", 0.025},
		{"total-alkali", map[string]any{"Na2O": 3.2, "K2O": 1.1}, "Total_Alkali", 4.3},
		{"string-inputs", map[string]any{"Zr": "200", "Nb": "10"}, "Zr_Nb_Ratio", 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compute(tt.sample)
			got, ok := out[tt.field].(float64)
			if !ok {
				t.Fatalf("field %s missing or not numeric: %v", tt.field, out[tt.field])
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s: got %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestComputeIndices(t *testing.T) {
	sample := map[string]any{
		"SiO2": 48.0, "Al2O3": 15.0, "CaO": 10.0, "MgO": 8.0, "Na2O": 3.0, "K2O": 2.0,
	}
	out := Compute(sample)

	cia, ok := out["CIA"].(float64)
	if !ok {
		t.Fatal("CIA missing")
	}
	if math.Abs(cia-50.0) > 1e-9 {
		t.Errorf("CIA: got %v, want 50", cia)
	}
	if cia < 0 || cia > 100 {
		t.Errorf("CIA out of [0,100]: %v", cia)
	}

	basicity, ok := out["Basicity_Index"].(float64)
	if !ok {
		t.Fatal("Basicity_Index missing")
	}
	want := 18.0 / 63.0
	if math.Abs(basicity-want) > 1e-9 {
		t.Errorf("Basicity_Index: got %v, want %v", basicity, want)
	}
}

func TestComputeOmitsOnBadInputs(t *testing.T) {
	tests := []struct {
		name   string
		sample map[string]any
		absent string
	}{
		{"zero-denominator", map[string]any{"Zr": 200.0, "Nb": 0.0}, "Zr_Nb_Ratio"},
		{"missing-input", map[string]any{"Zr": 200.0}, "Zr_Nb_Ratio"},
		{"non-numeric-input", map[string]any{"Zr": 200.0, "Nb": "trace"}, "Zr_Nb_Ratio"},
		{"empty-input", map[string]any{"Zr": 200.0, "Nb": ""}, "Zr_Nb_Ratio"},
		{"zero-index-denominator", map[string]any{"CaO": 1.0, "MgO": 1.0, "SiO2": 0.0, "Al2O3": 0.0}, "Basicity_Index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Compute(tt.sample)
			if _, exists := out[tt.absent]; exists {
				t.Errorf("expected %s to be omitted", tt.absent)
			}
		})
	}
}

func TestComputePreservesExistingFields(t *testing.T) {
	sample := map[string]any{
		"Zr": 200.0, "Nb": 10.0,
		"Zr_Nb_Ratio": 999.0, // pre-existing value wins
		"note":        "weathered rind",
	}
	out := Compute(sample)

	if got := out["Zr_Nb_Ratio"].(float64); got != 999.0 {
		t.Errorf("pre-existing field overwritten: got %v", got)
	}
	if out["note"] != "weathered rind" {
		t.Errorf("non-numeric field altered: %v", out["note"])
	}
	for k, v := range sample {
		if out[k] != v {
			t.Errorf("input field %s changed: %v != %v", k, out[k], v)
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	sample := map[string]any{"Zr": 200.0, "Nb": 10.0}
	Compute(sample)

	if len(sample) != 2 {
		t.Errorf("input mutated: %v", sample)
	}
}
