// Package derive computes the fixed registry of named derived quantities
// (ratios, sums, alteration indices) appended to a sample before rule
// evaluation. The registry is deliberately enumerable: adding a derived
// quantity means adding one Formula entry, not extending a parser.
package derive

// #region imports
import (
	"github.com/petralab/classifier/internal/rules"
)

// #endregion

// #region formula

// Formula computes one named output from a fixed set of input fields.
// Apply returns ok=false when the result is undefined (zero denominator);
// inputs are guaranteed present and numeric by Compute.
type Formula struct {
	Output string
	Inputs []string
	Apply  func(in map[string]float64) (float64, bool)
}

// #endregion

// #region registry

// Formulas is the built-in derived-field registry, applied in order.
var Formulas = []Formula{
	ratio("Zr_Nb_Ratio", "Zr", "Nb"),
	ratio("Nb_Yb_Ratio", "Nb", "Yb"),
	ratio("Th_Yb_Ratio", "Th", "Yb"),
	// Analytical precision: reported error relative to the measurement.
	ratio("Zr_Error_Ratio", "Zr_error", "Zr"),
	{
		Output: "Total_Alkali",
		Inputs: []string{"Na2O", "K2O"},
		Apply: func(in map[string]float64) (float64, bool) {
			return in["Na2O"] + in["K2O"], true
		},
	},
	{
		// Chemical Index of Alteration, bounded in [0,100] by construction.
		Output: "CIA",
		Inputs: []string{"Al2O3", "CaO", "Na2O", "K2O"},
		Apply: func(in map[string]float64) (float64, bool) {
			denom := in["Al2O3"] + in["CaO"] + in["Na2O"] + in["K2O"]
			if denom == 0 {
				return 0, false
			}
			return in["Al2O3"] / denom * 100, true
		},
	},
	{
		Output: "Basicity_Index",
		Inputs: []string{"CaO", "MgO", "SiO2", "Al2O3"},
		Apply: func(in map[string]float64) (float64, bool) {
			denom := in["SiO2"] + in["Al2O3"]
			if denom == 0 {
				return 0, false
			}
			return (in["CaO"] + in["MgO"]) / denom, true
		},
	},
}

func ratio(output, num, den string) Formula {
	return Formula{
		Output: output,
		Inputs: []string{num, den},
		Apply: func(in map[string]float64) (float64, bool) {
			if in[den] == 0 {
				return 0, false
			}
			return in[num] / in[den], true
		},
	}
}

// #endregion

// #region compute

// Compute returns a copy of the sample with derived fields appended. A
// formula whose inputs are missing, non-numeric, or whose denominator is
// zero is silently skipped. Pre-existing fields are never removed or
// overwritten, including fields that share a formula's output name.
func Compute(sample map[string]any) map[string]any {
	out := make(map[string]any, len(sample)+len(Formulas))
	for k, v := range sample {
		out[k] = v
	}

	for _, f := range Formulas {
		if _, exists := out[f.Output]; exists {
			continue
		}
		in, ok := gatherInputs(out, f.Inputs)
		if !ok {
			continue
		}
		if v, ok := f.Apply(in); ok {
			out[f.Output] = v
		}
	}
	return out
}

// gatherInputs coerces every required input; any missing or non-numeric
// input disqualifies the formula.
func gatherInputs(sample map[string]any, inputs []string) (map[string]float64, bool) {
	in := make(map[string]float64, len(inputs))
	for _, name := range inputs {
		raw, present := sample[name]
		if !present {
			return nil, false
		}
		v, ok := rules.Number(raw)
		if !ok {
			return nil, false
		}
		in[name] = v
	}
	return in, true
}

// #endregion
