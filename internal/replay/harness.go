package replay

import (
	"fmt"

	"github.com/petralab/classifier/internal/engine"
	"github.com/petralab/classifier/internal/scheme"
)

// #region types
// Result captures the outcome of replaying one sample.
type Result struct {
	SampleID string
	Got      engine.Result
	Want     FixtureExpectedResult
	Match    bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalSamples int
	Matches      int
	Mismatches   int
	Unclassified int
}

// #endregion types

// #region replay
// Replay loads the fixture's schemes into a private registry and runs every
// sample through the engine, comparing against the expected results.
// Operates entirely in-memory.
func Replay(f *Fixture) ([]Result, Summary, error) {
	schemes := make([]*scheme.Scheme, 0, len(f.Schemes))
	for i, def := range f.Schemes {
		s, err := scheme.Load(def)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("fixture scheme %d: %w", i, err)
		}
		schemes = append(schemes, s)
	}

	registry := scheme.NewRegistry()
	if err := registry.Replace(schemes); err != nil {
		return nil, Summary{}, err
	}
	eng := engine.New(registry)

	results := make([]Result, 0, len(f.Samples))
	summary := Summary{TotalSamples: len(f.Samples)}

	for i, sample := range f.Samples {
		expected := f.ExpectedResults[i]
		got := eng.Classify(sample, f.SchemeID)

		match := got.Label == expected.Label && got.Confidence == expected.Confidence
		if match {
			summary.Matches++
		} else {
			summary.Mismatches++
		}
		if got.Label == engine.LabelUnclassified {
			summary.Unclassified++
		}

		results = append(results, Result{
			SampleID: expected.SampleID,
			Got:      got,
			Want:     expected,
			Match:    match,
		})
	}

	return results, summary, nil
}

// #endregion replay
