package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a set of
// scheme definitions, a batch of samples, and the expected result per
// sample. Fixtures pin classification behavior so rule or derived-field
// changes that shift results are caught as drift.
type Fixture struct {
	Description     string                  `json:"description"`
	SchemeID        string                  `json:"scheme_id"`
	Schemes         []map[string]any        `json:"schemes"`
	Samples         []map[string]any        `json:"samples"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureExpectedResult captures the expected outcome for one sample.
type FixtureExpectedResult struct {
	SampleID   string  `json:"sample_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and parses a fixture JSON file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	if f.SchemeID == "" {
		return nil, fmt.Errorf("fixture %s: missing scheme_id", path)
	}
	if len(f.Samples) != len(f.ExpectedResults) {
		return nil, fmt.Errorf("fixture %s: %d samples but %d expected results",
			path, len(f.Samples), len(f.ExpectedResults))
	}

	return &f, nil
}

// #endregion load
