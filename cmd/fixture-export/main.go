package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/petralab/classifier/internal/batch"
	"github.com/petralab/classifier/internal/logging"
	"github.com/petralab/classifier/internal/replay"
	"github.com/petralab/classifier/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to classifier.db")
	schemeID := flag.String("scheme", "", "scheme id to export a fixture for")
	last := flag.Int("last", 10, "number of most recent audit entries to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *schemeID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --scheme id --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *schemeID, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

// run turns the newest audit entries for one scheme into a replay fixture:
// the archived scheme definition plus each logged sample with its recorded
// result as the expectation. Replaying the fixture then pins today's
// behavior against future rule changes.
func run(dbPath, schemeID string, last int, outPath string) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	archived, err := db.GetScheme(schemeID)
	if err != nil {
		return fmt.Errorf("scheme %s not archived: %w", schemeID, err)
	}

	entries, err := logging.ListRecent(db.DB(), last*4)
	if err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}

	fixture := replay.Fixture{
		Description: fmt.Sprintf("Exported from %s audit log (%s v%s)", dbPath, archived.Name, archived.Version),
		SchemeID:    schemeID,
		Schemes:     []map[string]any{archived.Definition},
	}

	// Entries come newest first; collect then reverse for chronological order.
	var picked []logging.AuditEntry
	for _, e := range entries {
		if e.SchemeID != schemeID || e.SampleJSON == "" {
			continue
		}
		picked = append(picked, e)
		if len(picked) == last {
			break
		}
	}

	for i := len(picked) - 1; i >= 0; i-- {
		e := picked[i]
		var sample map[string]any
		if err := json.Unmarshal([]byte(e.SampleJSON), &sample); err != nil {
			return fmt.Errorf("entry %s: bad sample json: %w", e.EntryID, err)
		}
		// Strip result fields a batch run appended so replay re-derives them.
		delete(sample, batch.FieldLabel)
		delete(sample, batch.FieldConfidence)
		delete(sample, batch.FieldColor)

		fixture.Samples = append(fixture.Samples, sample)
		fixture.ExpectedResults = append(fixture.ExpectedResults, replay.FixtureExpectedResult{
			SampleID:   e.EntryID,
			Label:      e.Label,
			Confidence: e.Confidence,
		})
	}

	if len(fixture.Samples) == 0 {
		return fmt.Errorf("no audit entries for scheme %s", schemeID)
	}

	out, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	fmt.Printf("wrote %d samples to %s\n", len(fixture.Samples), outPath)
	return nil
}

// #endregion export
