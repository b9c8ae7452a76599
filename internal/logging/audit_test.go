package logging

import (
	"path/filepath"
	"testing"

	"github.com/petralab/classifier/internal/store"
	_ "modernc.org/sqlite"
)

func tempDB(t *testing.T) *store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLogAndListClassifications(t *testing.T) {
	db := tempDB(t)

	entries := []AuditEntry{
		{SchemeID: "collagen_preservation", Label: "PRESERVED", Confidence: 0.95, Color: "#4CAF50", SampleJSON: `{"C_N_Ratio":3.2}`},
		{SchemeID: "collagen_preservation", Label: "DEGRADED", Confidence: 0.8, RunID: "run-1"},
		{SchemeID: "water_hardness", Label: "SOFT", Confidence: 1.0},
	}
	for i, e := range entries {
		if err := LogClassification(db.DB(), e); err != nil {
			t.Fatalf("LogClassification %d: %v", i, err)
		}
	}

	got, err := ListRecent(db.DB(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	// Newest first
	if got[0].Label != "SOFT" || got[2].Label != "PRESERVED" {
		t.Errorf("order wrong: %v, %v", got[0].Label, got[2].Label)
	}

	for i, e := range got {
		if e.EntryID == "" {
			t.Errorf("entry %d: missing generated entry id", i)
		}
		if e.CreatedAt.IsZero() {
			t.Errorf("entry %d: missing created_at", i)
		}
	}

	if got[1].RunID != "run-1" {
		t.Errorf("run id not stored: %+v", got[1])
	}
	if got[2].SampleJSON != `{"C_N_Ratio":3.2}` {
		t.Errorf("sample json not stored: %+v", got[2])
	}
}

func TestListRecentLimit(t *testing.T) {
	db := tempDB(t)

	for i := 0; i < 5; i++ {
		e := AuditEntry{SchemeID: "s", Label: "L", Confidence: 1}
		if err := LogClassification(db.DB(), e); err != nil {
			t.Fatalf("LogClassification: %v", err)
		}
	}

	got, err := ListRecent(db.DB(), 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 entries, got %d", len(got))
	}
}
