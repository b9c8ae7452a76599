package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/petralab/classifier/internal/logging"
	"github.com/petralab/classifier/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to classifier.db")
	last := flag.Int("last", 20, "show N most recent audit entries")
	schemes := flag.Bool("schemes", false, "list archived schemes instead of audit entries")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/classifier.db [--last N] [--schemes] [--json]")
		os.Exit(2)
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if *schemes {
		if err := runSchemeMode(db, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runAuditMode(db, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region scheme-mode

type schemeRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	LoadedAt string `json:"loaded_at"`
}

func runSchemeMode(db *store.Store, jsonOut bool) error {
	archived, err := db.ListSchemes()
	if err != nil {
		return err
	}

	rows := make([]schemeRow, 0, len(archived))
	for _, s := range archived {
		rows = append(rows, schemeRow{
			ID:       s.ID,
			Name:     s.Name,
			Version:  s.Version,
			LoadedAt: s.LoadedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	fmt.Printf("%-24s %-32s %-10s %s\n", "ID", "NAME", "VERSION", "LOADED")
	for _, r := range rows {
		fmt.Printf("%-24s %-32s %-10s %s\n", r.ID, r.Name, r.Version, r.LoadedAt)
	}
	return nil
}

// #endregion scheme-mode

// #region audit-mode

type auditRow struct {
	EntryID    string  `json:"entry_id"`
	RunID      string  `json:"run_id,omitempty"`
	SchemeID   string  `json:"scheme_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
}

func runAuditMode(db *store.Store, last int, jsonOut bool) error {
	entries, err := logging.ListRecent(db.DB(), last)
	if err != nil {
		return err
	}

	rows := make([]auditRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, auditRow{
			EntryID:    e.EntryID,
			RunID:      e.RunID,
			SchemeID:   e.SchemeID,
			Label:      e.Label,
			Confidence: e.Confidence,
			CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}

	fmt.Printf("%-36s %-20s %-20s %-10s %s\n", "ENTRY", "SCHEME", "LABEL", "CONF", "AT")
	for _, r := range rows {
		fmt.Printf("%-36s %-20s %-20s %-10.2f %s\n", r.EntryID, r.SchemeID, r.Label, r.Confidence, r.CreatedAt)
	}
	return nil
}

// #endregion audit-mode
