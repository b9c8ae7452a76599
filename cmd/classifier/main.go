package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/petralab/classifier/internal/batch"
	"github.com/petralab/classifier/internal/engine"
	"github.com/petralab/classifier/internal/logging"
	"github.com/petralab/classifier/internal/scheme"
	"github.com/petralab/classifier/internal/store"
)

// #region main
func main() {
	schemesDir := flag.String("schemes", envOr("CLASSIFIER_SCHEMES", "schemes"), "directory of scheme YAML files")
	dbPath := flag.String("db", envOr("CLASSIFIER_DB", "classifier.db"), "path to the archive/audit database")
	schemeID := flag.String("scheme", "", "scheme id to classify against")
	samplesPath := flag.String("samples", "", "JSON file with an array of samples (batch mode)")
	workers := flag.Int("workers", 1, "parallel workers in batch mode")
	flag.Parse()

	registry := scheme.NewRegistry()
	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	if err := publishSchemes(registry, db, *schemesDir); err != nil {
		log.Fatalf("failed to load schemes: %v", err)
	}

	eng := engine.New(registry)

	if *schemeID == "" {
		fmt.Println("Available schemes:")
		for _, info := range eng.AvailableSchemes() {
			fmt.Printf("  %-24s %s\n", info.ID, info.Name)
		}
		fmt.Fprintln(os.Stderr, "\nusage: classifier --scheme id [--samples file.json] [--workers N]")
		os.Exit(2)
	}

	if *samplesPath != "" {
		if err := runBatchMode(eng, db, *schemeID, *samplesPath, *workers); err != nil {
			log.Fatalf("batch: %v", err)
		}
		return
	}

	runInteractiveMode(eng, db, *schemeID)
}

// #endregion main

// #region publish

// publishSchemes loads every *.yaml definition in dir, publishes the set as
// one registry swap, and archives each definition.
func publishSchemes(registry *scheme.Registry, db *store.Store, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no scheme files in %s", dir)
	}

	var schemes []*scheme.Scheme
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		def, err := scheme.ParseYAML(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		s, err := scheme.Load(def)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		schemes = append(schemes, s)

		if err := db.ArchiveScheme(s.ID, s.Name, s.Version, def); err != nil {
			return err
		}
	}
	return registry.Replace(schemes)
}

// #endregion publish

// #region batch-mode

func runBatchMode(eng *engine.Engine, db *store.Store, schemeID, samplesPath string, workers int) error {
	data, err := os.ReadFile(samplesPath)
	if err != nil {
		return fmt.Errorf("read samples: %w", err)
	}
	var samples []map[string]any
	if err := json.Unmarshal(data, &samples); err != nil {
		return fmt.Errorf("parse samples: %w", err)
	}

	runID := uuid.New().String()
	classifier := batch.New(eng)
	rows := classifier.ClassifyAllParallel(samples, schemeID, workers)

	for _, row := range rows {
		sampleJSON, _ := json.Marshal(row)
		entry := logging.AuditEntry{
			RunID:      runID,
			SchemeID:   schemeID,
			Label:      asString(row[batch.FieldLabel]),
			Confidence: asFloat(row[batch.FieldConfidence]),
			Color:      asString(row[batch.FieldColor]),
			SampleJSON: string(sampleJSON),
		}
		if err := logging.LogClassification(db.DB(), entry); err != nil {
			log.Printf("audit write failed: %v", err)
		}
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	fmt.Println(string(out))
	log.Printf("run %s: classified %d samples against %s", runID, len(rows), schemeID)
	return nil
}

// #endregion batch-mode

// #region interactive-mode

// runInteractiveMode reads one sample per line as space-separated
// field=value pairs, e.g. "Zr=200 Nb=10 Zr_error=±5.2%".
func runInteractiveMode(eng *engine.Engine, db *store.Store, schemeID string) {
	fmt.Printf("Classifying against %s. Enter field=value pairs (or 'quit'):\n", schemeID)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		sample := parseSampleLine(line)
		result := eng.Classify(sample, schemeID)
		fmt.Printf("  %s (confidence %.2f, color %s)\n", result.Label, result.Confidence, result.Color)

		sampleJSON, _ := json.Marshal(sample)
		err := logging.LogClassification(db.DB(), logging.AuditEntry{
			SchemeID:   schemeID,
			Label:      result.Label,
			Confidence: result.Confidence,
			Color:      result.Color,
			SampleJSON: string(sampleJSON),
		})
		if err != nil {
			log.Printf("audit write failed: %v", err)
		}
	}
}

func parseSampleLine(line string) map[string]any {
	sample := make(map[string]any)
	for _, pair := range strings.Fields(line) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		sample[k] = v
	}
	return sample
}

// #endregion interactive-mode

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

// #endregion helpers
