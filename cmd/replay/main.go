package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/petralab/classifier/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--json]")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results, summary, err := replay.Replay(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		out := struct {
			Results []replay.Result `json:"results"`
			Summary replay.Summary  `json:"summary"`
		}{results, summary}
		if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		printTable(f, results, summary)
	}

	if summary.Mismatches > 0 {
		os.Exit(1)
	}
}

// #endregion main

// #region table

func printTable(f *replay.Fixture, results []replay.Result, summary replay.Summary) {
	if f.Description != "" {
		fmt.Println(f.Description)
	}
	fmt.Printf("%-16s %-20s %-20s %s\n", "SAMPLE", "GOT", "WANT", "MATCH")
	for _, r := range results {
		mark := "ok"
		if !r.Match {
			mark = "MISMATCH"
		}
		fmt.Printf("%-16s %-20s %-20s %s\n", r.SampleID, r.Got.Label, r.Want.Label, mark)
	}
	fmt.Printf("\n%d samples: %d match, %d mismatch, %d unclassified\n",
		summary.TotalSamples, summary.Matches, summary.Mismatches, summary.Unclassified)
}

// #endregion table
