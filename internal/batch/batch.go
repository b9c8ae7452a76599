// Package batch applies the classification engine across sample
// collections, tolerating unknown schemes by passing data through unchanged.
package batch

// #region imports
import (
	"log"
	"sync"

	"github.com/petralab/classifier/internal/engine"
)

// #endregion

// #region result-fields

// Field names appended to each classified row.
const (
	FieldLabel      = "Classification"
	FieldConfidence = "Classification_Confidence"
	FieldColor      = "Classification_Color"
)

// #endregion

// #region classifier

// Classifier iterates an engine over sample collections.
type Classifier struct {
	engine *engine.Engine

	// Logf receives the unknown-scheme warning. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// New creates a batch classifier over the given engine.
func New(e *engine.Engine) *Classifier {
	return &Classifier{engine: e, Logf: log.Printf}
}

// #endregion

// #region classify-all

// ClassifyAll classifies every row against one scheme, returning one
// augmented output row per input row in original order. An unknown scheme
// id returns the input unchanged; a warning is the only side effect. A bad
// row inside the batch never aborts the rest.
func (c *Classifier) ClassifyAll(samples []map[string]any, schemeID string) []map[string]any {
	if !c.schemeKnown(schemeID) {
		c.Logf("batch: unknown scheme %q, passing %d rows through unchanged", schemeID, len(samples))
		return samples
	}

	out := make([]map[string]any, len(samples))
	for i, row := range samples {
		out[i] = c.classifyRow(row, schemeID)
	}
	return out
}

// ClassifyAllParallel shards the batch across workers. Rows are independent,
// so the only ordering obligation is reassembly: each worker writes results
// by index into the shared output slice.
func (c *Classifier) ClassifyAllParallel(samples []map[string]any, schemeID string, workers int) []map[string]any {
	if workers <= 1 || len(samples) < 2 {
		return c.ClassifyAll(samples, schemeID)
	}
	if !c.schemeKnown(schemeID) {
		c.Logf("batch: unknown scheme %q, passing %d rows through unchanged", schemeID, len(samples))
		return samples
	}

	out := make([]map[string]any, len(samples))
	var wg sync.WaitGroup
	rowIdx := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rowIdx {
				out[i] = c.classifyRow(samples[i], schemeID)
			}
		}()
	}
	for i := range samples {
		rowIdx <- i
	}
	close(rowIdx)
	wg.Wait()
	return out
}

// #endregion

// #region helpers

func (c *Classifier) classifyRow(row map[string]any, schemeID string) map[string]any {
	result := c.engine.Classify(row, schemeID)
	augmented := make(map[string]any, len(row)+3)
	for k, v := range row {
		augmented[k] = v
	}
	augmented[FieldLabel] = result.Label
	augmented[FieldConfidence] = result.Confidence
	augmented[FieldColor] = result.Color
	return augmented
}

func (c *Classifier) schemeKnown(schemeID string) bool {
	for _, info := range c.engine.AvailableSchemes() {
		if info.ID == schemeID {
			return true
		}
	}
	return false
}

// #endregion
