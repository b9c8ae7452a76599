package engine

// #region result

// Result is the outcome of classifying one sample: the matched label, the
// scheme author's confidence weight, and the display color.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Color      string  `json:"color"`
}

// #endregion

// #region sentinels

// Reserved sentinel labels, distinct from any real classification label and
// stable for callers. All carry confidence 0 and the neutral color.
const (
	LabelUnclassified   = "UNCLASSIFIED"     // no classification matched
	LabelSchemeNotFound = "SCHEME_NOT_FOUND" // unknown scheme id
	LabelInvalidSample  = "INVALID_SAMPLE"   // input was not map-shaped

	// NeutralColor is the display color attached to sentinel results.
	NeutralColor = "#CCCCCC"
)

func sentinel(label string) Result {
	return Result{Label: label, Confidence: 0, Color: NeutralColor}
}

// #endregion
