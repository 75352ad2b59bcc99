package rxtext

// Confidence scores how reliable an extracted value is. The four named
// levels are the only values extractors assign directly; aggregated
// confidences (per-medication and overall) are arithmetic means and may
// fall anywhere in [0,1].
type Confidence float64

const (
	// ConfidenceHigh marks a value matched by a specific pattern or a
	// reference-table hit.
	ConfidenceHigh Confidence = 0.9
	// ConfidenceMedium marks a value matched by a generic fallback pattern.
	ConfidenceMedium Confidence = 0.7
	// ConfidenceLow marks a defaulted value.
	ConfidenceLow Confidence = 0.5
	// ConfidenceVeryLow marks a field whose value could not be extracted.
	ConfidenceVeryLow Confidence = 0.3
)

// Percent returns the confidence as a whole percentage, for display.
func (c Confidence) Percent() int {
	return int(float64(c)*100 + 0.5)
}

// averageConfidence returns the arithmetic mean of the given confidences,
// or 0 when the list is empty.
func averageConfidence(cs []Confidence) Confidence {
	if len(cs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cs {
		sum += float64(c)
	}
	return Confidence(sum / float64(len(cs)))
}
