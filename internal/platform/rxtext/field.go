package rxtext

// Field wraps a single extracted value together with the confidence of the
// extraction, the source text that produced it, and any validation messages
// recorded while extracting. A nil Value means the field could not be
// extracted, in which case ValidationErrors always explains why.
//
// Fields are value types and are never modified after construction.
type Field[T any] struct {
	Value            *T         `json:"value"`
	Confidence       Confidence `json:"confidence"`
	SourceText       string     `json:"source_text"`
	ValidationErrors []string   `json:"validation_errors"`
}

// Found returns a field holding an extracted value.
func Found[T any](value T, confidence Confidence, source string) Field[T] {
	return Field[T]{
		Value:            &value,
		Confidence:       confidence,
		SourceText:       source,
		ValidationErrors: []string{},
	}
}

// Flagged returns a field holding a value that extracted cleanly but failed
// a plausibility check. The value is kept; the issues travel with it.
func Flagged[T any](value T, confidence Confidence, source string, issues ...string) Field[T] {
	if issues == nil {
		issues = []string{}
	}
	return Field[T]{
		Value:            &value,
		Confidence:       confidence,
		SourceText:       source,
		ValidationErrors: issues,
	}
}

// Missing returns a field for a value that could not be extracted. The
// reason is mandatory so that an absent value is always explained.
func Missing[T any](reason string) Field[T] {
	return Field[T]{
		Confidence:       ConfidenceVeryLow,
		SourceText:       "",
		ValidationErrors: []string{reason},
	}
}

// Present reports whether the field holds a value.
func (f Field[T]) Present() bool {
	return f.Value != nil
}

// Or returns the field's value, or fallback when the field is empty.
func (f Field[T]) Or(fallback T) T {
	if f.Value == nil {
		return fallback
	}
	return *f.Value
}
