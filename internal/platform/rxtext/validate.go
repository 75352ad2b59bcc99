package rxtext

import "fmt"

// Validate checks a parse result for required fields and confidence
// thresholds. It only inspects the result; attaching the outcome is the
// caller's choice.
func Validate(result Result) Validation {
	v := Validation{
		Errors:      []string{},
		Warnings:    []string{},
		Suggestions: []string{},
	}

	if len(result.Medications) == 0 {
		v.Errors = append(v.Errors, "No medications found in prescription")
	}

	for _, m := range result.Medications {
		if !m.Name.Present() {
			v.Errors = append(v.Errors, fmt.Sprintf("Medication %d is missing a name", m.Number))
		}
		if !m.Strength.Present() {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Medication %d is missing a strength", m.Number))
		}
		if !m.Instructions.Present() {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Medication %d is missing instructions", m.Number))
		}
		if m.Confidence() < ConfidenceMedium {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Medication %d was extracted with low confidence", m.Number))
		}
	}

	if result.Doctor.Confidence < ConfidenceMedium {
		v.Warnings = append(v.Warnings, "Doctor information has low confidence")
	}
	if result.Patient.Confidence < ConfidenceMedium {
		v.Warnings = append(v.Warnings, "Patient information has low confidence")
	}
	if len(result.ICD10Codes) == 0 {
		v.Warnings = append(v.Warnings, "No ICD-10 codes found")
	}

	if len(v.Errors) > 0 {
		v.Suggestions = append(v.Suggestions, "Check that the text contains a recognizable medication list")
	}
	if len(v.Warnings) > 0 {
		v.Suggestions = append(v.Suggestions, "Verify low-confidence and missing fields against the original document")
	}

	v.IsValid = len(v.Errors) == 0
	return v
}
