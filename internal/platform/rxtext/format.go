package rxtext

import (
	"fmt"
	"strings"
)

// Report renders a parse result as a plain-text summary for human review.
// Missing fields are simply omitted; the report never fails.
func Report(result Result) string {
	var b strings.Builder

	b.WriteString("Prescription Parse Report\n")
	b.WriteString("=========================\n\n")

	if result.Doctor.Present() {
		fmt.Fprintf(&b, "Doctor: %s\n", *result.Doctor.Value)
	} else {
		b.WriteString("Doctor: (not found)\n")
	}
	b.WriteString(formatPatient(result.Patient))
	if result.Metadata.Present() {
		meta := *result.Metadata.Value
		if meta.Date != "" {
			fmt.Fprintf(&b, "Date: %s\n", meta.Date)
		}
		if meta.PrescriptionNumber != "" {
			fmt.Fprintf(&b, "Prescription no: %s\n", meta.PrescriptionNumber)
		}
	}

	fmt.Fprintf(&b, "\nMedications (%d):\n", len(result.Medications))
	for _, m := range result.Medications {
		b.WriteString(formatMedication(m))
	}

	if len(result.ICD10Codes) > 0 {
		b.WriteString("\nICD-10 codes:\n")
		for _, d := range result.ICD10Codes {
			fmt.Fprintf(&b, "  %-7s %s (%s)\n", d.Code, d.Description, d.Category)
		}
	}

	fmt.Fprintf(&b, "\nOverall confidence: %d%%\n", result.OverallConfidence.Percent())

	writeList(&b, "Parsing errors", result.ParsingErrors)
	writeList(&b, "Warnings", result.Warnings)

	if result.Validation != nil {
		if result.Validation.IsValid {
			b.WriteString("Validation: passed\n")
		} else {
			b.WriteString("Validation: failed\n")
		}
		writeList(&b, "  Errors", result.Validation.Errors)
		writeList(&b, "  Warnings", result.Validation.Warnings)
		writeList(&b, "  Suggestions", result.Validation.Suggestions)
	}

	return b.String()
}

func formatPatient(patient Field[PatientInfo]) string {
	if !patient.Present() {
		return "Patient: (not found)\n"
	}
	info := *patient.Value

	var details []string
	if info.ID != "" {
		details = append(details, "ID "+info.ID)
	}
	if info.DateOfBirth != "" {
		details = append(details, "born "+info.DateOfBirth)
	}

	name := info.Name
	if name == "" {
		name = "(name unknown)"
	}
	if len(details) > 0 {
		return fmt.Sprintf("Patient: %s (%s)\n", name, strings.Join(details, ", "))
	}
	return fmt.Sprintf("Patient: %s\n", name)
}

func formatMedication(m MedicationEntry) string {
	var b strings.Builder

	name := m.Name.Or("(name not extracted)")
	if generic := m.GenericName.Or(""); generic != "" && !strings.EqualFold(generic, name) {
		fmt.Fprintf(&b, "\n  %d. %s (%s)", m.Number, name, generic)
	} else {
		fmt.Fprintf(&b, "\n  %d. %s", m.Number, name)
	}
	fmt.Fprintf(&b, " [confidence %d%%]\n", m.Confidence().Percent())

	var details []string
	if m.Type.Present() {
		details = append(details, "Form: "+string(*m.Type.Value))
	}
	if m.Strength.Present() {
		details = append(details, "Strength: "+*m.Strength.Value)
	}
	if m.Quantity.Present() {
		details = append(details, fmt.Sprintf("Quantity: %d", *m.Quantity.Value))
	}
	if m.Repeats.Present() {
		details = append(details, fmt.Sprintf("Repeats: %d", *m.Repeats.Value))
	}
	if len(details) > 0 {
		fmt.Fprintf(&b, "     %s\n", strings.Join(details, "   "))
	}

	if m.Instructions.Present() {
		fmt.Fprintf(&b, "     Instructions: %s\n", *m.Instructions.Value)
	}
	if m.Timing.Present() && len(*m.Timing.Value) > 0 {
		var hints []string
		for _, t := range *m.Timing.Value {
			hints = append(hints, t.Value)
		}
		fmt.Fprintf(&b, "     Timing: %s\n", strings.Join(hints, ", "))
	}
	if m.AsNeeded.Or(false) {
		b.WriteString("     Take as needed\n")
	}

	for _, issue := range fieldIssues(m) {
		fmt.Fprintf(&b, "     Note: %s\n", issue)
	}
	return b.String()
}

// fieldIssues gathers the validation messages recorded on an entry's
// fields, skipping the plain not-found reasons of absent optional fields.
func fieldIssues(m MedicationEntry) []string {
	var issues []string
	issues = append(issues, m.Name.ValidationErrors...)
	if m.Quantity.Present() {
		issues = append(issues, m.Quantity.ValidationErrors...)
	}
	if m.Repeats.Present() {
		issues = append(issues, m.Repeats.ValidationErrors...)
	}
	issues = append(issues, m.Type.ValidationErrors...)
	return issues
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
