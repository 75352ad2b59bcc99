package rxtext

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

const samplePrescription = `Dr. Sarah Naidoo
Practice No: 0123456
Date: 15/03/2024

Patient: John Smith
ID: 8001015009087
DOB: 01/01/1980

Rx:

1. NOVORAPID FlexPen 100units/ml
   Inject 10 units three times daily before meals
   x 3 pens
   + 5 repeats

2. LANTUS Solostar Pen 100units/ml
   Inject 20 units once daily at 21h00
   x 2 pens
   + 5 repeats

3. METFORMIN 850mg tablets
   Take one tablet twice daily with meals
   x 60 tablets
   + 5 repeats

4. ATORVASTATIN 20mg tablets
   Take one tablet at night
   x 30 tablets
   + 5 repeats

5. OMEPRAZOLE 20mg capsules
   Take one capsule in the morning as needed
   x 30 capsules

ICD-10: E11.9, I10, F32.9

RX# KZN-2024-001`

// =========== End-to-End Tests ===========

func TestParser_Parse_SamplePrescription(t *testing.T) {
	result := NewParser(nil, Limits{}).Parse(samplePrescription)

	if len(result.ParsingErrors) != 0 {
		t.Fatalf("expected no parsing errors, got %v", result.ParsingErrors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}

	if !result.Doctor.Present() || *result.Doctor.Value != "Sarah Naidoo" {
		t.Errorf("expected doctor Sarah Naidoo, got %v", result.Doctor.Value)
	}
	if !result.Patient.Present() {
		t.Fatal("expected patient info")
	}
	patient := *result.Patient.Value
	if patient.Name != "John Smith" || patient.ID != "8001015009087" {
		t.Errorf("unexpected patient info %+v", patient)
	}
	if !result.Metadata.Present() {
		t.Fatal("expected prescription metadata")
	}
	meta := *result.Metadata.Value
	if meta.Date != "15/03/2024" || meta.PrescriptionNumber != "KZN-2024-001" {
		t.Errorf("unexpected metadata %+v", meta)
	}

	if len(result.Medications) != 5 {
		t.Fatalf("expected 5 medications, got %d", len(result.Medications))
	}
	for i, m := range result.Medications {
		if m.Number != i+1 {
			t.Errorf("expected medication_number %d at position %d, got %d", i+1, i, m.Number)
		}
	}

	wantNames := []string{"Novorapid", "Lantus", "METFORMIN", "ATORVASTATIN", "OMEPRAZOLE"}
	for i, want := range wantNames {
		if got := result.Medications[i].Name.Or(""); got != want {
			t.Errorf("expected medication %d name %q, got %q", i+1, want, got)
		}
	}

	if result.OverallConfidence <= 0.7 || result.OverallConfidence >= 0.9 {
		t.Errorf("expected overall confidence in (0.7, 0.9), got %v", result.OverallConfidence)
	}
}

func TestParser_Parse_SampleMedicationFields(t *testing.T) {
	result := NewParser(nil, Limits{}).Parse(samplePrescription)
	if len(result.Medications) != 5 {
		t.Fatalf("expected 5 medications, got %d", len(result.Medications))
	}

	novorapid := result.Medications[0]
	if novorapid.Name.Confidence != ConfidenceHigh {
		t.Errorf("expected brand-table name at %v, got %v", ConfidenceHigh, novorapid.Name.Confidence)
	}
	if got := novorapid.GenericName.Or(""); got != "Insulin aspart" {
		t.Errorf("expected generic Insulin aspart, got %q", got)
	}
	if got := novorapid.Strength.Or(""); got != "100units/ml" {
		t.Errorf("expected strength 100units/ml, got %q", got)
	}
	if got := novorapid.Quantity.Or(0); got != 3 {
		t.Errorf("expected quantity 3, got %d", got)
	}
	if got := novorapid.Repeats.Or(0); got != 5 {
		t.Errorf("expected 5 repeats, got %d", got)
	}
	if got := novorapid.Type.Or(""); got != TypePen {
		t.Errorf("expected pen, got %q", got)
	}
	if got := novorapid.Instructions.Or(""); got != "Inject 10 units three times daily before meals" {
		t.Errorf("unexpected instructions %q", got)
	}
	if novorapid.Instructions.Confidence != ConfidenceHigh {
		t.Errorf("expected complex instruction match at %v, got %v", ConfidenceHigh, novorapid.Instructions.Confidence)
	}
	if novorapid.AsNeeded.Or(true) {
		t.Error("expected as-needed false for Novorapid")
	}

	metformin := result.Medications[2]
	if metformin.Name.Confidence != ConfidenceMedium {
		t.Errorf("expected shape-matched name at %v, got %v", ConfidenceMedium, metformin.Name.Confidence)
	}
	if metformin.GenericName.Present() {
		t.Errorf("expected no generic for METFORMIN, got %q", *metformin.GenericName.Value)
	}
	if got := metformin.Strength.Or(""); got != "850mg" {
		t.Errorf("expected strength 850mg, got %q", got)
	}
	if got := metformin.Quantity.Or(0); got != 60 {
		t.Errorf("expected quantity 60, got %d", got)
	}
	if got := metformin.Type.Or(""); got != TypeTablet {
		t.Errorf("expected tablet, got %q", got)
	}

	omeprazole := result.Medications[4]
	if got := omeprazole.Type.Or(""); got != TypeCapsule {
		t.Errorf("expected capsule, got %q", got)
	}
	if !omeprazole.AsNeeded.Or(false) {
		t.Error("expected as-needed true for Omeprazole")
	}
	if got := omeprazole.Repeats.Or(-1); got != 0 {
		t.Errorf("expected repeats to default to 0, got %d", got)
	}
}

func TestParser_Parse_SampleICD10Codes(t *testing.T) {
	result := NewParser(nil, Limits{}).Parse(samplePrescription)

	if len(result.ICD10Codes) != 3 {
		t.Fatalf("expected 3 ICD-10 codes, got %d: %v", len(result.ICD10Codes), result.ICD10Codes)
	}
	want := []string{"E11.9", "I10", "F32.9"}
	for i, w := range want {
		if result.ICD10Codes[i].Code != w {
			t.Errorf("expected code %s at position %d, got %q", w, i, result.ICD10Codes[i].Code)
		}
	}
	first := result.ICD10Codes[0]
	if first.Description != "Type 2 diabetes mellitus without complications" {
		t.Errorf("unexpected description %q", first.Description)
	}
	if first.Category != "Endocrine, nutritional and metabolic diseases" {
		t.Errorf("unexpected category %q", first.Category)
	}
}

// =========== Robustness Tests ===========

func TestParser_Parse_NeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"1.",
		"1. \n2. \n3. ",
		"no structure at all, just words",
		"\x00\x01\x02",
		"🎉 unicode confetti 🎉",
		strings.Repeat("PANADO 500mg\n", 500),
	}

	p := NewParser(nil, Limits{})
	for _, input := range inputs {
		result := p.Parse(input)
		if result.OverallConfidence < 0 || result.OverallConfidence > 1 {
			t.Errorf("overall confidence out of range for %q: %v", input, result.OverallConfidence)
		}
	}
}

func TestParser_Parse_EmptyText(t *testing.T) {
	result := NewParser(nil, Limits{}).Parse("")

	if len(result.Medications) != 0 {
		t.Errorf("expected no medications, got %d", len(result.Medications))
	}
	if result.Doctor.Present() {
		t.Error("expected no doctor info")
	}
	if len(result.ParsingErrors) != 0 {
		t.Errorf("expected no parsing errors, got %v", result.ParsingErrors)
	}
	if result.OverallConfidence != ConfidenceVeryLow {
		t.Errorf("expected overall confidence %v, got %v", ConfidenceVeryLow, result.OverallConfidence)
	}
}

func TestParser_Parse_MedicationCap(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&b, "%d. ASPIRIN 100mg tablets\n", i)
	}

	result := NewParser(nil, Limits{}).Parse(b.String())

	if len(result.Medications) != 21 {
		t.Fatalf("expected the 21-medication cap, got %d", len(result.Medications))
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "only the first 21") {
		t.Errorf("expected a truncation warning, got %v", result.Warnings)
	}
}

func TestParser_Parse_CustomCap(t *testing.T) {
	text := "1. PANADO 500mg\n2. BRUFEN 400mg\n3. VOLTAREN 50mg"

	result := NewParser(nil, Limits{MaxMedications: 2}).Parse(text)

	if len(result.Medications) != 2 {
		t.Fatalf("expected 2 medications, got %d", len(result.Medications))
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected a truncation warning, got %v", result.Warnings)
	}
}

func TestParser_Parse_NamelessSectionsSkipped(t *testing.T) {
	text := "1. AMOXIL 500mg capsules\n2. take two daily\n3. PANADO tablets"

	result := NewParser(nil, Limits{}).Parse(text)

	if len(result.Medications) != 2 {
		t.Fatalf("expected the nameless section to be dropped, got %d medications", len(result.Medications))
	}
	if got := result.Medications[0].Name.Or(""); got != "Amoxil" {
		t.Errorf("expected Amoxil first, got %q", got)
	}
	if got := result.Medications[1].Name.Or(""); got != "Panado" {
		t.Errorf("expected Panado second, got %q", got)
	}
	if result.Medications[1].Number != 2 {
		t.Errorf("expected surviving entries renumbered 1..n, got %d", result.Medications[1].Number)
	}
}

func TestParser_Parse_Idempotent(t *testing.T) {
	p := NewParser(nil, Limits{})

	first := p.Parse(samplePrescription)
	second := p.Parse(samplePrescription)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results for identical input")
	}
}

func TestNewParser_Defaults(t *testing.T) {
	p := NewParser(nil, Limits{})

	if p.Lexicon() == nil {
		t.Fatal("expected the builtin lexicon")
	}
	if p.Lexicon().BrandCount() == 0 || p.Lexicon().ICD10Count() == 0 {
		t.Error("expected populated reference tables")
	}
}

func TestNewParser_CustomLexicon(t *testing.T) {
	lex := NewLexicon(map[string]string{"WONDERDRUG": "placebo"}, nil)
	result := NewParser(lex, Limits{}).Parse("1. WONDERDRUG 10mg x 30")

	if len(result.Medications) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(result.Medications))
	}
	if got := result.Medications[0].GenericName.Or(""); got != "placebo" {
		t.Errorf("expected the custom table to resolve the generic, got %q", got)
	}
}
