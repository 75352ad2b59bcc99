// Package rxtext parses free-text prescriptions, typically produced by OCR
// over scanned South African scripts, into structured medication data with
// per-field confidence scores. Parsing is pure text work: no I/O, no
// storage, and no failure mode that reaches the caller.
package rxtext

import (
	"fmt"
)

// Limits bounds the parser's plausibility heuristics.
type Limits struct {
	// MaxMedications caps how many sections are parsed per prescription.
	MaxMedications int
	// QuantityAlert is the quantity above which a value is flagged.
	QuantityAlert int
	// RepeatsAlert is the repeat count above which a value is flagged.
	RepeatsAlert int
}

// DefaultLimits returns the standard heuristic bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxMedications: 21,
		QuantityAlert:  1000,
		RepeatsAlert:   12,
	}
}

// Parser turns raw prescription text into a structured Result. It is safe
// for concurrent use because it holds no mutable state.
type Parser struct {
	lexicon *Lexicon
	limits  Limits
}

// NewParser creates a parser over the given lexicon. A nil lexicon selects
// the builtin reference tables; zero limits fall back to the defaults.
func NewParser(lexicon *Lexicon, limits Limits) *Parser {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	defaults := DefaultLimits()
	if limits.MaxMedications <= 0 {
		limits.MaxMedications = defaults.MaxMedications
	}
	if limits.QuantityAlert <= 0 {
		limits.QuantityAlert = defaults.QuantityAlert
	}
	if limits.RepeatsAlert <= 0 {
		limits.RepeatsAlert = defaults.RepeatsAlert
	}
	return &Parser{lexicon: lexicon, limits: limits}
}

// Lexicon returns the reference tables the parser resolves against.
func (p *Parser) Lexicon() *Lexicon { return p.lexicon }

// Parse extracts structured prescription data from raw text. It never
// fails: any internal panic is converted into a result with zero overall
// confidence and the failure message in parsing_errors.
func (p *Parser) Parse(text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{
				Doctor:            Missing[string]("not extracted"),
				Patient:           Missing[PatientInfo]("not extracted"),
				Metadata:          Missing[Metadata]("not extracted"),
				OverallConfidence: 0,
				ParsingErrors:     []string{fmt.Sprintf("parsing failed: %v", r)},
				Warnings:          []string{},
			}
		}
	}()

	result = Result{
		ParsingErrors: []string{},
		Warnings:      []string{},
	}

	// Document-level fields come from the full text.
	result.Doctor = ExtractDoctor(text)
	result.Patient = ExtractPatient(text)
	result.Metadata = ExtractMetadata(text)

	sections := SplitSections(text)
	if len(sections) > p.limits.MaxMedications {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"prescription has %d medication sections, only the first %d were parsed",
			len(sections), p.limits.MaxMedications))
		sections = sections[:p.limits.MaxMedications]
	}

	for _, section := range sections {
		entry, ok := p.parseSection(section)
		if !ok {
			// No medication name in this section; it still consumed one
			// slot of the cap above.
			continue
		}
		entry.Number = len(result.Medications) + 1
		result.Medications = append(result.Medications, entry)
	}

	// ICD-10 codes are prescription-level annotations, so the scan covers
	// the original text rather than individual sections.
	result.ICD10Codes = ExtractICD10(text, p.lexicon)

	result.OverallConfidence = overallConfidence(&result)
	return result
}

// parseSection runs every medication extractor over one section. A section
// without a recognizable medication name is dropped (ok is false). A panic
// inside the extractor chain yields an entry whose name field records the
// failure, and parsing continues with the next section.
func (p *Parser) parseSection(section string) (entry MedicationEntry, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			entry = failedEntry(fmt.Sprintf("section could not be parsed: %v", r))
			ok = true
		}
	}()

	name := ExtractMedicationName(section, p.lexicon)
	if !name.Present() {
		return MedicationEntry{}, false
	}

	return MedicationEntry{
		Name:         name,
		GenericName:  ExtractGenericName(section, p.lexicon),
		Strength:     ExtractStrength(section),
		Quantity:     ExtractQuantity(section, p.limits.QuantityAlert),
		Instructions: ExtractInstructions(section),
		Type:         ExtractMedicationType(section),
		Timing:       ExtractTiming(section),
		Repeats:      ExtractRepeats(section, p.limits.RepeatsAlert),
		AsNeeded:     ExtractAsNeeded(section),
	}, true
}

// failedEntry is the placeholder recorded for a section whose extractor
// chain panicked.
func failedEntry(reason string) MedicationEntry {
	return MedicationEntry{
		Name:         Missing[string](reason),
		GenericName:  Missing[string]("not extracted"),
		Strength:     Missing[string]("not extracted"),
		Quantity:     Missing[int]("not extracted"),
		Instructions: Missing[string]("not extracted"),
		Type:         Missing[MedicationType]("not extracted"),
		Timing:       Missing[[]Timing]("not extracted"),
		Repeats:      Missing[int]("not extracted"),
		AsNeeded:     Missing[bool]("not extracted"),
	}
}

// overallConfidence averages the confidence of the doctor and patient
// fields, every per-medication field, and every ICD-10 code. Prescription
// metadata stays out of the average.
func overallConfidence(result *Result) Confidence {
	var cs []Confidence
	cs = append(cs, result.Doctor.Confidence, result.Patient.Confidence)
	for _, m := range result.Medications {
		cs = append(cs,
			m.Name.Confidence,
			m.GenericName.Confidence,
			m.Strength.Confidence,
			m.Quantity.Confidence,
			m.Instructions.Confidence,
			m.Type.Confidence,
			m.Timing.Confidence,
			m.Repeats.Confidence,
			m.AsNeeded.Confidence,
		)
	}
	for _, d := range result.ICD10Codes {
		cs = append(cs, d.Confidence)
	}
	return averageConfidence(cs)
}
