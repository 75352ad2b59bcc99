package rxtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Shared regex fragments. Word gaps use [ \t] rather than \s so that
// patterns never swallow the rest of the line across a newline.
const (
	numberWord = `(?:\d+(?:\.\d+)?|one|two|three|four|five|six|seven|eight|nine|ten|half)`
	clockTime  = `(?:\d{1,2}h\d{2}|\d{1,2}:\d{2})`
	frequency  = `(?:once|twice|three[ \t]+times|four[ \t]+times|\d+[ \t]+times)`
	perDay     = `(?:daily|a[ \t]+day|per[ \t]+day|every[ \t]+day)`
	nameWord   = `[A-Za-z][A-Za-z.'-]*`
	personName = nameWord + `(?:[ \t]+` + nameWord + `){0,3}`
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeSpace collapses runs of whitespace to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest, turning table keys like "NOVORAPID" into "Novorapid".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ---- Doctor ----

var doctorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdr\.?[ \t]+(` + personName + `)`),
	regexp.MustCompile(`(?i)\bdoctor[ \t]*:?[ \t]*(` + personName + `)`),
	regexp.MustCompile(`(?i)\bprescribed[ \t]+by[ \t]*:?[ \t]*(` + personName + `)`),
	regexp.MustCompile(`(?i)\bphysician[ \t]*:?[ \t]*(` + personName + `)`),
}

// ExtractDoctor finds the prescribing doctor's name.
func ExtractDoctor(text string) Field[string] {
	for _, re := range doctorPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return Found(normalizeSpace(m[1]), ConfidenceHigh, normalizeSpace(m[0]))
		}
	}
	return Missing[string]("doctor name not found")
}

// ---- Patient ----

var patientNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpatient(?:[ \t]+name)?[ \t]*:?[ \t]*(` + personName + `)`),
	regexp.MustCompile(`(?im)^[ \t]*name[ \t]*:[ \t]*(` + personName + `)`),
}

var (
	patientIDRe  = regexp.MustCompile(`(?i)\b(?:patient[ \t]+id|id[ \t]+(?:no\.?|number)|id)[ \t]*:?[ \t]*(\d{6,13})\b`)
	patientDOBRe = regexp.MustCompile(`(?i)\b(?:dob|date[ \t]+of[ \t]+birth|born)[ \t]*:?[ \t]*(\d{1,2}/\d{1,2}/\d{2,4})`)
)

// labelWords are tokens that follow a "Patient"-style label but are labels
// themselves, not the start of a name.
var labelWords = map[string]bool{
	"ID": true, "DOB": true, "NO": true, "NR": true, "FILE": true,
}

// ExtractPatient collects whatever patient details the text reveals: a
// name, a numeric identifier, and a date of birth. The three are matched
// independently and merged.
func ExtractPatient(text string) Field[PatientInfo] {
	var info PatientInfo
	var sources []string

	for _, re := range patientNamePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := normalizeSpace(m[1])
		if labelWords[strings.ToUpper(firstWord(candidate))] {
			continue
		}
		info.Name = candidate
		sources = append(sources, normalizeSpace(m[0]))
		break
	}
	if m := patientIDRe.FindStringSubmatch(text); m != nil {
		info.ID = m[1]
		sources = append(sources, normalizeSpace(m[0]))
	}
	if m := patientDOBRe.FindStringSubmatch(text); m != nil {
		info.DateOfBirth = m[1]
		sources = append(sources, normalizeSpace(m[0]))
	}

	if len(sources) == 0 {
		return Missing[PatientInfo]("patient information not found")
	}
	return Found(info, ConfidenceMedium, strings.Join(sources, "; "))
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}

// ---- Medication name ----

// Name-shape patterns are deliberately case-sensitive: the shapes (all
// caps, Title Case) are the signal.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][A-Z0-9]{2,}(?:[/-][A-Z0-9]+)*\b`),
	regexp.MustCompile(`\b[A-Z][a-z]+[ \t]+[A-Z][a-z]+\b`),
	regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`),
}

// nameStopwords are capitalized tokens that shape patterns pick up but
// that never name a medication.
var nameStopwords = map[string]bool{
	"TAKE": true, "USE": true, "APPLY": true, "INJECT": true, "INHALE": true,
	"TABLET": true, "TABLETS": true, "CAPSULE": true, "CAPSULES": true,
	"UNITS": true, "DAILY": true, "MORNING": true, "NOON": true, "NIGHT": true,
	"QUANTITY": true, "QTY": true, "REPEAT": true, "REPEATS": true,
	"REFILL": true, "REFILLS": true, "PATIENT": true, "DOCTOR": true,
	"DATE": true, "DOB": true, "ICD": true, "PRESCRIPTION": true,
}

// ExtractMedicationName finds the medication name in one section. A brand
// table hit wins and is returned title-cased; otherwise the name-shape
// patterns apply.
func ExtractMedicationName(text string, lex *Lexicon) Field[string] {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if brand, _, ok := lex.MatchBrand(text); ok {
		return Found(titleCase(brand), ConfidenceHigh, brand)
	}
	for _, re := range namePatterns {
		for _, candidate := range re.FindAllString(text, -1) {
			if nameStopwords[strings.ToUpper(normalizeSpace(candidate))] {
				continue
			}
			return Found(normalizeSpace(candidate), ConfidenceMedium, candidate)
		}
	}
	return Missing[string]("medication name not found")
}

// ---- Generic name ----

var (
	genericLabelRe  = regexp.MustCompile(`(?i)\bgeneric(?:[ \t]+name)?[ \t]*:?[ \t]*([A-Za-z][^\n]*)`)
	parentheticalRe = regexp.MustCompile(`\(([A-Za-z][A-Za-z /-]{2,})\)`)
)

// ExtractGenericName finds a medication's generic name. The brand table is
// authoritative; labelled or parenthesized names are fallbacks.
func ExtractGenericName(text string, lex *Lexicon) Field[string] {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if brand, generic, ok := lex.MatchBrand(text); ok {
		return Found(generic, ConfidenceHigh, brand)
	}
	if m := genericLabelRe.FindStringSubmatch(text); m != nil {
		return Found(normalizeSpace(m[1]), ConfidenceMedium, normalizeSpace(m[0]))
	}
	if m := parentheticalRe.FindStringSubmatch(text); m != nil {
		return Found(normalizeSpace(m[1]), ConfidenceMedium, normalizeSpace(m[0]))
	}
	return Missing[string]("generic name not found")
}

// ---- Strength ----

// Unit alternatives are ordered longest first so "units/ml" is not cut
// short at "units".
var strengthRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)[ \t]*(mcg/ml|mg/ml|units/ml|mcg|mg|ml|units|g)\b`)

// ExtractStrength finds a dose strength such as "500mg" or "100units/ml".
func ExtractStrength(text string) Field[string] {
	m := strengthRe.FindStringSubmatch(text)
	if m == nil {
		return Missing[string]("strength not found")
	}
	return Found(m[1]+strings.ToLower(m[2]), ConfidenceHigh, normalizeSpace(m[0]))
}

// ---- Quantity ----

var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bx[ \t]*(\d+)\b`),
	regexp.MustCompile(`(?i)\b(\d+)[ \t]*(?:tablets?|capsules?|pens?|units|doses?)\b`),
	regexp.MustCompile(`(?i)\bquantity[ \t]*:?[ \t]*(\d+)\b`),
	regexp.MustCompile(`(?i)\bqty[ \t]*:?[ \t]*(\d+)\b`),
	regexp.MustCompile(`(?i)\b(\d+)[ \t]*pcs\b`),
}

// ExtractQuantity finds the dispensed quantity. Values that fail the
// plausibility checks are kept, flagged, and downgraded to medium
// confidence. alertAbove bounds what counts as a plausible quantity.
func ExtractQuantity(text string, alertAbove int) Field[int] {
	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		var issues []string
		if n <= 0 {
			issues = append(issues, "Quantity must be positive")
		}
		if alertAbove > 0 && n > alertAbove {
			issues = append(issues, fmt.Sprintf("Quantity %d is unusually high", n))
		}
		confidence := ConfidenceHigh
		if len(issues) > 0 {
			confidence = ConfidenceMedium
		}
		return Flagged(n, confidence, normalizeSpace(m[0]), issues...)
	}
	return Missing[int]("quantity not found")
}

// ---- Instructions ----

var complexInstructionPatterns = []*regexp.Regexp{
	// take N tablets M times daily, with an optional meal qualifier
	regexp.MustCompile(`(?i)\btake[ \t]+` + numberWord + `[ \t]+(?:tablets?|capsules?)[ \t]+` + frequency + `[ \t]+` + perDay +
		`(?:[ \t]+(?:with[ \t]+(?:meals?|food|water)|before[ \t]+(?:meals?|food)|after[ \t]+(?:meals?|food)|at[ \t]+night))?`),
	// take N tablets at TIME and TIME
	regexp.MustCompile(`(?i)\btake[ \t]+` + numberWord + `[ \t]+(?:tablets?|capsules?)[ \t]+at[ \t]+` + clockTime +
		`(?:[ \t]+and[ \t]+` + clockTime + `)?`),
	// inject N units M times daily at TIME
	regexp.MustCompile(`(?i)\binject[ \t]+` + numberWord + `[ \t]+units?[ \t]+` + frequency + `[ \t]+` + perDay +
		`(?:[ \t]+at[ \t]+` + clockTime + `)?(?:[ \t]+before[ \t]+meals?)?`),
	// apply FORM N times daily
	regexp.MustCompile(`(?i)\bapply[ \t]+(?:cream|ointment|gel|drops)[ \t]+` + frequency + `[ \t]+` + perDay),
	// use inhaler as needed
	regexp.MustCompile(`(?i)\buse[ \t]+(?:the[ \t]+)?inhaler[ \t]+as[ \t]+needed(?:[ \t]+for[ \t]+[^\n]+)?`),
}

var genericInstructionRe = regexp.MustCompile(`(?i)\b(?:take|use|apply|inject)\b[^\n]*`)

var (
	inlineQuantityRe = regexp.MustCompile(`(?i)\bx[ \t]*\d+(?:[ \t]*(?:tablets?|capsules?|pens?))?`)
	inlineRepeatsRe  = regexp.MustCompile(`(?i)\+?[ \t]*\d+[ \t]*(?:repeats?|refills?)`)
)

// ExtractInstructions finds dosing instructions. The specific multi-token
// patterns win; the generic verb-to-end-of-line fallback matches at medium
// confidence with any quantity or repeat fragments stripped out.
func ExtractInstructions(text string) Field[string] {
	for _, re := range complexInstructionPatterns {
		if m := re.FindString(text); m != "" {
			return Found(normalizeSpace(m), ConfidenceHigh, normalizeSpace(m))
		}
	}
	if m := genericInstructionRe.FindString(text); m != "" {
		cleaned := inlineQuantityRe.ReplaceAllString(m, "")
		cleaned = inlineRepeatsRe.ReplaceAllString(cleaned, "")
		return Found(normalizeSpace(cleaned), ConfidenceMedium, normalizeSpace(m))
	}
	return Missing[string]("instructions not found")
}

// ---- Medication type ----

var typeKeywords = []struct {
	re  *regexp.Regexp
	typ MedicationType
}{
	{regexp.MustCompile(`(?i)flexpen|solostar[ \t]+pen|prefilled[ \t]+pen|\bpens?\b`), TypePen},
	{regexp.MustCompile(`(?i)\btablets?\b`), TypeTablet},
	{regexp.MustCompile(`(?i)\bcapsules?\b`), TypeCapsule},
	{regexp.MustCompile(`(?i)\bcream\b|\bointment\b`), TypeCream},
	{regexp.MustCompile(`(?i)\binjections?\b`), TypeInjection},
	{regexp.MustCompile(`(?i)\binhalers?\b`), TypeInhaler},
	{regexp.MustCompile(`(?i)\bdrops\b`), TypeDrops},
	{regexp.MustCompile(`(?i)\bpatch(?:es)?\b`), TypePatch},
	{regexp.MustCompile(`(?i)\bliquid\b|\bsyrup\b`), TypeLiquid},
}

// ExtractMedicationType classifies the dosage form from keywords. When no
// keyword matches the type defaults to tablet, at low confidence and with
// a note, so the field is never empty.
func ExtractMedicationType(text string) Field[MedicationType] {
	for _, kw := range typeKeywords {
		if m := kw.re.FindString(text); m != "" {
			return Found(kw.typ, ConfidenceHigh, normalizeSpace(m))
		}
	}
	return Flagged(TypeTablet, ConfidenceLow, "", "Medication type not specified, assuming tablet")
}

// ---- Timing ----

var timingPatterns = []struct {
	re  *regexp.Regexp
	typ string
}{
	{regexp.MustCompile(`(?i)\b(?:morning|noon|night)\b`), TimingTimeOfDay},
	{regexp.MustCompile(`(?i)\b\d{1,2}h\d{2}\b|\b\d{1,2}:\d{2}\b`), TimingClockTime},
	{regexp.MustCompile(`(?i)\b` + frequency + `[ \t]+` + perDay + `\b|\b(?:bid|tid|qid)\b`), TimingFrequency},
	{regexp.MustCompile(`(?i)\bas[ \t]+needed\b|\bas[ \t]+required\b|\bprn\b|\bwhen[ \t]+needed\b|\bwhen[ \t]+required\b`), TimingAsNeeded},
}

// ExtractTiming collects every dosing-schedule hint in the section: time
// of day keywords, clock times, frequencies, and as-needed markers.
func ExtractTiming(text string) Field[[]Timing] {
	var timings []Timing
	var sources []string

	for _, tp := range timingPatterns {
		for _, m := range tp.re.FindAllString(text, -1) {
			timings = append(timings, Timing{Type: tp.typ, Value: strings.ToLower(normalizeSpace(m))})
			sources = append(sources, normalizeSpace(m))
		}
	}

	if len(timings) == 0 {
		return Found([]Timing{}, ConfidenceLow, "")
	}
	return Found(timings, ConfidenceHigh, strings.Join(sources, "; "))
}

// ---- Repeats ----

var repeatsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\+?[ \t]*(\d+)[ \t]*repeats?\b`),
	regexp.MustCompile(`(?i)\brepeat[ \t]+(\d+)[ \t]+times?\b`),
	regexp.MustCompile(`(?i)\b(\d+)[ \t]*refills?\b`),
	regexp.MustCompile(`(?i)\brefill[ \t]+(\d+)[ \t]+times?\b`),
}

// ExtractRepeats finds the authorized number of repeats. A prescription
// with no repeat marker defaults to zero, which is not an error.
func ExtractRepeats(text string, alertAbove int) Field[int] {
	for _, re := range repeatsPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		var issues []string
		if alertAbove > 0 && n > alertAbove {
			issues = append(issues, fmt.Sprintf("Repeats %d is unusually high", n))
		}
		confidence := ConfidenceHigh
		if len(issues) > 0 {
			confidence = ConfidenceMedium
		}
		return Flagged(n, confidence, normalizeSpace(m[0]), issues...)
	}
	return Found(0, ConfidenceLow, "")
}

// ---- As needed ----

var asNeededRe = regexp.MustCompile(`(?i)\bas[ \t]+needed\b|\bas[ \t]+required\b|\bprn\b|\bwhen[ \t]+needed\b|\bwhen[ \t]+required\b`)

// ExtractAsNeeded reports whether the medication is taken pro re nata.
func ExtractAsNeeded(text string) Field[bool] {
	if m := asNeededRe.FindString(text); m != "" {
		return Found(true, ConfidenceHigh, normalizeSpace(m))
	}
	return Found(false, ConfidenceMedium, "")
}

// ---- ICD-10 ----

var icd10Re = regexp.MustCompile(`\b[A-Z]\d{2}(?:\.\d{1,2})?\b`)

// ExtractICD10 scans the whole text for ICD-10 codes and resolves each
// against the reference table. Codes outside the table are kept with an
// "Unknown condition" description. Matches are not tied to medications
// and are not de-duplicated.
func ExtractICD10(text string, lex *Lexicon) []DiagnosisCode {
	if lex == nil {
		lex = DefaultLexicon()
	}
	matches := icd10Re.FindAllString(text, -1)
	codes := make([]DiagnosisCode, 0, len(matches))
	for _, code := range matches {
		description, ok := lex.DescribeICD10(code)
		if !ok {
			description = "Unknown condition"
		}
		codes = append(codes, DiagnosisCode{
			Code:        code,
			Description: description,
			Category:    CategoryForCode(code),
			Confidence:  ConfidenceHigh,
		})
	}
	return codes
}

// ---- Prescription metadata ----

var prescriptionDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdate[ \t]*:?[ \t]*(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`),
}

var prescriptionNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brx[ \t]*#[ \t]*:?[ \t]*([A-Za-z0-9-]+)`),
	regexp.MustCompile(`(?i)\bprescription[ \t]*(?:no\.?|number|#)[ \t]*:?[ \t]*([A-Za-z0-9-]+)`),
	regexp.MustCompile(`\b([A-Z]{2}-\d{4}-\d{3})\b`),
}

// ExtractMetadata finds the prescription date and number.
func ExtractMetadata(text string) Field[Metadata] {
	var meta Metadata
	var sources []string

	for _, re := range prescriptionDatePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			meta.Date = m[1]
			sources = append(sources, normalizeSpace(m[0]))
			break
		}
	}
	for _, re := range prescriptionNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			meta.PrescriptionNumber = m[1]
			sources = append(sources, normalizeSpace(m[0]))
			break
		}
	}

	if len(sources) == 0 {
		return Missing[Metadata]("prescription date or number not found")
	}
	return Found(meta, ConfidenceMedium, strings.Join(sources, "; "))
}
