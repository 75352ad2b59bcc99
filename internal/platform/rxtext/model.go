package rxtext

// MedicationType classifies the dosage form of a prescribed medication.
type MedicationType string

const (
	TypeTablet    MedicationType = "tablet"
	TypeCapsule   MedicationType = "capsule"
	TypeInjection MedicationType = "injection"
	TypeInhaler   MedicationType = "inhaler"
	TypeCream     MedicationType = "cream"
	TypeOintment  MedicationType = "ointment"
	TypeDrops     MedicationType = "drops"
	TypePatch     MedicationType = "patch"
	TypePen       MedicationType = "pen"
	TypeLiquid    MedicationType = "liquid"
)

// Timing is a single dosing-schedule hint found in an instruction, such as
// a time-of-day keyword, a clock time, or a frequency phrase.
type Timing struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Timing type labels.
const (
	TimingTimeOfDay = "time_of_day"
	TimingClockTime = "clock_time"
	TimingFrequency = "frequency"
	TimingAsNeeded  = "as_needed"
)

// PatientInfo holds whatever patient demographics the text revealed. All
// fields are optional; the wrapping Field records whether anything matched.
type PatientInfo struct {
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// Metadata holds prescription-level administrative details.
type Metadata struct {
	Date               string `json:"date,omitempty"`
	PrescriptionNumber string `json:"prescription_number,omitempty"`
}

// DiagnosisCode is an ICD-10 code found in the prescription text, resolved
// against the reference table.
type DiagnosisCode struct {
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Confidence  Confidence `json:"confidence"`
}

// MedicationEntry is one parsed medication section.
type MedicationEntry struct {
	Number       int                   `json:"medication_number"`
	Name         Field[string]         `json:"name"`
	GenericName  Field[string]         `json:"generic_name"`
	Strength     Field[string]         `json:"strength"`
	Quantity     Field[int]            `json:"quantity"`
	Instructions Field[string]         `json:"instructions"`
	Type         Field[MedicationType] `json:"medication_type"`
	Timing       Field[[]Timing]       `json:"timing"`
	Repeats      Field[int]            `json:"repeats"`
	AsNeeded     Field[bool]           `json:"as_needed"`
}

// Confidence returns the mean confidence across the entry's fields.
func (m MedicationEntry) Confidence() Confidence {
	return averageConfidence([]Confidence{
		m.Name.Confidence,
		m.GenericName.Confidence,
		m.Strength.Confidence,
		m.Quantity.Confidence,
		m.Instructions.Confidence,
		m.Type.Confidence,
		m.Timing.Confidence,
		m.Repeats.Confidence,
		m.AsNeeded.Confidence,
	})
}

// Validation is the rule-check summary the validator attaches to a result.
type Validation struct {
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// Result is a fully parsed prescription.
type Result struct {
	Doctor            Field[string]      `json:"doctor_info"`
	Patient           Field[PatientInfo] `json:"patient_info"`
	Medications       []MedicationEntry  `json:"medications"`
	ICD10Codes        []DiagnosisCode    `json:"icd10_codes"`
	Metadata          Field[Metadata]    `json:"prescription_metadata"`
	OverallConfidence Confidence         `json:"overall_confidence"`
	ParsingErrors     []string           `json:"parsing_errors"`
	Warnings          []string           `json:"warnings"`
	Validation        *Validation        `json:"validation,omitempty"`
}
