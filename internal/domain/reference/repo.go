package reference

import "context"

// MedicationRepository provides access to medication rows in the database
// catalog. The catalog itself is served from memory; repositories are used
// to extend it at startup and to seed the database.
type MedicationRepository interface {
	ListAll(ctx context.Context) ([]*Medication, error)
	// Insert adds rows that are not already present and returns the number
	// of rows actually inserted.
	Insert(ctx context.Context, meds []*Medication) (int, error)
}

// ICD10Repository provides access to ICD-10 rows in the database catalog.
type ICD10Repository interface {
	ListAll(ctx context.Context) ([]*ICD10Code, error)
	Insert(ctx context.Context, codes []*ICD10Code) (int, error)
}
