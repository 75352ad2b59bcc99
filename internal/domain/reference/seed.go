package reference

import (
	"context"
	"fmt"
)

// Seeder loads the builtin reference tables into the database so that
// deployments can curate the catalog with their own rows on top.
type Seeder struct {
	meds  MedicationRepository
	codes ICD10Repository
}

// NewSeeder creates a seeder over the given repositories.
func NewSeeder(meds MedicationRepository, codes ICD10Repository) *Seeder {
	return &Seeder{meds: meds, codes: codes}
}

// Seed inserts the builtin brand and ICD-10 tables, skipping rows that are
// already present. It returns the number of newly inserted rows per table.
func (s *Seeder) Seed(ctx context.Context) (medsInserted, codesInserted int, err error) {
	medsInserted, err = s.meds.Insert(ctx, BuiltinMedications())
	if err != nil {
		return medsInserted, 0, fmt.Errorf("seed medications: %w", err)
	}

	codesInserted, err = s.codes.Insert(ctx, BuiltinICD10())
	if err != nil {
		return medsInserted, codesInserted, fmt.Errorf("seed icd10: %w", err)
	}

	return medsInserted, codesInserted, nil
}
