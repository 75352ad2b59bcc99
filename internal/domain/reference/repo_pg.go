package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Medication Repository ===========

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) ListAll(ctx context.Context) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT brand, COALESCE(generic_name,'')
		 FROM reference_medications ORDER BY brand`)
	if err != nil {
		return nil, fmt.Errorf("medication list: %w", err)
	}
	defer rows.Close()
	var meds []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.Brand, &m.GenericName); err != nil {
			return nil, err
		}
		meds = append(meds, &m)
	}
	return meds, rows.Err()
}

func (r *medicationRepoPG) Insert(ctx context.Context, meds []*Medication) (int, error) {
	inserted := 0
	for _, m := range meds {
		tag, err := r.pool.Exec(ctx,
			`INSERT INTO reference_medications (brand, generic_name)
			 VALUES ($1, $2)
			 ON CONFLICT (brand) DO NOTHING`, m.Brand, m.GenericName)
		if err != nil {
			return inserted, fmt.Errorf("medication insert %s: %w", m.Brand, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// =========== ICD-10 Repository ===========

type icd10RepoPG struct{ pool *pgxpool.Pool }

func NewICD10RepoPG(pool *pgxpool.Pool) ICD10Repository {
	return &icd10RepoPG{pool: pool}
}

func (r *icd10RepoPG) ListAll(ctx context.Context) ([]*ICD10Code, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT code, description, COALESCE(category,'')
		 FROM reference_icd10 ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("icd10 list: %w", err)
	}
	defer rows.Close()
	var codes []*ICD10Code
	for rows.Next() {
		var c ICD10Code
		if err := rows.Scan(&c.Code, &c.Description, &c.Category); err != nil {
			return nil, err
		}
		codes = append(codes, &c)
	}
	return codes, rows.Err()
}

func (r *icd10RepoPG) Insert(ctx context.Context, codes []*ICD10Code) (int, error) {
	inserted := 0
	for _, c := range codes {
		tag, err := r.pool.Exec(ctx,
			`INSERT INTO reference_icd10 (code, description, category)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO NOTHING`, c.Code, c.Description, c.Category)
		if err != nil {
			return inserted, fmt.Errorf("icd10 insert %s: %w", c.Code, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
