package reference

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rxparse/rxparse/internal/platform/rxtext"
)

// Service is the merged reference catalog. It is assembled once at startup
// from the builtin tables, optionally extended from the database, and is
// immutable afterwards, so reads need no locking.
type Service struct {
	medications []*Medication
	icd10       []*ICD10Code
	byBrand     map[string]*Medication
	byCode      map[string]*ICD10Code
	lexicon     *rxtext.Lexicon
}

// NewService builds the catalog from the parser's builtin tables alone.
func NewService() *Service {
	return assemble(BuiltinMedications(), BuiltinICD10())
}

// NewServiceFromRepos builds the catalog from the builtin tables extended
// with database rows. Builtin entries win on conflict; database rows only
// add brands and codes the builtin tables do not know.
func NewServiceFromRepos(ctx context.Context, meds MedicationRepository, codes ICD10Repository) (*Service, error) {
	medRows := BuiltinMedications()
	if meds != nil {
		dbMeds, err := meds.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load medication catalog: %w", err)
		}
		medRows = mergeMedications(medRows, dbMeds)
	}

	codeRows := BuiltinICD10()
	if codes != nil {
		dbCodes, err := codes.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load icd10 catalog: %w", err)
		}
		codeRows = mergeICD10(codeRows, dbCodes)
	}

	return assemble(medRows, codeRows), nil
}

// mergeMedications extends the builtin rows with database rows for brands
// the builtin table does not carry. Brand keys are normalized to upper case.
func mergeMedications(builtin, extra []*Medication) []*Medication {
	seen := make(map[string]bool, len(builtin))
	merged := make([]*Medication, 0, len(builtin)+len(extra))
	for _, m := range builtin {
		seen[m.Brand] = true
		merged = append(merged, m)
	}
	for _, m := range extra {
		key := strings.ToUpper(strings.TrimSpace(m.Brand))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, &Medication{Brand: key, GenericName: m.GenericName})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Brand < merged[j].Brand })
	return merged
}

// mergeICD10 extends the builtin rows with database rows for codes the
// builtin table does not carry. Rows without a category get one derived
// from the code's chapter.
func mergeICD10(builtin, extra []*ICD10Code) []*ICD10Code {
	seen := make(map[string]bool, len(builtin))
	merged := make([]*ICD10Code, 0, len(builtin)+len(extra))
	for _, c := range builtin {
		seen[c.Code] = true
		merged = append(merged, c)
	}
	for _, c := range extra {
		key := strings.ToUpper(strings.TrimSpace(c.Code))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		category := c.Category
		if category == "" {
			category = rxtext.CategoryForCode(key)
		}
		merged = append(merged, &ICD10Code{Code: key, Description: c.Description, Category: category})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Code < merged[j].Code })
	return merged
}

// assemble builds the lookup maps and the parser lexicon over the final rows.
func assemble(meds []*Medication, codes []*ICD10Code) *Service {
	s := &Service{
		medications: meds,
		icd10:       codes,
		byBrand:     make(map[string]*Medication, len(meds)),
		byCode:      make(map[string]*ICD10Code, len(codes)),
	}
	brands := make(map[string]string, len(meds))
	descs := make(map[string]string, len(codes))
	for _, m := range meds {
		s.byBrand[strings.ToUpper(m.Brand)] = m
		brands[m.Brand] = m.GenericName
	}
	for _, c := range codes {
		s.byCode[strings.ToUpper(c.Code)] = c
		descs[c.Code] = c.Description
	}
	s.lexicon = rxtext.NewLexicon(brands, descs)
	return s
}

// SearchMedications returns medications whose brand or generic name contains
// the query, case-insensitively. An empty query browses the whole catalog.
// The second return value is the total match count before pagination.
func (s *Service) SearchMedications(query string, limit, offset int) ([]*Medication, int) {
	q := strings.ToUpper(strings.TrimSpace(query))
	matches := make([]*Medication, 0, len(s.medications))
	for _, m := range s.medications {
		if q == "" || strings.Contains(m.Brand, q) || strings.Contains(strings.ToUpper(m.GenericName), q) {
			matches = append(matches, m)
		}
	}
	return page(matches, limit, offset), len(matches)
}

// GetMedication looks up a single brand, case-insensitively.
func (s *Service) GetMedication(brand string) (*Medication, error) {
	key := strings.ToUpper(strings.TrimSpace(brand))
	if key == "" {
		return nil, fmt.Errorf("brand is required")
	}
	m, ok := s.byBrand[key]
	if !ok {
		return nil, fmt.Errorf("brand %q is not in the catalog", brand)
	}
	return m, nil
}

// SearchICD10 returns ICD-10 entries whose code, description, or category
// contains the query, case-insensitively. An empty query browses the whole
// catalog. The second return value is the total match count.
func (s *Service) SearchICD10(query string, limit, offset int) ([]*ICD10Code, int) {
	q := strings.ToUpper(strings.TrimSpace(query))
	matches := make([]*ICD10Code, 0, len(s.icd10))
	for _, c := range s.icd10 {
		if q == "" ||
			strings.Contains(c.Code, q) ||
			strings.Contains(strings.ToUpper(c.Description), q) ||
			strings.Contains(strings.ToUpper(c.Category), q) {
			matches = append(matches, c)
		}
	}
	return page(matches, limit, offset), len(matches)
}

// GetICD10 looks up a single ICD-10 code, case-insensitively.
func (s *Service) GetICD10(code string) (*ICD10Code, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	if key == "" {
		return nil, fmt.Errorf("code is required")
	}
	c, ok := s.byCode[key]
	if !ok {
		return nil, fmt.Errorf("code %q is not in the catalog", code)
	}
	return c, nil
}

// Lexicon returns the parser lexicon built over the catalog rows.
func (s *Service) Lexicon() *rxtext.Lexicon {
	return s.lexicon
}

// MedicationCount returns the number of brands in the catalog.
func (s *Service) MedicationCount() int { return len(s.medications) }

// ICD10Count returns the number of ICD-10 entries in the catalog.
func (s *Service) ICD10Count() int { return len(s.icd10) }

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
