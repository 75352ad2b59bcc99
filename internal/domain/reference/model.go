package reference

import (
	"sort"

	"github.com/rxparse/rxparse/internal/platform/rxtext"
)

// Medication is one brand entry in the drug reference catalog.
type Medication struct {
	Brand       string `db:"brand" json:"brand"`
	GenericName string `db:"generic_name" json:"generic_name"`
}

// ICD10Code is one diagnosis entry in the ICD-10 reference catalog.
type ICD10Code struct {
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category,omitempty"`
}

// BuiltinMedications returns the parser's builtin brand table as catalog
// entries, sorted by brand.
func BuiltinMedications() []*Medication {
	brands := rxtext.DefaultBrands()
	meds := make([]*Medication, 0, len(brands))
	for brand, generic := range brands {
		meds = append(meds, &Medication{Brand: brand, GenericName: generic})
	}
	sort.Slice(meds, func(i, j int) bool { return meds[i].Brand < meds[j].Brand })
	return meds
}

// BuiltinICD10 returns the parser's builtin ICD-10 table as catalog entries,
// sorted by code. The category is derived from the code's chapter.
func BuiltinICD10() []*ICD10Code {
	table := rxtext.DefaultICD10()
	codes := make([]*ICD10Code, 0, len(table))
	for code, desc := range table {
		codes = append(codes, &ICD10Code{
			Code:        code,
			Description: desc,
			Category:    rxtext.CategoryForCode(code),
		})
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })
	return codes
}
