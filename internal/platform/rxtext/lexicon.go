package rxtext

import (
	"sort"
	"strings"
)

// Lexicon is the parser's reference data: a brand-to-generic drug name
// table and an ICD-10 code table. It is immutable after construction and
// safe for concurrent use.
type Lexicon struct {
	brands map[string]string // upper-cased brand -> generic name
	icd10  map[string]string // code -> description

	// brand names ordered longest first so that substring scans are
	// deterministic and longer names win over their prefixes
	orderedBrands []string
}

// NewLexicon builds a lexicon from a brand-to-generic table and an ICD-10
// code-to-description table. Both maps are copied; brand keys are matched
// case-insensitively.
func NewLexicon(brands map[string]string, icd10 map[string]string) *Lexicon {
	l := &Lexicon{
		brands: make(map[string]string, len(brands)),
		icd10:  make(map[string]string, len(icd10)),
	}
	for brand, generic := range brands {
		key := strings.ToUpper(strings.TrimSpace(brand))
		if key == "" {
			continue
		}
		l.brands[key] = generic
		l.orderedBrands = append(l.orderedBrands, key)
	}
	for code, desc := range icd10 {
		key := strings.ToUpper(strings.TrimSpace(code))
		if key == "" {
			continue
		}
		l.icd10[key] = desc
	}
	sort.Slice(l.orderedBrands, func(i, j int) bool {
		if len(l.orderedBrands[i]) != len(l.orderedBrands[j]) {
			return len(l.orderedBrands[i]) > len(l.orderedBrands[j])
		}
		return l.orderedBrands[i] < l.orderedBrands[j]
	})
	return l
}

// DefaultLexicon returns a lexicon over the builtin reference tables.
func DefaultLexicon() *Lexicon {
	return NewLexicon(builtinBrands, builtinICD10)
}

// MatchBrand scans text for the first known brand name, case-insensitively.
// It returns the canonical brand key and its generic name.
func (l *Lexicon) MatchBrand(text string) (brand, generic string, ok bool) {
	haystack := strings.ToUpper(text)
	for _, b := range l.orderedBrands {
		if strings.Contains(haystack, b) {
			return b, l.brands[b], true
		}
	}
	return "", "", false
}

// GenericFor returns the generic name for an exact brand name.
func (l *Lexicon) GenericFor(brand string) (string, bool) {
	generic, ok := l.brands[strings.ToUpper(strings.TrimSpace(brand))]
	return generic, ok
}

// DescribeICD10 returns the description for an ICD-10 code.
func (l *Lexicon) DescribeICD10(code string) (string, bool) {
	desc, ok := l.icd10[strings.ToUpper(strings.TrimSpace(code))]
	return desc, ok
}

// BrandCount returns the number of brand entries.
func (l *Lexicon) BrandCount() int { return len(l.brands) }

// ICD10Count returns the number of ICD-10 entries.
func (l *Lexicon) ICD10Count() int { return len(l.icd10) }

// DefaultBrands returns a copy of the builtin brand-to-generic table.
func DefaultBrands() map[string]string {
	out := make(map[string]string, len(builtinBrands))
	for k, v := range builtinBrands {
		out[k] = v
	}
	return out
}

// DefaultICD10 returns a copy of the builtin ICD-10 table.
func DefaultICD10() map[string]string {
	out := make(map[string]string, len(builtinICD10))
	for k, v := range builtinICD10 {
		out[k] = v
	}
	return out
}

// icd10Chapters maps the leading letter of an ICD-10 code to its chapter
// name. Letters outside the map fall back to "Other".
var icd10Chapters = map[byte]string{
	'A': "Certain infectious and parasitic diseases",
	'B': "Certain infectious and parasitic diseases",
	'E': "Endocrine, nutritional and metabolic diseases",
	'F': "Mental and behavioural disorders",
	'G': "Diseases of the nervous system",
	'I': "Diseases of the circulatory system",
	'J': "Diseases of the respiratory system",
	'K': "Diseases of the digestive system",
	'M': "Diseases of the musculoskeletal system and connective tissue",
	'N': "Diseases of the genitourinary system",
	'R': "Symptoms, signs and abnormal clinical and laboratory findings",
	'Z': "Factors influencing health status and contact with health services",
}

// CategoryForCode returns the ICD-10 chapter name for a code based on its
// leading letter.
func CategoryForCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "Other"
	}
	if cat, ok := icd10Chapters[code[0]]; ok {
		return cat
	}
	return "Other"
}
