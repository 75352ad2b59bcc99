package rxtext

// builtinBrands maps brand names commonly seen on South African
// prescriptions to their generic names.
var builtinBrands = map[string]string{
	// Insulins
	"NOVORAPID":  "Insulin aspart",
	"NOVOMIX":    "Biphasic insulin aspart",
	"LANTUS":     "Insulin glargine",
	"TOUJEO":     "Insulin glargine",
	"TRESIBA":    "Insulin degludec",
	"LEVEMIR":    "Insulin detemir",
	"ACTRAPID":   "Human insulin",
	"PROTAPHANE": "Isophane insulin",
	"HUMALOG":    "Insulin lispro",
	"APIDRA":     "Insulin glulisine",

	// Oral antidiabetics
	"GLUCOPHAGE": "Metformin",
	"DIAMICRON":  "Gliclazide",
	"AMARYL":     "Glimepiride",
	"JANUVIA":    "Sitagliptin",
	"GALVUS":     "Vildagliptin",
	"JARDIANCE":  "Empagliflozin",
	"FORXIGA":    "Dapagliflozin",

	// Lipid lowering
	"LIPITOR": "Atorvastatin",
	"ASPAVOR": "Atorvastatin",
	"CRESTOR": "Rosuvastatin",
	"ZOCOR":   "Simvastatin",

	// Cardiovascular
	"TENORMIN": "Atenolol",
	"ZESTRIL":  "Lisinopril",
	"TRITACE":  "Ramipril",
	"COVERSYL": "Perindopril",
	"NORVASC":  "Amlodipine",
	"AMLOC":    "Amlodipine",
	"ADALAT":   "Nifedipine",
	"XARELTO":  "Rivaroxaban",
	"CLEXANE":  "Enoxaparin",
	"ECOTRIN":  "Aspirin",

	// Gastrointestinal
	"LOSEC":  "Omeprazole",
	"NEXIAM": "Esomeprazole",
	"ZANTAC": "Ranitidine",

	// Analgesics
	"PANADO":   "Paracetamol",
	"DISPRIN":  "Aspirin",
	"BRUFEN":   "Ibuprofen",
	"VOLTAREN": "Diclofenac",
	"STILPANE": "Paracetamol, codeine and caffeine",
	"MYPRODOL": "Ibuprofen, paracetamol and codeine",

	// Respiratory
	"VENTOLIN":  "Salbutamol",
	"ASTHAVENT": "Salbutamol",
	"SERETIDE":  "Fluticasone and salmeterol",
	"SYMBICORT": "Budesonide and formoterol",
	"FLIXOTIDE": "Fluticasone",
	"SINGULAIR": "Montelukast",

	// Antimicrobials
	"AUGMENTIN": "Amoxicillin and clavulanic acid",
	"AMOXIL":    "Amoxicillin",
	"ZITHROMAX": "Azithromycin",
	"CIPROBAY":  "Ciprofloxacin",
	"PURBAC":    "Co-trimoxazole",

	// Psychiatric
	"PROZAC":   "Fluoxetine",
	"CILIFT":   "Citalopram",
	"CIPRALEX": "Escitalopram",
	"ZOLOFT":   "Sertraline",
	"URBANOL":  "Clobazam",

	// Endocrine
	"ELTROXIN": "Levothyroxine",
}

// builtinICD10 maps ICD-10 codes to their descriptions. The selection
// covers the chronic conditions that dominate repeat prescriptions.
var builtinICD10 = map[string]string{
	// Endocrine and metabolic
	"E03.9": "Hypothyroidism, unspecified",
	"E10.9": "Type 1 diabetes mellitus without complications",
	"E11.9": "Type 2 diabetes mellitus without complications",
	"E66.9": "Obesity, unspecified",
	"E78.0": "Pure hypercholesterolaemia",
	"E78.5": "Hyperlipidaemia, unspecified",

	// Mental and behavioural
	"F32.9": "Depressive episode, unspecified",
	"F41.1": "Generalised anxiety disorder",
	"F41.9": "Anxiety disorder, unspecified",
	"F43.1": "Post-traumatic stress disorder",

	// Circulatory
	"I10":   "Essential (primary) hypertension",
	"I11.9": "Hypertensive heart disease without heart failure",
	"I25.9": "Chronic ischaemic heart disease, unspecified",
	"I50.9": "Heart failure, unspecified",

	// Respiratory
	"J00":   "Acute nasopharyngitis [common cold]",
	"J02.9": "Acute pharyngitis, unspecified",
	"J06.9": "Acute upper respiratory infection, unspecified",
	"J18.9": "Pneumonia, unspecified",
	"J44.9": "Chronic obstructive pulmonary disease, unspecified",
	"J45.9": "Asthma, unspecified",

	// Musculoskeletal
	"M06.9": "Rheumatoid arthritis, unspecified",
	"M17.9": "Osteoarthritis of knee, unspecified",
	"M54.5": "Low back pain",

	// Genitourinary
	"N18.9": "Chronic kidney disease, unspecified",
	"N39.0": "Urinary tract infection, site not specified",

	// Infectious
	"A09":   "Diarrhoea and gastroenteritis of presumed infectious origin",
	"A15.0": "Tuberculosis of lung",
	"B20":   "Human immunodeficiency virus [HIV] disease",

	// Nervous system and digestive
	"G40.9": "Epilepsy, unspecified",
	"G43.9": "Migraine, unspecified",
	"K21.0": "Gastro-oesophageal reflux disease with oesophagitis",
	"K21.9": "Gastro-oesophageal reflux disease without oesophagitis",
	"R51":   "Headache",

	// Health services contact
	"Z00.0": "General medical examination",
	"Z76.0": "Issue of repeat prescription",
}
