package catalog

import (
	"context"
	"time"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
)

// Compile-time check to ensure SeedSource implements CatalogSource
var _ interfaces.CatalogSource = (*SeedSource)(nil)

// SeedSource serves the built-in record set. It is the last-resort load
// source so the pipeline stays usable with no snapshot and no network.
type SeedSource struct{}

// NewSeedSource creates the built-in seed source
func NewSeedSource() *SeedSource {
	return &SeedSource{}
}

// Name identifies the source in logs and health output
func (s *SeedSource) Name() string {
	return "seed"
}

// Fetch returns a fresh copy of the seed records
func (s *SeedSource) Fetch(ctx context.Context) ([]entities.DrugRecord, error) {
	records := make([]entities.DrugRecord, len(seedRecords))
	copy(records, seedRecords)
	return records, nil
}

var seedVerifiedAt = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

// seedRecords is a small catalog of common Nigerian-market products spanning
// all pregnancy categories, used when the snapshot and the remote service
// are both unavailable.
var seedRecords = []entities.DrugRecord{
	{
		ID:                "ng-panadol-500",
		NafdacNumber:      "A4-0945L",
		NafdacVariants:    []string{"04-0945", "A40945L"},
		Name:              "Panadol",
		GenericName:       "Paracetamol",
		Manufacturer:      "GlaxoSmithKline Consumer Nigeria",
		Country:           "Nigeria",
		DosageForm:        entities.FormTablet,
		Strength:          "500mg",
		Category:          entities.CategoryA,
		PregnancySafe:     true,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskSafe, Second: entities.RiskSafe, Third: entities.RiskSafe},
		BreastfeedingSafe: true,
		Authentic:         true,
		CounterfeitNames:  []string{"Pandol", "Panadol Extra Gold"},
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"nausea", "rash"},
		Contraindications: []string{"severe liver disease"},
		Warning:           "Do not exceed 4g in 24 hours.",
		PriceRange:        "NGN 300 - 700",
	},
	{
		ID:                "ng-emzor-para-500",
		NafdacNumber:      "04-0053",
		Name:              "Emzor Paracetamol",
		GenericName:       "Paracetamol",
		Manufacturer:      "Emzor Pharmaceutical Industries",
		Country:           "Nigeria",
		DosageForm:        entities.FormTablet,
		Strength:          "500mg",
		Category:          entities.CategoryA,
		PregnancySafe:     true,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskSafe, Second: entities.RiskSafe, Third: entities.RiskSafe},
		BreastfeedingSafe: true,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"nausea"},
		PriceRange:        "NGN 100 - 300",
	},
	{
		ID:                "ng-amoxil-500",
		NafdacNumber:      "A4-0811",
		Name:              "Amoxil",
		GenericName:       "Amoxicillin",
		Manufacturer:      "GlaxoSmithKline",
		Country:           "United Kingdom",
		DosageForm:        entities.FormCapsule,
		Strength:          "500mg",
		Category:          entities.CategoryB,
		PregnancySafe:     true,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskSafe, Second: entities.RiskSafe, Third: entities.RiskSafe},
		BreastfeedingSafe: true,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"diarrhoea", "rash"},
		Contraindications: []string{"penicillin allergy"},
		PriceRange:        "NGN 800 - 1500",
	},
	{
		ID:                "ng-advil-200",
		NafdacNumber:      "A4-2210",
		Name:              "Advil",
		GenericName:       "Ibuprofen",
		Manufacturer:      "Haleon",
		Country:           "United States",
		DosageForm:        entities.FormTablet,
		Strength:          "200mg",
		Category:          entities.CategoryC,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskCaution, Second: entities.RiskCaution, Third: entities.RiskDanger},
		BreastfeedingSafe: true,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"stomach upset", "heartburn"},
		Contraindications: []string{"peptic ulcer", "third trimester of pregnancy"},
		Warning:           "Avoid from week 20 of pregnancy; risk of fetal kidney problems and low amniotic fluid.",
		SafeAlternatives:  []string{"Panadol", "Emzor Paracetamol"},
		PriceRange:        "NGN 500 - 1200",
	},
	{
		ID:                "ng-voltaren-50",
		NafdacNumber:      "04-7731",
		Name:              "Voltaren",
		GenericName:       "Diclofenac",
		Manufacturer:      "Novartis",
		Country:           "Switzerland",
		DosageForm:        entities.FormTablet,
		Strength:          "50mg",
		Category:          entities.CategoryD,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskCaution, Second: entities.RiskCaution, Third: entities.RiskDanger},
		BreastfeedingSafe: false,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"stomach pain", "dizziness"},
		Contraindications: []string{"late pregnancy", "active gastric bleeding"},
		Warning:           "Not for use in the third trimester; premature closure of the ductus arteriosus.",
		SafeAlternatives:  []string{"Panadol"},
		PriceRange:        "NGN 700 - 1600",
	},
	{
		ID:                "ng-cytotec-200",
		NafdacNumber:      "A4-6090",
		Name:              "Cytotec",
		GenericName:       "Misoprostol",
		Manufacturer:      "Pfizer",
		Country:           "United States",
		DosageForm:        entities.FormTablet,
		Strength:          "200mcg",
		Category:          entities.CategoryX,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskDanger, Second: entities.RiskDanger, Third: entities.RiskDanger},
		BreastfeedingSafe: false,
		Authentic:         true,
		Controlled:        true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"cramping", "bleeding"},
		Contraindications: []string{"pregnancy"},
		Warning:           "Causes uterine contractions and pregnancy loss. Never use while pregnant.",
		PriceRange:        "NGN 1500 - 4000",
	},
	{
		ID:                "ng-coartem-80-480",
		NafdacNumber:      "A4-1002",
		Name:              "Coartem",
		GenericName:       "Artemether/Lumefantrine",
		Manufacturer:      "Novartis",
		Country:           "Switzerland",
		DosageForm:        entities.FormTablet,
		Strength:          "80/480mg",
		Category:          entities.CategoryC,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskCaution, Second: entities.RiskSafe, Third: entities.RiskSafe},
		BreastfeedingSafe: true,
		Authentic:         true,
		CounterfeitNames:  []string{"Coartem Forte"},
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"headache", "dizziness", "loss of appetite"},
		Warning:           "Use in the first trimester only when no suitable alternative exists.",
		PriceRange:        "NGN 1800 - 3500",
	},
	{
		ID:                "ng-flagyl-400",
		NafdacNumber:      "04-2217",
		Name:              "Flagyl",
		GenericName:       "Metronidazole",
		Manufacturer:      "Sanofi",
		Country:           "France",
		DosageForm:        entities.FormTablet,
		Strength:          "400mg",
		Category:          entities.CategoryB,
		PregnancySafe:     true,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskCaution, Second: entities.RiskSafe, Third: entities.RiskSafe},
		BreastfeedingSafe: false,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"metallic taste", "nausea"},
		Contraindications: []string{"alcohol use during treatment"},
		PriceRange:        "NGN 400 - 900",
	},
	{
		ID:                "ng-ciprotab-500",
		NafdacNumber:      "A4-3304",
		Name:              "Ciprotab",
		GenericName:       "Ciprofloxacin",
		Manufacturer:      "Fidson Healthcare",
		Country:           "Nigeria",
		DosageForm:        entities.FormTablet,
		Strength:          "500mg",
		Category:          entities.CategoryC,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskCaution, Second: entities.RiskCaution, Third: entities.RiskCaution},
		BreastfeedingSafe: false,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"tendon pain", "nausea"},
		Contraindications: []string{"children under 12"},
		SafeAlternatives:  []string{"Amoxil"},
		PriceRange:        "NGN 600 - 1400",
	},
	{
		ID:                "ng-folic-5",
		NafdacNumber:      "04-9120",
		Name:              "Folic Acid",
		GenericName:       "Folic Acid",
		Manufacturer:      "Emzor Pharmaceutical Industries",
		Country:           "Nigeria",
		DosageForm:        entities.FormTablet,
		Strength:          "5mg",
		Category:          entities.CategoryA,
		PregnancySafe:     true,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskSafe, Second: entities.RiskSafe, Third: entities.RiskSafe},
		BreastfeedingSafe: true,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		PriceRange:        "NGN 100 - 250",
	},
	{
		ID:                "ng-tetracycline-250",
		NafdacNumber:      "04-5528",
		Name:              "Tetracycline",
		GenericName:       "Tetracycline",
		Manufacturer:      "May & Baker Nigeria",
		Country:           "Nigeria",
		DosageForm:        entities.FormCapsule,
		Strength:          "250mg",
		Category:          entities.CategoryD,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskDanger, Second: entities.RiskDanger, Third: entities.RiskDanger},
		BreastfeedingSafe: false,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"photosensitivity", "tooth discolouration in the fetus"},
		Contraindications: []string{"pregnancy", "children under 8"},
		Warning:           "Stains developing teeth and affects fetal bone growth.",
		SafeAlternatives:  []string{"Amoxil"},
		PriceRange:        "NGN 300 - 800",
	},
	{
		ID:                "ng-coumadin-5",
		NafdacNumber:      "A4-7781",
		Name:              "Coumadin",
		GenericName:       "Warfarin",
		Manufacturer:      "Bristol-Myers Squibb",
		Country:           "United States",
		DosageForm:        entities.FormTablet,
		Strength:          "5mg",
		Category:          entities.CategoryX,
		PregnancySafe:     false,
		TrimesterRisks:    entities.TrimesterRisks{First: entities.RiskDanger, Second: entities.RiskCaution, Third: entities.RiskDanger},
		BreastfeedingSafe: true,
		Authentic:         true,
		VerifiedAt:        seedVerifiedAt,
		SideEffects:       []string{"bleeding", "bruising"},
		Contraindications: []string{"pregnancy"},
		Warning:           "Crosses the placenta and causes fetal malformations. Specialist review required.",
		SafeAlternatives:  []string{"Clexane"},
		PriceRange:        "NGN 2500 - 6000",
	},
}
