// Package entities defines the data types shared by the drugscan catalog,
// matcher and safety classifier.
package entities

import (
	"strings"
	"time"
)

// DosageForm is the pharmaceutical form printed on the package.
type DosageForm string

const (
	FormTablet      DosageForm = "tablet"
	FormCapsule     DosageForm = "capsule"
	FormSyrup       DosageForm = "syrup"
	FormSuspension  DosageForm = "suspension"
	FormInjection   DosageForm = "injection"
	FormCream       DosageForm = "cream"
	FormOintment    DosageForm = "ointment"
	FormDrops       DosageForm = "drops"
	FormPowder      DosageForm = "powder"
	FormSachet      DosageForm = "sachet"
	FormSuppository DosageForm = "suppository"
	FormInhaler     DosageForm = "inhaler"
	FormSolution    DosageForm = "solution"
)

// ValidDosageForm reports whether f is one of the recognized dosage forms.
func ValidDosageForm(f DosageForm) bool {
	switch f {
	case FormTablet, FormCapsule, FormSyrup, FormSuspension, FormInjection,
		FormCream, FormOintment, FormDrops, FormPowder, FormSachet,
		FormSuppository, FormInhaler, FormSolution:
		return true
	}
	return false
}

// PregnancyCategory is the letter grade summarizing known fetal risk.
type PregnancyCategory string

const (
	CategoryA PregnancyCategory = "A"
	CategoryB PregnancyCategory = "B"
	CategoryC PregnancyCategory = "C"
	CategoryD PregnancyCategory = "D"
	CategoryX PregnancyCategory = "X"
)

// ValidPregnancyCategory reports whether c is one of A, B, C, D or X.
func ValidPregnancyCategory(c PregnancyCategory) bool {
	switch c {
	case CategoryA, CategoryB, CategoryC, CategoryD, CategoryX:
		return true
	}
	return false
}

// Trimester identifies one of the three pregnancy trimesters.
type Trimester string

const (
	TrimesterFirst  Trimester = "first"
	TrimesterSecond Trimester = "second"
	TrimesterThird  Trimester = "third"
)

// Trimesters lists all trimesters in chronological order.
var Trimesters = []Trimester{TrimesterFirst, TrimesterSecond, TrimesterThird}

// ValidTrimester reports whether t is first, second or third.
func ValidTrimester(t Trimester) bool {
	switch t {
	case TrimesterFirst, TrimesterSecond, TrimesterThird:
		return true
	}
	return false
}

// RiskLevel is the classification outcome for a (drug, trimester) pair.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskCaution RiskLevel = "caution"
	RiskDanger  RiskLevel = "danger"
)

// ValidRiskLevel reports whether r is safe, caution or danger.
func ValidRiskLevel(r RiskLevel) bool {
	switch r {
	case RiskSafe, RiskCaution, RiskDanger:
		return true
	}
	return false
}

// TrimesterRisks holds the per-trimester risk classification. Using a struct
// instead of a map keeps the three-trimesters invariant structural: there is
// no way to build a record with a trimester missing.
type TrimesterRisks struct {
	First  RiskLevel `json:"first"`
	Second RiskLevel `json:"second"`
	Third  RiskLevel `json:"third"`
}

// For returns the risk stored for the given trimester.
func (tr TrimesterRisks) For(t Trimester) RiskLevel {
	switch t {
	case TrimesterSecond:
		return tr.Second
	case TrimesterThird:
		return tr.Third
	default:
		return tr.First
	}
}

// DrugRecord is a reference catalog entry for one registered drug product.
type DrugRecord struct {
	ID                string            `json:"id"`
	NafdacNumber      string            `json:"nafdacNumber"`
	NafdacVariants    []string          `json:"nafdacVariants,omitempty"`
	Name              string            `json:"name"`
	GenericName       string            `json:"genericName"`
	Manufacturer      string            `json:"manufacturer"`
	Country           string            `json:"country"`
	DosageForm        DosageForm        `json:"dosageForm"`
	Strength          string            `json:"strength"`
	Category          PregnancyCategory `json:"pregnancyCategory"`
	PregnancySafe     bool              `json:"pregnancySafe"`
	TrimesterRisks    TrimesterRisks    `json:"trimesterRisks"`
	BreastfeedingSafe bool              `json:"breastfeedingSafe"`
	Authentic         bool              `json:"authentic"`
	CounterfeitNames  []string          `json:"counterfeitNames,omitempty"`
	Controlled        bool              `json:"controlled"`
	VerifiedAt        time.Time         `json:"verifiedAt"`
	SideEffects       []string          `json:"sideEffects,omitempty"`
	Contraindications []string          `json:"contraindications,omitempty"`
	Warning           string            `json:"warning,omitempty"`
	SafeAlternatives  []string          `json:"safeAlternatives,omitempty"`
	PriceRange        string            `json:"priceRange,omitempty"`
}

// NormalizeNafdac canonicalizes a registration number for comparison: every
// rune that is not a letter or digit is dropped and the rest is uppercased.
// Applying it twice yields the same result as applying it once.
func NormalizeNafdac(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchesNafdac reports whether the given number matches the record's
// canonical registration number or any known variant spelling.
func (d *DrugRecord) MatchesNafdac(number string) bool {
	norm := NormalizeNafdac(number)
	if norm == "" {
		return false
	}
	if NormalizeNafdac(d.NafdacNumber) == norm {
		return true
	}
	for _, variant := range d.NafdacVariants {
		if NormalizeNafdac(variant) == norm {
			return true
		}
	}
	return false
}
