package entities

// OCRExtraction is the structured guess derived from one raw OCR text.
// It is created fresh per scan and never persisted by the core.
type OCRExtraction struct {
	RawText      string  `json:"rawText"`
	DrugName     string  `json:"drugName,omitempty"`
	NafdacNumber string  `json:"nafdacNumber,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	BatchNumber  string  `json:"batchNumber,omitempty"`
	ExpiryDate   string  `json:"expiryDate,omitempty"`
	Confidence   float64 `json:"confidence"`
}

// FieldCount returns how many of the five guessed fields are populated.
func (e *OCRExtraction) FieldCount() int {
	count := 0
	for _, field := range []string{e.DrugName, e.NafdacNumber, e.Manufacturer, e.BatchNumber, e.ExpiryDate} {
		if field != "" {
			count++
		}
	}
	return count
}

// MatchField identifies which record attribute produced a candidate's score.
type MatchField string

const (
	MatchFieldName         MatchField = "name"
	MatchFieldGenericName  MatchField = "generic_name"
	MatchFieldNafdacNumber MatchField = "nafdac_number"
	MatchFieldManufacturer MatchField = "manufacturer"
)

// MatchCandidate pairs a catalog record with the confidence of a text match.
// The record is shared with the catalog, not owned.
type MatchCandidate struct {
	Drug         *DrugRecord `json:"drug"`
	Confidence   float64     `json:"confidence"`
	MatchedField MatchField  `json:"matchedField"`
}

// TrimesterNarrative is the display text for one trimester's risk.
type TrimesterNarrative struct {
	Trimester Trimester `json:"trimester"`
	Risk      RiskLevel `json:"risk"`
	Narrative string    `json:"narrative"`
}

// SafetyAssessment is the classification outcome for one (drug, trimester)
// pair. Alternatives are populated only when the risk level is danger.
type SafetyAssessment struct {
	Drug              *DrugRecord          `json:"drug"`
	Trimester         Trimester            `json:"trimester"`
	RiskLevel         RiskLevel            `json:"riskLevel"`
	Category          PregnancyCategory    `json:"category"`
	TrimesterRisks    TrimesterRisks       `json:"trimesterRisks"`
	Locale            string               `json:"locale"`
	Explanation       string               `json:"explanation"`
	Narratives        []TrimesterNarrative `json:"narratives"`
	Alternatives      []*DrugRecord        `json:"alternatives,omitempty"`
	BreastfeedingNote string               `json:"breastfeedingNote"`
}
