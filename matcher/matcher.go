// Package matcher scores catalog records against free text and returns
// ranked match candidates. It serves both OCR-derived queries and manual
// search-box queries; the two call sites differ only in the result cap.
package matcher

import (
	"errors"
	"sort"
	"strings"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
)

// ErrNoMatchFound is reported when no candidate clears the confidence
// floor; callers should prompt the user to search manually.
var ErrNoMatchFound = errors.New("no match found")

const (
	// MinConfidence is the floor below which candidates are discarded.
	MinConfidence = 0.3

	// OCRMatchCap caps candidate lists for OCR-derived queries.
	OCRMatchCap = 5

	// ManualSearchCap caps candidate lists for manual search queries.
	ManualSearchCap = 10
)

// fieldWeights is the scoring weight table, in evaluation order. A record's
// overall score is the maximum weighted per-field score, not a sum: one
// strong field match must not be diluted by weak matches elsewhere.
var fieldWeights = []struct {
	field  entities.MatchField
	weight float64
}{
	{entities.MatchFieldName, 1.0},
	{entities.MatchFieldGenericName, 0.9},
	{entities.MatchFieldNafdacNumber, 0.7},
	{entities.MatchFieldManufacturer, 0.7},
}

// fieldPreference breaks exact score ties: name beats generic_name beats
// nafdac_number beats manufacturer.
var fieldPreference = map[entities.MatchField]int{
	entities.MatchFieldName:         0,
	entities.MatchFieldGenericName:  1,
	entities.MatchFieldNafdacNumber: 2,
	entities.MatchFieldManufacturer: 3,
}

// Compile-time check to ensure FuzzyMatcher implements Matcher
var _ interfaces.Matcher = (*FuzzyMatcher)(nil)

// FuzzyMatcher ranks catalog records against a query string.
type FuzzyMatcher struct {
	store interfaces.CatalogStore
}

// NewFuzzyMatcher creates a matcher over the given catalog store
func NewFuzzyMatcher(store interfaces.CatalogStore) *FuzzyMatcher {
	return &FuzzyMatcher{store: store}
}

// Match scores every catalog record against the query and returns at most
// max candidates, ranked by confidence. Output is deterministic for
// identical catalog contents and query: records are scanned in slice
// order and ties are broken by field preference, name, then id.
func (m *FuzzyMatcher) Match(query string, max int) []entities.MatchCandidate {
	query = strings.TrimSpace(query)
	if query == "" || max <= 0 {
		return nil
	}

	records := m.store.GetRecords()
	candidates := make([]entities.MatchCandidate, 0, max)

	for i := range records {
		score, field := scoreRecord(query, &records[i])
		if score < MinConfidence {
			continue
		}
		candidates = append(candidates, entities.MatchCandidate{
			Drug:         &records[i],
			Confidence:   score,
			MatchedField: field,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Confidence != candidates[b].Confidence {
			return candidates[a].Confidence > candidates[b].Confidence
		}
		if fieldPreference[candidates[a].MatchedField] != fieldPreference[candidates[b].MatchedField] {
			return fieldPreference[candidates[a].MatchedField] < fieldPreference[candidates[b].MatchedField]
		}
		if candidates[a].Drug.Name != candidates[b].Drug.Name {
			return candidates[a].Drug.Name < candidates[b].Drug.Name
		}
		return candidates[a].Drug.ID < candidates[b].Drug.ID
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}

// scoreRecord returns the maximum weighted per-field score for one record
// and the field that produced it.
func scoreRecord(query string, record *entities.DrugRecord) (float64, entities.MatchField) {
	best := 0.0
	bestField := entities.MatchFieldName

	for _, fw := range fieldWeights {
		var sim float64
		switch fw.field {
		case entities.MatchFieldName:
			sim = similarity(query, record.Name)
		case entities.MatchFieldGenericName:
			sim = similarity(query, record.GenericName)
		case entities.MatchFieldNafdacNumber:
			sim = nafdacSimilarity(query, record)
		case entities.MatchFieldManufacturer:
			sim = similarity(query, record.Manufacturer)
		}

		// Strict > keeps the earlier (higher-preference) field on ties
		if score := sim * fw.weight; score > best {
			best = score
			bestField = fw.field
		}
	}

	return best, bestField
}

// similarity is a case-insensitive substring/equality test: 1.0 for an
// exact match, length ratio for containment either way, else 0.
func similarity(query, field string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	f := strings.ToLower(strings.TrimSpace(field))
	if q == "" || f == "" {
		return 0
	}
	if q == f {
		return 1
	}

	shorter, longer := q, f
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		return float64(len(shorter)) / float64(len(longer))
	}
	return 0
}

// nafdacSimilarity compares the normalized query against the record's
// canonical registration number and its variants.
func nafdacSimilarity(query string, record *entities.DrugRecord) float64 {
	norm := entities.NormalizeNafdac(query)
	if norm == "" {
		return 0
	}

	if record.MatchesNafdac(query) {
		return 1
	}

	// A longer OCR fragment may embed the registration number
	canonical := entities.NormalizeNafdac(record.NafdacNumber)
	if canonical != "" && strings.Contains(norm, canonical) {
		return float64(len(canonical)) / float64(len(norm))
	}
	return 0
}
