package safety

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/obioma/drugscan-api/catalog/entities"
)

// stubMatcher resolves alternative names from a fixed table.
type stubMatcher struct {
	byName map[string]*entities.DrugRecord
}

func (s *stubMatcher) Match(query string, max int) []entities.MatchCandidate {
	record, exists := s.byName[strings.ToLower(query)]
	if !exists || max <= 0 {
		return nil
	}
	return []entities.MatchCandidate{{Drug: record, Confidence: 1.0, MatchedField: entities.MatchFieldName}}
}

func safeDrug() *entities.DrugRecord {
	return &entities.DrugRecord{
		ID:                "ng-panadol-500",
		Name:              "Panadol",
		Category:          entities.CategoryA,
		BreastfeedingSafe: true,
		TrimesterRisks: entities.TrimesterRisks{
			First:  entities.RiskSafe,
			Second: entities.RiskSafe,
			Third:  entities.RiskSafe,
		},
	}
}

func dangerDrug() *entities.DrugRecord {
	return &entities.DrugRecord{
		ID:       "ng-advil-200",
		Name:     "Advil",
		Category: entities.CategoryC,
		TrimesterRisks: entities.TrimesterRisks{
			First:  entities.RiskCaution,
			Second: entities.RiskCaution,
			Third:  entities.RiskDanger,
		},
		SafeAlternatives: []string{"Panadol", "Emzor Paracetamol", "Unknown Brand"},
	}
}

func TestAssessInvalidInput(t *testing.T) {
	c := NewPregnancyClassifier(&stubMatcher{})

	if _, err := c.Assess(context.Background(), nil, entities.TrimesterFirst, "en"); err == nil {
		t.Error("Assess with nil drug should fail")
	}

	_, err := c.Assess(context.Background(), safeDrug(), "fourth", "en")
	if !errors.Is(err, ErrInvalidTrimester) {
		t.Errorf("Assess with invalid trimester: error = %v, expected ErrInvalidTrimester", err)
	}
}

func TestAssessSafeDrug(t *testing.T) {
	c := NewPregnancyClassifier(&stubMatcher{})

	assessment, err := c.Assess(context.Background(), safeDrug(), entities.TrimesterFirst, "en")
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if assessment.RiskLevel != entities.RiskSafe {
		t.Errorf("RiskLevel = %s, expected safe", assessment.RiskLevel)
	}
	if assessment.Category != entities.CategoryA {
		t.Errorf("Category = %s, expected A", assessment.Category)
	}
	if len(assessment.Alternatives) != 0 {
		t.Errorf("safe drug should carry no alternatives, got %d", len(assessment.Alternatives))
	}
	if assessment.Locale != "en" {
		t.Errorf("Locale = %s, expected en", assessment.Locale)
	}
	if assessment.BreastfeedingNote == "" {
		t.Error("BreastfeedingNote should not be empty")
	}
}

func TestAssessNarrativesCoverAllTrimesters(t *testing.T) {
	c := NewPregnancyClassifier(&stubMatcher{})

	assessment, err := c.Assess(context.Background(), dangerDrug(), entities.TrimesterFirst, "en")
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if len(assessment.Narratives) != 3 {
		t.Fatalf("expected 3 narratives, got %d", len(assessment.Narratives))
	}
	for i, trimester := range entities.Trimesters {
		if assessment.Narratives[i].Trimester != trimester {
			t.Errorf("narrative %d trimester = %s, expected %s", i, assessment.Narratives[i].Trimester, trimester)
		}
		if assessment.Narratives[i].Narrative == "" {
			t.Errorf("narrative %d is empty", i)
		}
	}
}

func TestAssessCategoryXOverride(t *testing.T) {
	c := NewPregnancyClassifier(&stubMatcher{})

	// The stored map says caution in the second trimester; category X must
	// force danger everywhere
	drug := &entities.DrugRecord{
		ID:       "ng-coumadin-5",
		Name:     "Coumadin",
		Category: entities.CategoryX,
		TrimesterRisks: entities.TrimesterRisks{
			First:  entities.RiskDanger,
			Second: entities.RiskCaution,
			Third:  entities.RiskDanger,
		},
	}

	for _, trimester := range entities.Trimesters {
		assessment, err := c.Assess(context.Background(), drug, trimester, "en")
		if err != nil {
			t.Fatalf("Assess(%s) returned error: %v", trimester, err)
		}
		if assessment.RiskLevel != entities.RiskDanger {
			t.Errorf("category X drug in %s trimester: risk = %s, expected danger", trimester, assessment.RiskLevel)
		}
		for _, narrative := range assessment.Narratives {
			if narrative.Risk != entities.RiskDanger {
				t.Errorf("category X narrative for %s: risk = %s, expected danger", narrative.Trimester, narrative.Risk)
			}
		}
	}
}

func TestAssessDangerResolvesAlternatives(t *testing.T) {
	panadol := &entities.DrugRecord{ID: "ng-panadol-500", Name: "Panadol"}
	emzor := &entities.DrugRecord{ID: "ng-emzor-para-500", Name: "Emzor Paracetamol"}

	c := NewPregnancyClassifier(&stubMatcher{byName: map[string]*entities.DrugRecord{
		"panadol":           panadol,
		"emzor paracetamol": emzor,
	}})

	assessment, err := c.Assess(context.Background(), dangerDrug(), entities.TrimesterThird, "en")
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if assessment.RiskLevel != entities.RiskDanger {
		t.Fatalf("RiskLevel = %s, expected danger", assessment.RiskLevel)
	}

	// "Unknown Brand" resolves to nothing and is skipped; the declared
	// order of the rest is preserved
	if len(assessment.Alternatives) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(assessment.Alternatives))
	}
	if assessment.Alternatives[0].ID != "ng-panadol-500" {
		t.Errorf("first alternative = %s, expected ng-panadol-500", assessment.Alternatives[0].ID)
	}
	if assessment.Alternatives[1].ID != "ng-emzor-para-500" {
		t.Errorf("second alternative = %s, expected ng-emzor-para-500", assessment.Alternatives[1].ID)
	}
}

func TestAssessAlternativesSkipSelfAndDuplicates(t *testing.T) {
	panadol := &entities.DrugRecord{ID: "ng-panadol-500", Name: "Panadol"}

	drug := &entities.DrugRecord{
		ID:       "ng-cytotec-200",
		Name:     "Cytotec",
		Category: entities.CategoryX,
		// The drug naming itself and a duplicate entry must both collapse
		SafeAlternatives: []string{"Cytotec", "Panadol", "Panadol"},
	}

	c := NewPregnancyClassifier(&stubMatcher{byName: map[string]*entities.DrugRecord{
		"cytotec": drug,
		"panadol": panadol,
	}})

	assessment, err := c.Assess(context.Background(), drug, entities.TrimesterFirst, "en")
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if len(assessment.Alternatives) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(assessment.Alternatives))
	}
	if assessment.Alternatives[0].ID != "ng-panadol-500" {
		t.Errorf("alternative = %s, expected ng-panadol-500", assessment.Alternatives[0].ID)
	}
}

func TestAssessPidginLocale(t *testing.T) {
	c := NewPregnancyClassifier(&stubMatcher{})

	english, err := c.Assess(context.Background(), safeDrug(), entities.TrimesterFirst, "en")
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}
	pidgin, err := c.Assess(context.Background(), safeDrug(), entities.TrimesterFirst, "pcm")
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if pidgin.Locale != "pcm" {
		t.Errorf("Locale = %s, expected pcm", pidgin.Locale)
	}
	if pidgin.Explanation == english.Explanation {
		t.Error("pidgin explanation should differ from english")
	}
	if pidgin.Narratives[0].Narrative == english.Narratives[0].Narrative {
		t.Error("pidgin narrative should differ from english")
	}
}
