// Package safety classifies a matched drug's pregnancy risk by trimester,
// producing localized explanations, per-trimester narratives and, when the
// risk is danger, safer alternatives resolved through the catalog.
package safety

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
)

// ErrInvalidTrimester is returned when the trimester is outside
// {first, second, third}. Rejected before any classification runs.
var ErrInvalidTrimester = errors.New("invalid trimester")

// Compile-time check to ensure PregnancyClassifier implements Classifier
var _ interfaces.Classifier = (*PregnancyClassifier)(nil)

// PregnancyClassifier assesses pregnancy safety for matched drug records.
// It holds no state between calls; every assessment is a pure function of
// its inputs apart from the catalog reads that resolve alternatives.
type PregnancyClassifier struct {
	matcher interfaces.Matcher
}

// NewPregnancyClassifier creates a classifier that resolves alternative
// drug names through the given matcher.
func NewPregnancyClassifier(matcher interfaces.Matcher) *PregnancyClassifier {
	return &PregnancyClassifier{matcher: matcher}
}

// Assess classifies one (drug, trimester) pair. Category X forces danger
// for every trimester regardless of the stored trimester map.
func (c *PregnancyClassifier) Assess(ctx context.Context, drug *entities.DrugRecord, trimester entities.Trimester, locale string) (*entities.SafetyAssessment, error) {
	if drug == nil {
		return nil, fmt.Errorf("no drug record to assess")
	}
	if !entities.ValidTrimester(trimester) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTrimester, trimester)
	}

	loc := ResolveLocale(locale)
	risks := effectiveRisks(drug)
	risk := risks.For(trimester)

	assessment := &entities.SafetyAssessment{
		Drug:              drug,
		Trimester:         trimester,
		RiskLevel:         risk,
		Category:          drug.Category,
		TrimesterRisks:    risks,
		Locale:            loc,
		Explanation:       explanations[loc][risk],
		BreastfeedingNote: breastfeedingNotes[loc][drug.BreastfeedingSafe],
	}

	// Narratives cover all three trimesters so the UI can switch
	// trimester without re-querying.
	for _, t := range entities.Trimesters {
		assessment.Narratives = append(assessment.Narratives, entities.TrimesterNarrative{
			Trimester: t,
			Risk:      risks.For(t),
			Narrative: narrativeFor(loc, t, risks.For(t)),
		})
	}

	if risk == entities.RiskDanger {
		alternatives, err := c.resolveAlternatives(ctx, drug)
		if err != nil {
			return nil, err
		}
		assessment.Alternatives = alternatives
	}

	return assessment, nil
}

// effectiveRisks applies the category override: an X-rated drug is danger
// in every trimester no matter what the stored map says.
func effectiveRisks(drug *entities.DrugRecord) entities.TrimesterRisks {
	if drug.Category == entities.CategoryX {
		return entities.TrimesterRisks{
			First:  entities.RiskDanger,
			Second: entities.RiskDanger,
			Third:  entities.RiskDanger,
		}
	}
	return drug.TrimesterRisks
}

// resolveAlternatives resolves the drug's safe-alternative names through
// the catalog. Lookups run in parallel, but the result keeps the declared
// order: each lookup writes into its own slot and unresolvable names are
// skipped during reassembly.
func (c *PregnancyClassifier) resolveAlternatives(ctx context.Context, drug *entities.DrugRecord) ([]*entities.DrugRecord, error) {
	if len(drug.SafeAlternatives) == 0 {
		return nil, nil
	}

	resolved := make([]*entities.DrugRecord, len(drug.SafeAlternatives))
	g, _ := errgroup.WithContext(ctx)

	for i, name := range drug.SafeAlternatives {
		i, name := i, name
		g.Go(func() error {
			if candidates := c.matcher.Match(name, 1); len(candidates) > 0 {
				resolved[i] = candidates[0].Drug
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to resolve alternatives: %w", err)
	}

	alternatives := make([]*entities.DrugRecord, 0, len(resolved))
	seen := make(map[string]bool, len(resolved))
	for _, record := range resolved {
		if record == nil || record.ID == drug.ID || seen[record.ID] {
			continue
		}
		seen[record.ID] = true
		alternatives = append(alternatives, record)
	}
	return alternatives, nil
}
