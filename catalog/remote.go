package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
)

// Compile-time check to ensure RemoteSource implements CatalogSource
var _ interfaces.CatalogSource = (*RemoteSource)(nil)

// RemoteSource pulls the full catalog from the remote drug-search service.
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

// NewRemoteSource creates a remote catalog source for the given base URL
func NewRemoteSource(baseURL string) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Name identifies the source in logs and health output
func (r *RemoteSource) Name() string {
	return "remote"
}

// drugPayload mirrors the remote service's loosely shaped response. Every
// field is mapped through mapRecord so a malformed entry yields an explicit
// mapping error instead of a partially-initialized record.
type drugPayload struct {
	ID                string            `json:"id"`
	NafdacNumber      string            `json:"nafdac_number"`
	NafdacVariants    []string          `json:"nafdac_variants"`
	Name              string            `json:"name"`
	GenericName       string            `json:"generic_name"`
	Manufacturer      string            `json:"manufacturer"`
	Country           string            `json:"country"`
	DosageForm        string            `json:"dosage_form"`
	Strength          string            `json:"strength"`
	Category          string            `json:"pregnancy_category"`
	PregnancySafe     bool              `json:"pregnancy_safe"`
	TrimesterRisks    map[string]string `json:"trimester_risks"`
	BreastfeedingSafe bool              `json:"breastfeeding_safe"`
	Authentic         bool              `json:"authentic"`
	CounterfeitNames  []string          `json:"counterfeit_names"`
	Controlled        bool              `json:"controlled"`
	VerifiedAt        string            `json:"verified_at"`
	SideEffects       []string          `json:"side_effects"`
	Contraindications []string          `json:"contraindications"`
	Warning           string            `json:"warning"`
	SafeAlternatives  []string          `json:"safe_alternatives"`
	PriceRange        string            `json:"price_range"`
}

// Fetch downloads and maps every record the remote service provides.
// Records that fail strict mapping are skipped with a warning.
func (r *RemoteSource) Fetch(ctx context.Context) ([]entities.DrugRecord, error) {
	if r.baseURL == "" {
		return nil, fmt.Errorf("remote catalog URL is not configured")
	}

	url := r.baseURL + "/drugs"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	response, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote catalog returned status %d for %s", response.StatusCode, url)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, 32*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payloads []drugPayload
	if err := json.Unmarshal(bodyBytes, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode remote catalog: %w", err)
	}

	records := make([]entities.DrugRecord, 0, len(payloads))
	for i := range payloads {
		record, err := mapRecord(&payloads[i])
		if err != nil {
			logging.Warn("Skipping invalid remote record", "error", err, "id", payloads[i].ID)
			continue
		}
		records = append(records, record)
	}

	logging.Debug("Remote catalog downloaded", "total", len(payloads), "valid", len(records))
	return records, nil
}

// mapRecord converts a raw payload into a well-formed DrugRecord or fails
// with an explicit mapping error, never a half-built record.
func mapRecord(p *drugPayload) (entities.DrugRecord, error) {
	var zero entities.DrugRecord

	if strings.TrimSpace(p.ID) == "" {
		return zero, fmt.Errorf("missing id")
	}
	if strings.TrimSpace(p.Name) == "" {
		return zero, fmt.Errorf("missing name for %s", p.ID)
	}
	if entities.NormalizeNafdac(p.NafdacNumber) == "" {
		return zero, fmt.Errorf("missing registration number for %s", p.ID)
	}

	form := entities.DosageForm(strings.ToLower(strings.TrimSpace(p.DosageForm)))
	if !entities.ValidDosageForm(form) {
		return zero, fmt.Errorf("unknown dosage form %q for %s", p.DosageForm, p.ID)
	}

	category := entities.PregnancyCategory(strings.ToUpper(strings.TrimSpace(p.Category)))
	if !entities.ValidPregnancyCategory(category) {
		return zero, fmt.Errorf("unknown pregnancy category %q for %s", p.Category, p.ID)
	}

	risks, err := mapTrimesterRisks(p.TrimesterRisks, p.ID)
	if err != nil {
		return zero, err
	}

	verifiedAt := time.Time{}
	if p.VerifiedAt != "" {
		verifiedAt, err = time.Parse(time.RFC3339, p.VerifiedAt)
		if err != nil {
			return zero, fmt.Errorf("invalid verified_at %q for %s: %w", p.VerifiedAt, p.ID, err)
		}
	}

	return entities.DrugRecord{
		ID:                strings.TrimSpace(p.ID),
		NafdacNumber:      strings.TrimSpace(p.NafdacNumber),
		NafdacVariants:    p.NafdacVariants,
		Name:              strings.TrimSpace(p.Name),
		GenericName:       strings.TrimSpace(p.GenericName),
		Manufacturer:      strings.TrimSpace(p.Manufacturer),
		Country:           strings.TrimSpace(p.Country),
		DosageForm:        form,
		Strength:          strings.TrimSpace(p.Strength),
		Category:          category,
		PregnancySafe:     p.PregnancySafe,
		TrimesterRisks:    risks,
		BreastfeedingSafe: p.BreastfeedingSafe,
		Authentic:         p.Authentic,
		CounterfeitNames:  p.CounterfeitNames,
		Controlled:        p.Controlled,
		VerifiedAt:        verifiedAt,
		SideEffects:       p.SideEffects,
		Contraindications: p.Contraindications,
		Warning:           p.Warning,
		SafeAlternatives:  p.SafeAlternatives,
		PriceRange:        p.PriceRange,
	}, nil
}

// mapTrimesterRisks requires all three trimester keys with valid levels.
func mapTrimesterRisks(raw map[string]string, id string) (entities.TrimesterRisks, error) {
	var risks entities.TrimesterRisks

	for _, trimester := range entities.Trimesters {
		value, exists := raw[string(trimester)]
		if !exists {
			return risks, fmt.Errorf("missing %s trimester risk for %s", trimester, id)
		}

		level := entities.RiskLevel(strings.ToLower(strings.TrimSpace(value)))
		if !entities.ValidRiskLevel(level) {
			return risks, fmt.Errorf("unknown risk level %q for %s trimester of %s", value, trimester, id)
		}

		switch trimester {
		case entities.TrimesterFirst:
			risks.First = level
		case entities.TrimesterSecond:
			risks.Second = level
		case entities.TrimesterThird:
			risks.Third = level
		}
	}

	return risks, nil
}
