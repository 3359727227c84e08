// Package interfaces defines core abstractions for the drugscan API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/obioma/drugscan-api/catalog/entities"
)

// DataQualityReport provides a summary of catalog quality issues found
// during a load or refresh.
type DataQualityReport struct {
	DuplicateNafdac          []string // Normalized registration numbers seen more than once
	RecordsWithoutRisks      int      // Records whose trimester risks are all empty
	RecordsWithoutGeneric    int      // Records missing a generic name
	UnresolvableAlternatives []string // Alternative names that match nothing in the catalog
}

// CatalogStore defines the contract for catalog storage operations.
// It provides thread-safe access to drug records with atomic operations
// for zero-downtime refreshes.
type CatalogStore interface {
	// Data retrieval methods
	GetRecords() []entities.DrugRecord
	GetRecordsByID() map[string]*entities.DrugRecord
	GetRecordsByNafdac() map[string]*entities.DrugRecord
	GetLastUpdated() time.Time
	GetSource() string
	IsUpdating() bool

	// Data update methods
	ReplaceRecords(records []entities.DrugRecord, source string)
	BeginUpdate() bool
	EndUpdate()
}

// CatalogSource is one ordered origin the catalog can load records from
// (local snapshot store, remote search service, built-in seed).
type CatalogSource interface {
	// Name identifies the source in logs and health output.
	Name() string

	// Fetch returns every record the source can provide. An empty slice
	// with a nil error means the source is reachable but has no data.
	Fetch(ctx context.Context) ([]entities.DrugRecord, error)
}

// SnapshotStore persists a full catalog snapshot for offline reuse.
type SnapshotStore interface {
	CatalogSource

	// Save replaces the stored snapshot with the given records.
	Save(ctx context.Context, records []entities.DrugRecord) error

	Close() error
}

// Extractor turns raw OCR text into a structured field guess.
type Extractor interface {
	Extract(rawText string) (*entities.OCRExtraction, error)
}

// Matcher scores catalog records against a free-text query and returns
// ranked candidates above the confidence floor.
type Matcher interface {
	Match(query string, cap int) []entities.MatchCandidate
}

// Classifier produces a pregnancy safety assessment for a matched record.
type Classifier interface {
	Assess(ctx context.Context, drug *entities.DrugRecord, trimester entities.Trimester, locale string) (*entities.SafetyAssessment, error)
}

// HTTPHandler defines the contract for HTTP request handlers.
// It provides a consistent interface for all API endpoints.
type HTTPHandler interface {
	// ServeHTTP implements the http.Handler interface
	ServeHTTP(w http.ResponseWriter, r *http.Request)

	// Specific endpoint handlers
	ScanPackage(w http.ResponseWriter, r *http.Request)
	SearchDrugs(w http.ResponseWriter, r *http.Request)
	FindDrugByNafdac(w http.ResponseWriter, r *http.Request)
	FindDrugByID(w http.ResponseWriter, r *http.Request)
	AssessSafety(w http.ResponseWriter, r *http.Request)
	ServeCatalog(w http.ResponseWriter, r *http.Request)
	ServePagedCatalog(w http.ResponseWriter, r *http.Request)

	// This will stay in all versions
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// Scheduler defines the contract for catalog refresh scheduling and
// staleness monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled refresh time
	CalculateNextUpdate() time.Time
}

// InputValidator validates user-supplied query strings and parameters
// before they reach the matching or classification layers.
type InputValidator interface {
	ValidateInput(input string) error
	ValidateNafdac(input string) (string, error)
	ValidateTrimester(input string) (entities.Trimester, error)
}
