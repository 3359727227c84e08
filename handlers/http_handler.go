// Package handlers provides HTTP request handlers for the drugscan API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/obioma/drugscan-api/catalog"
	"github.com/obioma/drugscan-api/catalog/entities"
	"github.com/obioma/drugscan-api/extractor"
	"github.com/obioma/drugscan-api/interfaces"
	"github.com/obioma/drugscan-api/logging"
	"github.com/obioma/drugscan-api/matcher"
	"github.com/obioma/drugscan-api/metrics"
	"github.com/obioma/drugscan-api/safety"
)

// Compile-time check
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	catalog    *catalog.Catalog
	extractor  interfaces.Extractor
	matcher    interfaces.Matcher
	classifier interfaces.Classifier
	validator  interfaces.InputValidator
	health     interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	cat *catalog.Catalog,
	ext interfaces.Extractor,
	match interfaces.Matcher,
	classifier interfaces.Classifier,
	validator interfaces.InputValidator,
	health interfaces.HealthChecker,
) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		catalog:    cat,
		extractor:  ext,
		matcher:    match,
		classifier: classifier,
		validator:  validator,
		health:     health,
	}
}

// ServeHTTP implements the http.Handler interface
func (h *HTTPHandlerImpl) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// This is a placeholder - the actual routing is handled by chi
	http.Error(w, "Not implemented", http.StatusNotImplemented)
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// ScanRequest is the JSON body accepted by the scan endpoint.
type ScanRequest struct {
	Text string `json:"text"`
}

// ScanPackage runs the OCR text through extraction and matching and returns
// ranked catalog candidates.
func (h *HTTPHandlerImpl) ScanPackage(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	extraction, err := h.extractor.Extract(req.Text)
	if err != nil {
		if errors.Is(err, extractor.ErrNoTextDetected) {
			metrics.ScansTotal.WithLabelValues("no_text").Inc()
			h.RespondWithError(w, http.StatusUnprocessableEntity, "No readable text detected")
			return
		}
		logging.Error("Extraction failed", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Extraction failed")
		return
	}
	metrics.ExtractionFields.Observe(float64(extraction.FieldCount()))

	candidates, matchErr := h.matchExtraction(extraction)
	metrics.MatchCandidates.Observe(float64(len(candidates)))

	outcome := "matched"
	if errors.Is(matchErr, matcher.ErrNoMatchFound) {
		outcome = "no_match_found"
	}
	metrics.ScansTotal.WithLabelValues(outcome).Inc()

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcome":    outcome,
		"extraction": extraction,
		"candidates": candidates,
	})
}

// matchExtraction turns an extraction into a ranked candidate list. A direct
// registration-number hit always ranks first with full confidence. Returns
// matcher.ErrNoMatchFound with an empty list when nothing clears the floor.
func (h *HTTPHandlerImpl) matchExtraction(extraction *entities.OCRExtraction) ([]entities.MatchCandidate, error) {
	candidates := make([]entities.MatchCandidate, 0, matcher.OCRMatchCap)

	if extraction.NafdacNumber != "" {
		if drug, err := h.catalog.LookupByNafdac(extraction.NafdacNumber); err == nil {
			candidates = append(candidates, entities.MatchCandidate{
				Drug:         drug,
				Confidence:   1.0,
				MatchedField: entities.MatchFieldNafdacNumber,
			})
		}
	}

	query := extraction.DrugName
	if query == "" {
		query = extraction.RawText
	}

	for _, cand := range h.matcher.Match(query, matcher.OCRMatchCap) {
		if len(candidates) >= matcher.OCRMatchCap {
			break
		}
		duplicate := false
		for _, existing := range candidates {
			if existing.Drug.ID == cand.Drug.ID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			candidates = append(candidates, cand)
		}
	}

	if len(candidates) == 0 {
		return candidates, matcher.ErrNoMatchFound
	}
	return candidates, nil
}

// SearchDrugs runs a manual free-text search against the catalog
func (h *HTTPHandlerImpl) SearchDrugs(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	if query == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing search term")
		return
	}

	// Validate input using the validator
	if err := h.validator.ValidateInput(query); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := h.matcher.Match(query, matcher.ManualSearchCap)
	if results == nil {
		results = []entities.MatchCandidate{}
	}

	// Always return 200 with results array (empty if no matches)
	h.RespondWithJSON(w, http.StatusOK, results)
}

// FindDrugByNafdac finds a drug by its NAFDAC registration number
func (h *HTTPHandlerImpl) FindDrugByNafdac(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	normalized, err := h.validator.ValidateNafdac(number)
	if err != nil {
		logging.Warn("Unusual user input", "nafdac", number)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	drug, err := h.catalog.LookupByNafdac(normalized)
	if err != nil {
		h.RespondWithError(w, http.StatusNotFound, "Drug not found in catalog")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, drug)
}

// FindDrugByID finds a drug by its catalog identifier
func (h *HTTPHandlerImpl) FindDrugByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateInput(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	drug, err := h.catalog.LookupByID(id)
	if err != nil {
		h.RespondWithError(w, http.StatusNotFound, "Drug not found in catalog")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, drug)
}

// AssessSafety classifies a catalog drug for a pregnancy trimester
func (h *HTTPHandlerImpl) AssessSafety(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.ValidateInput(id); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	trimester, err := h.validator.ValidateTrimester(chi.URLParam(r, "trimester"))
	if err != nil {
		logging.Warn("Unusual user input", "trimester", chi.URLParam(r, "trimester"))
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	drug, err := h.catalog.LookupByID(id)
	if err != nil {
		h.RespondWithError(w, http.StatusNotFound, "Drug not found in catalog")
		return
	}

	locale := r.URL.Query().Get("locale")

	assessment, err := h.classifier.Assess(r.Context(), drug, trimester, locale)
	if err != nil {
		if errors.Is(err, safety.ErrInvalidTrimester) {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Error("Safety assessment failed", "drug", drug.ID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Assessment failed")
		return
	}
	metrics.AssessmentsTotal.WithLabelValues(string(assessment.RiskLevel)).Inc()

	h.RespondWithJSON(w, http.StatusOK, assessment)
}

// ServeCatalog returns all drug records
func (h *HTTPHandlerImpl) ServeCatalog(w http.ResponseWriter, r *http.Request) {
	records := h.catalog.Store().GetRecords()
	h.RespondWithJSON(w, http.StatusOK, records)
}

// ServePagedCatalog returns paginated drug records
func (h *HTTPHandlerImpl) ServePagedCatalog(w http.ResponseWriter, r *http.Request) {
	pageNumber := chi.URLParam(r, "pageNumber")
	page, err := strconv.Atoi(pageNumber)
	if err != nil || page < 1 {
		logging.Warn("Unusual user input", "pageNumber", pageNumber)
		h.RespondWithError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	records := h.catalog.Store().GetRecords()
	pageSize := 10
	start := (page - 1) * pageSize
	end := start + pageSize

	if start >= len(records) {
		h.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}

	if end > len(records) {
		end = len(records)
	}

	pagedRecords := records[start:end]
	totalItems := len(records)
	maxPage := (totalItems + pageSize - 1) / pageSize

	response := map[string]interface{}{
		"data":       pagedRecords,
		"page":       page,
		"pageSize":   pageSize,
		"totalItems": totalItems,
		"maxPage":    maxPage,
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.health.HealthCheck()

	response := map[string]interface{}{
		"status": status,
	}
	for k, v := range details {
		response[k] = v
	}

	h.RespondWithJSON(w, httpStatus, response)
}
