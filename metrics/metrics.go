// Package metrics provides Prometheus metrics for the drugscan API:
// HTTP request counters/latency plus domain metrics for the scan
// pipeline (extractions, matches, safety assessments) and the catalog.
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drugscan_scans_total",
			Help: "OCR scans processed, by outcome (matched, no_match, no_text)",
		},
		[]string{"outcome"},
	)

	ExtractionFields = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drugscan_extraction_fields",
			Help:    "Fields recognized per OCR extraction (0-5)",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	MatchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drugscan_match_candidates",
			Help:    "Candidates returned per match query",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	AssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drugscan_assessments_total",
			Help: "Safety assessments produced, by risk level",
		},
		[]string{"risk"},
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "drugscan_catalog_records",
			Help: "Records in the loaded catalog",
		},
	)

	CatalogRefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drugscan_catalog_refresh_duration_seconds",
			Help:    "Catalog refresh latency",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 120},
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ScansTotal)
	prometheus.MustRegister(ExtractionFields)
	prometheus.MustRegister(MatchCandidates)
	prometheus.MustRegister(AssessmentsTotal)
	prometheus.MustRegister(CatalogRecords)
	prometheus.MustRegister(CatalogRefreshDuration)
}
