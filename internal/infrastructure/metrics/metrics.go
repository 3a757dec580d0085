package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Extraction metrics
	FilesIngested      *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	RowsSkipped        *prometheus.CounterVec
	BalanceChecks      *prometheus.CounterVec

	// Classification metrics
	Classifications    *prometheus.CounterVec
	CollaboratorErrors *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FilesIngested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_files_ingested_total",
				Help: "Files processed by issuer, document type and outcome",
			},
			[]string{"issuer", "document_type", "outcome"},
		),
		ExtractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goextrato_extraction_duration_seconds",
				Help:    "Duration of format detection and parsing",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"issuer", "format"},
		),
		RowsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_rows_skipped_total",
				Help: "Rows dropped with a recorded reason, by pipeline stage",
			},
			[]string{"stage"},
		),
		BalanceChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_balance_checks_total",
				Help: "Balance validations by status",
			},
			[]string{"status"},
		),

		Classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_classifications_total",
				Help: "Transactions classified by cascade level",
			},
			[]string{"level", "needs_review"},
		),
		CollaboratorErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_collaborator_errors_total",
				Help: "Collaborator lookups that failed, by cascade level",
			},
			[]string{"level"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_cache_lookups_total",
				Help: "Cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goextrato_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goextrato_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveExtraction records one file outcome.
func (m *Metrics) ObserveExtraction(key extractor.Key, outcome string, elapsed time.Duration) {
	issuer := key.Issuer
	if issuer == "" {
		issuer = "unknown"
	}
	docType := string(key.DocumentType)
	if docType == "" {
		docType = "unknown"
	}

	m.FilesIngested.WithLabelValues(issuer, docType, outcome).Inc()
	m.ExtractionDuration.WithLabelValues(issuer, key.Format).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSkippedRows(stage string, n int) {
	if n > 0 {
		m.RowsSkipped.WithLabelValues(stage).Add(float64(n))
	}
}

func (m *Metrics) ObserveBalance(status domain.BalanceStatus) {
	m.BalanceChecks.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) ObserveClassification(level domain.Provenance, review bool) {
	m.Classifications.WithLabelValues(string(level), strconv.FormatBool(review)).Inc()
}

func (m *Metrics) ObserveCollaboratorError(level domain.Provenance) {
	m.CollaboratorErrors.WithLabelValues(string(level)).Inc()
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}
