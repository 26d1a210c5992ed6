package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Server Metrics

	// APIRequestsTotal counts API requests
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration observes API request latency
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Document Generation Metrics

	// DocumentsGenerated counts generated documents by type and outcome
	// (saved / unsaved / failed)
	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_generated_total",
			Help: "Total number of generated documents",
		},
		[]string{"document_type", "outcome"},
	)

	// DocumentGenerationDuration observes the full generation pipeline latency
	DocumentGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_generation_duration_seconds",
			Help:    "Document generation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"document_type"},
	)

	// SignatureEmbedFallbacks counts signature images that failed to embed
	// and degraded to the handwritten placeholder line
	SignatureEmbedFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signature_embed_fallbacks_total",
			Help: "Total number of signature images that fell back to the placeholder line",
		},
	)

	// Signature Reconciliation Metrics

	// SignaturesPromoted counts case signatures promoted to client scope
	SignaturesPromoted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signatures_promoted_total",
			Help: "Total number of case signatures promoted to client scope",
		},
	)

	// ReconciliationFailures counts per-client reconciliation failures
	ReconciliationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signature_reconciliation_failures_total",
			Help: "Total number of per-client reconciliation failures",
		},
	)

	// TemplateCacheHits counts template reads served from redis
	TemplateCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_cache_hits_total",
			Help: "Template cache lookups by result (hit/miss)",
		},
		[]string{"result"},
	)
)
