// Package metrics exposes prometheus instrumentation for the conversion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsProcessed counts processed documents by outcome ("ok"/"error").
	DocumentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_documents_processed_total",
		Help: "Number of PDF documents processed, labelled by outcome.",
	}, []string{"status"})

	// RowsExtracted counts emitted line-item rows across all documents.
	RowsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_rows_extracted_total",
		Help: "Number of line-item rows extracted from documents.",
	})

	// ReconcileVerdicts counts totals reconciliation verdicts ("OK"/"CHECK").
	ReconcileVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_reconcile_verdicts_total",
		Help: "Number of reconciliation verdicts, labelled by verdict.",
	}, []string{"verdict"})

	// BatchDuration observes wall time of a full batch conversion.
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_batch_duration_seconds",
		Help:    "Duration of batch conversions.",
		Buckets: prometheus.DefBuckets,
	})
)
