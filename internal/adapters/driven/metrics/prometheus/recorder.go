// Package prometheus records export runs as a Prometheus textfile for the
// node_exporter textfile collector.
package prometheus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

const namespace = "bhexport"

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// Recorder keeps export metrics in its own registry and rewrites the
// textfile after every run.
type Recorder struct {
	path     string
	registry *prometheus.Registry
	mu       sync.Mutex

	rowsWritten      *prometheus.GaugeVec
	documentsSkipped prometheus.Gauge
	runDuration      prometheus.Gauge
	lastSuccess      prometheus.Gauge
	runsTotal        *prometheus.CounterVec
}

// NewRecorder creates a recorder writing to path.
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: metrics textfile path is empty", domain.ErrInvalidInput)
	}

	r := &Recorder{
		path:     path,
		registry: prometheus.NewRegistry(),
	}

	r.rowsWritten = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_written",
			Help:      "Rows written per archive table by the last run",
		},
		[]string{"table"},
	)

	r.documentsSkipped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents_skipped",
			Help:      "document_index rows not added by the last run",
		},
	)

	r.runDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		},
	)

	r.lastSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Start time of the last successful run",
		},
	)

	r.runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Export runs by outcome",
		},
		[]string{"status"}, // "success", "error"
	)

	r.registry.MustRegister(r.rowsWritten, r.documentsSkipped, r.runDuration, r.lastSuccess, r.runsTotal)
	return r, nil
}

// RecordExport updates the metrics for one run and rewrites the textfile.
func (r *Recorder) RecordExport(_ context.Context, stats *domain.ExportStats, runErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := "success"
	if runErr != nil {
		status = "error"
	}
	r.runsTotal.WithLabelValues(status).Inc()

	if stats != nil {
		r.rowsWritten.WithLabelValues("bills").Set(float64(stats.Bills))
		r.rowsWritten.WithLabelValues("timeline_actions").Set(float64(stats.TimelineActions))
		r.rowsWritten.WithLabelValues("hearing_records").Set(float64(stats.HearingRecords))
		r.rowsWritten.WithLabelValues("documents").Set(float64(stats.Documents.Total()))
		r.rowsWritten.WithLabelValues("search_index").Set(float64(stats.SearchDocuments))
		r.documentsSkipped.Set(float64(stats.Documents.SecondarySkipped))
		r.runDuration.Set(stats.Duration.Seconds())
		if runErr == nil {
			r.lastSuccess.Set(float64(stats.StartedAt.Unix()))
		}
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
