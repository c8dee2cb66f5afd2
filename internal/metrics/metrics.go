package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"

	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

// Recorder tracks one generation run. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	batches        *prometheus.CounterVec
	candidates     *prometheus.CounterVec
	recordsWritten prometheus.Counter
	datasetRecords prometheus.Gauge
	batchDuration  prometheus.Histogram
}

func NewRecorder(runID string) *Recorder {
	labels := prometheus.Labels{"run_id": runID}

	r := &Recorder{
		registry: prometheus.NewRegistry(),

		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sqlforge_batches_total",
			Help:        "Generation batches by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sqlforge_candidates_total",
			Help:        "Candidate pairs by validation result",
			ConstLabels: labels,
		}, []string{"result"}),
		recordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sqlforge_records_written_total",
			Help:        "Training records appended during this run",
			ConstLabels: labels,
		}),
		datasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "sqlforge_dataset_records",
			Help:        "Records currently in the dataset file",
			ConstLabels: labels,
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "sqlforge_batch_duration_seconds",
			Help:        "Time spent waiting on the model for one batch",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.5, 2, 8),
		}),
	}

	r.registry.MustRegister(r.batches, r.candidates, r.recordsWritten, r.datasetRecords, r.batchDuration)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) ObserveBatch(outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.batches.WithLabelValues(outcome).Inc()
	r.batchDuration.Observe(took.Seconds())
}

func (r *Recorder) ObserveValidation(accepted, rejected int) {
	if r == nil {
		return
	}
	r.candidates.WithLabelValues(ResultAccepted).Add(float64(accepted))
	r.candidates.WithLabelValues(ResultRejected).Add(float64(rejected))
}

func (r *Recorder) ObserveWritten(n, total int) {
	if r == nil {
		return
	}
	r.recordsWritten.Add(float64(n))
	r.datasetRecords.Set(float64(total))
}

func (r *Recorder) SetDatasetRecords(total int) {
	if r == nil {
		return
	}
	r.datasetRecords.Set(float64(total))
}

// WriteFile dumps the registry in the Prometheus text format, for node_exporter's
// textfile collector. An empty path is a no-op.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
