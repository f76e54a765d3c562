package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the skill development collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Operations           *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
	ExercisesRecommended *prometheus.CounterVec
	GapAdjustments       *prometheus.CounterVec
	AssessmentsRecorded  *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "educoach",
				Name:      "operations_total",
				Help:      "Total number of skill development operations",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "educoach",
				Name:      "operation_duration_seconds",
				Help:      "Duration of skill development operations",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
		ExercisesRecommended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "educoach",
				Name:      "exercises_recommended_total",
				Help:      "Total number of exercises recommended",
			},
			[]string{"subject"},
		),
		GapAdjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "educoach",
				Name:      "gap_adjustments_total",
				Help:      "Total number of skill gap adjustments applied",
			},
			[]string{"subject"},
		),
		AssessmentsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "educoach",
				Name:      "assessments_recorded_total",
				Help:      "Total number of skill assessment records appended",
			},
			[]string{"subject"},
		),
	}

	m.registry.MustRegister(
		m.Operations,
		m.OperationDuration,
		m.ExercisesRecommended,
		m.GapAdjustments,
		m.AssessmentsRecorded,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation records the outcome and duration of one operation.
func (m *Metrics) ObserveOperation(op, outcome string, start time.Time) {
	m.Operations.WithLabelValues(op, outcome).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WriteTextfile dumps the current values in the Prometheus text format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
