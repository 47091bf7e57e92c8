// Package metrics exposes Prometheus collectors for a rotalign run.
//
// A batch process has no scrape endpoint, so collectors live in a private
// registry that is written once, at the end of the run, in the text
// exposition format understood by node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors of one run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	alignments      *prometheus.CounterVec
	alignDuration   prometheus.Histogram
	iterations      prometheus.Counter
	residuesShifted prometheus.Counter
}

// New creates collectors registered on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		alignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rotalign_alignments_total",
			Help: "Aligner invocations by result.",
		}, []string{"result"}),
		alignDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rotalign_alignment_duration_seconds",
			Help:    "Wall time of aligner invocations.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rotalign_iterations_total",
			Help: "Completed shift-and-realign iterations.",
		}),
		residuesShifted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rotalign_residues_shifted_total",
			Help: "Residues moved from sequence start to end by the circular shift.",
		}),
	}
	m.registry.MustRegister(m.alignments, m.alignDuration, m.iterations, m.residuesShifted)
	return m
}

// ObserveAlignment records one aligner invocation.
func (m *Metrics) ObserveAlignment(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.alignments.WithLabelValues(result).Inc()
	m.alignDuration.Observe(d.Seconds())
}

// IterationCompleted counts one finished iteration.
func (m *Metrics) IterationCompleted() {
	if m == nil {
		return
	}
	m.iterations.Inc()
}

// ResiduesShifted adds n moved residues.
func (m *Metrics) ResiduesShifted(n int) {
	if m == nil {
		return
	}
	m.residuesShifted.Add(float64(n))
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes all collectors to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
