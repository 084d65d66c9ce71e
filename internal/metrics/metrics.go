// Public domain.

// Package metrics holds Prometheus collectors for clustering runs.
//
// A run is a batch job with no scrape endpoint, so collectors are written
// once at exit in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "comove"

// Metrics are the collectors of one run.  Methods on a nil *Metrics do
// nothing.
type Metrics struct {
	rowsRead      prometheus.Counter
	rowsDropped   *prometheus.CounterVec
	clusters      prometheus.Gauge
	noise         prometheus.Gauge
	stageDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Catalog rows passed to the pipeline",
		}),

		rowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Catalog rows excluded before clustering",
		}, []string{"reason"}),

		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "Clusters found by the last run",
		}),

		noise: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "noise_points",
			Help:      "Rows labeled noise by the last run",
		}),

		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"stage"}),
	}

	reg.MustRegister(
		m.rowsRead, m.rowsDropped,
		m.clusters, m.noise,
		m.stageDuration,
	)
	return m
}

// RowsRead counts rows entering a run.
func (m *Metrics) RowsRead(n int) {
	if m == nil {
		return
	}
	m.rowsRead.Add(float64(n))
}

// RowsDropped counts rows excluded for reason.
func (m *Metrics) RowsDropped(reason string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.rowsDropped.WithLabelValues(reason).Add(float64(n))
}

// Clustered records the outcome of a run.
func (m *Metrics) Clustered(clusters, noise int) {
	if m == nil {
		return
	}
	m.clusters.Set(float64(clusters))
	m.noise.Set(float64(noise))
}

// Stage records the duration of a pipeline stage started at start.
func (m *Metrics) Stage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes everything g gathers to fn in the text exposition
// format.  The file is replaced atomically.
func WriteTextfile(fn string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(fn, g); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
