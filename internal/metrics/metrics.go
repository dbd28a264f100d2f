// Package metrics records update outcomes for node-exporter style textfile collection.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "appupdater"

// Recorder holds the update counters in a private registry.
type Recorder struct {
	registry   *prometheus.Registry
	checks     *prometheus.CounterVec
	updates    *prometheus.CounterVec
	downloaded prometheus.Counter
	lastRun    prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Update checks by result reason.",
		}, []string{"reason"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Update runs by outcome.",
		}, []string{"outcome"}),
		downloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bytes_total",
			Help:      "Bytes written to the package cache.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished update run.",
		}),
	}
	r.registry.MustRegister(r.checks, r.updates, r.downloaded, r.lastRun)
	return r
}

// ObserveCheck counts a finished version check.
func (r *Recorder) ObserveCheck(reason string) {
	r.checks.WithLabelValues(reason).Inc()
}

// ObserveOutcome counts a finished update run.
func (r *Recorder) ObserveOutcome(outcome string) {
	r.updates.WithLabelValues(outcome).Inc()
	r.lastRun.SetToCurrentTime()
}

// ObserveDownload adds n downloaded bytes.
func (r *Recorder) ObserveDownload(n int64) {
	if n > 0 {
		r.downloaded.Add(float64(n))
	}
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.Gatherer()); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
