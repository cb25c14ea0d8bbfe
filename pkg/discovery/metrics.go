package discovery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/odrive-go/odrive/pkg/log"
)

// Metrics observes discovery activity.
type Metrics interface {
	// ObserveProbe records the outcome of probing one candidate.
	ObserveProbe(source string, outcome log.ProbeOutcome, took time.Duration)

	// ObservePass records a completed pass and the devices it yielded.
	ObservePass(found int)
}

// NoopMetrics discards observations.
type NoopMetrics struct{}

func (NoopMetrics) ObserveProbe(string, log.ProbeOutcome, time.Duration) {}
func (NoopMetrics) ObservePass(int) {}

// PromMetrics exports discovery metrics to Prometheus.
type PromMetrics struct {
	probes        *prometheus.CounterVec
	probeDuration *prometheus.HistogramVec
	passes        prometheus.Counter
	lastFound     prometheus.Gauge
}

// NewPromMetrics creates and registers the discovery collectors on reg.
func NewPromMetrics(reg prometheus.Registerer) *PromMetrics {
	m := &PromMetrics{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "odrive",
			Subsystem: "discovery",
			Name:      "probes_total",
			Help:      "Candidates probed by source and outcome.",
		}, []string{"source", "outcome"}),
		probeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "odrive",
			Subsystem: "discovery",
			Name:      "probe_duration_seconds",
			Help:      "Time from opening a candidate to its outcome.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"source"}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "odrive",
			Subsystem: "discovery",
			Name:      "passes_total",
			Help:      "Completed discovery passes.",
		}),
		lastFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "odrive",
			Subsystem: "discovery",
			Name:      "devices_last_pass",
			Help:      "Devices yielded by the most recent completed pass.",
		}),
	}
	reg.MustRegister(m.probes, m.probeDuration, m.passes, m.lastFound)
	return m
}

// ObserveProbe implements Metrics.
func (m *PromMetrics) ObserveProbe(source string, outcome log.ProbeOutcome, took time.Duration) {
	m.probes.WithLabelValues(source, outcome.String()).Inc()
	m.probeDuration.WithLabelValues(source).Observe(took.Seconds())
}

// ObservePass implements Metrics.
func (m *PromMetrics) ObservePass(found int) {
	m.passes.Inc()
	m.lastFound.Set(float64(found))
}

var (
	_ Metrics = NoopMetrics{}
	_ Metrics = (*PromMetrics)(nil)
)
