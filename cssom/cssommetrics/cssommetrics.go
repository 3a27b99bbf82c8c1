// Package cssommetrics implements cssom.MetricsRecorder with
// github.com/prometheus/client_golang, giving an embedding bundler the
// parse-duration/error/warning observability surface spec.md's Non-goals
// don't exclude (the Non-goals list evaluation, cascade, matching,
// layout, and source maps — metrics are untouched).
package cssommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements cssom.MetricsRecorder.
type PrometheusMetrics struct {
	ParseDuration          prometheus.Histogram
	ParseErrors            prometheus.Counter
	InterpretationWarnings prometheus.Counter
}

// New creates a PrometheusMetrics with the given namespace and registers
// its collectors with reg (typically prometheus.DefaultRegisterer).
func New(namespace string, reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cssom",
			Name:      "parse_duration_seconds",
			Help:      "Duration of a single cssom.Parse call.",
			Buckets:   prometheus.DefBuckets,
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cssom",
			Name:      "parse_errors_total",
			Help:      "Recoverable parse errors skipped in browser-compliant mode.",
		}),
		InterpretationWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cssom",
			Name:      "interpretation_warnings_total",
			Help:      "Recoverable interpretation warnings (unknown medium, dropped property, ...).",
		}),
	}
	reg.MustRegister(m.ParseDuration, m.ParseErrors, m.InterpretationWarnings)
	return m
}

func (m *PrometheusMetrics) ObserveParseDuration(d time.Duration) {
	m.ParseDuration.Observe(d.Seconds())
}

func (m *PrometheusMetrics) IncParseErrors(n int) {
	m.ParseErrors.Add(float64(n))
}

func (m *PrometheusMetrics) IncInterpretationWarnings(n int) {
	m.InterpretationWarnings.Add(float64(n))
}
