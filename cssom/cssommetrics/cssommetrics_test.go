package cssommetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/gocssom/cssom/cssom"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("testns", reg)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("expected 3 registered collectors, got %d", len(families))
	}

	m.IncParseErrors(2)
	if got := counterValue(t, m.ParseErrors); got != 2 {
		t.Errorf("expected parse errors counter at 2, got %v", got)
	}

	m.IncInterpretationWarnings(1)
	if got := counterValue(t, m.InterpretationWarnings); got != 1 {
		t.Errorf("expected interpretation warnings counter at 1, got %v", got)
	}

	m.ObserveParseDuration(50 * time.Millisecond)
}

func TestPrometheusMetricsSatisfiesMetricsRecorder(t *testing.T) {
	var _ cssom.MetricsRecorder = (*PrometheusMetrics)(nil)
}
