package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPipelineMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)

	m.IncDerived()
	m.IncDerived()
	m.IncRejected("VALIDATION_ERROR")
	m.ObserveReportDuration("Daily Report", 50*time.Millisecond)

	if got := testutil.ToFloat64(m.derived); got != 2 {
		t.Fatalf("expected 2 derived, got %f", got)
	}
	if got := testutil.ToFloat64(m.rejected.WithLabelValues("validation_error")); got != 1 {
		t.Fatalf("expected 1 rejected, got %f", got)
	}
}

func TestPipelineMetricsNilSafe(t *testing.T) {
	var m *PipelineMetrics
	m.IncDerived()
	m.IncRejected("x")
	m.ObserveReportDuration("x", time.Second)

	empty := NewPipelineMetrics(nil)
	empty.IncDerived()
	empty.IncRejected("")
	empty.ObserveReportDuration("", 0)
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel(" Daily Report "); got != "daily_report" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := normalizeLabel(""); got != "unknown" {
		t.Fatalf("unexpected empty label %q", got)
	}
}
