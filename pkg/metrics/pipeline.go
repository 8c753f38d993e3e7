package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records counters for the derivation and reporting pipeline.
type PipelineMetrics struct {
	derived  prometheus.Counter
	rejected *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	derived := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "records_derived_total",
		Help: "Product records successfully enriched with derived metrics.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "records_rejected_total",
		Help: "Product records rejected by validation.",
	}, []string{"reason"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_build_duration_seconds",
		Help:    "Duration of report builds in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	reg.MustRegister(derived, rejected, duration)
	return &PipelineMetrics{
		derived:  derived,
		rejected: rejected,
		duration: duration,
	}
}

// IncDerived counts a successfully enriched record.
func (p *PipelineMetrics) IncDerived() {
	if p == nil || p.derived == nil {
		return
	}
	p.derived.Inc()
}

// IncRejected counts a record rejected for the given reason.
func (p *PipelineMetrics) IncRejected(reason string) {
	if p == nil || p.rejected == nil {
		return
	}
	p.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveReportDuration records how long the named report took to build.
func (p *PipelineMetrics) ObserveReportDuration(report string, duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.WithLabelValues(normalizeLabel(report)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
