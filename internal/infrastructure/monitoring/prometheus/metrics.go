package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NolinearTang/data-correct/pkg/entity"
)

// PipelineMetrics holds every metric the resolution and chat-log pipelines
// report. It implements entity.Metrics.
type PipelineMetrics struct {
	resolveTotal    *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	spansTotal      *prometheus.CounterVec
	vetoedTotal     *prometheus.CounterVec

	recordsLoaded    *prometheus.CounterVec
	sessionsFiltered *prometheus.CounterVec
	windowsBuilt     *prometheus.CounterVec
}

// NewPipelineMetrics registers the pipeline metrics on collector.
func NewPipelineMetrics(collector *Collector) *PipelineMetrics {
	return &PipelineMetrics{
		resolveTotal: collector.Counter("resolve_total",
			"Resolve calls by outcome.", "status", "source"),
		resolveDuration: collector.Histogram("resolve_duration_seconds",
			"Resolve call latency.", nil, "source"),
		spansTotal: collector.Counter("spans_total",
			"Resolved spans by kind.", "kind"),
		vetoedTotal: collector.Counter("expansions_vetoed_total",
			"Span expansions dropped because they collided with a neighbouring candidate."),
		recordsLoaded: collector.Counter("chatlog_records_loaded_total",
			"Chat log records read by load outcome.", "status"),
		sessionsFiltered: collector.Counter("chatlog_sessions_filtered_total",
			"Sessions dropped for exceeding the round limit."),
		windowsBuilt: collector.Counter("chatlog_windows_built_total",
			"Sliding context windows emitted."),
	}
}

// ObserveResolve implements entity.Metrics.
func (m *PipelineMetrics) ObserveResolve(stats entity.ResolveStats) {
	source := "recognizer"
	if stats.Fallback {
		source = "fallback"
	}
	status := "ok"
	if stats.Err != nil {
		status = "error"
	}

	m.resolveTotal.WithLabelValues(status, source).Inc()
	m.resolveDuration.WithLabelValues(source).Observe(stats.Duration.Seconds())

	m.spansTotal.WithLabelValues(entity.KindRecognized.String()).Add(float64(stats.Recognized))
	m.spansTotal.WithLabelValues(entity.KindDetected.String()).Add(float64(stats.Detected))
	m.spansTotal.WithLabelValues(entity.KindCorrected.String()).Add(float64(stats.Corrected))
	m.vetoedTotal.WithLabelValues().Add(float64(stats.Vetoed))
}

// RecordsLoaded counts chat log rows by outcome ("ok", "skipped").
func (m *PipelineMetrics) RecordsLoaded(status string, n int) {
	m.recordsLoaded.WithLabelValues(status).Add(float64(n))
}

// SessionsFiltered counts sessions dropped by the round limit.
func (m *PipelineMetrics) SessionsFiltered(n int) {
	m.sessionsFiltered.WithLabelValues().Add(float64(n))
}

// WindowsBuilt counts emitted context windows.
func (m *PipelineMetrics) WindowsBuilt(n int) {
	m.windowsBuilt.WithLabelValues().Add(float64(n))
}
