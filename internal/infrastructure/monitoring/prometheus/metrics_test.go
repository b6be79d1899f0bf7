package prometheus

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NolinearTang/data-correct/pkg/entity"
)

func gatherValue(t *testing.T, c *Collector, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			for k, v := range labels {
				if !hasLabel(m, k, v) {
					continue metric
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func hasLabel(m *dto.Metric, key, value string) bool {
	for _, l := range m.GetLabel() {
		if l.GetName() == key && l.GetValue() == value {
			return true
		}
	}
	return false
}

func TestPipelineMetrics_ObserveResolve(t *testing.T) {
	collector := NewCollector(nil)
	metrics := NewPipelineMetrics(collector)

	metrics.ObserveResolve(entity.ResolveStats{
		Duration:   10 * time.Millisecond,
		Candidates: 3,
		Recognized: 1,
		Corrected:  1,
		Vetoed:     1,
	})
	metrics.ObserveResolve(entity.ResolveStats{
		Duration: time.Millisecond,
		Fallback: true,
		Detected: 2,
	})

	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_resolve_total",
		map[string]string{"status": "ok", "source": "recognizer"}))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_resolve_total",
		map[string]string{"status": "ok", "source": "fallback"}))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_spans_total",
		map[string]string{"kind": "recognized"}))
	assert.Equal(t, 2.0, gatherValue(t, collector, "datacorrect_spans_total",
		map[string]string{"kind": "detected"}))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_spans_total",
		map[string]string{"kind": "corrected"}))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_expansions_vetoed_total", nil))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_resolve_duration_seconds",
		map[string]string{"source": "recognizer"}))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_resolve_duration_seconds",
		map[string]string{"source": "fallback"}))
}

func TestPipelineMetrics_ChatlogCounters(t *testing.T) {
	collector := NewCollector(nil)
	metrics := NewPipelineMetrics(collector)

	metrics.RecordsLoaded("ok", 5)
	metrics.RecordsLoaded("skipped", 2)
	metrics.SessionsFiltered(1)
	metrics.WindowsBuilt(4)

	assert.Equal(t, 5.0, gatherValue(t, collector, "datacorrect_chatlog_records_loaded_total",
		map[string]string{"status": "ok"}))
	assert.Equal(t, 2.0, gatherValue(t, collector, "datacorrect_chatlog_records_loaded_total",
		map[string]string{"status": "skipped"}))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_chatlog_sessions_filtered_total", nil))
	assert.Equal(t, 4.0, gatherValue(t, collector, "datacorrect_chatlog_windows_built_total", nil))
}

func TestCollector_DuplicateRegistrationDoesNotPanic(t *testing.T) {
	collector := NewCollector(nil)
	first := collector.Counter("dup_total", "first")
	second := collector.Counter("dup_total", "second")
	require.NotNil(t, first)
	require.NotNil(t, second)
}

func TestTimer(t *testing.T) {
	collector := NewCollector(nil)
	hist := collector.Histogram("op_seconds", "op latency", nil, "op")

	timer := NewTimer(hist.WithLabelValues("load"))
	elapsed := timer.Stop()
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	assert.Equal(t, 1.0, gatherValue(t, collector, "datacorrect_op_seconds",
		map[string]string{"op": "load"}))
}
