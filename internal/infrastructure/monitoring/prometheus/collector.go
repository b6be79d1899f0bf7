// Package prometheus wires pipeline measurements into a Prometheus
// registry. Components depend on the small typed structs here rather than
// on prometheus directly.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NolinearTang/data-correct/internal/infrastructure/monitoring/logging"
)

const namespace = "datacorrect"

// Collector owns a registry and hands out labelled metric vectors. Failed
// registrations are logged and replaced with unregistered vectors so that
// callers never receive nil.
type Collector struct {
	registry *prometheus.Registry
	logger   logging.Logger
}

// NewCollector builds a Collector with its own registry. A nil logger is
// replaced with a no-op one.
func NewCollector(logger logging.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logger.Named("metrics"),
	}
}

// Registry exposes the underlying registry for gathering.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Counter registers a labelled counter vector under the project namespace.
func (c *Collector) Counter(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	if err := c.registry.Register(vec); err != nil {
		c.logger.Warn("counter registration failed",
			logging.String("name", name), logging.Err(err))
	}
	return vec
}

// Gauge registers a labelled gauge vector under the project namespace.
func (c *Collector) Gauge(name, help string, labels ...string) *prometheus.GaugeVec {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	if err := c.registry.Register(vec); err != nil {
		c.logger.Warn("gauge registration failed",
			logging.String("name", name), logging.Err(err))
	}
	return vec
}

// Histogram registers a labelled histogram vector under the project
// namespace. Empty buckets fall back to the prometheus defaults.
func (c *Collector) Histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	if err := c.registry.Register(vec); err != nil {
		c.logger.Warn("histogram registration failed",
			logging.String("name", name), logging.Err(err))
	}
	return vec
}

// Timer observes elapsed seconds into a histogram when stopped.
type Timer struct {
	started  time.Time
	observer prometheus.Observer
}

// NewTimer starts a timer against observer.
func NewTimer(observer prometheus.Observer) *Timer {
	return &Timer{started: time.Now(), observer: observer}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.started)
	if t.observer != nil {
		t.observer.Observe(elapsed.Seconds())
	}
	return elapsed
}
