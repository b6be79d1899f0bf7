package entity

import "time"

// ResolveStats summarizes one Resolve call for metrics reporting.
type ResolveStats struct {
	Duration   time.Duration
	Candidates int
	Fallback   bool
	Recognized int
	Detected   int
	Corrected  int
	Vetoed     int
	Err        error
}

// Metrics receives per-call resolution measurements. Implementations must
// be safe for concurrent use.
type Metrics interface {
	ObserveResolve(stats ResolveStats)
}

type nopMetrics struct{}

func (nopMetrics) ObserveResolve(ResolveStats) {}

// NewNopMetrics returns a Metrics sink that discards everything.
func NewNopMetrics() Metrics { return nopMetrics{} }
