// Package metrics records per-call deparse statistics with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder holds the collectors of one Deparser. A nil *Recorder records
// nothing.
type Recorder struct {
	calls      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	arenaBytes *prometheus.HistogramVec
}

// New creates a recorder and registers its collectors on reg. A nil reg
// leaves them unregistered; they still count and can be read directly.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "deparse",
				Name:      "calls_total",
				Help:      "Deparse calls by entry point and outcome.",
			},
			[]string{"op", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "deparse",
				Name:      "call_duration_seconds",
				Help:      "Deparse call duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		arenaBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "deparse",
				Name:      "arena_bytes",
				Help:      "Arena bytes used per call.",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{r.calls, r.duration, r.arenaBytes} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// Observe records one finished call.
func (r *Recorder) Observe(op string, ok bool, arenaBytes int, elapsed time.Duration) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeError
	}
	r.calls.WithLabelValues(op, outcome).Inc()
	r.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	r.arenaBytes.WithLabelValues(op).Observe(float64(arenaBytes))
}

// Calls returns the counter vector, for tests and custom exporters.
func (r *Recorder) Calls() *prometheus.CounterVec {
	return r.calls
}
