// Package metrics holds the Prometheus collectors for session activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Session struct {
	Operations    *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	Authenticated prometheus.Gauge
}

// NewSession creates the session collectors and registers them on reg.
// A nil reg leaves them unregistered, which keeps tests independent.
func NewSession(reg prometheus.Registerer) *Session {
	s := &Session{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ishara",
				Subsystem: "session",
				Name:      "operations_total",
				Help:      "Session operations by kind and outcome.",
			},
			[]string{"op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ishara",
				Subsystem: "session",
				Name:      "operation_duration_seconds",
				Help:      "Wall time of session operations, including backend latency.",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"op"},
		),
		Authenticated: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "ishara",
				Subsystem: "session",
				Name:      "authenticated",
				Help:      "1 while a user is signed in.",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(s.Operations, s.Duration, s.Authenticated)
	}
	return s
}

// Observe records one finished operation. Safe on a nil receiver.
func (s *Session) Observe(op string, started time.Time, err error) {
	if s == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	s.Operations.WithLabelValues(op, result).Inc()
	s.Duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// SetAuthenticated mirrors the current session state. Safe on a nil receiver.
func (s *Session) SetAuthenticated(on bool) {
	if s == nil {
		return
	}
	if on {
		s.Authenticated.Set(1)
		return
	}
	s.Authenticated.Set(0)
}

// WriteTextfile dumps g in the node_exporter textfile format. Empty path is
// a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, g)
}
