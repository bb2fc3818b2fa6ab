package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/suspsim/internal/suspension"
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid_input"
	OutcomeError   = "error"
)

// Recorder observes model calls.
type Recorder interface {
	Observe(operation string, elapsed time.Duration, err error)
}

// Nop discards observations.
type Nop struct{}

func (Nop) Observe(string, time.Duration, error) {}

// PromRecorder records evaluations in Prometheus metrics.
type PromRecorder struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewPromRecorder registers its collectors on reg, or on the default
// registerer when reg is nil. Already registered collectors are reused.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suspsim_evaluations_total",
		Help: "Total number of model evaluations by operation and outcome",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "suspsim_evaluation_duration_seconds",
		Help:    "Wall time of model evaluations",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"operation"})

	if err := reg.Register(evaluations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		evaluations = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return &PromRecorder{evaluations: evaluations, duration: duration}, nil
}

func (r *PromRecorder) Observe(operation string, elapsed time.Duration, err error) {
	r.evaluations.WithLabelValues(operation, Outcome(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Outcome classifies err for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, suspension.ErrInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
