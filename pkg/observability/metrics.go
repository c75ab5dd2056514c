package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/automata/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	Evaluations *prometheus.CounterVec
	Cases       *prometheus.CounterVec
	Explored    *prometheus.HistogramVec
	Duration    *prometheus.HistogramVec
	Emptiness   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_evaluations_total",
			Help: "Batch evaluations by variant and outcome kind.",
		}, []string{"variant", "kind"}),
		Cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_cases_total",
			Help: "Decided words by variant and verdict.",
		}, []string{"variant", "accepted"}),
		Explored: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "automata_case_explored_configurations",
			Help:    "Configurations generated while deciding one word.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"variant"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "automata_operation_duration_seconds",
			Help:    "Duration of evaluations and emptiness checks.",
			Buckets: prometheus.DefBuckets,
		}, []string{"variant", "operation"}),
		Emptiness: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "automata_emptiness_checks_total",
			Help: "Emptiness checks by variant and result.",
		}, []string{"variant", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Evaluations, m.Cases, m.Explored, m.Duration, m.Emptiness)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCaseDecided: func(_ context.Context, e *domain.CaseEvent) {
			v := e.Variant.String()
			m.Cases.WithLabelValues(v, strconv.FormatBool(e.Accepted)).Inc()
			m.Explored.WithLabelValues(v).Observe(float64(e.Explored))
		},
		OnEvaluationEnd: func(_ context.Context, e *domain.EvaluationEvent) {
			v := e.Variant.String()
			m.Evaluations.WithLabelValues(v, outcome(e.Err)).Inc()
			m.Duration.WithLabelValues(v, "evaluate").Observe(e.Duration.Seconds())
		},
		OnEmptinessChecked: func(_ context.Context, e *domain.EmptinessEvent) {
			v := e.Variant.String()
			result := outcome(e.Err)
			if e.Err == nil {
				result = "nonempty"
				if e.Empty {
					result = "empty"
				}
			}
			m.Emptiness.WithLabelValues(v, result).Inc()
			m.Duration.WithLabelValues(v, "emptiness").Observe(e.Duration.Seconds())
		},
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(domain.KindOf(err))
}
