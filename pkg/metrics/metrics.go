package metrics

import "github.com/prometheus/client_golang/prometheus"

// ScreeningMetrics exposes counters for the intake wizard.
type ScreeningMetrics struct {
	transitions      *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	notifierErrors   *prometheus.CounterVec
}

func NewScreeningMetrics(reg prometheus.Registerer) *ScreeningMetrics {
	m := &ScreeningMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trial",
			Subsystem: "screening",
			Name:      "transitions_total",
			Help:      "Wizard state transitions",
		}, []string{"from", "to", "reason"}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trial",
			Subsystem: "screening",
			Name:      "validation_failures_total",
			Help:      "Field validation failures on advance or submit",
		}, []string{"field", "kind"}),
		notifierErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trial",
			Subsystem: "screening",
			Name:      "notifier_errors_total",
			Help:      "Analytics calls that returned an error",
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitions, m.validationErrors, m.notifierErrors)
	return m
}

func (m *ScreeningMetrics) ObserveTransition(from, to, reason string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to, reason).Inc()
}

func (m *ScreeningMetrics) ObserveValidationFailure(field, kind string) {
	if m == nil {
		return
	}
	m.validationErrors.WithLabelValues(field, kind).Inc()
}

func (m *ScreeningMetrics) ObserveNotifierError(operation string) {
	if m == nil {
		return
	}
	m.notifierErrors.WithLabelValues(operation).Inc()
}
