package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/locus/pkg/domain"
)

const metricsNamespace = "locus"

// Metrics holds the Prometheus collectors of the learner.
// All operations are safe for concurrent use.
type Metrics struct {
	// StagesTotal counts finished stages. Labels: stage, type.
	StagesTotal *prometheus.CounterVec
	// StageDurationSeconds measures stage duration. Labels: stage.
	StageDurationSeconds *prometheus.HistogramVec
	// States is the machine size after the last stage. Labels: type.
	States *prometheus.GaugeVec
	// Hypotheses is the live hypothesis count after the last stage. Labels: type.
	Hypotheses *prometheus.GaugeVec
	// UnificationsTotal counts state merges. Labels: type.
	UnificationsTotal *prometheus.CounterVec
	// FalsificationsTotal counts hypotheses removed by traces. Labels: type.
	FalsificationsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "stages_total",
				Help:      "Total number of finished learning stages",
			},
			[]string{"stage", "type"},
		),
		StageDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of learning stages in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"stage"},
		),
		States: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "machine_states",
				Help:      "Number of states of the induced machine",
			},
			[]string{"type"},
		),
		Hypotheses: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "live_hypotheses",
				Help:      "Number of hypotheses not yet falsified",
			},
			[]string{"type"},
		),
		UnificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "unifications_total",
				Help:      "Total number of state unifications",
			},
			[]string{"type"},
		),
		FalsificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "falsifications_total",
				Help:      "Total number of falsified hypotheses",
			},
			[]string{"type"},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.StagesTotal,
			m.StageDurationSeconds,
			m.States,
			m.Hypotheses,
			m.UnificationsTotal,
			m.FalsificationsTotal,
		)
	}
	return m
}

// Hooks returns learner hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStage: func(_ context.Context, e *domain.StageEvent) {
			m.StagesTotal.WithLabelValues(string(e.Stage), e.Type).Inc()
			m.StageDurationSeconds.WithLabelValues(string(e.Stage)).Observe(e.Duration.Seconds())
			if e.Type == "" {
				return
			}
			m.States.WithLabelValues(e.Type).Set(float64(e.States))
			if e.Stage != domain.StageBuild {
				m.Hypotheses.WithLabelValues(e.Type).Set(float64(e.Hypotheses))
			}
		},
		OnUnify: func(_ context.Context, e *domain.UnifyEvent) {
			m.UnificationsTotal.WithLabelValues(e.Type).Inc()
		},
		OnFalsify: func(_ context.Context, e *domain.FalsifyEvent) {
			m.FalsificationsTotal.WithLabelValues(e.Type).Inc()
		},
	}
}
