package observability

import (
	"context"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	StepEntries   *prometheus.CounterVec
	Previews      *prometheus.CounterVec
	Completions   *prometheus.CounterVec
	StoreFailures prometheus.Counter
	Cancellations *prometheus.CounterVec
	Dwell         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		StepEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vestibule_step_entries_total",
				Help: "Total number of onboarding steps entered",
			},
			[]string{"step"},
		),
		Previews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vestibule_guide_previews_total",
				Help: "Total number of guide previews shown",
			},
			[]string{"guide_id", "capability"},
		),
		Completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vestibule_completions_total",
				Help: "Total number of completed onboardings by chosen guide",
			},
			[]string{"guide_id"},
		),
		StoreFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vestibule_selection_store_failures_total",
				Help: "Selection writes that failed on completion",
			},
		),
		Cancellations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vestibule_cancellations_total",
				Help: "Flows torn down while a completion was pending",
			},
			[]string{"step"},
		),
		Dwell: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vestibule_reveal_dwell_seconds",
				Help:    "Configured reveal dwell time at completion",
				Buckets: []float64{1, 2, 4, 6, 8, 12, 20},
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.StepEntries, m.Previews, m.Completions, m.StoreFailures, m.Cancellations, m.Dwell} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			m.StepEntries.WithLabelValues(string(e.Step)).Inc()
		},
		OnPreview: func(ctx context.Context, e *domain.PreviewEvent) {
			if e.GuideID == "" {
				return
			}
			m.Previews.WithLabelValues(e.GuideID, string(e.Capability)).Inc()
		},
		OnComplete: func(ctx context.Context, e *domain.CompletionEvent) {
			m.Completions.WithLabelValues(e.GuideID).Inc()
			if e.StoreErr != nil {
				m.StoreFailures.Inc()
			}
			m.Dwell.Observe(e.Dwell.Seconds())
		},
		OnCancel: func(ctx context.Context, e *domain.StepEvent) {
			m.Cancellations.WithLabelValues(string(e.Step)).Inc()
		},
	}
}
