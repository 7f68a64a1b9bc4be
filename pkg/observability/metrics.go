// Package observability exposes runtime traversal activity as prometheus
// metrics. Hosts register a Metrics against their registry and pass its
// hooks to the runtime.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/parleykit/parley/pkg/domain"
)

// Metrics holds the traversal collectors.
type Metrics struct {
	linesTotal       *prometheus.CounterVec
	mutationsTotal   prometheus.Counter
	traversalSeconds prometheus.Histogram
	activeDialogues  prometheus.Gauge
}

// NewMetrics builds and registers the collectors. Pass
// prometheus.DefaultRegisterer for the global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		linesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "lines_total",
			Help:      "Printable lines emitted, by line type.",
		}, []string{"type"}),
		mutationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "mutations_total",
			Help:      "Mutation side effects executed.",
		}),
		traversalSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parley",
			Name:      "traversal_duration_seconds",
			Help:      "Wall time of a single next-line traversal.",
			Buckets:   prometheus.DefBuckets,
		}),
		activeDialogues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parley",
			Name:      "active_dialogues",
			Help:      "Dialogues currently in flight.",
		}),
	}
	reg.MustRegister(m.linesTotal, m.mutationsTotal, m.traversalSeconds, m.activeDialogues)
	return m
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLine: func(ctx context.Context, ev *domain.LineEvent) {
			m.linesTotal.WithLabelValues(ev.Type).Inc()
		},
		OnMutation: func(ctx context.Context, ev *domain.MutationEvent) {
			m.mutationsTotal.Inc()
		},
		OnTraversal: func(ctx context.Context, ev *domain.TraversalEvent) {
			m.traversalSeconds.Observe(ev.Duration.Seconds())
		},
	}
}

// Listeners returns start/finish callbacks maintaining the active gauge.
// Register them with the runtime's AddListener.
func (m *Metrics) Listeners() (started, finished func()) {
	return m.activeDialogues.Inc, m.activeDialogues.Dec
}
