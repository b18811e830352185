package observability

import (
	"context"

	"github.com/aretw0/glyphgrid/internal/runtime"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "glyphgrid"

// Metrics holds the editor collectors.
type Metrics struct {
	Actions          *prometheus.CounterVec
	HistoryChanges   *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	DispatchErrors   prometheus.Counter
	Sessions         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "actions_total",
				Help:      "Total number of reduced actions",
			},
			[]string{"type", "class"},
		),
		HistoryChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "history_changes_total",
				Help:      "Dispatches by their effect on the revision log",
			},
			[]string{"change"},
		),
		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Duration of session dispatches including load and save",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"change"},
		),
		DispatchErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "dispatch_errors_total",
				Help:      "Dispatches that failed before saving",
			},
		),
		Sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "sessions_total",
				Help:      "Session lifecycle events",
			},
			[]string{"event"},
		),
	}

	for _, c := range []prometheus.Collector{m.Actions, m.HistoryChanges, m.DispatchDuration, m.DispatchErrors, m.Sessions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Middleware counts each reduced action. It never changes the state.
func (m *Metrics) Middleware() runtime.Middleware {
	return func(next runtime.Reducer) runtime.Reducer {
		return func(state workspace.State, a action.Action) workspace.State {
			m.Actions.WithLabelValues(string(a.Kind()), action.ClassOf(a.Kind()).String()).Inc()
			return next(state, a)
		}
	}
}

// Hooks returns lifecycle hooks that feed the dispatch and session collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, e *domain.SessionEvent) {
			m.Sessions.WithLabelValues(string(domain.EventSessionStart)).Inc()
		},
		OnSessionDelete: func(ctx context.Context, e *domain.SessionEvent) {
			m.Sessions.WithLabelValues(string(domain.EventSessionDelete)).Inc()
		},
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			if e.Err != nil {
				m.DispatchErrors.Inc()
				return
			}
			m.HistoryChanges.WithLabelValues(e.Change).Inc()
			m.DispatchDuration.WithLabelValues(e.Change).Observe(e.Duration.Seconds())
		},
	}
}
