package observability

import (
	"context"

	"github.com/aretw0/unixtime/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts command outcomes and times each invocation.
type Metrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unixtime_commands_total",
				Help: "Total number of command invocations by outcome",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "unixtime_transform_duration_seconds",
				Help:    "Duration of command invocations, prompt time included",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.commands, m.duration} {
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
		OnCommandEnd: func(ctx context.Context, e *domain.CommandEvent) {
			cmd := e.Command.Short()
			m.commands.WithLabelValues(cmd, string(e.Status)).Inc()
			m.duration.WithLabelValues(cmd).Observe(e.Duration.Seconds())
		},
	}
}

// Commands exposes the outcome counter (mostly for tests).
func (m *Metrics) Commands() *prometheus.CounterVec {
	return m.commands
}
