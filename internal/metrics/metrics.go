// Package metrics exposes monitor activity as Prometheus metrics.
//
// The watchdog does not listen on the network. Metrics are written to a file in the
// Prometheus text format after every tick, for node_exporter's textfile collector to pick up.
package metrics

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gswatchdog/gswatchdog/internal/monitor"
)

const namespace = "gswatchdog"

// Metrics records monitor ticks.
type Metrics struct {
	logger   hclog.Logger
	registry *prometheus.Registry
	textfile string

	checks    *prometheus.CounterVec
	restarts  *prometheus.CounterVec
	streak    prometheus.Gauge
	cooldown  prometheus.Gauge
	lastCheck prometheus.Gauge
}

// New creates Metrics on a private registry.
// textfile is the destination written after every tick; empty keeps metrics in memory only.
func New(logger hclog.Logger, textfile string) (*Metrics, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		logger:   logger.Named("metrics"),
		registry: registry,
		textfile: strings.TrimSpace(textfile),
		checks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_total",
				Help:      "Monitor ticks by outcome.",
			},
			[]string{"outcome"},
		),
		restarts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "restarts_total",
				Help:      "Restart escalations by result.",
			},
			[]string{"result"},
		),
		streak: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bad_map_streak",
			Help:      "Current number of consecutive invalid map observations.",
		}),
		cooldown: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cooldown_active",
			Help:      "1 while health checks are suspended after a restart.",
		}),
		lastCheck: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_check_timestamp_seconds",
			Help:      "Unix time of the last completed tick.",
		}),
	}

	// Pre-create every label combination so series exist before their first increment.
	for _, o := range []monitor.Outcome{
		monitor.OutcomeSkipped, monitor.OutcomeQueryError, monitor.OutcomeValid, monitor.OutcomeInvalid,
	} {
		m.checks.WithLabelValues(string(o))
	}
	for _, r := range []monitor.RestartResult{
		monitor.RestartRestarted, monitor.RestartNotFound, monitor.RestartFailed, monitor.RestartUnconfigured,
	} {
		m.restarts.WithLabelValues(string(r))
	}

	return m, nil
}

// Registry returns the registry holding the watchdog's collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTick implements monitor.Recorder.
func (m *Metrics) ObserveTick(res monitor.TickResult) {
	m.checks.WithLabelValues(string(res.Outcome)).Inc()
	if res.Escalation != nil {
		m.restarts.WithLabelValues(string(res.Escalation.Result)).Inc()
	}

	m.streak.Set(float64(res.State.BadStreak))
	if res.State.CooldownUntil != nil {
		m.cooldown.Set(1)
	} else {
		m.cooldown.Set(0)
	}
	m.lastCheck.Set(float64(res.At.Unix()))

	if err := m.Flush(); err != nil {
		m.logger.Warn("Failed to write metrics textfile", "path", m.textfile, "error", err)
	}
}

// Flush writes the current metrics to the textfile, if one is configured.
// The file is replaced atomically.
func (m *Metrics) Flush() error {
	if m.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(m.textfile, m.registry)
}
