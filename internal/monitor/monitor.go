package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/gswatchdog/gswatchdog/internal/container"
	"github.com/gswatchdog/gswatchdog/internal/query"
)

// Monitor polls a game server and restarts its container after a sustained run of invalid observations.
type Monitor struct {
	logger     hclog.Logger
	target     query.Target
	querier    query.Querier
	controller container.Controller
	opts       Options

	// mu is held for the whole of a tick, so ticks never overlap and State never observes a half-applied tick.
	mu    sync.Mutex
	state State
}

// NewMonitor creates a Monitor with a zero streak and no active cooldown.
func NewMonitor(deps Dependencies, opts Options) (*Monitor, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monitor dependencies: %w", err)
	}

	if opts.Interval <= 0 || opts.MaxBadMapStreak < 1 || opts.RestartCooldown < 0 || opts.RestartTimeout <= 0 {
		return nil, fmt.Errorf("invalid monitor options, use NewOptions to build them")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if isNil(opts.Recorder) {
		opts.Recorder = nopRecorder{}
	}

	return &Monitor{
		logger:     deps.Logger.Named("monitor"),
		target:     deps.Target,
		querier:    deps.Querier,
		controller: deps.Controller,
		opts:       opts,
	}, nil
}

// State returns a snapshot of the monitor state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.clone()
}

// Run ticks once immediately and then again Interval after each tick completes, until ctx is done.
// A tick in progress when ctx is cancelled runs to completion: collaborator calls are detached from
// ctx and bounded by their own timeouts instead.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info(
		"Starting monitor",
		"target", m.target.Addr(),
		"type", m.target.Type,
		"container", m.opts.ContainerName,
		"threshold", m.opts.MaxBadMapStreak,
		"interval", m.opts.Interval,
		"cooldown", m.opts.RestartCooldown,
	)
	m.logger.Info(fmt.Sprintf("Trigger threshold: %d consecutive empty map checks", m.opts.MaxBadMapStreak))

	tickCtx := context.WithoutCancel(ctx)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Stopping monitor")
			return nil
		case <-timer.C:
		}

		m.Tick(tickCtx)

		// Re-arm only once the tick has completed.
		timer.Reset(m.opts.Interval)
	}
}

// Tick runs one health evaluation: cooldown gate, query, streak update and, at the threshold, escalation.
func (m *Monitor) Tick(ctx context.Context) TickResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.Clock()
	res := TickResult{At: now}

	if until := m.state.CooldownUntil; until != nil {
		if now.Before(*until) {
			m.logger.Info(
				"Restart cooldown active, skipping health check",
				"remaining", until.Sub(now).Round(time.Millisecond),
				"until", until.Format(time.RFC3339),
			)
			res.Outcome = OutcomeSkipped
			return m.finish(res)
		}

		m.state.CooldownUntil = nil
		m.logger.Info("Restart cooldown expired, resuming health checks")
	}

	info, err := m.querier.QueryHealth(ctx, m.target)
	if err != nil {
		m.logger.Error("Error fetching server info (server might be offline)", "target", m.target.Addr(), "error", err)
		res.Outcome = OutcomeQueryError
		res.Err = err
		return m.finish(res)
	}

	res.Map = info.Map
	m.logger.Debug(
		"Server health",
		"map", info.Map,
		"players", info.Players,
		"max_players", info.MaxPlayers,
		"latency", info.Latency,
	)

	if !IsInvalidMap(info.Map) {
		if m.state.BadStreak > 0 {
			m.logger.Info("Server recovered", "map", info.Map, "previous_streak", m.state.BadStreak)
		}
		m.state.BadStreak = 0
		res.Outcome = OutcomeValid
		return m.finish(res)
	}

	m.state.BadStreak++
	res.Outcome = OutcomeInvalid
	m.logger.Warn(
		"Server reported an invalid map",
		"map", info.Map,
		"streak", m.state.BadStreak,
		"threshold", m.opts.MaxBadMapStreak,
	)

	if m.state.BadStreak >= m.opts.MaxBadMapStreak {
		esc := m.escalate(ctx)
		res.Escalation = &esc
		// Reset regardless of the escalation result.
		m.state.BadStreak = 0
	}

	return m.finish(res)
}

func (m *Monitor) finish(res TickResult) TickResult {
	res.State = m.state.clone()
	m.opts.Recorder.ObserveTick(res)
	return res
}
