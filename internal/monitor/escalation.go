package monitor

import (
	"context"
	"errors"
	"time"

	domainerrors "github.com/gswatchdog/gswatchdog/internal/errors"
)

// escalate restarts the configured container and, on success, arms the cooldown.
// It never retries; failures leave the cooldown unarmed.
func (m *Monitor) escalate(ctx context.Context) Escalation {
	name := m.opts.ContainerName
	esc := Escalation{Container: name}

	if name == "" {
		esc.Result = RestartUnconfigured
		esc.Err = domainerrors.ErrContainerUnconfigured
		m.logger.Error("Restart threshold reached but TARGET_CONTAINER_NAME is not set", "error", esc.Err)
		return esc
	}

	m.logger.Warn("Limit reached, restarting container", "container", name, "threshold", m.opts.MaxBadMapStreak)

	restartCtx, cancel := context.WithTimeout(ctx, m.opts.RestartTimeout)
	defer cancel()

	if err := m.restartContainer(restartCtx, name); err != nil {
		esc.Result = classifyRestartError(err)
		esc.Err = err

		switch esc.Result {
		case RestartNotFound:
			m.logger.Error("Container not found", "container", name)
		default:
			m.logger.Error("Docker API error", "container", name, "error", err)
		}
		return esc
	}

	esc.Result = RestartRestarted
	m.logger.Info("Restart command successfully sent", "container", name)

	if cooldown := m.opts.RestartCooldown; cooldown > 0 {
		until := m.opts.Clock().Add(cooldown)
		m.state.CooldownUntil = &until
		m.logger.Info("Restart cooldown armed", "cooldown", cooldown, "until", until.Format(time.RFC3339))
	}

	return esc
}

// restartContainer verifies that the container exists before restarting it.
func (m *Monitor) restartContainer(ctx context.Context, name string) error {
	if err := m.controller.Inspect(ctx, name); err != nil {
		return err
	}
	return m.controller.Restart(ctx, name)
}

// classifyRestartError maps a container controller error to a RestartResult.
func classifyRestartError(err error) RestartResult {
	switch {
	case err == nil:
		return RestartRestarted
	case errors.Is(err, domainerrors.ErrContainerNotFound):
		return RestartNotFound
	case errors.Is(err, domainerrors.ErrContainerUnconfigured):
		return RestartUnconfigured
	default:
		return RestartFailed
	}
}
