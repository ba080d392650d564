package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gswatchdog/gswatchdog/internal/cmd"
	cmdopts "github.com/gswatchdog/gswatchdog/internal/cmd/options"
	"github.com/gswatchdog/gswatchdog/internal/config"
	"github.com/gswatchdog/gswatchdog/internal/monitor"
	"github.com/gswatchdog/gswatchdog/internal/query"
)

// RunCmd represents the 'run' command.
type RunCmd struct {
	*cmd.BaseCmd
	cfgLoader     config.Loader
	newQuerier    cmdopts.QuerierFactory
	newController cmdopts.ControllerFactory
	newRecorder   cmdopts.RecorderFactory
}

// NewRunCmd creates a newly configured (Cobra) command.
func NewRunCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	c, err := newRunCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	return &cobra.Command{
		Use:   "run",
		Short: "Runs the watchdog until interrupted",
		Long: "Runs the watchdog in the foreground, checking the game server every interval " +
			"and restarting its container when the bad map streak reaches the threshold.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}, nil
}

func newRunCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*RunCmd, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &RunCmd{
		BaseCmd:       baseCmd,
		cfgLoader:     opts.ConfigLoader,
		newQuerier:    opts.QuerierFactory,
		newController: opts.ControllerFactory,
		newRecorder:   opts.RecorderFactory,
	}, nil
}

// run is called by the Cobra framework when the command is executed.
// SIGINT and SIGTERM stop the watchdog cleanly.
func (c *RunCmd) run(cobraCmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return c.runWatchdog(ctx)
}

func (c *RunCmd) runWatchdog(ctx context.Context) error {
	logger := c.Logger()

	cfg, err := c.cfgLoader.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		return err
	}

	querier, err := c.newQuerier(logger, cfg.Server)
	if err != nil {
		logger.Error("Failed to create server query client", "type", cfg.Server.Type, "error", err)
		return err
	}

	controller, err := c.newController(logger, cfg.Container)
	if err != nil {
		logger.Error("Failed to create Docker client", "error", err)
		return err
	}
	defer func() {
		if err := controller.Close(); err != nil {
			logger.Warn("Failed to close Docker client", "error", err)
		}
	}()

	recorder, err := c.newRecorder(logger, cfg.Metrics)
	if err != nil {
		return err
	}

	target := query.Target{Host: cfg.Server.Host, Port: cfg.Server.Port, Type: cfg.Server.Type}
	deps, err := monitor.NewDependencies(logger, target, querier, controller)
	if err != nil {
		return fmt.Errorf("error configuring monitor dependencies: %w", err)
	}

	opts, err := monitor.NewOptions(
		monitor.WithInterval(cfg.Monitor.Interval.Std()),
		monitor.WithMaxBadMapStreak(cfg.Monitor.MaxBadMapStreak),
		monitor.WithRestartCooldown(cfg.Monitor.RestartCooldown.Std()),
		monitor.WithRestartTimeout(cfg.Container.Timeout.Std()),
		monitor.WithContainerName(cfg.Container.Name),
		monitor.WithRecorder(recorder),
	)
	if err != nil {
		return fmt.Errorf("error configuring monitor options: %w", err)
	}

	m, err := monitor.NewMonitor(deps, opts)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	if err := m.Run(ctx); err != nil {
		logger.Error("Watchdog exited with error", "error", err)
		return err
	}

	logger.Info("Shutting down watchdog")
	return nil
}
