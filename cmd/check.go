package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gswatchdog/gswatchdog/internal/cmd"
	cmdopts "github.com/gswatchdog/gswatchdog/internal/cmd/options"
	"github.com/gswatchdog/gswatchdog/internal/cmd/output"
	"github.com/gswatchdog/gswatchdog/internal/config"
	domainerrors "github.com/gswatchdog/gswatchdog/internal/errors"
	"github.com/gswatchdog/gswatchdog/internal/monitor"
	"github.com/gswatchdog/gswatchdog/internal/query"
)

// Container states reported by 'check'.
const (
	ContainerFound        = "found"
	ContainerNotFound     = "not_found"
	ContainerError        = "error"
	ContainerUnconfigured = "unconfigured"
)

// errUnhealthy is returned by 'check' when the server is unreachable or reports an invalid map.
var errUnhealthy = errors.New("server is unhealthy")

// CheckResult is the outcome of a one-off health check.
type CheckResult struct {
	Target  string `json:"target" yaml:"target"`
	Type    string `json:"type" yaml:"type"`
	Healthy bool   `json:"healthy" yaml:"healthy"`

	Server     *query.Result `json:"server,omitempty" yaml:"server,omitempty"`
	QueryError string        `json:"queryError,omitempty" yaml:"query_error,omitempty"`

	Container      string `json:"container,omitempty" yaml:"container,omitempty"`
	ContainerState string `json:"containerState" yaml:"container_state"`
	ContainerError string `json:"containerError,omitempty" yaml:"container_error,omitempty"`
}

// CheckCmd represents the 'check' command.
type CheckCmd struct {
	*cmd.BaseCmd
	Format        cmd.OutputFormat
	cfgLoader     config.Loader
	newQuerier    cmdopts.QuerierFactory
	newController cmdopts.ControllerFactory
}

// NewCheckCmd creates a newly configured (Cobra) command.
func NewCheckCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CheckCmd{
		BaseCmd:       baseCmd,
		Format:        cmd.FormatText,
		cfgLoader:     opts.ConfigLoader,
		newQuerier:    opts.QuerierFactory,
		newController: opts.ControllerFactory,
	}

	cobraCommand := &cobra.Command{
		Use:   "check",
		Short: "Queries the game server once and reports its health",
		Long: "Queries the game server once, looks up the target container and reports the result. " +
			"Exits non-zero when the server is unreachable or reports an invalid map. " +
			"The bad map streak and restart cooldown are not involved and no restart is attempted.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		cmd.FlagNameFormat,
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand, nil
}

func (c *CheckCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewHandler[CheckResult](c.Format, cobraCmd.OutOrStdout(), output.PrinterFunc[CheckResult](printCheckResult))
	if err != nil {
		return err
	}

	cfg, err := c.cfgLoader.Load()
	if err != nil {
		return handleFailure(handler, err)
	}

	res, err := c.check(cobraCmd.Context(), cfg)
	if err != nil {
		return handleFailure(handler, err)
	}

	if err := handler.HandleResult(res); err != nil {
		return err
	}

	if !res.Healthy {
		return fmt.Errorf("%w: %s", errUnhealthy, res.Target)
	}

	return nil
}

// handleFailure renders err and still returns it, so the process exits non-zero in every format.
func handleFailure[T any](handler output.Handler[T], err error) error {
	if hErr := handler.HandleError(err); hErr != nil && hErr != err {
		return hErr
	}
	return err
}

// check queries the server and inspects the container concurrently.
func (c *CheckCmd) check(ctx context.Context, cfg *config.Config) (CheckResult, error) {
	logger := c.Logger()

	querier, err := c.newQuerier(logger, cfg.Server)
	if err != nil {
		return CheckResult{}, err
	}

	res := CheckResult{
		Target:         cfg.Server.Target(),
		Type:           cfg.Server.Type,
		Container:      cfg.Container.Name,
		ContainerState: ContainerUnconfigured,
	}

	var controller cmdopts.Controller
	if cfg.Container.Name != "" {
		controller, err = c.newController(logger, cfg.Container)
		if err != nil {
			return CheckResult{}, fmt.Errorf("failed to create Docker client: %w", err)
		}
		defer func() { _ = controller.Close() }()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		target := query.Target{Host: cfg.Server.Host, Port: cfg.Server.Port, Type: cfg.Server.Type}
		info, err := querier.QueryHealth(gctx, target)
		if err != nil {
			res.QueryError = err.Error()
			return nil
		}
		res.Server = &info
		res.Healthy = !monitor.IsInvalidMap(info.Map)
		return nil
	})

	if controller != nil {
		g.Go(func() error {
			inspectCtx, cancel := context.WithTimeout(gctx, cfg.Container.Timeout.Std())
			defer cancel()

			err := controller.Inspect(inspectCtx, cfg.Container.Name)
			switch {
			case err == nil:
				res.ContainerState = ContainerFound
			case errors.Is(err, domainerrors.ErrContainerNotFound):
				res.ContainerState = ContainerNotFound
			default:
				res.ContainerState = ContainerError
				res.ContainerError = err.Error()
			}
			return nil
		})
	}

	// Both goroutines record failures in res rather than returning them.
	_ = g.Wait()

	return res, nil
}

func printCheckResult(w io.Writer, res CheckResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	status := "healthy"
	if !res.Healthy {
		status = "unhealthy"
	}

	_, _ = fmt.Fprintf(tw, "Server:\t%s (%s)\n", res.Target, res.Type)
	if res.Server != nil {
		m := res.Server.Map
		if monitor.IsInvalidMap(m) {
			m = fmt.Sprintf("%q (invalid)", m)
		}
		_, _ = fmt.Fprintf(tw, "Map:\t%s\n", m)
		if res.Server.Name != "" {
			_, _ = fmt.Fprintf(tw, "Name:\t%s\n", res.Server.Name)
		}
		_, _ = fmt.Fprintf(tw, "Players:\t%d/%d\n", res.Server.Players, res.Server.MaxPlayers)
		_, _ = fmt.Fprintf(tw, "Latency:\t%s\n", res.Server.Latency.Round(time.Millisecond))
	} else {
		_, _ = fmt.Fprintf(tw, "Query error:\t%s\n", res.QueryError)
	}

	container := res.ContainerState
	if res.Container != "" {
		container = fmt.Sprintf("%s (%s)", res.Container, res.ContainerState)
	}
	if res.ContainerError != "" {
		container += ": " + res.ContainerError
	}
	_, _ = fmt.Fprintf(tw, "Container:\t%s\n", container)
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", status)

	return tw.Flush()
}
