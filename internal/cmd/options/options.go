package options

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/gswatchdog/gswatchdog/internal/cmd"
	"github.com/gswatchdog/gswatchdog/internal/config"
	"github.com/gswatchdog/gswatchdog/internal/container"
	"github.com/gswatchdog/gswatchdog/internal/metrics"
	"github.com/gswatchdog/gswatchdog/internal/monitor"
	"github.com/gswatchdog/gswatchdog/internal/query"
)

// Controller is a container.Controller that holds resources until closed.
type Controller interface {
	container.Controller
	Close() error
}

// QuerierFactory builds the health query collaborator for the configured server.
type QuerierFactory func(logger hclog.Logger, cfg config.ServerSection) (query.Querier, error)

// ControllerFactory builds the container collaborator.
type ControllerFactory func(logger hclog.Logger, cfg config.ContainerSection) (Controller, error)

// RecorderFactory builds the monitor.Recorder fed with every tick.
type RecorderFactory func(logger hclog.Logger, cfg config.MetricsSection) (monitor.Recorder, error)

type CmdOption func(*CmdOptions) error

// CmdOptions holds the collaborators shared by the CLI commands.
type CmdOptions struct {
	ConfigLoader      config.Loader
	QuerierFactory    QuerierFactory
	ControllerFactory ControllerFactory
	RecorderFactory   RecorderFactory
}

func defaultOptions() CmdOptions {
	return CmdOptions{
		ConfigLoader:      &cmd.FlagConfigLoader{},
		QuerierFactory:    DefaultQuerierFactory,
		ControllerFactory: DefaultControllerFactory,
		RecorderFactory:   DefaultRecorderFactory,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithQuerierFactory(f QuerierFactory) CmdOption {
	return func(o *CmdOptions) error {
		if f == nil {
			return fmt.Errorf("querier factory cannot be nil")
		}
		o.QuerierFactory = f
		return nil
	}
}

func WithControllerFactory(f ControllerFactory) CmdOption {
	return func(o *CmdOptions) error {
		if f == nil {
			return fmt.Errorf("controller factory cannot be nil")
		}
		o.ControllerFactory = f
		return nil
	}
}

func WithRecorderFactory(f RecorderFactory) CmdOption {
	return func(o *CmdOptions) error {
		if f == nil {
			return fmt.Errorf("recorder factory cannot be nil")
		}
		o.RecorderFactory = f
		return nil
	}
}

// DefaultQuerierFactory picks the query protocol from the server type.
func DefaultQuerierFactory(logger hclog.Logger, cfg config.ServerSection) (query.Querier, error) {
	return query.New(logger, cfg.Type, cfg.QueryTimeout.Std())
}

// DefaultControllerFactory connects to the Docker Engine named by cfg.DockerHost, or by the
// DOCKER_* environment when it is empty.
func DefaultControllerFactory(logger hclog.Logger, cfg config.ContainerSection) (Controller, error) {
	return container.NewDockerController(logger, cfg.StopTimeout, container.DefaultClientOpts(cfg.DockerHost)...)
}

// DefaultRecorderFactory records ticks as Prometheus metrics.
func DefaultRecorderFactory(logger hclog.Logger, cfg config.MetricsSection) (monitor.Recorder, error) {
	return metrics.New(logger, cfg.Textfile)
}
