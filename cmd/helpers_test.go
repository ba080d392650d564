package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/gswatchdog/gswatchdog/internal/cmd"
	cmdopts "github.com/gswatchdog/gswatchdog/internal/cmd/options"
	"github.com/gswatchdog/gswatchdog/internal/config"
	domainerrors "github.com/gswatchdog/gswatchdog/internal/errors"
	"github.com/gswatchdog/gswatchdog/internal/monitor"
	"github.com/gswatchdog/gswatchdog/internal/query"
)

type fakeLoader struct {
	cfg *config.Config
	err error
}

func (l *fakeLoader) Load() (*config.Config, error) {
	if l.err != nil {
		return nil, l.err
	}
	cfg := *l.cfg
	return &cfg, nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Container.Name = "cs-server"
	return cfg
}

type fakeController struct {
	mu         sync.Mutex
	inspectErr error
	inspected  []string
	restarted  []string
	closed     bool
}

func (c *fakeController) Inspect(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inspected = append(c.inspected, name)
	return c.inspectErr
}

func (c *fakeController) Restart(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restarted = append(c.restarted, name)
	return nil
}

func (c *fakeController) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeController) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

var errNoReply = fmt.Errorf("%w: no reply", domainerrors.ErrQueryFailed)

var errNotFound = fmt.Errorf("%w: 'cs-server'", domainerrors.ErrContainerNotFound)

var errDaemonDown = errors.New("cannot connect to the Docker daemon")

// testOptions wires fakes in place of the real collaborators.
func testOptions(loader config.Loader, querier query.Querier, controller *fakeController) []cmdopts.CmdOption {
	return []cmdopts.CmdOption{
		cmdopts.WithConfigLoader(loader),
		cmdopts.WithQuerierFactory(func(hclog.Logger, config.ServerSection) (query.Querier, error) {
			return querier, nil
		}),
		cmdopts.WithControllerFactory(func(hclog.Logger, config.ContainerSection) (cmdopts.Controller, error) {
			return controller, nil
		}),
		cmdopts.WithRecorderFactory(func(hclog.Logger, config.MetricsSection) (monitor.Recorder, error) {
			return &recordingRecorder{}, nil
		}),
	}
}

func mapQuerier(m string) query.Querier {
	return query.QuerierFunc(func(context.Context, query.Target) (query.Result, error) {
		return query.Result{Map: m, Name: "Test Server", Players: 3, MaxPlayers: 24}, nil
	})
}

func errQuerier(err error) query.Querier {
	return query.QuerierFunc(func(context.Context, query.Target) (query.Result, error) {
		return query.Result{}, err
	})
}

type recordingRecorder struct {
	mu    sync.Mutex
	ticks []monitor.TickResult
}

func (r *recordingRecorder) ObserveTick(res monitor.TickResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, res)
}

func testBaseCmd() *cmd.BaseCmd {
	baseCmd := &cmd.BaseCmd{}
	baseCmd.SetLogger(hclog.NewNullLogger())
	return baseCmd
}
