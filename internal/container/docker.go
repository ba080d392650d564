package container

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/hashicorp/go-hclog"

	"github.com/gswatchdog/gswatchdog/internal/errors"
)

// Controller resolves and restarts a container.
// Both methods return an error wrapping errors.ErrContainerNotFound when name does not resolve.
type Controller interface {
	Inspect(ctx context.Context, name string) error
	Restart(ctx context.Context, name string) error
}

// dockerAPI is the part of the Docker Engine client used by DockerController.
type dockerAPI interface {
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerRestart(ctx context.Context, containerID string, options container.StopOptions) error
	Close() error
}

// DockerController controls containers through the Docker Engine API.
type DockerController struct {
	logger      hclog.Logger
	api         dockerAPI
	stopTimeout *int
}

// NewDockerController creates a controller talking to the Docker Engine described by opts.
// stopTimeout is the grace period in seconds handed to restart; nil uses the engine default.
func NewDockerController(logger hclog.Logger, stopTimeout *int, opts ...client.Opt) (*DockerController, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if stopTimeout != nil && *stopTimeout < 0 {
		return nil, fmt.Errorf("stop timeout must not be negative, got %d", *stopTimeout)
	}

	api, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &DockerController{
		logger:      logger.Named("docker"),
		api:         api,
		stopTimeout: stopTimeout,
	}, nil
}

// DefaultClientOpts returns the Docker client options used by the daemon: environment
// driven (DOCKER_HOST, DOCKER_API_VERSION, DOCKER_CERT_PATH, ...) with API version negotiation.
// A non-empty host overrides DOCKER_HOST.
func DefaultClientOpts(host string) []client.Opt {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host = strings.TrimSpace(host); host != "" {
		opts = append(opts, client.WithHost(host))
	}
	return opts
}

// Inspect implements Controller.
func (d *DockerController) Inspect(ctx context.Context, name string) error {
	info, err := d.api.ContainerInspect(ctx, name)
	if err != nil {
		return d.wrap("inspect", name, err)
	}

	if info.ContainerJSONBase != nil && info.State != nil {
		d.logger.Debug("Container inspected", "name", name, "id", info.ID, "status", info.State.Status)
	}

	return nil
}

// Restart implements Controller.
func (d *DockerController) Restart(ctx context.Context, name string) error {
	if err := d.api.ContainerRestart(ctx, name, container.StopOptions{Timeout: d.stopTimeout}); err != nil {
		return d.wrap("restart", name, err)
	}
	return nil
}

// Close releases the underlying Docker client.
func (d *DockerController) Close() error {
	return d.api.Close()
}

func (d *DockerController) wrap(op string, name string, err error) error {
	if errdefs.IsNotFound(err) {
		return fmt.Errorf("%w: '%s': %w", errors.ErrContainerNotFound, name, err)
	}
	return fmt.Errorf("docker %s '%s': %w", op, name, err)
}
