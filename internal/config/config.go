package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gswatchdog/gswatchdog/internal/monitor"
)

// Config is the effective watchdog configuration.
//
// NOTE: if you add/remove fields you must review applyEnv, validate and the
// README's configuration table.
type Config struct {
	Server    ServerSection    `json:"server" toml:"server" yaml:"server"`
	Monitor   MonitorSection   `json:"monitor" toml:"monitor" yaml:"monitor"`
	Container ContainerSection `json:"container" toml:"container" yaml:"container"`
	Metrics   MetricsSection   `json:"metrics" toml:"metrics" yaml:"metrics"`
}

// ServerSection describes the game server being watched.
type ServerSection struct {
	// Host to query.
	// Maps to env var SERVER_HOST
	Host string `json:"host" toml:"host" yaml:"host"`

	// Query port.
	// Maps to env var SERVER_PORT
	Port int `json:"port" toml:"port" yaml:"port"`

	// Game/protocol identifier handed to the query collaborator.
	// Maps to env var SERVER_TYPE
	Type string `json:"type" toml:"type" yaml:"type"`

	// Upper bound for a single health query.
	// Maps to env var QUERY_TIMEOUT (milliseconds)
	QueryTimeout Duration `json:"queryTimeout" toml:"query_timeout" yaml:"query_timeout"`
}

// MonitorSection holds the knobs of the monitor loop.
type MonitorSection struct {
	// Delay between the end of one tick and the start of the next.
	// Maps to env var UPDATE_INTERVAL (milliseconds)
	Interval Duration `json:"interval" toml:"interval" yaml:"interval"`

	// Number of consecutive invalid observations that triggers a restart.
	// Maps to env var MAX_BAD_MAP_STREAK
	MaxBadMapStreak int `json:"maxBadMapStreak" toml:"max_bad_map_streak" yaml:"max_bad_map_streak"`

	// Quiet period after a successful restart. Zero disables the cooldown.
	// Maps to env var RESTART_COOLDOWN (milliseconds)
	RestartCooldown Duration `json:"restartCooldown" toml:"restart_cooldown" yaml:"restart_cooldown"`
}

// ContainerSection describes the container hosting the game server.
type ContainerSection struct {
	// Name or ID of the container to restart. Empty disables restarts.
	// Maps to env var TARGET_CONTAINER_NAME
	Name string `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`

	// Docker Engine endpoint. Empty means the Docker client default.
	// Maps to env var DOCKER_HOST
	DockerHost string `json:"dockerHost,omitempty" toml:"docker_host" yaml:"docker_host,omitempty"`

	// Upper bound for an inspect+restart sequence.
	// Maps to env var DOCKER_TIMEOUT (milliseconds)
	Timeout Duration `json:"timeout" toml:"timeout" yaml:"timeout"`

	// Seconds the engine waits for the container to stop before killing it. Nil uses the engine default.
	// Maps to env var DOCKER_STOP_TIMEOUT (seconds)
	StopTimeout *int `json:"stopTimeout,omitempty" toml:"stop_timeout" yaml:"stop_timeout,omitempty"`
}

// MetricsSection configures the Prometheus textfile output.
type MetricsSection struct {
	// Path of the textfile written after every tick. Empty disables metrics output.
	// Maps to env var METRICS_TEXTFILE
	Textfile string `json:"textfile,omitempty" toml:"textfile" yaml:"textfile,omitempty"`
}

const (
	DefaultServerPort = 27015
	DefaultServerType = "csgo"
)

// DefaultQueryTimeout is the default bound for a single health query.
func DefaultQueryTimeout() time.Duration {
	return 5 * time.Second
}

// DefaultDockerTimeout is the default bound for an inspect+restart sequence.
func DefaultDockerTimeout() time.Duration {
	return monitor.DefaultRestartTimeout()
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Server: ServerSection{
			Port:         DefaultServerPort,
			Type:         DefaultServerType,
			QueryTimeout: Duration(DefaultQueryTimeout()),
		},
		Monitor: MonitorSection{
			Interval:        Duration(monitor.DefaultInterval()),
			MaxBadMapStreak: monitor.DefaultMaxBadMapStreak(),
			RestartCooldown: Duration(monitor.DefaultRestartCooldown()),
		},
		Container: ContainerSection{
			Timeout: Duration(DefaultDockerTimeout()),
		},
	}
}

// Target returns the "host:port" address of the watched server.
func (s ServerSection) Target() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c *Config) normalize() {
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	c.Server.Type = strings.ToLower(strings.TrimSpace(c.Server.Type))
	c.Container.Name = strings.TrimSpace(c.Container.Name)
	c.Container.DockerHost = strings.TrimSpace(c.Container.DockerHost)
	c.Metrics.Textfile = strings.TrimSpace(c.Metrics.Textfile)
}

func (c *Config) validate() error {
	if c.Server.Host == "" {
		return NewErrMissingValue(EnvVarServerHost)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return NewErrInvalidValue(EnvVarServerPort, fmt.Sprint(c.Server.Port))
	}
	if c.Server.Type == "" {
		return NewErrMissingValue(EnvVarServerType)
	}
	if c.Server.QueryTimeout <= 0 {
		return NewErrInvalidValue(EnvVarQueryTimeout, c.Server.QueryTimeout.String())
	}
	if c.Monitor.Interval <= 0 {
		return NewErrInvalidValue(EnvVarUpdateInterval, c.Monitor.Interval.String())
	}
	if c.Monitor.MaxBadMapStreak < 1 {
		return NewErrInvalidValue(EnvVarMaxBadMapStreak, fmt.Sprint(c.Monitor.MaxBadMapStreak))
	}
	if c.Monitor.RestartCooldown < 0 {
		return NewErrInvalidValue(EnvVarRestartCooldown, c.Monitor.RestartCooldown.String())
	}
	if c.Container.Timeout <= 0 {
		return NewErrInvalidValue(EnvVarDockerTimeout, c.Container.Timeout.String())
	}
	if c.Container.StopTimeout != nil && *c.Container.StopTimeout < 0 {
		return NewErrInvalidValue(EnvVarDockerStopTimeout, fmt.Sprint(*c.Container.StopTimeout))
	}

	return nil
}
