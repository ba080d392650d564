package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvVarServerHost        = "SERVER_HOST"
	EnvVarServerPort        = "SERVER_PORT"
	EnvVarServerType        = "SERVER_TYPE"
	EnvVarQueryTimeout      = "QUERY_TIMEOUT"
	EnvVarUpdateInterval    = "UPDATE_INTERVAL"
	EnvVarMaxBadMapStreak   = "MAX_BAD_MAP_STREAK"
	EnvVarRestartCooldown   = "RESTART_COOLDOWN"
	EnvVarContainerName     = "TARGET_CONTAINER_NAME"
	EnvVarDockerHost        = "DOCKER_HOST"
	EnvVarDockerTimeout     = "DOCKER_TIMEOUT"
	EnvVarDockerStopTimeout = "DOCKER_STOP_TIMEOUT"
	EnvVarMetricsTextfile   = "METRICS_TEXTFILE"
)

// LookupFunc retrieves the value of an environment variable, reporting whether it was present.
// os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// applyEnv overlays every environment variable that is present and non-blank onto c.
func (c *Config) applyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(v)
		return v, v != ""
	}

	if v, ok := get(EnvVarServerHost); ok {
		c.Server.Host = v
	}
	if v, ok := get(EnvVarServerPort); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return NewErrInvalidValue(EnvVarServerPort, v)
		}
		c.Server.Port = n
	}
	if v, ok := get(EnvVarServerType); ok {
		c.Server.Type = v
	}
	if v, ok := get(EnvVarQueryTimeout); ok {
		d, err := parseMillis(EnvVarQueryTimeout, v)
		if err != nil {
			return err
		}
		c.Server.QueryTimeout = d
	}
	if v, ok := get(EnvVarUpdateInterval); ok {
		d, err := parseMillis(EnvVarUpdateInterval, v)
		if err != nil {
			return err
		}
		c.Monitor.Interval = d
	}
	if v, ok := get(EnvVarMaxBadMapStreak); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return NewErrInvalidValue(EnvVarMaxBadMapStreak, v)
		}
		c.Monitor.MaxBadMapStreak = n
	}
	if v, ok := get(EnvVarRestartCooldown); ok {
		d, err := parseMillis(EnvVarRestartCooldown, v)
		if err != nil {
			return err
		}
		c.Monitor.RestartCooldown = d
	}
	if v, ok := get(EnvVarContainerName); ok {
		c.Container.Name = v
	}
	if v, ok := get(EnvVarDockerHost); ok {
		c.Container.DockerHost = v
	}
	if v, ok := get(EnvVarDockerTimeout); ok {
		d, err := parseMillis(EnvVarDockerTimeout, v)
		if err != nil {
			return err
		}
		c.Container.Timeout = d
	}
	if v, ok := get(EnvVarDockerStopTimeout); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return NewErrInvalidValue(EnvVarDockerStopTimeout, v)
		}
		c.Container.StopTimeout = &n
	}
	if v, ok := get(EnvVarMetricsTextfile); ok {
		c.Metrics.Textfile = v
	}

	return nil
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// parseMillis parses an integer number of milliseconds.
func parseMillis(key string, v string) (Duration, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 || n > maxMillis {
		return 0, NewErrInvalidValue(key, v)
	}
	return Duration(time.Duration(n) * time.Millisecond), nil
}
