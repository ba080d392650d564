package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gswatchdog/gswatchdog/internal/config"
	"github.com/gswatchdog/gswatchdog/internal/flags"
	"github.com/gswatchdog/gswatchdog/internal/perms"
)

// LoggerName is the root name of every logger created by the CLI.
const LoggerName = "gswatchdog"

type BaseCmd struct {
	logger  hclog.Logger
	logFile io.Closer

	// stderr is where logs go when no log path is configured. Nil means os.Stderr.
	stderr io.Writer
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// SetStderr redirects the fallback log output, used when no log file is configured.
func (c *BaseCmd) SetStderr(w io.Writer) {
	c.stderr = w
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := strings.TrimSpace(flags.LogPath)
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	output := c.stderr
	if output == nil {
		output = os.Stderr
	}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.LogFile)
		if err != nil {
			_, _ = fmt.Fprintf(output, "Failed to open log file (%s): %v, using stderr\n", logPath, err)
		} else {
			output = f
			c.logFile = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   LoggerName,
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// Close releases the log file opened by Logger, if any.
func (c *BaseCmd) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// FlagConfigLoader loads configuration from the paths named by the global flags.
// The paths are read at Load time, after cobra has parsed the command line.
type FlagConfigLoader struct {
	// Lookup reads the process environment. Nil means os.LookupEnv.
	Lookup config.LookupFunc
}

// Load implements config.Loader.
// A config or env file that was explicitly pointed at somewhere other than its default must exist.
func (l *FlagConfigLoader) Load() (*config.Config, error) {
	loader := &config.DefaultLoader{
		ConfigFile:         flags.ConfigFile,
		ConfigFileRequired: isExplicitPath(flags.ConfigFile, flags.DefaultConfigFile),
		EnvFile:            flags.EnvFile,
		EnvFileRequired:    isExplicitPath(flags.EnvFile, flags.DefaultEnvFile),
		Lookup:             l.Lookup,
	}

	return loader.Load()
}

func isExplicitPath(path string, def string) bool {
	path = strings.TrimSpace(path)
	return path != "" && path != def
}
