package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile = "GSWATCHDOG_CONFIG_FILE"
	EnvVarEnvFile    = "GSWATCHDOG_ENV_FILE"
	EnvVarLogPath    = "GSWATCHDOG_LOG_PATH"
	EnvVarLogLevel   = "GSWATCHDOG_LOG_LEVEL"

	// Defaults
	DefaultConfigFile = ".gswatchdog.toml"
	DefaultEnvFile    = ".env"
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"

	// Flag names
	FlagNameConfigFile = "config-file"
	FlagNameEnvFile    = "env-file"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
)

var (
	ConfigFile string
	EnvFile    string
	LogPath    string
	LogLevel   string
)

// InitFlags registers the global flags on fs, seeding each default from its environment variable.
func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initEnvFile(fs)
	initLogger(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		ConfigFile = envOrDefault(EnvVarConfigFile, DefaultConfigFile)
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to optional TOML config file")
}

func initEnvFile(fs *pflag.FlagSet) {
	if EnvFile == "" {
		EnvFile = envOrDefault(EnvVarEnvFile, DefaultEnvFile)
	}
	fs.StringVar(&EnvFile, FlagNameEnvFile, EnvFile, "path to optional dotenv file")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		LogPath = envOrDefault(EnvVarLogPath, DefaultLogPath)
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to log file (defaults to stderr)")

	if LogLevel == "" {
		LogLevel = strings.ToLower(envOrDefault(EnvVarLogLevel, DefaultLogLevel))
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for gswatchdog logs")
}

func envOrDefault(key string, def string) string {
	if env := strings.TrimSpace(os.Getenv(key)); env != "" {
		return env
	}
	return def
}
