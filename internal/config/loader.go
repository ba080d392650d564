package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Loader produces the effective configuration.
type Loader interface {
	Load() (*Config, error)
}

// DefaultLoader layers defaults, an optional TOML file, an optional dotenv file and the
// process environment, in increasing order of precedence.
type DefaultLoader struct {
	// ConfigFile is the TOML file path. Empty skips the file.
	ConfigFile string

	// ConfigFileRequired turns a missing ConfigFile into an error instead of skipping it.
	ConfigFileRequired bool

	// EnvFile is the dotenv file path. Empty skips the file.
	EnvFile string

	// EnvFileRequired turns a missing EnvFile into an error instead of skipping it.
	EnvFileRequired bool

	// Lookup reads the process environment. Nil means os.LookupEnv.
	Lookup LookupFunc
}

// Load builds, validates and returns the effective configuration.
func (l *DefaultLoader) Load() (*Config, error) {
	cfg := Default()

	if err := l.decodeFile(cfg); err != nil {
		return nil, err
	}

	lookup, err := l.envLookup()
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
	}

	return cfg, nil
}

func (l *DefaultLoader) decodeFile(cfg *Config) error {
	path := strings.TrimSpace(l.ConfigFile)
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.ConfigFileRequired {
			return nil
		}
		return fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key '%s' in config file (%s)", ErrConfigLoadFailed, undecoded[0], path)
	}

	return nil
}

// envLookup returns a LookupFunc that prefers the process environment and falls back to the
// dotenv file, so variables already set are never overridden by the file.
func (l *DefaultLoader) envLookup() (LookupFunc, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	path := strings.TrimSpace(l.EnvFile)
	if path == "" {
		return lookup, nil
	}

	dotenv, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.EnvFileRequired {
			return lookup, nil
		}
		return nil, fmt.Errorf("%w: failed to read env file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}
