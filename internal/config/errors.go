package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidValue     = errors.New("config value invalid")
	ErrMissingValue     = errors.New("config value missing")
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)

// NewErrInvalidValue returns an error for an invalid configuration value.
func NewErrInvalidValue(key string, value string) error {
	return fmt.Errorf("%w: '%s' (value: '%s')", ErrInvalidValue, key, value)
}

// NewErrMissingValue returns an error for a required configuration value that was not supplied.
func NewErrMissingValue(key string) error {
	return fmt.Errorf("%w: '%s'", ErrMissingValue, key)
}
