package monitor

import (
	"fmt"
	"strings"
	"time"
)

// Options contains optional configuration for the monitor.
// NewOptions should be used to create instances of Options.
type Options struct {
	// Interval is the delay between the end of one tick and the start of the next.
	Interval time.Duration

	// MaxBadMapStreak is the number of consecutive invalid observations that triggers a restart.
	MaxBadMapStreak int

	// RestartCooldown is the quiet period after a successful restart. Zero disables it.
	RestartCooldown time.Duration

	// RestartTimeout bounds the inspect and restart calls of one escalation.
	RestartTimeout time.Duration

	// ContainerName is the container to restart. Empty disables restarts.
	ContainerName string

	// Clock returns the current time.
	Clock func() time.Time

	// Recorder observes every completed tick.
	Recorder Recorder
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithInterval configures the delay between ticks.
func WithInterval(interval time.Duration) Option {
	return func(o *Options) error {
		if interval <= 0 {
			return fmt.Errorf("interval must be positive, got %v", interval)
		}
		o.Interval = interval
		return nil
	}
}

// WithMaxBadMapStreak configures the restart threshold.
func WithMaxBadMapStreak(threshold int) Option {
	return func(o *Options) error {
		if threshold < 1 {
			return fmt.Errorf("max bad map streak must be at least 1, got %d", threshold)
		}
		o.MaxBadMapStreak = threshold
		return nil
	}
}

// WithRestartCooldown configures the quiet period after a successful restart.
func WithRestartCooldown(cooldown time.Duration) Option {
	return func(o *Options) error {
		if cooldown < 0 {
			return fmt.Errorf("restart cooldown must not be negative, got %v", cooldown)
		}
		o.RestartCooldown = cooldown
		return nil
	}
}

// WithRestartTimeout configures the bound on one escalation's container calls.
func WithRestartTimeout(timeout time.Duration) Option {
	return func(o *Options) error {
		if timeout <= 0 {
			return fmt.Errorf("restart timeout must be positive, got %v", timeout)
		}
		o.RestartTimeout = timeout
		return nil
	}
}

// WithContainerName configures the container to restart.
// An empty name is accepted: escalations then report a configuration error instead of restarting.
func WithContainerName(name string) Option {
	return func(o *Options) error {
		o.ContainerName = strings.TrimSpace(name)
		return nil
	}
}

// WithClock replaces the time source.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.Clock = clock
		return nil
	}
}

// WithRecorder configures the tick observer.
func WithRecorder(r Recorder) Option {
	return func(o *Options) error {
		if isNil(r) {
			return fmt.Errorf("recorder cannot be nil")
		}
		o.Recorder = r
		return nil
	}
}

// DefaultInterval is the default delay between ticks.
func DefaultInterval() time.Duration {
	return 60 * time.Second
}

// DefaultMaxBadMapStreak is the default restart threshold.
func DefaultMaxBadMapStreak() int {
	return 3
}

// DefaultRestartCooldown is the default quiet period after a successful restart.
func DefaultRestartCooldown() time.Duration {
	return 5 * time.Minute
}

// DefaultRestartTimeout is the default bound on one escalation's container calls.
func DefaultRestartTimeout() time.Duration {
	return 60 * time.Second
}

// defaultOptions returns Options with default values.
func defaultOptions() Options {
	return Options{
		Interval:        DefaultInterval(),
		MaxBadMapStreak: DefaultMaxBadMapStreak(),
		RestartCooldown: DefaultRestartCooldown(),
		RestartTimeout:  DefaultRestartTimeout(),
		Clock:           time.Now,
		Recorder:        nopRecorder{},
	}
}
