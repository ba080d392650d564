package monitor

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gswatchdog/gswatchdog/internal/query"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := defaultOptions()

	assert.Equal(t, DefaultInterval(), opts.Interval)
	assert.Equal(t, DefaultMaxBadMapStreak(), opts.MaxBadMapStreak)
	assert.Equal(t, DefaultRestartCooldown(), opts.RestartCooldown)
	assert.Equal(t, DefaultRestartTimeout(), opts.RestartTimeout)
	assert.Empty(t, opts.ContainerName)
	assert.NotNil(t, opts.Clock)
	assert.IsType(t, nopRecorder{}, opts.Recorder)
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	t.Run("default options", func(t *testing.T) {
		t.Parallel()

		opts, err := NewOptions()
		require.NoError(t, err)
		assert.Equal(t, 60*time.Second, opts.Interval)
		assert.Equal(t, 3, opts.MaxBadMapStreak)
		assert.Equal(t, 5*time.Minute, opts.RestartCooldown)
	})

	t.Run("with settings", func(t *testing.T) {
		t.Parallel()

		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		opts, err := NewOptions(
			WithInterval(10*time.Second),
			WithMaxBadMapStreak(5),
			WithRestartCooldown(0),
			WithRestartTimeout(15*time.Second),
			WithContainerName("  cs-server "),
			WithClock(func() time.Time { return fixed }),
		)
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, opts.Interval)
		assert.Equal(t, 5, opts.MaxBadMapStreak)
		assert.Equal(t, time.Duration(0), opts.RestartCooldown)
		assert.Equal(t, 15*time.Second, opts.RestartTimeout)
		assert.Equal(t, "cs-server", opts.ContainerName)
		assert.Equal(t, fixed, opts.Clock())
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		t.Parallel()

		opts, err := NewOptions(WithMaxBadMapStreak(2), nil, WithMaxBadMapStreak(7))
		require.NoError(t, err)
		assert.Equal(t, 7, opts.MaxBadMapStreak)
	})
}

func TestNewOptions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opt     Option
		wantErr string
	}{
		{name: "zero interval", opt: WithInterval(0), wantErr: "interval must be positive, got 0s"},
		{name: "negative interval", opt: WithInterval(-time.Second), wantErr: "interval must be positive, got -1s"},
		{name: "zero threshold", opt: WithMaxBadMapStreak(0), wantErr: "max bad map streak must be at least 1, got 0"},
		{name: "negative cooldown", opt: WithRestartCooldown(-time.Second), wantErr: "restart cooldown must not be negative, got -1s"},
		{name: "zero restart timeout", opt: WithRestartTimeout(0), wantErr: "restart timeout must be positive, got 0s"},
		{name: "nil clock", opt: WithClock(nil), wantErr: "clock cannot be nil"},
		{name: "nil recorder", opt: WithRecorder(nil), wantErr: "recorder cannot be nil"},
		{name: "typed nil recorder", opt: WithRecorder((*recordingRecorder)(nil)), wantErr: "recorder cannot be nil"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewOptions(tc.opt)
			require.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestMonitor_Dependencies_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deps    Dependencies
		wantErr string
	}{
		{
			name: "valid dependencies",
			deps: Dependencies{
				Logger:     hclog.NewNullLogger(),
				Target:     testTarget,
				Querier:    &fakeQuerier{},
				Controller: &fakeController{},
			},
		},
		{
			name:    "nil logger",
			deps:    Dependencies{Target: testTarget, Querier: &fakeQuerier{}, Controller: &fakeController{}},
			wantErr: "logger cannot be nil",
		},
		{
			name: "empty host",
			deps: Dependencies{
				Logger:     hclog.NewNullLogger(),
				Target:     query.Target{Host: " ", Port: 27015},
				Querier:    &fakeQuerier{},
				Controller: &fakeController{},
			},
			wantErr: "target host cannot be empty",
		},
		{
			name: "invalid port",
			deps: Dependencies{
				Logger:     hclog.NewNullLogger(),
				Target:     query.Target{Host: "h", Port: 0},
				Querier:    &fakeQuerier{},
				Controller: &fakeController{},
			},
			wantErr: "invalid target port: 0",
		},
		{
			name: "querier interface pointing to nil",
			deps: Dependencies{
				Logger:     hclog.NewNullLogger(),
				Target:     testTarget,
				Querier:    (*fakeQuerier)(nil),
				Controller: &fakeController{},
			},
			wantErr: "querier cannot be nil",
		},
		{
			name: "nil querier func",
			deps: Dependencies{
				Logger:  hclog.NewNullLogger(),
				Target:  testTarget,
				Querier: query.QuerierFunc(nil),
			},
			wantErr: "querier cannot be nil",
		},
		{
			name: "missing controller",
			deps: Dependencies{
				Logger:  hclog.NewNullLogger(),
				Target:  testTarget,
				Querier: &fakeQuerier{},
			},
			wantErr: "container controller cannot be nil",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.deps.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tc.wantErr)
		})
	}
}
