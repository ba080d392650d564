package monitor

import (
	"strings"
	"time"
)

// EmptyMapSentinel is the map value some server types report while sitting in an empty lobby.
const EmptyMapSentinel = "<empty>"

// State is the mutable state of the monitor loop.
type State struct {
	// BadStreak counts consecutive invalid observations.
	BadStreak int `json:"badStreak" yaml:"bad_streak"`

	// CooldownUntil is the point in time from which health checks resume after a restart.
	// Nil means no cooldown is active.
	CooldownUntil *time.Time `json:"cooldownUntil,omitempty" yaml:"cooldown_until,omitempty"`
}

// clone returns a copy of s that shares no memory with it.
func (s State) clone() State {
	if s.CooldownUntil != nil {
		until := *s.CooldownUntil
		s.CooldownUntil = &until
	}
	return s
}

// IsInvalidMap reports whether a reported map identifier counts as an invalid observation:
// empty, whitespace only, or exactly EmptyMapSentinel.
func IsInvalidMap(m string) bool {
	return strings.TrimSpace(m) == "" || m == EmptyMapSentinel
}
