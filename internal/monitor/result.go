package monitor

import (
	"time"
)

// Outcome classifies what a tick observed.
type Outcome string

const (
	// OutcomeSkipped means the tick ran during an active cooldown and performed no query.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeQueryError means the server could not be queried. Health is unknown.
	OutcomeQueryError Outcome = "query_error"

	// OutcomeValid means the server reported a usable map.
	OutcomeValid Outcome = "valid"

	// OutcomeInvalid means the server answered but reported an empty or placeholder map.
	OutcomeInvalid Outcome = "invalid"
)

// RestartResult classifies the result of a restart escalation.
type RestartResult string

const (
	RestartRestarted    RestartResult = "restarted"
	RestartNotFound     RestartResult = "not_found"
	RestartFailed       RestartResult = "failed"
	RestartUnconfigured RestartResult = "unconfigured"
)

// Escalation describes a restart attempt made during a tick.
type Escalation struct {
	Container string
	Result    RestartResult
	Err       error
}

// TickResult describes what a single tick did.
type TickResult struct {
	// At is the time the tick started.
	At time.Time

	Outcome Outcome

	// Map is the map reported by the server, only meaningful for OutcomeValid and OutcomeInvalid.
	Map string

	// Err is the query error for OutcomeQueryError.
	Err error

	// Escalation is set when the tick reached the streak threshold.
	Escalation *Escalation

	// State is the monitor state once the tick completed.
	State State
}

// Recorder observes every completed tick.
type Recorder interface {
	ObserveTick(res TickResult)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTick(TickResult) {}
