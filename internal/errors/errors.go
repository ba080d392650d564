// Package errors defines domain-level errors used throughout the application.
// These errors represent collaborator and escalation failures and are inspected with errors.Is
// by the monitor loop to decide how an outcome is logged and counted.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how the monitor classifies it.
//
// Unclassified errors are treated as a generic restart failure.
//
// Don't forget to:
// 1. Map your error in classifyRestartError (internal/monitor/escalation.go)
// 2. Add a test case to TestClassifyRestartError (internal/monitor/escalation_test.go)
package errors

import (
	"errors"
)

var (
	// ErrContainerNotFound indicates that the configured container identifier does not resolve
	// to a container known to the runtime.
	// The restart attempt is abandoned without arming the cooldown.
	ErrContainerNotFound = errors.New("container not found")

	// ErrContainerUnconfigured indicates that a restart was requested but no target container
	// identifier is configured.
	// This is a configuration error, it is logged and never terminates the process.
	ErrContainerUnconfigured = errors.New("target container name is not configured")

	// ErrUnsupportedServerType indicates that the configured server type has no query protocol mapping.
	ErrUnsupportedServerType = errors.New("unsupported server type")

	// ErrQueryFailed indicates that the game server could not be queried (refused, timed out or
	// returned a malformed response).
	// The observation is treated as unknown health, never as an invalid map.
	ErrQueryFailed = errors.New("server query failed")
)
