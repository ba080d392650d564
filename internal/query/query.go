package query

import (
	"context"
	"fmt"
	"time"
)

// Target identifies the game server to query.
type Target struct {
	Host string
	Port int
	Type string
}

// Addr returns the "host:port" address of the target.
func (t Target) Addr() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// Result is the subset of a server query response the watchdog cares about.
type Result struct {
	// Map is the reported map identifier. It is empty when the server did not report one.
	Map string `json:"map" yaml:"map"`

	Name       string        `json:"name,omitempty" yaml:"name,omitempty"`
	Players    int           `json:"players" yaml:"players"`
	MaxPlayers int           `json:"maxPlayers" yaml:"max_players"`
	Latency    time.Duration `json:"latency" yaml:"latency"`
}

// Querier reports the current state of a game server.
// Implementations return an error wrapping errors.ErrQueryFailed when the server cannot be reached
// or its response cannot be decoded.
type Querier interface {
	QueryHealth(ctx context.Context, target Target) (Result, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, target Target) (Result, error)

// QueryHealth implements Querier.
func (f QuerierFunc) QueryHealth(ctx context.Context, target Target) (Result, error) {
	return f(ctx, target)
}
