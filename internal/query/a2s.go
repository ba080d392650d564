package query

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/rumblefrog/go-a2s"

	"github.com/gswatchdog/gswatchdog/internal/errors"
)

// infoClient is the part of *a2s.Client used by A2SQuerier.
type infoClient interface {
	QueryInfo() (*a2s.ServerInfo, error)
	Close() error
}

// dialFunc opens an A2S client for addr.
type dialFunc func(addr string, timeout time.Duration) (infoClient, error)

func dialA2S(addr string, timeout time.Duration) (infoClient, error) {
	return a2s.NewClient(addr, a2s.TimeoutOption(timeout))
}

// A2SQuerier queries Source engine servers with A2S_INFO.
type A2SQuerier struct {
	logger  hclog.Logger
	timeout time.Duration
	dial    dialFunc
	now     func() time.Time
}

// NewA2SQuerier returns a Querier speaking the Source engine query protocol.
// timeout bounds every query; a shorter context deadline takes precedence.
func NewA2SQuerier(logger hclog.Logger, timeout time.Duration) (*A2SQuerier, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("query timeout must be positive, got %v", timeout)
	}

	return &A2SQuerier{
		logger:  logger.Named("query"),
		timeout: timeout,
		dial:    dialA2S,
		now:     time.Now,
	}, nil
}

// New returns the Querier for the given server type.
func New(logger hclog.Logger, serverType string, timeout time.Duration) (Querier, error) {
	p, err := ProtocolFor(serverType)
	if err != nil {
		return nil, err
	}

	switch p {
	case A2S:
		return NewA2SQuerier(logger, timeout)
	default:
		return nil, fmt.Errorf("%w: no querier for protocol '%s'", errors.ErrUnsupportedServerType, p)
	}
}

// QueryHealth implements Querier.
func (q *A2SQuerier) QueryHealth(ctx context.Context, target Target) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", errors.ErrQueryFailed, target.Addr(), err)
	}

	timeout := q.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := deadline.Sub(q.now()); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return Result{}, fmt.Errorf("%w: %s: %w", errors.ErrQueryFailed, target.Addr(), context.DeadlineExceeded)
	}

	addr := target.Addr()
	client, err := q.dial(addr, timeout)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", errors.ErrQueryFailed, addr, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			q.logger.Debug("Error closing query client", "addr", addr, "error", err)
		}
	}()

	started := q.now()
	info, err := client.QueryInfo()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", errors.ErrQueryFailed, addr, err)
	}
	if info == nil {
		return Result{}, fmt.Errorf("%w: %s: empty response", errors.ErrQueryFailed, addr)
	}

	res := Result{
		Map:        info.Map,
		Name:       info.Name,
		Players:    int(info.Players),
		MaxPlayers: int(info.MaxPlayers),
		Latency:    q.now().Sub(started),
	}
	q.logger.Trace("Query result", "addr", addr, "map", res.Map, "players", res.Players, "latency", res.Latency)

	return res, nil
}
