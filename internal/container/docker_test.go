package container

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/docker/docker/client"
	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/gswatchdog/gswatchdog/internal/errors"
)

const testAPIVersion = "1.45"

// fakeEngine is a minimal Docker Engine API serving inspect and restart for a fixed set of containers.
type fakeEngine struct {
	mu         sync.Mutex
	containers map[string]string // name -> id
	restartErr int               // non-zero status returned by restart
	restarts   []string
	restartT   []string
}

func (e *fakeEngine) routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/v"+testAPIVersion+"/containers/{name}", func(r chi.Router) {
		r.Get("/json", e.inspect)
		r.Post("/restart", e.restart)
	})
	return r
}

func (e *fakeEngine) inspect(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id, ok := e.containers[name]
	if !ok {
		writeEngineError(w, http.StatusNotFound, "No such container: "+name)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"Id":    id,
		"Name":  "/" + name,
		"State": map[string]any{"Status": "running", "Running": true},
	})
}

func (e *fakeEngine) restart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := e.containers[name]; !ok {
		writeEngineError(w, http.StatusNotFound, "No such container: "+name)
		return
	}
	if e.restartErr != 0 {
		writeEngineError(w, e.restartErr, "permission denied")
		return
	}

	e.mu.Lock()
	e.restarts = append(e.restarts, name)
	e.restartT = append(e.restartT, r.URL.Query().Get("t"))
	e.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (e *fakeEngine) recorded() ([]string, []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.restarts...), append([]string(nil), e.restartT...)
}

func writeEngineError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func newTestController(t *testing.T, engine *fakeEngine, stopTimeout *int) *DockerController {
	t.Helper()

	srv := httptest.NewServer(engine.routes())
	t.Cleanup(srv.Close)

	d, err := NewDockerController(
		hclog.NewNullLogger(),
		stopTimeout,
		client.WithHost("tcp://"+strings.TrimPrefix(srv.URL, "http://")),
		client.WithVersion(testAPIVersion),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	return d
}

func TestNewDockerController_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewDockerController(nil, nil)
	require.EqualError(t, err, "logger cannot be nil")

	negative := -1
	_, err = NewDockerController(hclog.NewNullLogger(), &negative)
	require.Error(t, err)
}

func TestDockerController_Inspect(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{containers: map[string]string{"cs-server": "abc123"}}
	d := newTestController(t, engine, nil)

	require.NoError(t, d.Inspect(context.Background(), "cs-server"))

	err := d.Inspect(context.Background(), "missing")
	require.ErrorIs(t, err, errors.ErrContainerNotFound)
	require.Contains(t, err.Error(), "missing")
}

func TestDockerController_Restart(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{containers: map[string]string{"cs-server": "abc123"}}
	d := newTestController(t, engine, nil)

	require.NoError(t, d.Restart(context.Background(), "cs-server"))
	restarts, timeouts := engine.recorded()
	require.Equal(t, []string{"cs-server"}, restarts)
	require.Equal(t, []string{""}, timeouts)
}

func TestDockerController_Restart_StopTimeout(t *testing.T) {
	t.Parallel()

	timeout := 20
	engine := &fakeEngine{containers: map[string]string{"cs-server": "abc123"}}
	d := newTestController(t, engine, &timeout)

	require.NoError(t, d.Restart(context.Background(), "cs-server"))
	_, timeouts := engine.recorded()
	require.Equal(t, []string{"20"}, timeouts)
}

func TestDockerController_Restart_Errors(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		d := newTestController(t, &fakeEngine{containers: map[string]string{}}, nil)
		err := d.Restart(context.Background(), "cs-server")
		require.ErrorIs(t, err, errors.ErrContainerNotFound)
	})

	t.Run("engine error", func(t *testing.T) {
		t.Parallel()

		engine := &fakeEngine{
			containers: map[string]string{"cs-server": "abc123"},
			restartErr: http.StatusForbidden,
		}
		d := newTestController(t, engine, nil)

		err := d.Restart(context.Background(), "cs-server")
		require.Error(t, err)
		require.NotErrorIs(t, err, errors.ErrContainerNotFound)
		require.Contains(t, err.Error(), "permission denied")
		restarts, _ := engine.recorded()
		require.Empty(t, restarts)
	})
}

func TestDefaultClientOpts(t *testing.T) {
	t.Parallel()

	require.Len(t, DefaultClientOpts(""), 2)
	require.Len(t, DefaultClientOpts("unix:///run/docker.sock"), 3)
}
