package monitor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gswatchdog/gswatchdog/internal/container"
	"github.com/gswatchdog/gswatchdog/internal/query"
)

// Dependencies contains required dependencies for the Monitor.
// NewDependencies should be used to create instances of Dependencies.
type Dependencies struct {
	// Logger for monitor operations.
	Logger hclog.Logger

	// Target is the game server being watched.
	Target query.Target

	// Querier reports the server's health.
	Querier query.Querier

	// Controller restarts the server's container.
	Controller container.Controller
}

// NewDependencies creates validated Dependencies.
func NewDependencies(
	logger hclog.Logger,
	target query.Target,
	querier query.Querier,
	controller container.Controller,
) (Dependencies, error) {
	deps := Dependencies{
		Logger:     logger,
		Target:     target,
		Querier:    querier,
		Controller: controller,
	}

	if err := deps.Validate(); err != nil {
		return Dependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d Dependencies) Validate() error {
	if isNil(d.Logger) {
		return fmt.Errorf("logger cannot be nil")
	}

	if strings.TrimSpace(d.Target.Host) == "" {
		return fmt.Errorf("target host cannot be empty")
	}

	if d.Target.Port < 1 || d.Target.Port > 65535 {
		return fmt.Errorf("invalid target port: %d", d.Target.Port)
	}

	if isNil(d.Querier) {
		return fmt.Errorf("querier cannot be nil")
	}

	if isNil(d.Controller) {
		return fmt.Errorf("container controller cannot be nil")
	}

	return nil
}

// isNil reports whether v is nil or an interface holding a nil pointer, func or map.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
