package visualizer

import (
	"errors"
	"fmt"
)

var (
	// ErrSurfaceNotFound indicates the visualizer was given nothing to draw on.
	ErrSurfaceNotFound = errors.New("visualizer: drawable surface not found")

	// ErrAlreadyRunning is returned by Start when the loop is running.
	ErrAlreadyRunning = errors.New("visualizer: already running")
)

// ConfigError reports a startup configuration problem. It is not fatal to
// the host: the visualizer simply does not start.
type ConfigError struct {
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("visualizer: invalid %s: %v", e.Field, e.Wrapped)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
