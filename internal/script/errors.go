package script

import (
	"errors"
	"fmt"
)

// ErrStateClosed reports use of a closed interpreter.
var ErrStateClosed = errors.New("lua state is closed")

// LoadError reports a configuration script that failed to evaluate.
// Layer distinguishes the built-in defaults from the user file; the
// caller decides whether the failure is fatal.
type LoadError struct {
	Layer string // "builtin" or "user"
	Path  string // empty for the embedded layer
	Err   error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s config: %v", e.Layer, e.Err)
	}
	return fmt.Sprintf("%s config %s: %v", e.Layer, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
