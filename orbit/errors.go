package orbit

import (
	"errors"
	"fmt"

	"github.com/plus3/orbitsim/physics"
)

var (
	// ErrTimestepMismatch indicates Advance was called with a step other than
	// the one the simulation was configured (and bootstrapped) with.
	ErrTimestepMismatch = errors.New("orbit: time step differs from configured step")

	// ErrInvalidTimestep indicates a non-positive or non-finite step.
	ErrInvalidTimestep = errors.New("orbit: time step must be positive and finite")

	// ErrInvalidInterval indicates a non-positive real-time tick interval.
	ErrInvalidInterval = errors.New("orbit: tick interval must be positive")
)

// StepError wraps a failure of one body during one tick.
type StepError struct {
	Tick   uint64
	Body   string
	Scheme physics.Scheme
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d: %s body %q: %v", e.Tick, e.Scheme, e.Body, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
