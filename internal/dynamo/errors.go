package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a non-positive or inconsistent construction parameter.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidTimestep indicates a non-positive or non-finite timestep.
	ErrInvalidTimestep = errors.New("dynamo: timestep must be positive and finite")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrDimensionMismatch indicates position and velocity buffers of different lengths.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between positions and velocities")
)

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
