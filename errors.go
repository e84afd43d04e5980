package rfs

import (
	"errors"
	"fmt"
)

var (
	// ErrNoLiftoff is returned when thrust never exceeds the liftoff threshold before burnout.
	ErrNoLiftoff = errors.New("liftoff never achieved")
	// ErrOutOfRange is returned when a table is evaluated outside of its samples.
	ErrOutOfRange = errors.New("outside of the sampled range")
	// ErrStopAtEntry is returned when a stop condition already holds when a phase starts.
	ErrStopAtEntry = errors.New("stop condition already satisfied at phase entry")
	// ErrDegenerateCrossing is returned when the monitored quantity does not change across the final step.
	ErrDegenerateCrossing = errors.New("degenerate crossing interpolation")
	// ErrAtmosphereBounds is returned for altitudes where the linear lapse model yields a non-positive temperature.
	ErrAtmosphereBounds = errors.New("altitude outside of the atmosphere model")
	// ErrUnreachableStop is returned when the rocket falls below the pad and no stop condition can still end the phase.
	ErrUnreachableStop = errors.New("stop condition unreachable")
	// ErrNonFinite is returned when the integrated state diverges.
	ErrNonFinite = errors.New("non-finite state")
	// ErrInvalidDescriptor is returned by constructors on bad input.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)

// PhaseError identifies the flight phase and the physical quantity which aborted a simulation.
type PhaseError struct {
	Phase    string
	Quantity string
	Time     float64
	Err      error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase: %s at t=%.4fs: %v", e.Phase, e.Quantity, e.Time, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// phaseErr wraps err unless it already carries phase information.
func phaseErr(phase, quantity string, t float64, err error) error {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}
	return &PhaseError{Phase: phase, Quantity: quantity, Time: t, Err: err}
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDescriptor, fmt.Sprintf(format, args...))
}
