package collatz

import (
	"errors"
	"fmt"
	"math/big"
)

// Domain errors for sequence operations.
var (
	// ErrInvalidInput indicates a start value below 2 or a bad statistics window.
	ErrInvalidInput = errors.New("collatz: invalid input")

	// ErrNonTerminating indicates the configured step bound was exhausted before reaching 1.
	ErrNonTerminating = errors.New("collatz: step bound reached before 1")

	// ErrInvalidTrajectory indicates a value list that is not a Collatz trajectory.
	ErrInvalidTrajectory = errors.New("collatz: invalid trajectory")
)

// NonTerminatingError carries where a bounded generation stopped.
type NonTerminatingError struct {
	Start   *big.Int
	Steps   int
	Last    *big.Int
	Wrapped error
}

func (e *NonTerminatingError) Error() string {
	return fmt.Sprintf("%v: start %s, %d steps, last value %s",
		e.Wrapped, e.Start.String(), e.Steps, e.Last.String())
}

func (e *NonTerminatingError) Unwrap() error {
	return e.Wrapped
}

// InvalidTrajectoryError reports the 1-based position that broke a trajectory invariant.
type InvalidTrajectoryError struct {
	Position int
	Reason   string
}

func (e *InvalidTrajectoryError) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidTrajectory, e.Reason)
	}
	return fmt.Sprintf("%v: position %d: %s", ErrInvalidTrajectory, e.Position, e.Reason)
}

func (e *InvalidTrajectoryError) Unwrap() error {
	return ErrInvalidTrajectory
}
