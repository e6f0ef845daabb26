package kepler

import (
	"errors"
	"fmt"
)

var (
	// ErrConvergenceFailure is returned when the Newton-Raphson solver exceeds
	// its iteration cap before reaching the requested tolerance.
	ErrConvergenceFailure = errors.New("kepler: solver exceeded iteration cap")
	// ErrSingularDerivative is returned when the derivative vanishes at an iterate.
	ErrSingularDerivative = errors.New("kepler: singular derivative")
	// ErrNumericalInstability is returned when a non-finite intermediate value appears.
	ErrNumericalInstability = errors.New("kepler: non-finite intermediate value")
	// ErrDegenerateOrbit is returned for states or elements which cannot be
	// represented as Keplerian elements (e.g. exactly parabolic orbits).
	ErrDegenerateOrbit = errors.New("kepler: degenerate orbit")
	// ErrIncompleteConfiguration is returned when propagation is requested before
	// every body has a central body and an initial state.
	ErrIncompleteConfiguration = errors.New("kepler: incomplete configuration")
	// ErrNotYetPropagated is returned when a propagation history is requested
	// before Propagate has completed.
	ErrNotYetPropagated = errors.New("kepler: not yet propagated")
)

// PropagationError carries the identity of the body whose propagation failed
// and the elapsed time of the failing sample.
type PropagationError struct {
	Body    string
	Elapsed float64
	Wrapped error
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("propagation of %s failed at t=%.3f s: %s", e.Body, e.Elapsed, e.Wrapped)
}

func (e *PropagationError) Unwrap() error {
	return e.Wrapped
}
