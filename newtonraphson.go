package kepler

import (
	"fmt"
	"math"
)

const (
	// SolverTolerance is the default convergence tolerance of the root finder.
	SolverTolerance = 1e-12
	// SolverMaxIterations is the default iteration cap of the root finder.
	SolverMaxIterations = 50
)

// NewtonRaphson finds a root of f from the provided initial guess using the
// iteration x_{n+1} = x_n - f(x_n)/f'(x_n). It returns the first iterate for
// which |f(x)| < tol, or an error if the derivative vanishes, an iterate
// becomes non-finite, or maxIter iterations pass without convergence.
func NewtonRaphson(f, fPrime func(float64) float64, guess, tol float64, maxIter int) (float64, error) {
	x := guess
	for it := 0; it < maxIter; it++ {
		fx := f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return 0, fmt.Errorf("%w: f(%g) at iteration %d", ErrNumericalInstability, x, it)
		}
		if math.Abs(fx) < tol {
			return x, nil
		}
		dfx := fPrime(x)
		if dfx == 0 {
			return 0, fmt.Errorf("%w: f'(%g)=0 at iteration %d", ErrSingularDerivative, x, it)
		}
		x -= fx / dfx
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("%w: iterate %d", ErrNumericalInstability, it+1)
		}
	}
	return 0, fmt.Errorf("%w (%d iterations, tol=%g)", ErrConvergenceFailure, maxIter, tol)
}
