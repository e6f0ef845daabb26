package kepler

import (
	"fmt"
	"math"
)

/* Anomaly conversions and the time-of-flight propagation. The propagation
itself is analytic: only the anomaly changes under two-body motion, so the
work is ν → E → M, advancing M linearly, and solving Kepler's equation back
to E and ν. */

// EccentricFromTrueAnomaly converts a true anomaly to the eccentric anomaly
// for an elliptical orbit.
func EccentricFromTrueAnomaly(ν, e float64) float64 {
	sinν, cosν := math.Sincos(ν)
	return wrapTwoPi(math.Atan2(math.Sqrt(1-e*e)*sinν, e+cosν))
}

// TrueFromEccentricAnomaly converts an eccentric anomaly to the true anomaly
// for an elliptical orbit.
func TrueFromEccentricAnomaly(E, e float64) float64 {
	sinE, cosE := math.Sincos(E)
	return wrapTwoPi(math.Atan2(math.Sqrt(1-e*e)*sinE, cosE-e))
}

// MeanFromEccentricAnomaly computes the mean anomaly via Kepler's equation.
func MeanFromEccentricAnomaly(E, e float64) float64 {
	return wrapTwoPi(E - e*math.Sin(E))
}

// EccentricFromMeanAnomaly solves Kepler's equation M = E - e·sinE for E via
// Newton-Raphson iteration, starting from E₀ = M.
func EccentricFromMeanAnomaly(M, e float64) (float64, error) {
	E, err := NewtonRaphson(
		func(E float64) float64 { return E - e*math.Sin(E) - M },
		func(E float64) float64 { return 1 - e*math.Cos(E) },
		M, SolverTolerance, SolverMaxIterations)
	if err != nil {
		return 0, err
	}
	return wrapTwoPi(E), nil
}

// HyperbolicFromTrueAnomaly converts a true anomaly to the hyperbolic anomaly
// for an orbit with e > 1.
func HyperbolicFromTrueAnomaly(ν, e float64) float64 {
	return 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(ν/2))
}

// TrueFromHyperbolicAnomaly converts a hyperbolic anomaly to the true anomaly.
func TrueFromHyperbolicAnomaly(H, e float64) float64 {
	return wrapTwoPi(2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(H/2)))
}

// MeanFromHyperbolicAnomaly computes the hyperbolic mean anomaly
// M = e·sinhH - H. Unlike its elliptical counterpart it is unbounded and must
// not be wrapped.
func MeanFromHyperbolicAnomaly(H, e float64) float64 {
	return e*math.Sinh(H) - H
}

// HyperbolicFromMeanAnomaly solves the hyperbolic Kepler equation
// M = e·sinhH - H for H via Newton-Raphson iteration.
func HyperbolicFromMeanAnomaly(M, e float64) (float64, error) {
	return NewtonRaphson(
		func(H float64) float64 { return e*math.Sinh(H) - H - M },
		func(H float64) float64 { return e*math.Cosh(H) - 1 },
		M, SolverTolerance, SolverMaxIterations)
}

// Propagate returns this orbit advanced by Δt seconds of two-body motion.
// All elements but the anomaly are invariant; the correct form of Kepler's
// equation is selected from the eccentricity.
func (o Orbit) Propagate(Δt float64) (Orbit, error) {
	if math.IsNaN(Δt) || math.IsInf(Δt, 0) {
		return Orbit{}, fmt.Errorf("%w: Δt=%f", ErrNumericalInstability, Δt)
	}
	n := o.MeanMotion()
	out := o
	if o.e < 1 {
		E0 := EccentricFromTrueAnomaly(o.ν, o.e)
		M := wrapTwoPi(MeanFromEccentricAnomaly(E0, o.e) + n*Δt)
		E, err := EccentricFromMeanAnomaly(M, o.e)
		if err != nil {
			return Orbit{}, err
		}
		out.ν = TrueFromEccentricAnomaly(E, o.e)
	} else {
		H0 := HyperbolicFromTrueAnomaly(o.ν, o.e)
		M := MeanFromHyperbolicAnomaly(H0, o.e) + n*Δt
		H, err := HyperbolicFromMeanAnomaly(M, o.e)
		if err != nil {
			return Orbit{}, err
		}
		out.ν = TrueFromHyperbolicAnomaly(H, o.e)
	}
	return out, nil
}
