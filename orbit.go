package kepler

import (
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

const (
	// Below these thresholds an element is undefined and the degenerate
	// conventions of NewOrbitFromState apply (ω=0 for circular, Ω=0 for
	// equatorial orbits).
	circularε   = 1e-10
	equatorialε = 1e-10
	parabolicε  = 1e-12

	// Comparison tolerances for Equals.
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 2e4                          // 20 km
)

// State is an instantaneous Cartesian position/velocity pair. The engine is
// unit-agnostic: R, V and the central body's μ only need to agree on units
// (the pre-defined bodies use meters).
type State struct {
	R [3]float64
	V [3]float64
}

// NewState builds a State from its six components.
func NewState(x, y, z, vx, vy, vz float64) State {
	return State{[3]float64{x, y, z}, [3]float64{vx, vy, vz}}
}

// IsFinite returns whether all six components are finite.
func (s State) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(s.R[i]) || math.IsInf(s.R[i], 0) || math.IsNaN(s.V[i]) || math.IsInf(s.V[i], 0) {
			return false
		}
	}
	return true
}

// String implements the Stringer interface.
func (s State) String() string {
	return fmt.Sprintf("R=[%.3f %.3f %.3f] V=[%.6f %.6f %.6f]", s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2])
}

// Orbit defines an orbit via its orbital elements. The stored anomaly is the
// true anomaly ν; propagation converts to mean anomaly and back internally.
type Orbit struct {
	a, e, i, Ω, ω, ν float64
	Origin           CelestialBody // Orbit origin
}

// Elements returns the six classical orbital elements.
func (o Orbit) Elements() (a, e, i, Ω, ω, ν float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.ν
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	return -o.Origin.μ / (2 * o.a)
}

// SemiParameter returns the semi-parameter p.
func (o Orbit) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the apoapsis radius.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// Tildeω returns the longitude of periapsis.
func (o Orbit) Tildeω() float64 {
	return math.Mod(o.ω+o.Ω, 2*math.Pi)
}

// TrueLongλ returns the approximate true longitude (cf. Vallado page 103).
// NOTE: One should only need this for equatorial orbits.
func (o Orbit) TrueLongλ() float64 {
	return math.Mod(o.ω+o.Ω+o.ν, 2*math.Pi)
}

// ArgLatitudeU returns the argument of latitude.
func (o Orbit) ArgLatitudeU() float64 {
	return math.Mod(o.ν+o.ω, 2*math.Pi)
}

// RNorm returns the radius without computing the radius vector.
func (o Orbit) RNorm() float64 {
	return o.SemiParameter() / (1 + o.e*math.Cos(o.ν))
}

// VNorm returns the norm of the velocity vector via the vis-viva equation.
func (o Orbit) VNorm() float64 {
	return math.Sqrt(2 * (o.Origin.μ/o.RNorm() + o.Energyξ()))
}

// HNorm returns the norm of the orbital angular momentum.
func (o Orbit) HNorm() float64 {
	return math.Sqrt(o.Origin.μ * o.SemiParameter())
}

// MeanMotion returns the mean motion n = sqrt(μ/|a|³).
func (o Orbit) MeanMotion() float64 {
	return math.Sqrt(o.Origin.μ / math.Abs(math.Pow(o.a, 3)))
}

// Period returns the period of this orbit. Panics on non-elliptical orbits.
func (o Orbit) Period() time.Duration {
	if o.e >= 1 {
		panic("only elliptical orbits have a period")
	}
	// The time package does not trivially handle fractions of a second, so
	// let's compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.Origin.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// String implements the Stringer interface.
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.6f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.ν))
}

// Equals returns whether two orbits are identical with free true anomaly.
// Use StrictlyEquals to also check true anomaly.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !o.Origin.Equals(o1.Origin) {
		return false, fmt.Errorf("different origin")
	}
	if !floats.EqualWithinAbs(o.a, o1.a, distanceε) {
		return false, fmt.Errorf("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, fmt.Errorf("eccentricity invalid")
	}
	if !floats.EqualWithinAbs(o.i, o1.i, angleε) {
		return false, fmt.Errorf("inclination invalid")
	}
	if !floats.EqualWithinAbs(o.Ω, o1.Ω, angleε) {
		return false, fmt.Errorf("RAAN invalid")
	}
	if !floats.EqualWithinAbs(o.ω, o1.ω, angleε) {
		return false, fmt.Errorf("argument of periapsis invalid")
	}
	return true, nil
}

// StrictlyEquals returns whether two orbits are identical.
func (o Orbit) StrictlyEquals(o1 Orbit) (bool, error) {
	if !floats.EqualWithinAbs(o.ν, o1.ν, angleε) {
		return false, fmt.Errorf("true anomaly invalid")
	}
	return o.Equals(o1)
}

// State returns the Cartesian state of this orbit via the perifocal frame
// construction and the 3-1-3 rotation sequence.
func (o Orbit) State() State {
	p := o.SemiParameter()
	// Fold undefined angles into the anomaly for special orbits. For a
	// retrograde equatorial orbit the node is traversed backwards, so Ω folds
	// in with the opposite sign.
	ν := o.ν
	ω := o.ω
	Ω := o.Ω
	retrograde := o.i > math.Pi-equatorialε
	if o.e < circularε {
		ω = 0
		if o.i < equatorialε {
			// Circular equatorial
			Ω = 0
			ν = o.TrueLongλ()
		} else if retrograde {
			// Circular retrograde equatorial
			Ω = 0
			ν = wrapTwoPi(o.ω + o.ν - o.Ω)
		} else {
			// Circular inclined
			ν = o.ArgLatitudeU()
		}
	} else if o.i < equatorialε {
		Ω = 0
		ω = o.Tildeω()
	} else if retrograde {
		Ω = 0
		ω = wrapTwoPi(o.ω - o.Ω)
	}

	sinν, cosν := math.Sincos(ν)
	R := [3]float64{p * cosν / (1 + o.e*cosν), p * sinν / (1 + o.e*cosν), 0}
	V := [3]float64{-math.Sqrt(o.Origin.μ/p) * sinν, math.Sqrt(o.Origin.μ/p) * (o.e + cosν), 0}
	return State{PQW2ECI(o.i, ω, Ω, R), PQW2ECI(o.i, ω, Ω, V)}
}

// NewOrbitFromElements creates an orbit from the classical orbital elements,
// with all angles in radians. Parabolic elements (e≈1) are rejected with
// ErrDegenerateOrbit since their semi-major axis is undefined.
func NewOrbitFromElements(a, e, i, Ω, ω, ν float64, c CelestialBody) (*Orbit, error) {
	if c.μ <= 0 {
		return nil, fmt.Errorf("kepler: %s has a non-positive gravitational parameter", c.Name)
	}
	if e < 0 {
		return nil, fmt.Errorf("kepler: negative eccentricity %f", e)
	}
	if floats.EqualWithinAbs(e, 1, parabolicε) {
		return nil, fmt.Errorf("%w: parabolic elements (e=%g)", ErrDegenerateOrbit, e)
	}
	if a == 0 || (e < 1 && a < 0) || (e > 1 && a > 0) {
		return nil, fmt.Errorf("kepler: semi-major axis %f inconsistent with eccentricity %f", a, e)
	}
	if i < 0 || i > math.Pi {
		return nil, fmt.Errorf("kepler: inclination %f outside of [0,π]", i)
	}
	return &Orbit{a, e, i, wrapTwoPi(Ω), wrapTwoPi(ω), wrapTwoPi(ν), c}, nil
}

// NewOrbitFromState returns the orbital elements for the given Cartesian
// state about the given body. From Vallado's RV2COE.
// Degenerate conventions: for near-circular orbits ω is set to 0 and the
// anomaly absorbs the argument of latitude; for near-equatorial orbits
// (prograde i≈0 or retrograde i≈π, where the node vector vanishes) Ω is set
// to 0 and the longitude of periapsis takes over. Exactly parabolic states
// are rejected with ErrDegenerateOrbit.
func NewOrbitFromState(s State, c CelestialBody) (*Orbit, error) {
	if c.μ <= 0 {
		return nil, fmt.Errorf("kepler: %s has a non-positive gravitational parameter", c.Name)
	}
	if !s.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite state %s", ErrNumericalInstability, s)
	}
	hVec := cross(s.R, s.V)
	h := norm(hVec)
	r := norm(s.R)
	v := norm(s.V)
	if r == 0 || h == 0 {
		return nil, fmt.Errorf("%w: rectilinear trajectory", ErrDegenerateOrbit)
	}
	ξ := v*v/2 - c.μ/r
	var eVec [3]float64
	rv := dot(s.R, s.V)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-c.μ/r)*s.R[k] - rv*s.V[k]) / c.μ
	}
	e := norm(eVec)
	if floats.EqualWithinAbs(e, 1, parabolicε) || ξ == 0 {
		return nil, fmt.Errorf("%w: parabolic state (e=%.15f)", ErrDegenerateOrbit, e)
	}
	a := -c.μ / (2 * ξ)

	i := math.Acos(clampCosine(hVec[2] / h))
	nVec := cross([3]float64{0, 0, 1}, hVec)
	nNorm := norm(nVec)

	retrograde := i > math.Pi-equatorialε
	equatorial := i < equatorialε || retrograde
	circular := e < circularε

	var Ω, ω, ν float64
	switch {
	case equatorial && circular:
		// Both node and periapsis undefined: the anomaly is the true
		// longitude, measured along the direction of motion.
		λ := math.Atan2(s.R[1], s.R[0])
		if retrograde {
			λ = -λ
		}
		ν = wrapTwoPi(λ)
	case equatorial:
		// Node undefined: measure periapsis from the x-axis, along the
		// direction of motion.
		λ := math.Atan2(eVec[1], eVec[0])
		if retrograde {
			λ = -λ
		}
		ω = wrapTwoPi(λ)
		ν = math.Acos(clampCosine(dot(eVec, s.R) / (e * r)))
		if rv < 0 {
			ν = 2*math.Pi - ν
		}
	case circular:
		// Periapsis undefined: the anomaly is the argument of latitude.
		Ω = math.Acos(clampCosine(nVec[0] / nNorm))
		if nVec[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
		ν = math.Acos(clampCosine(dot(nVec, s.R) / (nNorm * r)))
		if s.R[2] < 0 {
			ν = 2*math.Pi - ν
		}
	default:
		Ω = math.Acos(clampCosine(nVec[0] / nNorm))
		if nVec[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
		ω = math.Acos(clampCosine(dot(nVec, eVec) / (nNorm * e)))
		if math.IsNaN(ω) {
			ω = 0
		}
		if eVec[2] < 0 {
			ω = 2*math.Pi - ω
		}
		ν = math.Acos(clampCosine(dot(eVec, s.R) / (e * r)))
		if rv < 0 {
			ν = 2*math.Pi - ν
		}
	}

	// Fix rounding errors.
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)

	return &Orbit{a, e, i, Ω, ω, ν, c}, nil
}

// Radii2ae returns the semi major axis and the eccentricity from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}
