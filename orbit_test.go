package kepler

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestOrbitRV2COE(t *testing.T) {
	// Example 2-5 of Vallado, scaled to meters.
	s := NewState(6524834, 6862875, 6448296, 4901.327, 5533.756, -1976.341)
	o, err := NewOrbitFromState(s, Earth)
	if err != nil {
		t.Fatalf("conversion failed: %s", err)
	}
	oT, err := NewOrbitFromElements(36127343, 0.832853, Deg2rad(87.869126), Deg2rad(227.898260), Deg2rad(53.384931), Deg2rad(92.335157), Earth)
	if err != nil {
		t.Fatalf("element construction failed: %s", err)
	}
	if ok, err := o.StrictlyEquals(*oT); !ok {
		t.Logf("\no0: %s\no1: %s", o, oT)
		t.Fatalf("orbits differ: %s", err)
	}
	if ok, err := anglesEqual(Deg2rad(281.283201), o.Tildeω()); !ok {
		t.Fatalf("longitude of periapsis invalid: %s (%f)", err, o.Tildeω())
	}
	if ok, err := anglesEqual(Deg2rad(145.720695), o.ArgLatitudeU()); !ok {
		t.Fatalf("argument of latitude invalid: %s (%f)", err, o.ArgLatitudeU())
	}
	// Vallado's ξ=-5.516604 km²/s² is 1e6 m²/s².
	if !floats.EqualWithinRel(o.Energyξ(), -5.516604e6, 1e-5) {
		t.Fatalf("incorrect energy ξ=%f", o.Energyξ())
	}
	if !floats.EqualWithinRel(norm(s.R), o.RNorm(), 1e-9) {
		t.Fatalf("incorrect r norm |R|=%f\tr=%f", norm(s.R), o.RNorm())
	}
	if !floats.EqualWithinRel(norm(s.V), o.VNorm(), 1e-9) {
		t.Fatalf("incorrect v norm |V|=%f\tv=%f", norm(s.V), o.VNorm())
	}
	if !floats.EqualWithinRel(norm(cross(s.R, s.V)), o.HNorm(), 1e-9) {
		t.Fatalf("incorrect h norm |h|=%f\th=%f", norm(cross(s.R, s.V)), o.HNorm())
	}
}

func TestOrbitCOE2RV(t *testing.T) {
	// Example 2-6 of Vallado, scaled to meters.
	o, err := NewOrbitFromElements(36126642.83, 0.83280, Deg2rad(87.874925), Deg2rad(227.891253), Deg2rad(53.378089), Deg2rad(92.335027), Earth)
	if err != nil {
		t.Fatalf("element construction failed: %s", err)
	}
	s := o.State()
	R := [3]float64{6524344, 6861535, 6449125}
	V := [3]float64{4902.276, 5533.124, -1975.709}
	if !vectorsEqual(R, s.R) {
		t.Fatalf("R vector incorrectly computed:\n%+v\n%+v", R, s.R)
	}
	if !vectorsEqual(V, s.V) {
		t.Fatal("V vector incorrectly computed")
	}
}

func TestOrbitRoundTrip(t *testing.T) {
	for name, s := range map[string]State{
		"elliptical inclined": NewState(6524834, 6862875, 6448296, 4901.327, 5533.756, -1976.341),
		"elliptical generic":  NewState(-4069000, 5784000, 1234000, -5000, -3000, 2000),
		"hyperbolic":          NewState(7000000, 0, 0, 0, 12000, 1000),
		"near periapsis":      NewState(6750000, 0, 100000, 100, 8059.5973215, -50),
	} {
		o, err := NewOrbitFromState(s, Earth)
		if err != nil {
			t.Fatalf("[%s] conversion failed: %s", name, err)
		}
		back := o.State()
		if ok, err := statesEqual(s, back, 1e-4, 1e-9); !ok {
			t.Logf("[%s] orbit: %s", name, o)
			t.Fatalf("[%s] round trip failed: %s", name, err)
		}
	}
}

func TestOrbitCircularConvention(t *testing.T) {
	// Circular inclined: the argument of periapsis is undefined and must be
	// zero by convention, with the anomaly carrying the argument of latitude.
	r := 7000e3
	v := math.Sqrt(Earth.GM() / r)
	sinI, cosI := math.Sincos(Deg2rad(45))
	s := NewState(r, 0, 0, 0, v*cosI, v*sinI)
	o, err := NewOrbitFromState(s, Earth)
	if err != nil {
		t.Fatalf("conversion failed: %s", err)
	}
	a, e, i, Ω, ω, ν := o.Elements()
	if !floats.EqualWithinRel(a, r, 1e-9) {
		t.Fatalf("circular orbit has a=%f", a)
	}
	if e > circularε {
		t.Fatalf("circular orbit has e=%g", e)
	}
	if ω != 0 {
		t.Fatalf("undefined ω must be zero, got %f", ω)
	}
	if ok, err := anglesEqual(Deg2rad(45), i); !ok {
		t.Fatalf("inclination invalid: %s", err)
	}
	if ok, err := anglesEqual(0, Ω); !ok {
		t.Fatalf("RAAN invalid: %s", err)
	}
	if ok, err := anglesEqual(0, ν); !ok {
		t.Fatalf("anomaly invalid: %s", err)
	}
	if ok, err := statesEqual(s, o.State(), 1e-4, 1e-9); !ok {
		t.Fatalf("round trip failed: %s", err)
	}
}

func TestOrbitEquatorialConvention(t *testing.T) {
	// Equatorial elliptical: the node is undefined and Ω must be zero by
	// convention, with ω measured from the x-axis.
	s := NewState(6750e3, 0, 0, 0, 8500, 0)
	o, err := NewOrbitFromState(s, Earth)
	if err != nil {
		t.Fatalf("conversion failed: %s", err)
	}
	_, e, i, Ω, ω, ν := o.Elements()
	if e < circularε || e >= 1 {
		t.Fatalf("expected elliptical orbit, got e=%g", e)
	}
	if i > equatorialε {
		t.Fatalf("equatorial orbit has i=%g", i)
	}
	if Ω != 0 {
		t.Fatalf("undefined Ω must be zero, got %f", Ω)
	}
	// Departing periapsis along +x.
	if ok, err := anglesEqual(0, ω); !ok {
		t.Fatalf("ω invalid: %s", err)
	}
	if ok, err := anglesEqual(0, ν); !ok {
		t.Fatalf("ν invalid: %s", err)
	}
	if ok, err := statesEqual(s, o.State(), 1e-4, 1e-9); !ok {
		t.Fatalf("round trip failed: %s", err)
	}
}

func TestOrbitRetrogradeEquatorialConvention(t *testing.T) {
	// Retrograde equatorial (i=180°): the node vector vanishes just like in
	// the prograde case, so Ω must be zero by convention, never NaN.
	s := NewState(6750e3, 0, 0, 0, -8500, 0)
	o, err := NewOrbitFromState(s, Earth)
	if err != nil {
		t.Fatalf("conversion failed: %s", err)
	}
	a, e, i, Ω, ω, ν := o.Elements()
	for name, angle := range map[string]float64{"Ω": Ω, "ω": ω, "ν": ν} {
		if math.IsNaN(angle) {
			t.Fatalf("%s is NaN", name)
		}
	}
	if a <= 0 || e >= 1 {
		t.Fatalf("expected an ellipse, got a=%f e=%f", a, e)
	}
	if ok, err := anglesEqual(math.Pi, i); !ok {
		t.Fatalf("inclination invalid: %s", err)
	}
	if Ω != 0 {
		t.Fatalf("undefined Ω must be zero, got %f", Ω)
	}
	// Departing periapsis along +x.
	if ok, err := anglesEqual(0, ω); !ok {
		t.Fatalf("ω invalid: %s", err)
	}
	if ok, err := anglesEqual(0, ν); !ok {
		t.Fatalf("ν invalid: %s", err)
	}
	if ok, err := statesEqual(s, o.State(), 1e-4, 1e-9); !ok {
		t.Fatalf("round trip failed: %s", err)
	}

	// Circular retrograde equatorial, off the x-axis.
	r := 7000e3
	v := math.Sqrt(Earth.GM() / r)
	sinλ, cosλ := math.Sincos(Deg2rad(30))
	sc := NewState(r*cosλ, r*sinλ, 0, v*sinλ, -v*cosλ, 0)
	oc, err := NewOrbitFromState(sc, Earth)
	if err != nil {
		t.Fatalf("circular conversion failed: %s", err)
	}
	_, ec, _, Ωc, ωc, _ := oc.Elements()
	if ec > circularε {
		t.Fatalf("circular orbit has e=%g", ec)
	}
	if Ωc != 0 || ωc != 0 {
		t.Fatalf("undefined angles must be zero, got Ω=%f ω=%f", Ωc, ωc)
	}
	if ok, err := statesEqual(sc, oc.State(), 1e-4, 1e-9); !ok {
		t.Fatalf("circular round trip failed: %s", err)
	}
	after, err := oc.Propagate(600)
	if err != nil {
		t.Fatalf("propagation failed: %s", err)
	}
	if !after.State().IsFinite() {
		t.Fatal("propagated state is not finite")
	}

	// A nonzero Ω of retrograde equatorial elements folds into ω.
	oe, err := NewOrbitFromElements(7500e3, 0.1, math.Pi, 1.0, 2.0, 0.5, Earth)
	if err != nil {
		t.Fatalf("element construction failed: %s", err)
	}
	back, err := NewOrbitFromState(oe.State(), Earth)
	if err != nil {
		t.Fatalf("back conversion failed: %s", err)
	}
	if ok, err := statesEqual(oe.State(), back.State(), 1e-4, 1e-9); !ok {
		t.Fatalf("folded elements round trip failed: %s", err)
	}
}

func TestOrbitParabolicRejected(t *testing.T) {
	// Exactly the escape velocity: e=1, a undefined.
	r := 7000e3
	s := NewState(r, 0, 0, 0, math.Sqrt(2*Earth.GM()/r), 0)
	if _, err := NewOrbitFromState(s, Earth); !errors.Is(err, ErrDegenerateOrbit) {
		t.Fatalf("expected ErrDegenerateOrbit, got %v", err)
	}
	if _, err := NewOrbitFromElements(0, 1, 0, 0, 0, 0, Earth); !errors.Is(err, ErrDegenerateOrbit) {
		t.Fatalf("expected ErrDegenerateOrbit from elements, got %v", err)
	}
}

func TestOrbitElementsValidation(t *testing.T) {
	if _, err := NewOrbitFromElements(7000e3, -0.1, 0, 0, 0, 0, Earth); err == nil {
		t.Fatal("negative eccentricity accepted")
	}
	if _, err := NewOrbitFromElements(-7000e3, 0.1, 0, 0, 0, 0, Earth); err == nil {
		t.Fatal("negative semi-major axis accepted for an ellipse")
	}
	if _, err := NewOrbitFromElements(7000e3, 1.5, 0, 0, 0, 0, Earth); err == nil {
		t.Fatal("positive semi-major axis accepted for a hyperbola")
	}
	if _, err := NewOrbitFromElements(7000e3, 0.1, 0, 0, 0, 0, CelestialBody{Name: "massless"}); err == nil {
		t.Fatal("non-positive μ accepted")
	}
	if _, err := NewOrbitFromState(NewState(7000e3, 0, 0, math.NaN(), 0, 0), Earth); err == nil {
		t.Fatal("non-finite state accepted")
	}
}

func TestRadii2ae(t *testing.T) {
	a, e := Radii2ae(4, 2)
	if a != 3 {
		t.Fatalf("a=%f", a)
	}
	if !floats.EqualWithinAbs(e, 1/3.0, 1e-12) {
		t.Fatalf("e=%f", e)
	}
	assertPanic(t, func() {
		Radii2ae(2, 4)
	})
}
