package kepler

import (
	"fmt"
	"strings"
)

// CelestialBody defines a gravitating central body. Only the gravitational
// parameter matters to the propagation itself; the radius is kept for sanity
// checks by callers. A CelestialBody is never mutated after construction, so
// it may be shared by reference between any number of propagated bodies.
type CelestialBody struct {
	Name   string
	Radius float64 // m
	μ      float64 // m³/s²
}

// NewCelestialBody returns a celestial body from its gravitational parameter
// (because μ is a lowercase letter, it cannot be set from another package).
func NewCelestialBody(name string, radius, gm float64) CelestialBody {
	return CelestialBody{name, radius, gm}
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialBody) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial body is the same.
func (c CelestialBody) Equals(b CelestialBody) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// Pre-defined bodies. Gravitational parameters are in m³/s² and radii in
// meters, matching the meter/second convention of the benchmark data.
var (
	Sun     = CelestialBody{"Sun", 696342e3, 1.32712440018e20}
	Earth   = CelestialBody{"Earth", 6378136.3, 3.986004418e14}
	Moon    = CelestialBody{"Moon", 1738e3, 4.902800066e12}
	Venus   = CelestialBody{"Venus", 6051.8e3, 3.24858599e14}
	Mars    = CelestialBody{"Mars", 3396.19e3, 4.28283100e13}
	Jupiter = CelestialBody{"Jupiter", 71492e3, 1.26712767863e17}
)

// CelestialBodyFromString returns the body from its name.
func CelestialBodyFromString(name string) (CelestialBody, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "venus":
		return Venus, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	default:
		return CelestialBody{}, fmt.Errorf("unknown celestial body `%s`", name)
	}
}
