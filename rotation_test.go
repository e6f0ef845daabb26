package kepler

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestRotationsPreserveNorm(t *testing.T) {
	v := [3]float64{1, 2, 3}
	for _, m := range []*mat64.Dense{
		R1(0.3), R2(1.1), R3(2.0), R3R1R3(0.5, 1.0, 1.5),
	} {
		r := MxV33(m, v)
		if !floats.EqualWithinAbs(norm(r), norm(v), 1e-12) {
			t.Fatalf("rotation changed the norm: %f != %f", norm(r), norm(v))
		}
	}
}

func TestPQW2ECI(t *testing.T) {
	// With Ω=90° and i=90°, the perifocal x-axis maps onto the inertial y-axis.
	got := PQW2ECI(math.Pi/2, 0, math.Pi/2, [3]float64{1, 0, 0})
	want := [3]float64{0, 1, 0}
	for k := 0; k < 3; k++ {
		if !floats.EqualWithinAbs(got[k], want[k], 1e-12) {
			t.Fatalf("component %d: %f != %f", k, got[k], want[k])
		}
	}
	// Zero angles are the identity.
	v := [3]float64{4, -5, 6}
	got = PQW2ECI(0, 0, 0, v)
	for k := 0; k < 3; k++ {
		if !floats.EqualWithinAbs(got[k], v[k], 1e-12) {
			t.Fatalf("identity rotation moved component %d", k)
		}
	}
}
