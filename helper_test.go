package kepler

import (
	"fmt"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func vectorsEqual(a, b [3]float64) bool {
	for i := 2; i >= 0; i-- {
		if !floats.EqualWithinRel(a[i], b[i], 1e-3) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Mod(math.Abs(a-b), 2*math.Pi)
	if diff < angleε || 2*math.Pi-diff < angleε {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10f degrees", math.Abs(Rad2deg(diff)))
}

// statesEqual compares two Cartesian states component-wise with the given
// absolute and relative tolerances.
func statesEqual(a, b State, absTol, relTol float64) (bool, error) {
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbsOrRel(a.R[i], b.R[i], absTol, relTol) {
			return false, fmt.Errorf("R[%d]: %f != %f", i, a.R[i], b.R[i])
		}
		if !floats.EqualWithinAbsOrRel(a.V[i], b.V[i], absTol, relTol) {
			return false, fmt.Errorf("V[%d]: %f != %f", i, a.V[i], b.V[i])
		}
	}
	return true, nil
}
