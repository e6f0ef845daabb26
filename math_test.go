package kepler

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestVectorHelpers(t *testing.T) {
	i := [3]float64{1, 0, 0}
	j := [3]float64{0, 1, 0}
	k := [3]float64{0, 0, 1}
	if cross(i, j) != k {
		t.Fatal("i x j != k")
	}
	if dot(i, j) != 0 {
		t.Fatal("i · j != 0")
	}
	v := [3]float64{3, 4, 0}
	if norm(v) != 5 {
		t.Fatalf("|v|=%f", norm(v))
	}
	if u := unit(v); !floats.EqualWithinAbs(norm(u), 1, 1e-12) {
		t.Fatalf("|û|=%f", norm(u))
	}
	if z := unit([3]float64{0, 0, 0}); z != [3]float64{0, 0, 0} {
		t.Fatal("unit of the zero vector must be the zero vector")
	}
	if sign(-3) != -1 || sign(3) != 1 || sign(0) != 1 {
		t.Fatal("sign broken")
	}
}

func TestAngleHelpers(t *testing.T) {
	if !floats.EqualWithinAbs(Deg2rad(180), math.Pi, 1e-12) {
		t.Fatal("Deg2rad(180) != π")
	}
	if !floats.EqualWithinAbs(Rad2deg(math.Pi), 180, 1e-12) {
		t.Fatal("Rad2deg(π) != 180")
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-12) {
		t.Fatal("negative degrees must wrap positive")
	}
	if !floats.EqualWithinAbs(wrapTwoPi(-math.Pi/2), 3*math.Pi/2, 1e-12) {
		t.Fatal("wrapTwoPi must wrap negatives")
	}
	if w := wrapTwoPi(5 * math.Pi); !floats.EqualWithinAbs(w, math.Pi, 1e-12) {
		t.Fatalf("wrapTwoPi(5π)=%f", w)
	}
	if clampCosine(1+1e-12) != 1 {
		t.Fatal("clampCosine must clamp slight overshoots")
	}
	if clampCosine(0.5) != 0.5 {
		t.Fatal("clampCosine must leave valid cosines alone")
	}
}
