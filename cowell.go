package kepler

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/ode"
)

// CowellStepSize is the default RK4 step of the numerical cross-check.
const CowellStepSize = 1.0 // second

// cowellSystem integrates the two-body equations of motion r̈ = -μ·r/|r|³.
// It exists to validate the analytic propagation independently, not to model
// anything the analytic engine cannot.
type cowellSystem struct {
	state    []float64
	μ        float64
	step     float64
	duration float64
}

// GetState implements the ode.Integrable interface.
func (sys *cowellSystem) GetState() []float64 {
	return sys.state
}

// SetState implements the ode.Integrable interface.
func (sys *cowellSystem) SetState(t float64, s []float64) {
	sys.state = s
}

// Stop implements the ode.Integrable interface.
func (sys *cowellSystem) Stop(t float64) bool {
	return t >= sys.duration-sys.step/2
}

// Func implements the ode.Integrable interface.
func (sys *cowellSystem) Func(t float64, f []float64) []float64 {
	r3 := math.Pow(math.Sqrt(f[0]*f[0]+f[1]*f[1]+f[2]*f[2]), 3)
	bodyAcc := -sys.μ / r3
	return []float64{f[3], f[4], f[5], bodyAcc * f[0], bodyAcc * f[1], bodyAcc * f[2]}
}

// CowellPropagate numerically integrates the given state over Δt seconds of
// two-body motion about the given body, with a fixed-step RK4. The step is
// shrunk so that an integer number of steps covers Δt exactly. This is the
// independent cross-check of the analytic propagation.
func CowellPropagate(s State, c CelestialBody, Δt, step float64) (State, error) {
	if c.μ <= 0 {
		return State{}, fmt.Errorf("kepler: %s has a non-positive gravitational parameter", c.Name)
	}
	if !s.IsFinite() {
		return State{}, fmt.Errorf("%w: non-finite state %s", ErrNumericalInstability, s)
	}
	if Δt < 0 || step <= 0 {
		return State{}, fmt.Errorf("kepler: invalid Δt=%f or step=%f", Δt, step)
	}
	if Δt == 0 {
		return s, nil
	}
	step = Δt / math.Ceil(Δt/step)
	sys := &cowellSystem{
		state:    []float64{s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2]},
		μ:        c.μ,
		step:     step,
		duration: Δt,
	}
	ode.NewRK4(0, step, sys).Solve() // Blocking.
	out := NewState(sys.state[0], sys.state[1], sys.state[2], sys.state[3], sys.state[4], sys.state[5])
	if !out.IsFinite() {
		return State{}, fmt.Errorf("%w: integration diverged", ErrNumericalInstability)
	}
	return out, nil
}
