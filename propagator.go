package kepler

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	kitlog "github.com/go-kit/kit/log"
)

// PropagationConfig defines the propagation interval and the fixed cadence at
// which states are sampled. All values are in seconds.
type PropagationConfig struct {
	IntervalStart  float64
	IntervalEnd    float64
	OutputInterval float64
}

// Validate returns an error if the configuration violates its invariants.
func (c PropagationConfig) Validate() error {
	if c.IntervalEnd <= c.IntervalStart {
		return fmt.Errorf("%w: interval end %f not after start %f", ErrIncompleteConfiguration, c.IntervalEnd, c.IntervalStart)
	}
	if c.OutputInterval <= 0 {
		return fmt.Errorf("%w: non-positive output interval %f", ErrIncompleteConfiguration, c.OutputInterval)
	}
	return nil
}

// PropagationHistory is an ordered mapping from elapsed seconds (since the
// propagation interval start) to the sampled State. It is built by the
// propagator and read-only afterward.
type PropagationHistory struct {
	times  []float64
	states map[float64]State
}

func newPropagationHistory() PropagationHistory {
	return PropagationHistory{states: make(map[float64]State)}
}

func (h *PropagationHistory) append(t float64, s State) {
	h.times = append(h.times, t)
	h.states[t] = s
}

// Len returns the number of samples.
func (h PropagationHistory) Len() int {
	return len(h.times)
}

// Times returns the sample times in increasing order.
func (h PropagationHistory) Times() []float64 {
	out := make([]float64, len(h.times))
	copy(out, h.times)
	sort.Float64s(out)
	return out
}

// At returns the sampled state at the given elapsed time.
func (h PropagationHistory) At(t float64) (State, bool) {
	s, found := h.states[t]
	return s, found
}

// Body is an object to be propagated. Its central body and initial state are
// assigned through the propagator; its identity is the pointer itself, as
// several bodies may share a name.
type Body struct {
	Name         string
	centralBody  *CelestialBody
	initialState *State
	history      PropagationHistory
	failure      error
}

// NewBody returns a body with no central body nor initial state assigned.
func NewBody(name string) *Body {
	return &Body{Name: name}
}

// configured returns an error describing what is missing for propagation.
func (b *Body) configured() error {
	if b.centralBody == nil {
		return fmt.Errorf("%w: %s has no central body", ErrIncompleteConfiguration, b.Name)
	}
	if b.initialState == nil {
		return fmt.Errorf("%w: %s has no initial state", ErrIncompleteConfiguration, b.Name)
	}
	return nil
}

type propagationStatus uint8

const (
	statusUnconfigured propagationStatus = iota
	statusConfigured
	statusRunning
	statusCompleted
)

// KeplerPropagator propagates registered bodies analytically about their
// central bodies and samples their states at a fixed output interval.
//
// The zero value is not usable; use NewKeplerPropagator.
type KeplerPropagator struct {
	config PropagationConfig
	bodies []*Body
	status propagationStatus
	logger kitlog.Logger
}

// NewKeplerPropagator returns an unconfigured propagator logging to stdout.
func NewKeplerPropagator() *KeplerPropagator {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", "kepler")
	return &KeplerPropagator{logger: klog}
}

// SetLogger replaces the propagator's logger.
func (p *KeplerPropagator) SetLogger(logger kitlog.Logger) {
	p.logger = logger
}

// Configure sets the propagation interval and output cadence.
func (p *KeplerPropagator) Configure(cfg PropagationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.config = cfg
	if p.status == statusUnconfigured {
		p.status = statusConfigured
	}
	return nil
}

// AddBody registers a body for propagation.
func (p *KeplerPropagator) AddBody(b *Body) error {
	if b == nil {
		return fmt.Errorf("%w: nil body", ErrIncompleteConfiguration)
	}
	for _, reg := range p.bodies {
		if reg == b {
			return fmt.Errorf("%w: %s already registered", ErrIncompleteConfiguration, b.Name)
		}
	}
	p.bodies = append(p.bodies, b)
	return nil
}

// SetCentralBody assigns the gravitational parent of a registered body. The
// celestial body is shared by reference and must not be mutated afterward.
func (p *KeplerPropagator) SetCentralBody(b *Body, c *CelestialBody) error {
	if err := p.registered(b); err != nil {
		return err
	}
	if c == nil || c.μ <= 0 {
		return fmt.Errorf("%w: %s needs a central body with a positive μ", ErrIncompleteConfiguration, b.Name)
	}
	b.centralBody = c
	return nil
}

// SetInitialState assigns the initial Cartesian state of a registered body,
// in units consistent with its central body's μ.
func (p *KeplerPropagator) SetInitialState(b *Body, s State) error {
	if err := p.registered(b); err != nil {
		return err
	}
	if !s.IsFinite() {
		return fmt.Errorf("%w: non-finite initial state for %s", ErrIncompleteConfiguration, b.Name)
	}
	state := s
	b.initialState = &state
	return nil
}

func (p *KeplerPropagator) registered(b *Body) error {
	for _, reg := range p.bodies {
		if reg == b {
			return nil
		}
	}
	name := "nil body"
	if b != nil {
		name = b.Name
	}
	return fmt.Errorf("%w: %s is not registered", ErrIncompleteConfiguration, name)
}

// Propagate runs the propagation over the configured interval for every
// registered body. Bodies are independent and propagated concurrently. A
// conversion or solver failure aborts the affected body only; the failures
// are joined into the returned error with their body and sample time.
//
// Calling Propagate on a completed propagator is idempotent: histories are
// recomputed and overwritten.
func (p *KeplerPropagator) Propagate() error {
	if p.status == statusUnconfigured {
		return fmt.Errorf("%w: no propagation interval configured", ErrIncompleteConfiguration)
	}
	if len(p.bodies) == 0 {
		return fmt.Errorf("%w: no body registered", ErrIncompleteConfiguration)
	}
	for _, b := range p.bodies {
		if err := b.configured(); err != nil {
			return err
		}
	}

	p.status = statusRunning
	p.logger.Log("level", "info", "status", "started", "bodies", len(p.bodies), "start", p.config.IntervalStart, "end", p.config.IntervalEnd, "interval", p.config.OutputInterval)

	var wg sync.WaitGroup
	failures := make([]error, len(p.bodies))
	for k, b := range p.bodies {
		wg.Add(1)
		go func(k int, b *Body) {
			defer wg.Done()
			failures[k] = p.propagateBody(b)
		}(k, b)
	}
	wg.Wait()
	p.status = statusCompleted

	for k, err := range failures {
		if err != nil {
			p.logger.Log("level", "error", "body", p.bodies[k].Name, "err", err)
		}
	}
	p.logger.Log("level", "info", "status", "completed")
	return errors.Join(failures...)
}

// propagateBody fills in the body's history, replacing any previous one. A
// failure is recorded on the body so that later history requests surface it.
func (p *KeplerPropagator) propagateBody(b *Body) error {
	b.history = newPropagationHistory()
	b.failure = nil
	orbit, err := NewOrbitFromState(*b.initialState, *b.centralBody)
	if err != nil {
		b.failure = &PropagationError{b.Name, 0, err}
		return b.failure
	}
	// Half a nanosecond of slack so that an exact multiple of the output
	// interval still lands on the interval end.
	boundary := p.config.IntervalEnd + 0.5e-9
	for k := 0; ; k++ {
		t := p.config.IntervalStart + float64(k)*p.config.OutputInterval
		if t > boundary {
			break
		}
		elapsed := t - p.config.IntervalStart
		propagated, err := orbit.Propagate(elapsed)
		if err != nil {
			b.failure = &PropagationError{b.Name, elapsed, err}
			return b.failure
		}
		b.history.append(elapsed, propagated.State())
	}
	return nil
}

// PropagationHistoryAtFixedOutputIntervals returns the history of the given
// body, keyed by elapsed seconds from the propagation interval start. It is
// only valid once Propagate has completed. If the body's propagation failed,
// its partial history is returned along with the recorded failure.
func (p *KeplerPropagator) PropagationHistoryAtFixedOutputIntervals(b *Body) (PropagationHistory, error) {
	if err := p.registered(b); err != nil {
		return PropagationHistory{}, err
	}
	if p.status != statusCompleted {
		return PropagationHistory{}, fmt.Errorf("%w: history of %s requested", ErrNotYetPropagated, b.Name)
	}
	return b.history, b.failure
}
