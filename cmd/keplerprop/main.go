package main

import (
	"log"
	"os"
	"time"

	"github.com/asterlab/kepler"
)

// Propagates the Asterix benchmark orbit and a GTO side by side for one day,
// sampling every hour, and exports both trajectories as xyzv.
func main() {
	prop := kepler.NewKeplerPropagator()
	if err := prop.Configure(kepler.PropagationConfig{
		IntervalStart:  0,
		IntervalEnd:    86400,
		OutputInterval: 3600,
	}); err != nil {
		log.Fatalf("configure: %s", err)
	}

	asterix := kepler.NewBody("Asterix")
	mustSetup(prop, asterix, kepler.KilometersToMeters(kepler.NewState(6.75e3, 0, 0, 0, 8.0595973215, 0)))

	gto := kepler.NewBody("GTO")
	rP := 250e3 + kepler.Earth.Radius
	rA := 35786e3 + kepler.Earth.Radius
	a, e := kepler.Radii2ae(rA, rP)
	orbit, err := kepler.NewOrbitFromElements(a, e, kepler.Deg2rad(28.5), kepler.Deg2rad(5), kepler.Deg2rad(10), 0, kepler.Earth)
	if err != nil {
		log.Fatalf("GTO elements: %s", err)
	}
	mustSetup(prop, gto, orbit.State())

	if err := prop.Propagate(); err != nil {
		log.Fatalf("propagate: %s", err)
	}

	epoch := time.Now().UTC()
	for _, body := range []*kepler.Body{asterix, gto} {
		history, err := prop.PropagationHistoryAtFixedOutputIntervals(body)
		if err != nil {
			log.Fatalf("history of %s: %s", body.Name, err)
		}
		f, err := kepler.CreateHistoryFile("prop-"+body.Name, false)
		if err != nil {
			log.Fatalf("create output for %s: %s", body.Name, err)
		}
		if err := kepler.WriteHistory(f, history, epoch); err != nil {
			f.Close()
			log.Fatalf("export %s: %s", body.Name, err)
		}
		f.Close()
		final, _ := history.At(history.Times()[history.Len()-1])
		log.Printf("[%s] %d samples, final state %s", body.Name, history.Len(), kepler.MetersToKilometers(final))
	}
	os.Exit(0)
}

func mustSetup(prop *kepler.KeplerPropagator, b *kepler.Body, initial kepler.State) {
	if err := prop.AddBody(b); err != nil {
		log.Fatalf("add %s: %s", b.Name, err)
	}
	if err := prop.SetCentralBody(b, &kepler.Earth); err != nil {
		log.Fatalf("central body of %s: %s", b.Name, err)
	}
	if err := prop.SetInitialState(b, initial); err != nil {
		log.Fatalf("initial state of %s: %s", b.Name, err)
	}
}
