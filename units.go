package kepler

/* The engine is unit-agnostic, but its boundaries are not: the benchmark data
works in kilometers while the pre-defined bodies carry μ in m³/s². */

// KilometersToMeters converts a km, km/s state to m, m/s.
func KilometersToMeters(s State) State {
	return scaleState(s, 1e3)
}

// MetersToKilometers converts a m, m/s state to km, km/s.
func MetersToKilometers(s State) State {
	return scaleState(s, 1e-3)
}

func scaleState(s State, factor float64) State {
	var out State
	for i := 0; i < 3; i++ {
		out.R[i] = s.R[i] * factor
		out.V[i] = s.V[i] * factor
	}
	return out
}
