package kepler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadBenchmarkHistory reads a two-body benchmark table into a propagation
// history. Each row holds an elapsed-time column followed by the six state
// components in kilometers and kilometers per second; rows are keyed by their
// index times the given output interval and states are converted to meters.
// A relative path is resolved against the configured data directory.
func LoadBenchmarkHistory(path string, outputInterval float64) (PropagationHistory, error) {
	if outputInterval <= 0 {
		return PropagationHistory{}, fmt.Errorf("%w: non-positive output interval %f", ErrIncompleteConfiguration, outputInterval)
	}
	if !filepath.IsAbs(path) {
		if dataDir := keplerConfig().dataDir; dataDir != "" {
			path = filepath.Join(dataDir, path)
		}
	}
	file, err := os.Open(path)
	if err != nil {
		return PropagationHistory{}, fmt.Errorf("could not open benchmark data: %w", err)
	}
	defer file.Close()

	history := newPropagationHistory()
	scanner := bufio.NewScanner(file)
	row := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 7 {
			return PropagationHistory{}, fmt.Errorf("row %d: expected 7 columns, got %d", row, len(fields))
		}
		var values [7]float64
		for i, field := range fields {
			values[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return PropagationHistory{}, fmt.Errorf("row %d: %w", row, err)
			}
		}
		state := NewState(values[1], values[2], values[3], values[4], values[5], values[6])
		if !state.IsFinite() {
			return PropagationHistory{}, fmt.Errorf("%w: row %d", ErrNumericalInstability, row)
		}
		history.append(float64(row)*outputInterval, KilometersToMeters(state))
		row++
	}
	if err := scanner.Err(); err != nil {
		return PropagationHistory{}, err
	}
	return history, nil
}
