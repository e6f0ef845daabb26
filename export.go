package kepler

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/julian"
)

/* xyzv export of propagation histories: one `JD x y z vx vy vz` row per
sample, the interpolated-states format Cosmographia reads. */

// InterpolatedState is a single timestamped sample of an exported history.
type InterpolatedState struct {
	JD       float64
	Position [3]float64
	Velocity [3]float64
}

// ToText converts to text for written output.
func (i InterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// FromText initializes from a record of seven values.
func (i *InterpolatedState) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("expected 7 columns, got %d", len(record))
	}
	var values [7]float64
	for k, field := range record {
		val, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		values[k] = val
	}
	i.JD = values[0]
	i.Position = [3]float64{values[1], values[2], values[3]}
	i.Velocity = [3]float64{values[4], values[5], values[6]}
	return nil
}

// WriteHistory writes a propagation history in xyzv format, stamping each
// sample with the Julian date of epoch plus its elapsed time.
func WriteHistory(w io.Writer, h PropagationHistory, epoch time.Time) error {
	for _, t := range h.Times() {
		state, _ := h.At(t)
		jd := julian.TimeToJD(epoch.Add(time.Duration(t * float64(time.Second))))
		row := InterpolatedState{jd, state.R, state.V}
		if _, err := fmt.Fprintln(w, row.ToText()); err != nil {
			return err
		}
	}
	return nil
}

// ParseInterpolatedStates reads xyzv rows back.
func ParseInterpolatedStates(rd io.Reader) ([]InterpolatedState, error) {
	var states []InterpolatedState
	r := csv.NewReader(rd)
	r.Comma = ' '
	r.Comment = '#'
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		var state InterpolatedState
		if err = state.FromText(record); err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}

// CreateHistoryFile creates `<name>.xyzv` in the configured output directory.
// It is the caller's responsibility to close the file.
func CreateHistoryFile(name string, stamped bool) (*os.File, error) {
	if stamped {
		t := time.Now()
		name = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", name, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	if outputDir := keplerConfig().outputDir; outputDir != "" {
		name = fmt.Sprintf("%s/%s", outputDir, name)
	}
	return os.Create(name + ".xyzv")
}
