// Package trace samples balloon timelines without a window and renders the
// result as a styled table or an interactive scrubber.
package trace

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonewx/balloons/pkg/timeline"
)

// ErrInvalidStep is returned when the sampling step is not positive or would
// produce more than maxSamples rows.
var ErrInvalidStep = errors.New("sampling step must be positive and not too small")

// maxSamples caps the number of rows a single Sample call may produce.
const maxSamples = 1_000_000

// Row is one sample of a timeline.
type Row struct {
	Elapsed float64 // wall-clock seconds since the sprite was spawned
	Local   float64 // time after the master curve
	State   timeline.State
	Active  []string // segments in progress at Local
	Done    bool
}

// At samples tl at a single elapsed time.
func At(tl *timeline.Timeline, elapsed float64) Row {
	local := tl.LocalTime(elapsed)
	return Row{
		Elapsed: elapsed,
		Local:   local,
		State:   tl.EvaluateLocal(local),
		Active:  ActiveSegments(tl, local),
		Done:    tl.IsComplete(elapsed),
	}
}

// Sample evaluates tl every step seconds from 0 up to and including its duration.
func Sample(tl *timeline.Timeline, step float64) ([]Row, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, ErrInvalidStep
	}
	duration := tl.Duration()
	if step < duration/maxSamples {
		return nil, fmt.Errorf("%w: %g (minimum %g for a %gs timeline)", ErrInvalidStep, step, duration/maxSamples, duration)
	}
	n := int(math.Floor(duration/step + 1e-9))

	rows := make([]Row, 0, n+2)
	for i := 0; i <= n; i++ {
		rows = append(rows, At(tl, float64(i)*step))
	}
	// always end on the completion sample
	if last := rows[len(rows)-1]; !last.Done {
		rows = append(rows, At(tl, duration))
	}
	return rows, nil
}

// ActiveSegments returns the names of segments that have started but not
// yet reached their end at local time.
func ActiveSegments(tl *timeline.Timeline, local float64) []string {
	var names []string
	for _, seg := range tl.Segments() {
		if local >= seg.Begin && local < seg.End() {
			names = append(names, seg.Name)
		}
	}
	return names
}
