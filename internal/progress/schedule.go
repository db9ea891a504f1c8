package progress

import (
	"fmt"
)

// Stop is a single breakpoint of a Schedule
type Stop struct {
	At    float64 `yaml:"at" json:"at"`       // Input scalar (progress, vh multiple, ...)
	Value float64 `yaml:"value" json:"value"` // Output at this breakpoint
}

// Schedule maps a scroll-derived scalar to an output value through
// piecewise-linear segments. Breakpoints must be strictly increasing;
// Sample does not check this.
type Schedule []Stop

// New builds a schedule from parallel breakpoint and value slices.
// Extra entries of the longer slice are ignored.
func New(at, values []float64) Schedule {
	n := len(at)
	if len(values) < n {
		n = len(values)
	}
	s := make(Schedule, n)
	for i := 0; i < n; i++ {
		s[i] = Stop{At: at[i], Value: values[i]}
	}
	return s
}

// Sample evaluates the schedule at x. Inputs before the first breakpoint
// yield the first value, inputs after the last breakpoint yield the last value.
func (s Schedule) Sample(x float64) float64 {
	if len(s) == 0 {
		return 0
	}

	// Before first breakpoint
	if x <= s[0].At {
		return s[0].Value
	}

	// After last breakpoint
	last := s[len(s)-1]
	if x >= last.At {
		return last.Value
	}

	// Find surrounding breakpoints
	for i := 0; i < len(s)-1; i++ {
		a, b := s[i], s[i+1]
		if x >= a.At && x < b.At {
			span := b.At - a.At
			if span == 0 {
				return b.Value
			}
			return Lerp(a.Value, b.Value, (x-a.At)/span)
		}
	}

	return last.Value
}

// Validate reports the first non-increasing breakpoint. It is meant for
// configuration loading, not for the per-frame path.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("schedule is empty")
	}
	for i := 1; i < len(s); i++ {
		if s[i].At <= s[i-1].At {
			return fmt.Errorf("breakpoint %d (%.3f) is not greater than breakpoint %d (%.3f)", i, s[i].At, i-1, s[i-1].At)
		}
	}
	return nil
}

// Window returns how far x has travelled from `from` to `to`, clamped to [0, 1].
// Descending ranges (from > to) are allowed, which is how thresholds on a
// shrinking viewport offset are written.
func Window(x, from, to float64) float64 {
	if from == to {
		if x >= to {
			return 1
		}
		return 0
	}
	return Clamp01((x - from) / (to - from))
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
