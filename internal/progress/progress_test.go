package progress

import (
	"math"
	"testing"
)

func TestScheduleSample(t *testing.T) {
	// Opacity curve of a caption: fade in, hold, fade out
	s := New([]float64{0, 0.3, 0.5, 0.58}, []float64{0, 1, 1, 0})

	tests := []struct {
		x        float64
		expected float64
	}{
		{-1.0, 0},   // Before first breakpoint
		{0.0, 0},    // First breakpoint
		{0.15, 0.5}, // Midpoint of fade in
		{0.3, 1},    // Breakpoint
		{0.4, 1},    // Hold
		{0.5, 1},    // Breakpoint
		{0.54, 0.5}, // Midpoint of fade out
		{0.58, 0},   // Last breakpoint
		{2.0, 0},    // After last breakpoint
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := s.Sample(tt.x)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("At x=%.2f: expected %.3f, got %.6f", tt.x, tt.expected, got)
			}
		})
	}
}

func TestScheduleBreakpointsExact(t *testing.T) {
	s := Schedule{{At: -2, Value: 7}, {At: 0.25, Value: -3}, {At: 1, Value: 12.5}, {At: 40, Value: 0.125}}
	for i, stop := range s {
		if got := s.Sample(stop.At); got != stop.Value {
			t.Errorf("Breakpoint %d: expected exactly %v, got %v", i, stop.Value, got)
		}
	}
	if got := s.Sample(-100); got != 7 {
		t.Errorf("Below range: expected 7, got %v", got)
	}
	if got := s.Sample(1e6); got != 0.125 {
		t.Errorf("Above range: expected 0.125, got %v", got)
	}
}

func TestScheduleLinearity(t *testing.T) {
	s := Schedule{{At: 1, Value: 10}, {At: 3, Value: 20}, {At: 7, Value: -4}}

	for x := 1.0; x < 7; x += 0.37 {
		var a, b Stop
		if x < 3 {
			a, b = s[0], s[1]
		} else {
			a, b = s[1], s[2]
		}
		expected := a.Value + (b.Value-a.Value)*(x-a.At)/(b.At-a.At)
		if got := s.Sample(x); math.Abs(got-expected) > 1e-9 {
			t.Errorf("At x=%.2f: expected %.6f, got %.6f", x, expected, got)
		}
	}
}

func TestScheduleDegenerate(t *testing.T) {
	var empty Schedule
	if got := empty.Sample(0.5); got != 0 {
		t.Errorf("Empty schedule should sample 0, got %v", got)
	}

	single := Schedule{{At: 0.4, Value: 0.8}}
	for _, x := range []float64{-1, 0.4, 3} {
		if got := single.Sample(x); got != 0.8 {
			t.Errorf("Single stop schedule at %v: expected 0.8, got %v", x, got)
		}
	}
}

func TestScheduleValidate(t *testing.T) {
	if err := New([]float64{0, 0.3, 0.5}, []float64{0, 1, 0}).Validate(); err != nil {
		t.Errorf("Expected valid schedule, got %v", err)
	}
	if err := New([]float64{0, 0.5, 0.5}, []float64{0, 1, 0}).Validate(); err == nil {
		t.Error("Expected error for repeated breakpoint")
	}
	if err := (Schedule{}).Validate(); err == nil {
		t.Error("Expected error for empty schedule")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		x, from, to float64
		expected    float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{3, 0, 1, 1},
		{1.05, 0.9, 1.2, 0.5},
		// Descending range, as used for viewport-relative thresholds
		{0.75, 0.9, 0.6, 0.5},
		{1.0, 0.9, 0.6, 0},
		{0.2, 0.9, 0.6, 1},
		// Empty range behaves like a step
		{0.3, 0.4, 0.4, 0},
		{0.4, 0.4, 0.4, 1},
	}

	for _, tt := range tests {
		got := Window(tt.x, tt.from, tt.to)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Window(%.2f, %.2f, %.2f): expected %.3f, got %.6f", tt.x, tt.from, tt.to, tt.expected, got)
		}
	}
}

func TestEasing(t *testing.T) {
	for _, name := range []string{"", "linear", "ease-in-out", "ease-out"} {
		e := Named(name)
		if e(0) != 0 || math.Abs(e(1)-1) > 1e-12 {
			t.Errorf("Easing %q must map 0->0 and 1->1, got %v and %v", name, e(0), e(1))
		}
	}
	if got := EaseInOutCubic(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("EaseInOutCubic(0.5) expected 0.5, got %v", got)
	}
	t.Logf("EaseInOutCubic(0.25)=%.4f EaseOutCubic(0.25)=%.4f", EaseInOutCubic(0.25), EaseOutCubic(0.25))
}
