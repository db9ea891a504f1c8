package progress

import "math"

// Easing reshapes a normalized time t in [0, 1]
type Easing func(t float64) float64

// Linear is the identity easing
func Linear(t float64) float64 {
	return t
}

// EaseInOutCubic applies smooth easing function
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutCubic decelerates towards the end of the segment
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Named looks an easing up by the name used in story files.
// Unknown and empty names fall back to Linear.
func Named(name string) Easing {
	switch name {
	case "ease-in-out", "cubic":
		return EaseInOutCubic
	case "ease-out":
		return EaseOutCubic
	default:
		return Linear
	}
}
