package story

import (
	"math"

	"github.com/ivlev/scroll2video/internal/progress"
)

// ScrollAt returns the scroll position (viewport heights) at time t.
// Keyframes are interpolated with the easing of the keyframe being
// approached; times outside the timeline clamp to its ends.
func (s *Story) ScrollAt(t float64) float64 {
	tl := s.Timeline
	if len(tl) == 0 {
		return 0
	}
	if t <= tl[0].Time {
		return tl[0].Scroll
	}
	last := tl[len(tl)-1]
	if t >= last.Time {
		return last.Scroll
	}

	for i := 0; i < len(tl)-1; i++ {
		a, b := tl[i], tl[i+1]
		if t >= a.Time && t < b.Time {
			u := (t - a.Time) / (b.Time - a.Time)
			return progress.Lerp(a.Scroll, b.Scroll, progress.Named(b.Easing)(u))
		}
	}
	return last.Scroll
}

// GenerateTimeline scrolls through the whole stack in duration seconds.
// The first and last hold seconds show the top and bottom at rest; every
// section gets scroll time in proportion to its height, eased in and out
// so the motion settles at each section boundary.
func GenerateTimeline(heights []float64, duration, hold float64) []Keyframe {
	total := 0.0
	for _, h := range heights {
		total += h
	}
	maxScroll := math.Max(0, total-1)

	available := duration - 2*hold
	if available <= 0 {
		available = duration
		hold = 0
	}

	frames := []Keyframe{{Time: 0, Scroll: 0}}
	if hold > 0 {
		frames = append(frames, Keyframe{Time: hold, Scroll: 0})
	}
	if total == 0 || maxScroll == 0 {
		if duration > frames[len(frames)-1].Time {
			frames = append(frames, Keyframe{Time: duration, Scroll: 0})
		}
		return frames
	}

	walked := 0.0
	for _, h := range heights {
		walked += h
		at := hold + available*walked/total
		scroll := math.Min(walked, maxScroll)
		prev := frames[len(frames)-1]
		if at <= prev.Time || scroll <= prev.Scroll {
			continue
		}
		frames = append(frames, Keyframe{Time: at, Scroll: scroll, Easing: "ease-in-out"})
	}

	if last := frames[len(frames)-1]; last.Scroll < maxScroll {
		frames = append(frames, Keyframe{Time: hold + available, Scroll: maxScroll, Easing: "ease-in-out"})
	}
	if hold > 0 {
		frames = append(frames, Keyframe{Time: duration, Scroll: maxScroll})
	}
	return frames
}
