package scroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ivlev/scroll2video/internal/progress"
)

// Viewport is the visible window onto the document, in pixels
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Region is a tracked block of the document. Offset and Height are
// document-relative pixels; a region with no height has not been laid out yet.
type Region struct {
	Offset float64
	Height float64
}

// Sample is the viewport-relative geometry of a region at one scroll position.
// It is derived on every read and never cached across frames.
type Sample struct {
	Top                        float64
	Bottom                     float64
	Center                     float64
	DistanceFromViewportCenter float64
	Viewport                   Viewport
}

// Sample computes the region's bounding box relative to the viewport.
// ok is false when the region is not mounted; callers skip the tick.
func (r *Region) Sample(scrollY float64, vp Viewport) (Sample, bool) {
	if r == nil || r.Height <= 0 || vp.Height <= 0 {
		return Sample{}, false
	}

	top := r.Offset - scrollY
	bottom := top + r.Height
	center := top + (bottom-top)/2

	return Sample{
		Top:                        top,
		Bottom:                     bottom,
		Center:                     center,
		DistanceFromViewportCenter: math.Abs(center - vp.Height/2),
		Viewport:                   vp,
	}, true
}

// Height of the region in pixels
func (s Sample) Height() float64 {
	return s.Bottom - s.Top
}

// Depth is how many viewport heights the region top has scrolled past the
// viewport top. Section thresholds are written in this unit.
func (s Sample) Depth() float64 {
	return -s.Top / s.Viewport.Height
}

// Visible reports whether any part of the region intersects the viewport
func (s Sample) Visible() bool {
	return s.Bottom > 0 && s.Top < s.Viewport.Height
}

// Sticky returns the vertical translation of a full-viewport layer pinned
// inside the region: it scrolls in with the region top, stays fixed while the
// region covers the viewport, and scrolls out with the region bottom.
func (s Sample) Sticky() float64 {
	if s.Top > 0 {
		return s.Top
	}
	if s.Bottom < s.Viewport.Height {
		return s.Bottom - s.Viewport.Height
	}
	return 0
}

// Intersection pins a fraction of the region (0 = start, 1 = end)
// to a fraction of the viewport.
type Intersection struct {
	Target    float64
	Container float64
}

// Offset is the pair of intersections where element progress is 0 and 1
type Offset [2]Intersection

// EnterExit is the "start end" / "end start" offset: progress is 0 when the
// region top touches the viewport bottom and 1 when its bottom leaves the top.
var EnterExit = Offset{{Target: 0, Container: 1}, {Target: 1, Container: 0}}

// ParseOffset parses a pair such as "start end", "end start" or "0.5 center"
func ParseOffset(from, to string) (Offset, error) {
	a, err := parseIntersection(from)
	if err != nil {
		return Offset{}, err
	}
	b, err := parseIntersection(to)
	if err != nil {
		return Offset{}, err
	}
	return Offset{a, b}, nil
}

func parseIntersection(s string) (Intersection, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Intersection{}, fmt.Errorf("offset %q: expected two edges", s)
	}
	target, err := parseEdge(fields[0])
	if err != nil {
		return Intersection{}, err
	}
	container, err := parseEdge(fields[1])
	if err != nil {
		return Intersection{}, err
	}
	return Intersection{Target: target, Container: container}, nil
}

func parseEdge(s string) (float64, error) {
	switch s {
	case "start":
		return 0, nil
	case "center":
		return 0.5, nil
	case "end":
		return 1, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown edge %q", s)
	}
	return v, nil
}

// Progress is the element scroll progress of the region for the given
// offset, clamped to [0, 1].
func (s Sample) Progress(o Offset) float64 {
	h := s.Height()
	vh := s.Viewport.Height
	// Region top positions at which each intersection is met
	topA := o[0].Container*vh - o[0].Target*h
	topB := o[1].Container*vh - o[1].Target*h
	return progress.Window(s.Top, topA, topB)
}
