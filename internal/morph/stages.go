package morph

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/progress"
)

// Range is the progress interval of one transition
type Range struct {
	From, To float64
}

// Stages chains shapes A -> B -> C ... with one progress range per
// transition. Between ranges the last reached shape is held.
type Stages struct {
	shapes []Points
	ranges []Range
}

// NewStages needs exactly len(shapes)-1 ranges, increasing and disjoint
func NewStages(shapes []Points, ranges []Range) (*Stages, error) {
	if len(shapes) < 1 {
		return nil, fmt.Errorf("no shapes")
	}
	if len(ranges) != len(shapes)-1 {
		return nil, fmt.Errorf("%d shapes need %d ranges, got %d", len(shapes), len(shapes)-1, len(ranges))
	}
	for i, r := range ranges {
		if r.To <= r.From {
			return nil, fmt.Errorf("range %d is empty: [%g, %g]", i, r.From, r.To)
		}
		if i > 0 && r.From < ranges[i-1].To {
			return nil, fmt.Errorf("range %d overlaps range %d", i, i-1)
		}
	}
	for i := 1; i < len(shapes); i++ {
		if len(shapes[i]) != len(shapes[0]) {
			return nil, fmt.Errorf("shape %d has %d points, want %d", i, len(shapes[i]), len(shapes[0]))
		}
	}
	return &Stages{shapes: shapes, ranges: ranges}, nil
}

// At returns the outline for progress p
func (s *Stages) At(p float64) Points {
	for i, r := range s.ranges {
		if p < r.From {
			return s.shapes[i]
		}
		if p < r.To {
			return Morph(s.shapes[i], s.shapes[i+1], progress.Window(p, r.From, r.To))
		}
	}
	return s.shapes[len(s.shapes)-1]
}

// Active returns the index of the transition running at p, or -1 while a
// shape is held.
func (s *Stages) Active(p float64) int {
	for i, r := range s.ranges {
		if p >= r.From && p < r.To {
			return i
		}
	}
	return -1
}

// Shape returns the i-th aligned shape
func (s *Stages) Shape(i int) Points { return s.shapes[i] }

// Sequence samples every path at n points and aligns each shape to the
// one before it.
func Sequence(n int, paths ...*gg.Path) []Points {
	out := make([]Points, 0, len(paths))
	for i, p := range paths {
		pts := SamplePoints(p, n)
		if i > 0 {
			pts, _ = Align(out[i-1], pts)
		}
		out = append(out, pts)
	}
	return out
}
