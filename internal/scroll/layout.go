package scroll

// Layout stacks regions vertically. Heights are given in viewport heights
// so a resize only has to recompute pixel geometry.
type Layout struct {
	viewport Viewport
	heights  []float64
	regions  []*Region
}

// NewLayout lays out regions of the given heights (in viewport heights)
func NewLayout(vp Viewport, heights ...float64) *Layout {
	l := &Layout{
		heights: append([]float64(nil), heights...),
		regions: make([]*Region, len(heights)),
	}
	for i := range l.regions {
		l.regions[i] = &Region{}
	}
	l.Resize(vp)
	return l
}

// Resize recomputes every region for a new viewport. Region pointers stay
// stable so holders never see a stale region.
func (l *Layout) Resize(vp Viewport) {
	l.viewport = vp
	offset := 0.0
	for i, h := range l.heights {
		l.regions[i].Offset = offset
		l.regions[i].Height = h * vp.Height
		offset += h * vp.Height
	}
}

// Viewport returns the current viewport
func (l *Layout) Viewport() Viewport {
	return l.viewport
}

// Len returns the number of regions
func (l *Layout) Len() int {
	return len(l.regions)
}

// Region returns the i-th region
func (l *Layout) Region(i int) *Region {
	if i < 0 || i >= len(l.regions) {
		return nil
	}
	return l.regions[i]
}

// Height returns the document height in pixels
func (l *Layout) Height() float64 {
	if len(l.regions) == 0 {
		return 0
	}
	last := l.regions[len(l.regions)-1]
	return last.Offset + last.Height
}

// MaxScroll is the largest scroll offset that still fills the viewport
func (l *Layout) MaxScroll() float64 {
	m := l.Height() - l.viewport.Height
	if m < 0 {
		return 0
	}
	return m
}

// OffsetVH returns the start of region i in viewport heights
func (l *Layout) OffsetVH(i int) float64 {
	offset := 0.0
	for j := 0; j < i && j < len(l.heights); j++ {
		offset += l.heights[j]
	}
	return offset
}

// HeightsVH returns a copy of the region heights in viewport heights
func (l *Layout) HeightsVH() []float64 {
	return append([]float64(nil), l.heights...)
}

// At returns the index of the region under the viewport center, or -1
func (l *Layout) At(scrollY float64) int {
	y := scrollY + l.viewport.Height/2
	for i, r := range l.regions {
		if y >= r.Offset && y < r.Offset+r.Height {
			return i
		}
	}
	return -1
}
