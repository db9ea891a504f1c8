package scroll

// Entry is the per-frame sample of one region
type Entry struct {
	Sample  Sample
	OK      bool // region was mounted when sampled
	Visible bool
}

// Sampler batches geometry reads: scroll events only record the newest
// offset, and Frame reads every region once per animation frame.
type Sampler struct {
	layout  *Layout
	scrollY float64
	entries []Entry
	reads   int
}

// NewSampler creates a sampler over a layout
func NewSampler(l *Layout) *Sampler {
	return &Sampler{layout: l}
}

// SetScroll records a scroll event. Values are clamped to the document.
// Nothing is sampled until the next Frame.
func (s *Sampler) SetScroll(y float64) {
	if y < 0 {
		y = 0
	}
	if m := s.layout.MaxScroll(); y > m {
		y = m
	}
	s.scrollY = y
}

// ScrollBy adds delta to the recorded scroll offset
func (s *Sampler) ScrollBy(delta float64) {
	s.SetScroll(s.scrollY + delta)
}

// Scroll returns the last recorded scroll offset
func (s *Sampler) Scroll() float64 {
	return s.scrollY
}

// Reads returns how many batched geometry reads have been made
func (s *Sampler) Reads() int {
	return s.reads
}

// Frame samples every region at the recorded scroll offset. The returned
// slice is reused by the next call.
func (s *Sampler) Frame() []Entry {
	vp := s.layout.Viewport()
	if cap(s.entries) < s.layout.Len() {
		s.entries = make([]Entry, s.layout.Len())
	}
	s.entries = s.entries[:s.layout.Len()]

	for i := range s.entries {
		sample, ok := s.layout.Region(i).Sample(s.scrollY, vp)
		s.entries[i] = Entry{Sample: sample, OK: ok, Visible: ok && sample.Visible()}
	}
	s.reads++
	return s.entries
}
