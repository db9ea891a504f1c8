package scroll

import (
	"math"
	"testing"
)

func TestRegionSample(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 800}
	r := &Region{Offset: 1600, Height: 1200}

	tests := []struct {
		scrollY          float64
		top, bottom      float64
		center, distance float64
	}{
		{0, 1600, 2800, 2200, 1800},
		{1600, 0, 1200, 600, 200},
		{1800, -200, 1000, 400, 0},
		{3000, -1400, -200, -800, 1200},
	}

	for _, tt := range tests {
		s, ok := r.Sample(tt.scrollY, vp)
		if !ok {
			t.Fatalf("Expected mounted region to sample")
		}
		if s.Top != tt.top || s.Bottom != tt.bottom || s.Center != tt.center || s.DistanceFromViewportCenter != tt.distance {
			t.Errorf("scrollY=%.0f: got top=%.0f bottom=%.0f center=%.0f dist=%.0f", tt.scrollY, s.Top, s.Bottom, s.Center, s.DistanceFromViewportCenter)
		}
	}
}

func TestRegionSampleUnmounted(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}

	var nilRegion *Region
	if _, ok := nilRegion.Sample(0, vp); ok {
		t.Error("Nil region must not sample")
	}
	if _, ok := (&Region{Offset: 10}).Sample(0, vp); ok {
		t.Error("Region without height must not sample")
	}
}

func TestSampleDepthAndSticky(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	r := &Region{Offset: 100, Height: 300}

	tests := []struct {
		scrollY float64
		depth   float64
		sticky  float64
		visible bool
	}{
		{0, -1, 100, false},  // Just below the viewport
		{50, -0.5, 50, true}, // Scrolling in
		{100, 0, 0, true},    // Pinned
		{250, 1.5, 0, true},  // Pinned
		{300, 2, 0, true},    // Bottom meets viewport bottom
		{350, 2.5, -50, true},
		{400, 3, -100, false},
	}

	for _, tt := range tests {
		s, _ := r.Sample(tt.scrollY, vp)
		if s.Depth() != tt.depth {
			t.Errorf("scrollY=%.0f: expected depth %.2f, got %.2f", tt.scrollY, tt.depth, s.Depth())
		}
		if s.Sticky() != tt.sticky {
			t.Errorf("scrollY=%.0f: expected sticky %.0f, got %.0f", tt.scrollY, tt.sticky, s.Sticky())
		}
		if s.Visible() != tt.visible {
			t.Errorf("scrollY=%.0f: expected visible=%v", tt.scrollY, tt.visible)
		}
	}
}

func TestSampleProgress(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	r := &Region{Offset: 200, Height: 300}

	// Enter at scrollY=100 (top at viewport bottom), exit at 500 (bottom at viewport top)
	tests := []struct {
		scrollY  float64
		expected float64
	}{
		{0, 0},
		{100, 0},
		{200, 0.25},
		{300, 0.5},
		{500, 1},
		{900, 1},
	}

	for _, tt := range tests {
		s, _ := r.Sample(tt.scrollY, vp)
		if got := s.Progress(EnterExit); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("scrollY=%.0f: expected progress %.2f, got %.4f", tt.scrollY, tt.expected, got)
		}
	}
}

func TestParseOffset(t *testing.T) {
	o, err := ParseOffset("start end", "end start")
	if err != nil {
		t.Fatalf("ParseOffset failed: %v", err)
	}
	if o != EnterExit {
		t.Errorf("Expected EnterExit, got %+v", o)
	}

	o, err = ParseOffset("0.5 center", "end 0.25")
	if err != nil {
		t.Fatalf("ParseOffset failed: %v", err)
	}
	if o[0].Target != 0.5 || o[0].Container != 0.5 || o[1].Target != 1 || o[1].Container != 0.25 {
		t.Errorf("Unexpected offset %+v", o)
	}

	if _, err := ParseOffset("start", "end start"); err == nil {
		t.Error("Expected error for single edge")
	}
	if _, err := ParseOffset("top end", "end start"); err == nil {
		t.Error("Expected error for unknown edge")
	}
}

func TestLayoutResize(t *testing.T) {
	l := NewLayout(Viewport{Width: 800, Height: 600}, 1.5, 13.3, 2)

	if l.Len() != 3 {
		t.Fatalf("Expected 3 regions, got %d", l.Len())
	}
	second := l.Region(1)
	if second.Offset != 900 {
		t.Errorf("Expected second region at 900, got %.1f", second.Offset)
	}

	l.Resize(Viewport{Width: 400, Height: 300})
	if l.Region(1) != second {
		t.Error("Region pointers must survive resize")
	}
	if second.Offset != 450 || math.Abs(second.Height-3990) > 1e-9 {
		t.Errorf("After resize: offset=%.1f height=%.1f", second.Offset, second.Height)
	}
	if math.Abs(l.Height()-300*16.8) > 1e-9 {
		t.Errorf("Unexpected document height %.1f", l.Height())
	}
	if math.Abs(l.MaxScroll()-300*15.8) > 1e-9 {
		t.Errorf("Unexpected max scroll %.1f", l.MaxScroll())
	}
	if math.Abs(l.OffsetVH(2)-14.8) > 1e-9 {
		t.Errorf("Expected third region at 14.8vh, got %.2f", l.OffsetVH(2))
	}
	if l.At(0) != 0 || l.At(450) != 1 || l.At(1e9) != -1 {
		t.Errorf("Unexpected region lookup: %d %d %d", l.At(0), l.At(450), l.At(1e9))
	}
	if l.Region(5) != nil {
		t.Error("Out of range region should be nil")
	}
}

func TestSamplerBatchesScrollEvents(t *testing.T) {
	l := NewLayout(Viewport{Width: 100, Height: 100}, 1, 2)
	s := NewSampler(l)

	// A burst of scroll events between two frames
	for _, y := range []float64{10, 40, 120, 150} {
		s.SetScroll(y)
	}
	if s.Reads() != 0 {
		t.Fatalf("Scroll events must not read geometry")
	}

	entries := s.Frame()
	if s.Reads() != 1 {
		t.Errorf("Expected one batched read, got %d", s.Reads())
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Sample.Top != -50 {
		t.Errorf("Frame should reflect the last scroll event, got top=%.0f", entries[1].Sample.Top)
	}
	if entries[0].Visible {
		t.Error("First region scrolled out and should not be visible")
	}

	s.SetScroll(-20)
	if s.Scroll() != 0 {
		t.Errorf("Scroll should clamp at 0, got %.0f", s.Scroll())
	}
	s.ScrollBy(1000)
	if s.Scroll() != 200 {
		t.Errorf("Scroll should clamp at max scroll 200, got %.0f", s.Scroll())
	}
}
