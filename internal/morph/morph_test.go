package morph

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func square(x, y, side float64) *gg.Path {
	p := gg.NewPath()
	p.MoveTo(x, y)
	p.LineTo(x+side, y)
	p.LineTo(x+side, y+side)
	p.LineTo(x, y+side)
	p.Close()
	return p
}

func near(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestSamplePointsEqualSpacing(t *testing.T) {
	pts := SamplePoints(square(0, 0, 10), 8)
	want := []gg.Point{
		gg.Pt(0, 0), gg.Pt(5, 0), gg.Pt(10, 0), gg.Pt(10, 5),
		gg.Pt(10, 10), gg.Pt(5, 10), gg.Pt(0, 10), gg.Pt(0, 5),
	}
	if len(pts) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if !near(pts[i], want[i]) {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
}

func TestSamplePointsDeterministic(t *testing.T) {
	p, err := ParsePathData("M10 10 C 40 0 80 0 110 10 Q 120 60 110 110 L 10 110 Z")
	if err != nil {
		t.Fatalf("ParsePathData failed: %v", err)
	}
	a := SamplePoints(p, 300)
	b := SamplePoints(p, 300)
	if len(a) != 300 {
		t.Fatalf("Expected 300 points, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sampling is not deterministic at %d", i)
		}
	}
	if !near(a[0], gg.Pt(10, 10)) {
		t.Errorf("First sample should be the first vertex, got %v", a[0])
	}
}

func TestAlignFindsRotation(t *testing.T) {
	src := SamplePoints(square(0, 0, 10), 40)
	dst := Rotate(src, 6)

	aligned, off := Align(src, dst)
	if off != 34 {
		t.Errorf("Expected offset 34, got %d", off)
	}
	for i := range src {
		if !near(aligned[i], src[i]) {
			t.Fatalf("Aligned point %d: expected %v, got %v", i, src[i], aligned[i])
		}
	}

	again, off2 := Align(src, dst)
	if off2 != off {
		t.Errorf("Align is not stable: %d then %d", off, off2)
	}
	for i := range again {
		if again[i] != aligned[i] {
			t.Fatal("Align returned a different ordering on the second call")
		}
	}
}

func TestAlignTieKeepsSmallestOffset(t *testing.T) {
	same := Points{gg.Pt(1, 1), gg.Pt(1, 1), gg.Pt(1, 1), gg.Pt(1, 1)}
	_, off := Align(same, same)
	if off != 0 {
		t.Errorf("Ties should keep offset 0, got %d", off)
	}
}

func TestAlignTriesCandidatesOnly(t *testing.T) {
	// 310 points give a stride of 15; offset 300 would be a 21st candidate
	line := make(Points, 310)
	for i := range line {
		line[i] = gg.Pt(float64(i), 0)
	}
	src := Rotate(line, 300)
	_, off := Align(src, line)
	step := len(line) / Candidates
	if off%step != 0 || off/step >= Candidates {
		t.Errorf("Offset %d is not one of the %d candidates", off, Candidates)
	}
}

func TestPolylinesSegmentAfterClose(t *testing.T) {
	p := gg.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	p.LineTo(0, 10)
	p.LineTo(-10, 10)
	p.Close()

	subs := polylines(p)
	if len(subs) != 2 {
		t.Fatalf("Expected 2 subpaths, got %d", len(subs))
	}
	second := subs[1]
	if !near(second[0], gg.Pt(0, 0)) {
		t.Errorf("Expected the second subpath to start at the first start, got %v", second[0])
	}
	found := false
	for _, pt := range second {
		if near(pt, gg.Pt(-10, 10)) {
			found = true
		}
	}
	if !found {
		t.Error("Segments after the close were dropped")
	}
}

func TestMorphEnds(t *testing.T) {
	a := Points{gg.Pt(0, 0), gg.Pt(10, 0)}
	b := Points{gg.Pt(0, 10), gg.Pt(20, 20)}

	tests := []struct {
		t    float64
		want Points
	}{
		{-1, a},
		{0, a},
		{0.5, Points{gg.Pt(0, 5), gg.Pt(15, 10)}},
		{1, b},
		{3, b},
	}
	for _, tt := range tests {
		got := Morph(a, b, tt.t)
		if len(got) != len(a) {
			t.Fatalf("t=%.1f: length %d", tt.t, len(got))
		}
		for i := range got {
			if !near(got[i], tt.want[i]) {
				t.Errorf("t=%.1f point %d: expected %v, got %v", tt.t, i, tt.want[i], got[i])
			}
		}
	}

	out := Morph(a, b, 0)
	out[0] = gg.Pt(99, 99)
	if a[0] == out[0] {
		t.Error("Morph must return a copy")
	}
}

func TestStages(t *testing.T) {
	a := Points{gg.Pt(0, 0)}
	b := Points{gg.Pt(10, 0)}
	c := Points{gg.Pt(10, 10)}

	st, err := NewStages([]Points{a, b, c}, []Range{{0.3, 0.5}, {0.75, 0.85}})
	if err != nil {
		t.Fatalf("NewStages failed: %v", err)
	}

	tests := []struct {
		p      float64
		want   gg.Point
		active int
	}{
		{0, gg.Pt(0, 0), -1},
		{0.3, gg.Pt(0, 0), 0},
		{0.4, gg.Pt(5, 0), 0},
		{0.6, gg.Pt(10, 0), -1},
		{0.8, gg.Pt(10, 5), 1},
		{0.85, gg.Pt(10, 10), -1},
		{1, gg.Pt(10, 10), -1},
	}
	for _, tt := range tests {
		if got := st.At(tt.p)[0]; !near(got, tt.want) {
			t.Errorf("At(%.2f) = %v, want %v", tt.p, got, tt.want)
		}
		if got := st.Active(tt.p); got != tt.active {
			t.Errorf("Active(%.2f) = %d, want %d", tt.p, got, tt.active)
		}
	}

	if _, err := NewStages([]Points{a, b, c}, []Range{{0.3, 0.5}, {0.4, 0.6}}); err == nil {
		t.Error("Expected error for overlapping ranges")
	}
	if _, err := NewStages([]Points{a, b}, nil); err == nil {
		t.Error("Expected error for missing range")
	}
}

func TestSequenceAlignsToPredecessor(t *testing.T) {
	shapes := Sequence(40, square(0, 0, 10), square(100, 100, 10))
	if len(shapes) != 2 || len(shapes[1]) != 40 {
		t.Fatalf("Unexpected sequence shape: %d", len(shapes))
	}
	// Same square translated: best alignment keeps corner 0 on corner 0
	if !near(shapes[1][0], gg.Pt(100, 100)) {
		t.Errorf("Expected aligned start at (100,100), got %v", shapes[1][0])
	}
}

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name    string
		d       string
		wantErr bool
		bbox    gg.Rect
	}{
		{"absolute", "M0 0 L10 0 L10 10 Z", false, gg.Rect{Max: gg.Pt(10, 10)}},
		{"relative", "m5 5 h10 v10 h-10 z", false, gg.Rect{Min: gg.Pt(5, 5), Max: gg.Pt(15, 15)}},
		{"compact", "M0,0L1-1.5.5.5L2e1,0Z", false, gg.Rect{Min: gg.Pt(0, -1.5), Max: gg.Pt(20, 0.5)}},
		{"implicit lineto", "M0 0 10 0 10 10", false, gg.Rect{Max: gg.Pt(10, 10)}},
		{"arc", "M0 0 A 5 5 0 0 1 10 10", true, gg.Rect{}},
		{"no moveto", "L 1 1", true, gg.Rect{}},
		{"garbage", "M 1 x", true, gg.Rect{}},
		{"empty", "  ", true, gg.Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePathData(tt.d)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.d)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePathData(%q) failed: %v", tt.d, err)
			}
			bb := p.BoundingBox()
			if !near(bb.Min, tt.bbox.Min) || !near(bb.Max, tt.bbox.Max) {
				t.Errorf("Bounding box %v, want %v", bb, tt.bbox)
			}
		})
	}
}

func TestFit(t *testing.T) {
	pts := Points{gg.Pt(0, 0), gg.Pt(20, 0), gg.Pt(20, 10), gg.Pt(0, 10)}
	out := Fit(pts, gg.Rect{Max: gg.Pt(100, 100)})
	b := Bounds(out)
	if !near(b.Min, gg.Pt(0, 25)) || !near(b.Max, gg.Pt(100, 75)) {
		t.Errorf("Fit should keep the aspect ratio and center, got %v", b)
	}
}
