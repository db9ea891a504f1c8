package engine

import (
	"context"
	"errors"
	"image"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/config"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/section"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
	"github.com/ivlev/scroll2video/internal/video"
)

var testViewport = scroll.Viewport{Width: 320, Height: 240}

func mountedScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(story.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Mount(testViewport)
	t.Cleanup(s.Unmount)
	return s
}

func TestNewSceneUnknownKind(t *testing.T) {
	st := &story.Story{Sections: []story.SectionSpec{{Kind: "carousel", Height: 1}}}
	if _, err := NewScene(st, nil); err == nil {
		t.Error("Expected an error for an unknown section kind")
	}
}

func TestSceneFrame(t *testing.T) {
	s := mountedScene(t)
	rec := surface.NewRecorder(testViewport.Width, testViewport.Height)

	s.Frame(Clock{FPS: 30}.Tick(0), rec)
	if rec.Clears != 1 || rec.BG != Background {
		t.Fatalf("Expected one clear with the background, got %d %v", rec.Clears, rec.BG)
	}
	if len(rec.Calls) == 0 {
		t.Error("Expected the opening section to draw")
	}
	if s.Current() != 0 {
		t.Errorf("Expected section 0 at the top, got %d", s.Current())
	}

	// Scroll into the middle of the systems section
	s.SetScrollVH(s.Layout().OffsetVH(1) + 3)
	s.Frame(Clock{FPS: 30}.Tick(1), rec)
	if s.Current() != 1 {
		t.Errorf("Expected section 1, got %d", s.Current())
	}
}

func TestScenePendingScroll(t *testing.T) {
	s, err := NewScene(story.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.SetScroll(500)
	if s.Scroll() != 500 {
		t.Fatalf("Expected pending scroll 500, got %f", s.Scroll())
	}
	s.Mount(testViewport)
	defer s.Unmount()
	if s.Scroll() != 500 {
		t.Errorf("Expected the pending scroll to be applied, got %f", s.Scroll())
	}
}

func TestSceneResizeKeepsPosition(t *testing.T) {
	s := mountedScene(t)
	s.SetScrollVH(10)
	before := s.Current()

	for _, vp := range []scroll.Viewport{{Width: 640, Height: 480}, {Width: 200, Height: 150}, testViewport} {
		s.Resize(vp)
		if got := s.Scroll() / vp.Height; math.Abs(got-10) > 1e-9 {
			t.Errorf("%v: expected scroll 10vh, got %f", vp, got)
		}
		if s.Current() != before {
			t.Errorf("%v: expected section %d, got %d", vp, before, s.Current())
		}
	}
}

func TestSceneUnmountIsIdempotent(t *testing.T) {
	s, err := NewScene(story.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Mount(testViewport)
	s.SetScroll(300)
	s.Unmount()
	s.Unmount()
	if s.Mounted() {
		t.Error("Expected the scene to be unmounted")
	}
	if s.Current() != -1 {
		t.Errorf("Expected no current section, got %d", s.Current())
	}
	rec := surface.NewRecorder(testViewport.Width, testViewport.Height)
	s.Frame(section.Tick{}, rec)
	if rec.Clears != 0 {
		t.Error("Unmounted scenes must not draw")
	}
	// Remount restores the scroll offset
	s.Mount(testViewport)
	defer s.Unmount()
	if s.Scroll() != 300 {
		t.Errorf("Expected scroll 300 after remount, got %f", s.Scroll())
	}
}

func TestSceneBook(t *testing.T) {
	s := mountedScene(t)
	if s.Book() == nil {
		t.Error("Expected the default story to carry a book")
	}
}

func TestClock(t *testing.T) {
	c := Clock{FPS: 30}
	tick := c.Tick(90)
	if tick.Index != 90 || tick.Time != 3 {
		t.Errorf("Unexpected tick %+v", tick)
	}
	if math.Abs(tick.Delta-1.0/30) > 1e-12 {
		t.Errorf("Unexpected delta %f", tick.Delta)
	}
}

func TestLoopEvents(t *testing.T) {
	s := mountedScene(t)
	rec := surface.NewRecorder(testViewport.Width, testViewport.Height)
	events := make(chan Event)

	var mu sync.Mutex
	var seen []Event
	l := NewLoop(s, rec, 60)
	l.Handle = func(ev Event) bool {
		mu.Lock()
		seen = append(seen, ev)
		mu.Unlock()
		return true
	}
	frames := make(chan section.Tick, 256)
	l.After = func(t section.Tick) {
		select {
		case frames <- t:
		default:
		}
	}
	l.Start(context.Background(), events)

	events <- ScrollEvent{Y: 480}
	events <- ScrollByEvent{DY: 24}
	select {
	case <-frames:
	case <-time.After(5 * time.Second):
		t.Fatal("Loop did not draw a frame")
	}

	if err := l.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := l.Stop(); err != nil {
		t.Fatal(err)
	}
	if s.Scroll() != 504 {
		t.Errorf("Expected scroll 504, got %f", s.Scroll())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Errorf("Expected 2 handled events, got %d", len(seen))
	}
}

func TestLoopQuit(t *testing.T) {
	s := mountedScene(t)
	events := make(chan Event, 1)
	l := NewLoop(s, surface.NewRecorder(1, 1), 30).Start(context.Background(), events)
	events <- QuitEvent{}
	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Loop ignored QuitEvent")
	}
}

func TestUnmountStopsLoop(t *testing.T) {
	s, err := NewScene(story.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Mount(testViewport)
	l := NewLoop(s, surface.NewRecorder(testViewport.Width, testViewport.Height), 60)
	// Unmount from the loop goroutine, like a section finishing the story would
	l.After = func(section.Tick) { s.Unmount() }
	l.Start(context.Background(), nil)

	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Unmount did not stop the loop")
	}
	if s.Mounted() {
		t.Error("Expected the scene to be unmounted")
	}
}

// memorySink records the frame indices it was handed
type memorySink struct {
	params   config.FrameParams
	indices  []int
	failAt   int
	released int
	closed   bool
	onWrite  func(f video.Frame)
}

func (m *memorySink) Begin(_ context.Context, p config.FrameParams) error {
	m.params = p
	return nil
}

func (m *memorySink) WriteFrame(_ context.Context, f video.Frame) error {
	defer func() {
		f.Release()
		m.released++
	}()
	if m.onWrite != nil {
		m.onWrite(f)
	}
	if m.failAt > 0 && f.Index == m.failAt {
		return errors.New("disk full")
	}
	if f.Image.Bounds() != image.Rect(0, 0, m.params.Width, m.params.Height) {
		return errors.New("unexpected frame size")
	}
	m.indices = append(m.indices, f.Index)
	return nil
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Width: 160, Height: 120, FPS: 10, Duration: 0.5, Workers: 2}
}

func TestProjectRun(t *testing.T) {
	sink := &memorySink{}
	p := NewProject(testConfig(), story.Default(), nil, sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sink.params.Frames != 5 || sink.params.Width != 160 {
		t.Errorf("Unexpected params %+v", sink.params)
	}
	want := []int{0, 1, 2, 3, 4}
	if len(sink.indices) != len(want) {
		t.Fatalf("Expected frames %v, got %v", want, sink.indices)
	}
	for i, idx := range sink.indices {
		if idx != want[i] {
			t.Errorf("Frame %d out of order: %v", i, sink.indices)
		}
	}
	if sink.released != 5 {
		t.Errorf("Expected every frame released, got %d", sink.released)
	}
	if !sink.closed {
		t.Error("Expected the sink to be closed")
	}
}

func TestProjectWaitsForAssets(t *testing.T) {
	assets := asset.NewStore("", 2)
	defer assets.Close()

	var total, ready, failed int
	sink := &memorySink{onWrite: func(f video.Frame) {
		if f.Index == 0 {
			total, ready, failed = assets.Stats()
		}
	}}
	p := NewProject(testConfig(), story.Default(), assets, sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if total == 0 {
		t.Fatal("Expected the sections to request pictures before the first frame")
	}
	if ready+failed != total {
		t.Errorf("First frame written with %d of %d pictures settled", ready+failed, total)
	}
	if failed != 0 {
		t.Errorf("Expected generated pictures to load, %d failed", failed)
	}
}

func TestProjectSinkError(t *testing.T) {
	sink := &memorySink{failAt: 2}
	p := NewProject(testConfig(), story.Default(), nil, sink)
	err := p.Run(context.Background())
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("Expected the sink error, got %v", err)
	}
	if !sink.closed {
		t.Error("Expected the sink to be closed after a failure")
	}
}

func TestProjectEmptyStory(t *testing.T) {
	p := NewProject(testConfig(), &story.Story{}, nil, &memorySink{})
	if err := p.Run(context.Background()); !errors.Is(err, ErrEmptyStory) {
		t.Errorf("Expected ErrEmptyStory, got %v", err)
	}
}

func TestResolveTimeline(t *testing.T) {
	tests := []struct {
		name      string
		timeline  []story.Keyframe
		duration  float64
		wantDur   float64
		wantScale float64
	}{
		{"story timeline", []story.Keyframe{{Time: 0}, {Time: 10, Scroll: 4}}, 0, 10, 1},
		{"stretched", []story.Keyframe{{Time: 0}, {Time: 10, Scroll: 4}}, 5, 5, 2},
		{"generated", nil, 8, 8, 1},
		{"paced", nil, 0, 5 * SecondsPerViewport, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &story.Story{
				Sections: []story.SectionSpec{{Kind: story.KindOpening, Height: 2}, {Kind: story.KindPareto, Height: 3}},
				Timeline: tt.timeline,
			}
			p := NewProject(&config.Config{Duration: tt.duration}, st, nil, &memorySink{})
			got := p.resolveTimeline()
			if math.Abs(got-tt.wantDur) > 1e-9 || math.Abs(p.scale-tt.wantScale) > 1e-9 {
				t.Errorf("Expected %f x%f, got %f x%f", tt.wantDur, tt.wantScale, got, p.scale)
			}
			if len(st.Timeline) == 0 {
				t.Fatal("Expected a timeline")
			}
			// The render always ends at the bottom of the stack
			if end := p.scrollAt(got); math.Abs(end-4) > 1e-9 {
				t.Errorf("Expected to end at 4vh, got %f", end)
			}
		})
	}
}
