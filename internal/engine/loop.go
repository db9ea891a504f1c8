package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/section"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Event is input for a running loop
type Event any

// Scroll offsets and pointer positions are in pixels
type (
	ScrollEvent   struct{ Y float64 }
	ScrollByEvent struct{ DY float64 }
	ResizeEvent   struct{ Viewport scroll.Viewport }
	PointerEvent  struct{ X, Y float64 }
	QuitEvent     struct{}
)

// Loop drives a mounted scene at a fixed frame rate. Frames and events are
// handled on the same goroutine, so an event always lands between two
// frames.
type Loop struct {
	Scene   *Scene
	Surface surface.Surface
	FPS     int

	// Handle sees every event after the scene did; returning false stops
	// the loop
	Handle func(ev Event) bool
	// Before runs ahead of each frame, After once it is drawn
	Before func(t section.Tick)
	After  func(t section.Tick)

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	err    error
}

func NewLoop(scene *Scene, dst surface.Surface, fps int) *Loop {
	if fps <= 0 {
		fps = 30
	}
	return &Loop{Scene: scene, Surface: dst, FPS: fps}
}

// Run blocks until ctx is done, a handler stops the loop or QuitEvent
// arrives
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.FPS))
	defer ticker.Stop()

	start := time.Now()
	last := 0.0
	index := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !l.dispatch(ev) {
				return nil
			}
		case now := <-ticker.C:
			if !l.Scene.Mounted() {
				return nil
			}
			elapsed := now.Sub(start).Seconds()
			tick := section.Tick{Index: index, Time: elapsed, Delta: elapsed - last}
			last = elapsed
			index++
			l.frame(tick)
		}
	}
}

func (l *Loop) frame(t section.Tick) {
	if l.Before != nil {
		l.Before(t)
	}
	l.Scene.Frame(t, l.Surface)
	if l.After != nil {
		l.After(t)
	}
}

func (l *Loop) dispatch(ev Event) bool {
	switch e := ev.(type) {
	case ScrollEvent:
		l.Scene.SetScroll(e.Y)
	case ScrollByEvent:
		l.Scene.ScrollBy(e.DY)
	case ResizeEvent:
		l.Scene.Resize(e.Viewport)
	case PointerEvent:
		l.Scene.Pointer(e.X, e.Y)
	case QuitEvent:
		return false
	}
	if l.Handle != nil {
		return l.Handle(ev)
	}
	return true
}

// Start runs the loop on its own goroutine. Unmounting the scene or
// calling Stop ends it.
func (l *Loop) Start(ctx context.Context, events <-chan Event) *Loop {
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	l.Scene.attach(l.cancel)
	go func() {
		defer close(l.done)
		l.err = l.Run(ctx, events)
	}()
	return l
}

// Stop cancels the loop and waits for it. It is safe to call more than once.
func (l *Loop) Stop() error {
	if l.done == nil {
		return nil
	}
	l.once.Do(l.cancel)
	<-l.done
	return l.err
}

// Done is closed when a started loop returns
func (l *Loop) Done() <-chan struct{} { return l.done }

// Clock is the deterministic frame clock of offline renders
type Clock struct {
	FPS int
}

func (c Clock) Tick(i int) section.Tick {
	fps := float64(c.FPS)
	return section.Tick{Index: i, Time: float64(i) / fps, Delta: 1 / fps}
}
