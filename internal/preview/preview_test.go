package preview

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ivlev/scroll2video/internal/engine"
	"github.com/ivlev/scroll2video/internal/story"
)

func TestCellColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	img.SetRGBA(1, 2, color.RGBA{R: 200, A: 255})
	img.SetRGBA(1, 3, color.RGBA{B: 100, A: 255})

	fg, bg := cellColors(img, 1, 1)
	if fg != tcell.NewRGBColor(200, 0, 0) {
		t.Errorf("Unexpected foreground %v", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 100) {
		t.Errorf("Unexpected background %v", bg)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want engine.Event
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), engine.QuitEvent{}},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), engine.QuitEvent{}},
		{"motion", tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone), engine.PointerEvent{X: 28, Y: 40}},
		{"resize", tcell.NewEventResize(80, 25), resizeEvent{cols: 80, rows: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(tt.ev); got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}

	key := tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone)
	if got := translate(key); got != engine.Event(key) {
		t.Error("Scroll keys must pass through")
	}
}

func TestViewport(t *testing.T) {
	p := New(story.Default(), nil, 30)
	vp := p.viewport(40, 13)
	if vp.Width != 320 || vp.Height != 192 {
		t.Errorf("Unexpected viewport %+v", vp)
	}
}

func TestRunQuits(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 13)

	p := New(story.Default(), nil, 30)
	p.Sound = false

	done := make(chan error, 1)
	go func() { done <- p.run(context.Background(), screen) }()

	screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Preview did not quit")
	}
	if p.scene.Mounted() {
		t.Error("Expected the scene to be unmounted on quit")
	}
	if p.target != p.scene.Layout().Viewport().Height {
		t.Errorf("Expected the target one page down, got %f", p.target)
	}
}
