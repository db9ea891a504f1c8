package engine

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/section"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Background of every frame
var Background = color.NRGBA{R: 0xfa, G: 0xf8, B: 0xf3, A: 0xff}

// Scene is a story laid out on a viewport: it owns the layout, the
// batched sampler and the sections.
type Scene struct {
	Story  *story.Story
	Assets *asset.Store
	OnFlip func(page int)

	sections []section.Section
	layout   *scroll.Layout
	sampler  *scroll.Sampler
	pending  float64
	mounted  bool
	stopLoop func()
}

// NewScene builds the sections of st. Nothing is mounted yet.
func NewScene(st *story.Story, assets *asset.Store) (*Scene, error) {
	s := &Scene{Story: st, Assets: assets}
	for i, spec := range st.Sections {
		sec, err := section.New(spec)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		s.sections = append(s.sections, sec)
	}
	return s, nil
}

// Mount lays the story out on vp and mounts every section. Each section
// gets its own generator seeded from the story so picks are reproducible.
func (s *Scene) Mount(vp scroll.Viewport) {
	if s.mounted {
		s.Unmount()
	}
	s.layout = scroll.NewLayout(vp, s.Story.Heights()...)
	s.sampler = scroll.NewSampler(s.layout)
	s.sampler.SetScroll(s.pending)

	for i, sec := range s.sections {
		sec.Mount(&section.Env{
			Viewport: vp,
			Rand:     rand.New(rand.NewSource(s.Story.Seed + int64(i))),
			Assets:   s.Assets,
			OnFlip:   s.OnFlip,
		})
	}
	s.mounted = true
}

func (s *Scene) Mounted() bool { return s.mounted }

// SetScroll records a scroll offset in pixels. It is sampled by the next
// Frame.
func (s *Scene) SetScroll(y float64) {
	if !s.mounted {
		s.pending = y
		return
	}
	s.sampler.SetScroll(y)
}

// SetScrollVH records a scroll offset in viewport heights
func (s *Scene) SetScrollVH(v float64) {
	if !s.mounted {
		return
	}
	s.SetScroll(v * s.layout.Viewport().Height)
}

func (s *Scene) ScrollBy(dy float64) {
	if s.mounted {
		s.sampler.ScrollBy(dy)
	}
}

// Scroll returns the recorded scroll offset in pixels
func (s *Scene) Scroll() float64 {
	if !s.mounted {
		return s.pending
	}
	return s.sampler.Scroll()
}

// Resize relays the document out; the sections keep their picks
func (s *Scene) Resize(vp scroll.Viewport) {
	if !s.mounted {
		return
	}
	old := s.layout.Viewport()
	s.layout.Resize(vp)
	if old.Height > 0 {
		s.sampler.SetScroll(s.sampler.Scroll() / old.Height * vp.Height)
	}
	for _, sec := range s.sections {
		sec.Resize(vp)
	}
}

// Pointer forwards the pointer to hoverable sections. Negative coordinates
// mean the pointer left.
func (s *Scene) Pointer(x, y float64) {
	if !s.mounted {
		return
	}
	for _, sec := range s.sections {
		if h, ok := sec.(section.Hoverable); ok {
			h.Pointer(x, y)
		}
	}
}

// Frame samples every region once, updates every section and paints the
// visible ones onto dst
func (s *Scene) Frame(t section.Tick, dst surface.Surface) {
	if !s.mounted {
		return
	}
	entries := s.sampler.Frame()
	for i, e := range entries {
		if e.OK {
			s.sections[i].Scroll(e.Sample)
		}
	}
	for _, sec := range s.sections {
		sec.Update(t)
	}

	dst.Clear(Background)
	for i, e := range entries {
		if e.Visible {
			s.sections[i].Draw(dst)
		}
	}
}

// Unmount drops every section's entities and stops a loop driving the
// scene
func (s *Scene) Unmount() {
	if !s.mounted {
		return
	}
	if s.stopLoop != nil {
		s.stopLoop()
		s.stopLoop = nil
	}
	for _, sec := range s.sections {
		sec.Unmount()
	}
	s.pending = s.sampler.Scroll()
	s.mounted = false
}

func (s *Scene) Layout() *scroll.Layout { return s.layout }

func (s *Scene) Sections() []section.Section { return s.sections }

func (s *Scene) attach(stop func()) { s.stopLoop = stop }

// Current returns the index of the section under the viewport center, or -1
func (s *Scene) Current() int {
	if !s.mounted {
		return -1
	}
	return s.layout.At(s.sampler.Scroll())
}

// Book returns the book of the first flip-book section
func (s *Scene) Book() section.Book {
	for _, sec := range s.sections {
		if f, ok := sec.(section.Flipper); ok {
			return f.Book()
		}
	}
	return nil
}
