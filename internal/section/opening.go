package section

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// person is a drifting particle with the stats its tooltip shows
type person struct {
	*entity.Particle
	Intelligence int
	Character    int
	Potential    int
}

// opening fills the first viewport with drifting people under the
// title question
type opening struct {
	base
	people  []*person
	title   *Caption
	sub     *Caption
	fade    float64
	hovered *person
	pointer gg.Point
}

var rim = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 77}

func newOpening(spec story.SectionSpec) Section {
	s := &opening{base: base{spec: spec}}
	s.title = newCaption(spec, "title",
		[]string{"How do we find the people", "a country deserves?"},
		[]float64{0, 0.5}, []float64{1, 0})
	s.title.Size = 40
	s.sub = newCaption(spec, "subtitle",
		[]string{"How can officials with intelligence, patriotism and character be selected?"},
		[]float64{0, 0.5}, []float64{1, 0})
	s.sub.Size = 20
	return s
}

// Mount spawns one person per 15000 square pixels of viewport
func (s *opening) Mount(env *Env) {
	s.mount(env)
	w, h := s.vp.Width, s.vp.Height
	n := int(w * h / 15000)
	if n < 1 {
		n = 1
	}
	rng := env.Rand
	s.people = make([]*person, n)
	for i := range s.people {
		p := &person{Particle: entity.NewParticle(rng, w, h)}
		p.Intelligence = rng.Intn(40) + 60
		p.Character = rng.Intn(40) + 60
		p.Potential = rng.Intn(40) + 60
		s.people[i] = p
	}
}

func (s *opening) Scroll(sample scroll.Sample) {
	s.sample = sample
	s.fade = sample.Progress(leaving)
}

// Pointer hovers the person under (x, y); the canvas scrolls with the
// section top
func (s *opening) Pointer(x, y float64) {
	s.hovered = nil
	local := gg.Pt(x, y-s.sample.Top)
	s.pointer = local
	for _, p := range s.people {
		if x < 0 || y < 0 {
			p.Hover(-1e9, -1e9)
			continue
		}
		p.Hover(local.X, local.Y)
		if p.Target.Radius > p.Base {
			s.hovered = p
		}
	}
}

func (s *opening) Update(t Tick) {
	for _, p := range s.people {
		p.Step(s.vp.Width, s.vp.Height)
		p.Update()
	}
}

func (s *opening) Draw(dst surface.Surface) {
	if !s.mounted {
		return
	}
	layer := surface.Offset(dst, 0, s.sample.Top)
	for _, p := range s.people {
		c := p.Cur
		layer.Circle(c.X, c.Y, c.Radius, surface.Style{
			Fill:      p.Color,
			Stroke:    rim,
			LineWidth: 1,
			Opacity:   1,
		})
	}

	cx, cy := s.vp.Width/2, s.vp.Height/2
	s.title.Draw(layer, cx, cy-30, s.title.Opacity(s.fade))
	s.sub.Draw(layer, cx, cy+50, s.sub.Opacity(s.fade))

	if s.hovered != nil {
		s.drawTooltip(layer, s.hovered)
	}
}

func (s *opening) drawTooltip(dst surface.Surface, p *person) {
	x, y := s.pointer.X+20, s.pointer.Y+20
	box := []gg.Point{gg.Pt(x, y), gg.Pt(x+170, y), gg.Pt(x+170, y+84), gg.Pt(x, y+84)}
	dst.Path(box, true, surface.Style{Fill: surface.White, Stroke: surface.Ink, LineWidth: 1, Opacity: 0.95})
	st := surface.Style{Fill: surface.Ink, Opacity: 1, FontSize: 16}
	dst.Text(fmt.Sprintf("Intelligence: %d", p.Intelligence), x+85, y+20, st)
	dst.Text(fmt.Sprintf("Character: %d", p.Character), x+85, y+42, st)
	dst.Text(fmt.Sprintf("Potential: %d", p.Potential), x+85, y+64, st)
}

func (s *opening) Unmount() {
	s.people = nil
	s.hovered = nil
	s.unmount()
}
