package section

import (
	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/progress"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

const (
	gwageoSide     = 10
	gwageoBase     = 16.0
	gwageoPicked   = 24.0
	gwageoSpacing  = 56.0
	gwageoSelected = 10
	gwageoFinal    = 33
	gwageoRowGap   = 80.0
)

// Rows of the final ranking: 3, then three rows of 10
var gwageoRows = []int{3, 10, 10, 10}

var gwageoDamping = entity.Damping{Position: 0.1, Radius: 0.1, Alpha: 0.1}

// gwageo explains the three exam rounds: a crowd thins to the ten who
// passed the first round, the top one is singled out, and the 33 who
// passed are ranked into three grades.
type gwageo struct {
	base
	circles  []*entity.Entity
	selected entity.Selection // first round
	final    entity.Selection // further passers among the rest
	rest     []int            // indices outside the first round, by position

	fadeTo40 float64
	align    float64
	pick     float64
	arrange  float64
	grade    float64

	blocks []*Caption
	tops   [3]float64
}

func newGwageo(spec story.SectionSpec) Section {
	s := &gwageo{base: base{spec: spec}}
	s.blocks = []*Caption{
		newCaption(spec, "rounds", []string{
			"The civil exam ran in three rounds:",
			"a first, a second and a final exam,",
			"each split again into three sittings.",
			"The first round was held by region and",
			"picked about 240 out of many thousands.",
		}, []float64{-0.3, 0, 0.7, 1}, []float64{0, 1, 1, 0}),
		newCaption(spec, "second", []string{
			"Everyone who passed met in the capital",
			"for the second round. Only 33 of the",
			"240 passed: more than 85% fell here.",
		}, []float64{-0.3, 0, 0.7, 1}, []float64{0, 1, 1, 0}),
		newCaption(spec, "final", []string{
			"The final exam before the king failed",
			"no one and only set the ranking:",
			"3 in the first grade, 7 in the second,",
			"23 in the third. The top one passed first.",
		}, []float64{-0.3, 0, 1.2, 1.5}, []float64{0, 1, 1, 0}),
	}
	for _, b := range s.blocks {
		b.Size = 18
	}
	return s
}

func (s *gwageo) Mount(env *Env) {
	s.mount(env)
	s.circles = make([]*entity.Entity, gwageoSide*gwageoSide)
	for i := range s.circles {
		e := entity.New(0, 0, gwageoBase, gwageoDamping)
		e.Mode = entity.Silhouette
		e.Sprite = s.sprite(s.randomPortrait())
		s.circles[i] = e
	}
	s.layoutGrid(true)

	rng := env.Rand
	s.selected.Choose(rng, gwageoSelected, len(s.circles))
	s.rest = s.rest[:0]
	for i := range s.circles {
		if !s.selected.Has(i) {
			s.rest = append(s.rest, i)
		}
	}
	s.final.Choose(rng, gwageoFinal-1, len(s.rest))
}

// canvas is the right half of the viewport
func (s *gwageo) canvas() gg.Point {
	return gg.Pt(s.vp.Width*0.75, s.vp.Height/2)
}

func (s *gwageo) home(i int) gg.Point {
	c := s.canvas()
	span := float64(gwageoSide-1) * gwageoSpacing
	g := entity.Grid{Rows: gwageoSide, Cols: gwageoSide, Spacing: gwageoSpacing, Origin: gg.Pt(c.X-span/2, c.Y-span/2)}
	return g.At(i)
}

func (s *gwageo) layoutGrid(jump bool) {
	for i, e := range s.circles {
		p := s.home(i)
		if jump {
			e.Place(p.X, p.Y)
		} else {
			e.MoveTo(p.X, p.Y)
		}
	}
}

// finalists returns the grid indices of the 33 in ranking order: the
// first selected, then the further passers
func (s *gwageo) finalists() []int {
	out := make([]int, 0, gwageoFinal)
	if s.selected.Len() == 0 {
		return out
	}
	out = append(out, s.selected.Indices()[0])
	for _, k := range s.final.Indices() {
		out = append(out, s.rest[k])
	}
	return out
}

func (s *gwageo) Scroll(sample scroll.Sample) {
	s.sample = sample
	vh := sample.Viewport.Height
	top := sample.Top / vh
	// The three text blocks sit one viewport apart from the second one on
	for k := range s.tops {
		s.tops[k] = top + float64(k+1)
	}
	b4, b5, b6 := s.tops[0], s.tops[1], s.tops[2]

	s.fadeTo40 = progress.Window(b4, 0.9, 0.6)
	s.align = progress.Window(b5, 1.0, 0.7)
	s.pick = 0
	if s.align >= 1 {
		s.pick = progress.Window(b6, 1.1, 0.9)
	}
	s.arrange = progress.Window(b6, 0.7, 0.4)
	s.grade = 0
	if s.arrange >= 1 {
		s.grade = progress.Window(b6, 0.3, 0.1)
	}
	if s.mounted {
		s.target()
	}
}

func (s *gwageo) Resize(vp scroll.Viewport) {
	s.vp = vp
	if s.mounted {
		s.target()
	}
}

func (s *gwageo) target() {
	c := s.canvas()
	finals := s.finalists()
	picks := s.selected.Indices()
	first := -1
	if len(picks) > 0 {
		first = picks[0]
	}
	row := entity.Row(gwageoSelected, c.X, c.Y, gwageoSpacing)
	slots := entity.RowsLayout{
		Lengths:    gwageoRows,
		CX:         c.X,
		Y:          c.Y - float64(len(gwageoRows)-1)*gwageoRowGap/2,
		Spacing:    gwageoSpacing,
		RowSpacing: gwageoRowGap,
	}.Points()

	for i, e := range s.circles {
		home := s.home(i)
		aligned := home
		if k := indexOf(picks, i); k >= 0 {
			aligned = lerpPt(home, row[k], s.align)
		}

		if s.arrange > 0 {
			if k := indexOf(finals, i); k >= 0 {
				slot := slots[k]
				if i == first {
					p := lerpPt(aligned, slot, s.arrange)
					e.MoveTo(p.X, p.Y)
					r := gwageoBase
					if s.arrange >= 1 {
						r = progress.Lerp(gwageoBase, gwageoPicked, s.grade)
					}
					e.Set(r, 1)
					continue
				}
				e.MoveTo(slot.X, slot.Y)
				a := s.arrange
				if s.arrange >= 1 {
					switch {
					case k < 4:
						a = 1
					case k < 10:
						a = 1 - 0.3*s.grade
					default:
						a = 1 - 0.6*s.grade
					}
				}
				e.Set(gwageoBase, a)
				continue
			}
			if s.selected.Has(i) {
				e.MoveTo(aligned.X, aligned.Y)
				e.Set(gwageoBase, (1-0.6*s.pick)*(1-s.arrange))
				continue
			}
		}

		switch {
		case i == first:
			e.MoveTo(aligned.X, aligned.Y)
			e.Set(progress.Lerp(gwageoBase, gwageoPicked, s.pick), 1)
		case s.selected.Has(i):
			e.MoveTo(aligned.X, aligned.Y)
			e.Set(gwageoBase, 1-0.6*s.pick)
		default:
			e.MoveTo(home.X, home.Y)
			e.Set(gwageoBase, (1-0.6*s.fadeTo40)*(1-s.align))
		}
	}
}

func (s *gwageo) Update(t Tick) {
	for _, e := range s.circles {
		e.Update()
	}
}

func (s *gwageo) Draw(dst surface.Surface) {
	if !s.mounted {
		return
	}
	layer := s.sticky(dst)
	for _, e := range s.circles {
		e.Draw(layer)
	}
	// Text blocks scroll with the document on the left half
	for k, b := range s.blocks {
		y := s.tops[k] * s.vp.Height
		b.Draw(dst, s.vp.Width*0.25, y+s.vp.Height/2, b.Opacity(0.5-s.tops[k]))
	}
}

func (s *gwageo) Unmount() {
	s.circles = nil
	s.selected.Reset()
	s.final.Reset()
	s.unmount()
}
