package section

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/progress"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Chart space of the era line chart
const (
	eraViewW   = 1000.0
	eraViewH   = 400.0
	eraLeft    = 60.0
	eraRight   = 40.0
	eraBottom  = 60.0
	eraMinYear = 1350.0
	eraMaxYear = 1850.0
	eraMaxRI   = 11.0
)

// eraPoint is the over-representation of the capital region among exam
// passers in the fifty years around Year
type eraPoint struct {
	Year float64
	RI   float64
}

var eras = []eraPoint{
	{1375, 10.0},
	{1425, 2.5},
	{1475, 4.259259},
	{1525, 6.212471},
	{1575, 6.382114},
	{1625, 5.862069},
	{1675, 5.787037},
	{1725, 4.937695},
	{1775, 3.391225},
	{1825, 3.619120},
}

// Points that get a marker and an explanation, in scroll order
var eraHighlights = []int{0, 1, 3, 8}

var eraYellow = color.NRGBA{R: 0xf4, G: 0xc4, B: 0x30, A: 0xff}

// era draws the capital index by era as a line of portraits. Scrolling
// walks the highlighted eras: a yellow marker replaces the portrait and
// the text below explains the period.
type era struct {
	base
	fade     progress.Schedule
	closing  progress.Schedule
	marks    []progress.Schedule
	intro    *Caption
	texts    []*Caption
	pictures []entity.Sprite
	marker   entity.Sprite

	p       float64
	out     float64
	visible bool
}

func newEra(spec story.SectionSpec) Section {
	s := &era{base: base{spec: spec}}
	s.fade = progress.New([]float64{0, 0.15}, []float64{0, 1})
	s.closing = progress.New([]float64{0.95, 1}, []float64{1, 0})

	windows := [][]float64{
		{0.4, 0.5, 0.53, 0.57},
		{0.55, 0.65, 0.68, 0.72},
		{0.7, 0.8, 0.83, 0.87},
		{0.85, 0.9, 0.95, 1},
	}
	for i, at := range windows {
		last := 0.0
		if i == len(windows)-1 {
			last = 1
		}
		s.marks = append(s.marks, progress.New(at, []float64{0, 1, 1, last}))
	}

	s.intro = newCaption(spec, "intro", []string{
		"The gap repeated itself throughout the dynasty.",
		"Kings tried to ease it, and each remedy worked differently in its time.",
	}, []float64{0, 0.15}, []float64{0, 1})

	texts := [][]string{
		{
			"The gap never fully closed, but its pattern shifted",
			"with new institutions and a changing society.",
			"Follow the yellow points to see what happened in each period.",
		},
		{
			"The founders of the dynasty leaned on the loyal elite around Hanyang.",
			"The people running the state all lived near the capital,",
			"and so did most of the families whose sons passed the exam.",
		},
		{
			"Sejong set regional quotas and strengthened the county schools.",
			"Seongjong later expanded the academies across the provinces.",
			"For a while more provincial candidates reached the exam.",
		},
		{
			"Under Myeongjong and Seonjo the capital lineages took hold",
			"of politics, learning and schooling, with tutors and contacts",
			"the provinces could not match. The capital share climbed again.",
		},
		{
			"Yeongjo reworked the selection of gifted provincial scholars.",
			"Jeongjo hired provincials as royal librarians and fellows.",
			"Factional strife kept the regions from ever reaching balance.",
		},
	}
	keys := []string{"overview", "founding", "quotas", "lineages", "reforms"}
	at := append([][]float64{{0, 0.15, 0.3, 0.38}}, windows...)
	for k, lines := range texts {
		last := 0.0
		if k == len(texts)-1 {
			last = 1
		}
		c := newCaption(spec, keys[k], lines, at[k], []float64{0, 1, 1, last})
		c.Size = 18
		s.texts = append(s.texts, c)
	}
	return s
}

func (s *era) Mount(env *Env) {
	s.mount(env)
	s.pictures = make([]entity.Sprite, len(eras))
	for i := range eras {
		s.pictures[i] = s.sprite(s.randomPortrait())
	}
	s.marker = s.picture(s.spec.Options["marker"])
}

func (s *era) Scroll(sample scroll.Sample) {
	s.sample = sample
	s.p = sample.Progress(scroll.EnterExit)
	s.out = s.closing.Sample(sample.Progress(leaving))
	s.visible = sample.Visible()
}

func (s *era) Update(t Tick) {}

// view fits the chart box into the middle band of the viewport
func (s *era) view() (scale, dx, dy float64) {
	scale = math.Min(s.vp.Width*0.9/eraViewW, s.vp.Height*0.45/eraViewH)
	dx = (s.vp.Width - eraViewW*scale) / 2
	dy = (s.vp.Height - eraViewH*scale) / 2
	return scale, dx, dy
}

// chartPoint maps an era onto chart space
func chartPoint(e eraPoint) gg.Point {
	w := eraViewW - eraLeft - eraRight
	h := eraViewH - eraBottom
	return gg.Pt(eraLeft+(e.Year-eraMinYear)/(eraMaxYear-eraMinYear)*w, h-e.RI/eraMaxRI*h)
}

func (s *era) Draw(dst surface.Surface) {
	if !s.mounted || !s.visible {
		return
	}
	a := progress.Clamp01(s.fade.Sample(s.p)) * progress.Clamp01(s.out)
	if a <= 0.001 {
		return
	}
	layer := s.sticky(dst)
	scale, dx, dy := s.view()
	pt := func(p gg.Point) gg.Point { return gg.Pt(p.X*scale+dx, p.Y*scale+dy) }

	s.intro.Draw(layer, s.vp.Width/2, dy*0.5, s.intro.Opacity(s.p)*progress.Clamp01(s.out))

	line := make([]gg.Point, len(eras))
	for i, e := range eras {
		line[i] = pt(chartPoint(e))
	}
	layer.Path(line, false, surface.Stroked(surface.Ink, 3*scale, a))

	for i, p := range line {
		size := 20.0
		if slices.Contains([]int{0, 3, 8}, i) {
			size = 30
		}
		op := a
		if k := slices.Index(eraHighlights, i); k >= 0 {
			op *= 1 - progress.Clamp01(s.marks[k].Sample(s.p))
		}
		s.drawPicture(layer, s.pictures[i], p, size*scale, op, surface.Ink)
	}
	for k, i := range eraHighlights {
		op := a * progress.Clamp01(s.marks[k].Sample(s.p))
		s.drawPicture(layer, s.marker, line[i], 35*scale, op, eraYellow)
	}

	font := math.Max(10, 18*scale)
	for year := 1400; year <= 1800; year += 100 {
		p := pt(chartPoint(eraPoint{Year: float64(year)}))
		y := dy + (eraViewH-eraBottom+30)*scale
		layer.Text(fmt.Sprintf("%d", year), p.X, y, surface.Style{Fill: surface.Ink, Opacity: a, FontSize: font})
	}

	below := dy + eraViewH*scale + (s.vp.Height-dy-eraViewH*scale)/2
	for _, c := range s.texts {
		c.Draw(layer, s.vp.Width/2, below, c.Opacity(s.p)*a)
	}
}

// drawPicture paints pic centered on p, or a plain dot in fallback
// without an asset store
func (s *era) drawPicture(dst surface.Surface, pic entity.Sprite, p gg.Point, size, opacity float64, fallback color.NRGBA) {
	if opacity <= 0.001 {
		return
	}
	switch {
	case pic == nil:
		dst.Circle(p.X, p.Y, size/2, surface.Filled(fallback, opacity))
	case pic.Ready():
		dst.Image(pic, p.X-size/2, p.Y-size/2, size, size, surface.Style{Opacity: opacity})
	}
}

func (s *era) Unmount() {
	s.pictures = nil
	s.marker = nil
	s.unmount()
}
