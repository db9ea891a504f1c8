package section

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/morph"
	"github.com/ivlev/scroll2video/internal/progress"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Chart space: a square view box with the chart in its lower half
const (
	paretoView   = 1200.0
	paretoPoints = 300
	paretoLift   = 70.0
	paretoTotal  = 15151.0
	padTop       = 600.0
	padRight     = 80.0
	padBottom    = 120.0
	padLeft      = 60.0
)

// clan is one of the 15 lineages with the most exam passers
type clan struct {
	Name       string
	Count      int
	GeoX, GeoY float64
}

var clans = []clan{
	{"Jeonju Yi", 870, 0.30, 0.65},
	{"Andong Gwon", 368, 0.70, 0.45},
	{"Papyeong Yun", 346, 0.42, 0.42},
	{"Cheongju Han", 292, 0.48, 0.50},
	{"Namyang Hong", 292, 0.45, 0.44},
	{"Miryang Bak", 267, 0.75, 0.62},
	{"Gwangsan Kim", 262, 0.32, 0.70},
	{"Yeonan Yi", 255, 0.35, 0.25},
	{"Yeoheung Min", 242, 0.50, 0.45},
	{"Jinju Gang", 230, 0.60, 0.68},
	{"Gyeongju Kim", 213, 0.78, 0.55},
	{"Hansan Yi", 202, 0.40, 0.52},
	{"Bannam Bak", 201, 0.28, 0.72},
	{"Dongnae Jeong", 199, 0.80, 0.68},
	{"Cheongsong Sim", 198, 0.68, 0.42},
}

// region is a share of passers by province, drawn on the map
type region struct {
	Name       string
	Value      float64
	GeoX, GeoY float64
}

var regions = []region{
	{"Hanyang", 9.8, 0.35, 0.6},
	{"Pyongyang", 2.2, 0.2, 0.5},
	{"Gyeongsang", 1.0, 0.75, 0.85},
	{"Chungcheong", 1.0, 0.55, 0.65},
	{"Hamgyong", 1.0, 0.65, 0.30},
	{"Gangwon", 1.0, 0.55, 0.52},
	{"Jeolla", 1.0, 0.45, 0.9},
	{"Hwanghae", 1.0, 0.30, 0.48},
}

var (
	areaFill  = color.NRGBA{R: 115, G: 115, B: 115, A: 51}
	steelBlue = color.NRGBA{R: 70, G: 130, B: 180, A: 255}
	axisRed   = color.NRGBA{R: 255, A: 255}
)

// pareto morphs the cumulative chart of passers by clan into the map of
// the peninsula and then into a plain block, while the region portraits
// show where the passers came from.
type pareto struct {
	base
	stages   *morph.Stages
	land     gg.Rect // peninsula placement in chart space
	bars     []gg.Point
	barR     float64
	pictures []entity.Sprite

	labels  progress.Schedule
	fades   []progress.Schedule
	blocks  []*Caption
	p       float64
	visible bool
}

func newPareto(spec story.SectionSpec) Section {
	s := &pareto{base: base{spec: spec}}
	s.labels = progress.New([]float64{0, 0.3, 0.5}, []float64{1, 1, 0})
	s.fades = make([]progress.Schedule, len(regions))
	for i := range regions {
		in := 0.55 + float64(min(i, 3))*0.036
		s.fades[i] = progress.New([]float64{in, in + 0.1, 0.85, 0.95}, []float64{0, 1, 1, 0})
	}
	texts := [][]string{
		{"Given the share of the population around the capital,", "its pass rate is far too high."},
		{"The exam in practice favoured people with easy", "access to Hanyang and its surroundings."},
		{"Every step of the exam was far easier to handle", "near the offices, officials and schools of the capital."},
		{"In the provinces distance, cost and scarce schooling", "added up, and fewer applicants meant fewer passers."},
	}
	keys := []string{"access", "favour", "procedure", "provinces"}
	for k, lines := range texts {
		at := 0.5 + 0.06*float64(k)
		s.blocks = append(s.blocks, newCaption(spec, keys[k], lines,
			[]float64{at, at + 0.02, at + 0.05, at + 0.07}, []float64{0, 1, 1, 0}))
	}
	s.blocks = append(s.blocks, newCaption(spec, "pattern", []string{
		"The gap repeated itself throughout the dynasty.",
		"Kings tried to ease it, with uneven results.",
		"It never closed, but its pattern kept changing.",
	}, []float64{0.75, 0.8, 0.92, 0.97}, []float64{0, 1, 1, 0}))
	for _, b := range s.blocks {
		b.Size = 20
	}
	return s
}

func (s *pareto) Mount(env *Env) {
	s.mount(env)
	if err := s.build(); err != nil {
		log.Printf("[!] Не удалось построить фигуры для %s: %v", s.Name(), err)
	}
	s.pictures = make([]entity.Sprite, len(regions))
	for i := range regions {
		s.pictures[i] = s.sprite(env.Rand.Intn(50))
	}
}

// build samples the three outlines and aligns each one to the one before
func (s *pareto) build() error {
	chartW := paretoView - padLeft - padRight
	chartH := paretoView - padTop - padBottom
	barW := chartW / float64(len(clans))

	area := gg.NewPath()
	area.MoveTo(padLeft, padTop+chartH)
	cum := 0
	var prev gg.Point
	for i, c := range clans {
		cum += c.Count
		pt := gg.Pt(padLeft+float64(i)*barW+barW/2, padTop+chartH-float64(cum)/paretoTotal*chartH)
		if i == 0 {
			area.LineTo(pt.X, pt.Y)
		} else {
			area.QuadraticTo((prev.X+pt.X)/2, prev.Y, pt.X, pt.Y)
		}
		prev = pt
	}
	area.LineTo(prev.X, padTop+chartH)
	area.Close()

	outline, err := morph.ParsePathData(peninsulaPath)
	if err != nil {
		return fmt.Errorf("peninsula: %w", err)
	}
	b := morph.Bounds(morph.SamplePoints(outline, 4*paretoPoints))
	bw, bh := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	x := padLeft + chartW*0.65
	y := padTop + (chartH-bh)/2
	s.land = gg.Rect{Min: gg.Pt(x, y), Max: gg.Pt(x+bw, y+bh)}

	block := gg.NewPath()
	rw, rh := paretoView*0.95, paretoView*0.5
	cx, cy := paretoView/2, paretoView*0.8-paretoLift
	block.Rectangle(cx-rw/2, cy-rh/2, rw, rh)

	shapes := []morph.Points{
		morph.SamplePoints(area, paretoPoints),
		morph.Fit(morph.SamplePoints(outline, paretoPoints), s.land),
		morph.SamplePoints(block, paretoPoints),
	}
	shapes[1], _ = morph.Align(shapes[0], shapes[1])
	shapes[2], _ = morph.Align(shapes[1], shapes[2])

	stages, err := morph.NewStages(shapes, []morph.Range{{From: 0.3, To: 0.5}, {From: 0.75, To: 0.85}})
	if err != nil {
		return err
	}
	s.stages = stages

	// Two columns of dots per bar, one dot per 15 passers
	s.bars = s.bars[:0]
	s.barR = math.Min(barW*0.13, 7)
	baseY := padTop + chartH - paretoLift
	for i, c := range clans {
		left := padLeft + float64(i)*barW
		n := (c.Count + 14) / 15
		perCol := (n + 1) / 2
		for k := 0; k < n; k++ {
			col, row := k/perCol, k%perCol
			x := left + (barW-4*s.barR)/2 + float64(col)*2*s.barR + s.barR
			y := baseY - float64(row)*2*s.barR - s.barR
			s.bars = append(s.bars, gg.Pt(x, y))
		}
	}
	return nil
}

func (s *pareto) Scroll(sample scroll.Sample) {
	s.sample = sample
	s.p = sample.Progress(scroll.EnterExit)
	s.visible = sample.Visible()
}

func (s *pareto) Update(t Tick) {}

// view maps chart space onto the viewport, centered and uniformly scaled
func (s *pareto) view() (scale, dx, dy float64) {
	scale = math.Min(s.vp.Width, s.vp.Height) / paretoView
	dx = (s.vp.Width - paretoView*scale) / 2
	dy = (s.vp.Height - paretoView*scale) / 2
	return scale, dx, dy
}

func (s *pareto) Draw(dst surface.Surface) {
	if !s.mounted || !s.visible {
		return
	}
	layer := s.sticky(dst)
	scale, dx, dy := s.view()
	pt := func(x, y float64) (float64, float64) { return x*scale + dx, y*scale + dy }

	labels := s.labels.Sample(s.p)
	if labels > 0.001 {
		for _, b := range s.bars {
			x, y := pt(b.X, b.Y)
			layer.Circle(x, y, s.barR*scale, surface.Filled(surface.Black, labels))
		}
	}

	if s.stages != nil {
		outline := morph.Transform(s.stages.At(s.p), scale, dx, dy-paretoLift*scale)
		layer.Path(outline, true, surface.Filled(areaFill, 1))
	}

	for i, r := range regions {
		a := s.fades[i].Sample(s.p)
		if a <= 0.001 {
			continue
		}
		size := r.Value / 4.9 * 60
		cx := s.land.Min.X + r.GeoX*(s.land.Max.X-s.land.Min.X)
		cy := s.land.Min.Y + r.GeoY*(s.land.Max.Y-s.land.Min.Y) - paretoLift
		x, y := pt(cx-size/2, cy-size/2)
		if pic := s.pictures[i]; pic != nil && pic.Ready() {
			layer.Image(pic, x, y, size*scale, size*scale, surface.Style{Opacity: a})
		} else if pic == nil {
			layer.Circle(x+size*scale/2, y+size*scale/2, size*scale/2, surface.Filled(surface.Slate, a))
		}
		lx, ly := pt(cx, cy+size/2+15)
		layer.Text(r.Name, lx, ly, surface.Style{Fill: surface.Ink, Opacity: a, FontSize: math.Max(10, 2.2/4.9*60*0.35*scale)})
	}

	if labels > 0.001 {
		s.drawAxes(layer, labels, pt, scale)
	}

	for _, b := range s.blocks {
		b.Draw(layer, s.vp.Width/2, dy+300*scale, b.Opacity(s.p))
	}
}

func (s *pareto) drawAxes(dst surface.Surface, a float64, pt func(x, y float64) (float64, float64), scale float64) {
	chartW := paretoView - padLeft - padRight
	chartH := paretoView - padTop - padBottom
	barW := chartW / float64(len(clans))
	font := math.Max(9, 14*scale)

	for i, c := range clans {
		x, y := pt(padLeft+float64(i)*barW+barW/2, padTop+chartH-20)
		dst.Text(c.Name, x, y, surface.Style{Fill: surface.Ink, Opacity: a, FontSize: font * 0.8})
	}
	peak := clans[0].Count
	for i := 0; i <= 5; i++ {
		y := padTop + chartH - float64(i)/5*chartH - paretoLift
		lx, ly := pt(padLeft-30, y)
		dst.Text(fmt.Sprintf("%d", int(math.Round(float64(i)/5*float64(peak)))), lx, ly, surface.Style{Fill: steelBlue, Opacity: a, FontSize: font})
		rx, ry := pt(padLeft+chartW+30, y)
		dst.Text(fmt.Sprintf("%d%%", i*20), rx, ry, surface.Style{Fill: axisRed, Opacity: a, FontSize: font})
	}
}

func (s *pareto) Unmount() {
	s.stages = nil
	s.pictures = nil
	s.unmount()
}
