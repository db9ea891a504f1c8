package section

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/progress"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Grid of the selection systems walk-through
const (
	systemsRows    = 5
	systemsCols    = 10
	systemsBase    = 25.0
	systemsPicked  = 35.0
	systemsSpacing = 100.0

	examRows    = 3
	examCols    = 10
	examPassers = 5
	examSpacing = 80.0
)

// Votes per candidate, in candidate order. The first candidate wins.
var fixedVotes = []int{20, 10, 10, 7, 3}

// systemsStage holds every stage progress for the current depth. Thresholds
// are depths in viewport heights below the section top.
type systemsStage struct {
	rise    float64
	lottery float64

	election  bool
	move      float64
	voterFade float64
	resize    float64
	candFade  float64

	reset    float64
	division float64

	merge float64
	pick  float64
	swap  float64

	gather float64
	light  float64

	line   float64
	appear float64
	climb  float64
	pass   float64
}

func stageAt(d float64) systemsStage {
	st := systemsStage{
		rise:      progress.Window(d, -1.0, 0.5),
		lottery:   progress.Window(d, 0.9, 1.2),
		election:  d > 2.5,
		move:      progress.Window(d, 2.5, 3.0),
		voterFade: progress.Window(d, 3.2, 3.4),
		resize:    progress.Window(d, 3.4, 3.6),
		candFade:  progress.Window(d, 3.6, 3.8),
		reset:     progress.Window(d, 4.5, 4.7),
		division:  progress.Window(d, 5.0, 5.3),
		merge:     progress.Window(d, 5.8, 6.2),
		pick:      progress.Window(d, 6.5, 6.8),
		swap:      progress.Window(d, 7.0, 7.3),
		gather:    progress.Window(d, 7.8, 8.2),
		line:      progress.Window(d, 9.8, 10.0),
	}
	if st.merge > 0 {
		st.reset, st.division = 1, 1
	}
	if st.gather >= 1 {
		st.light = progress.Window(d, 8.5, 8.8)
	}
	if st.line >= 1 {
		st.appear = progress.Window(d, 10.0, 10.5)
	}
	if st.appear >= 1 {
		st.climb = progress.Window(d, 10.8, 11.5)
	}
	if st.climb >= 1 {
		st.pass = progress.Window(d, 11.5, 11.8)
	}
	return st
}

// examCircle is one applicant of the exam stage
type examCircle struct {
	*entity.Entity
	row, col int
	rank     int // position among the passers, -1 for the rest
	speed    float64
	wiggle   float64
	stop     float64
	cluster  float64
}

// systems walks one grid of portraits through six ways of selecting
// officials: lottery, election, hereditary succession, purchase,
// recommendation and examination.
type systems struct {
	base
	grid    []*entity.Entity
	divided []*entity.Entity
	exam    []*examCircle

	lottery   entity.Selection // 5 of the grid
	order     entity.Selection // candidate order over the lottery picks
	upper     entity.Selection // purchase: candidate that stays on top
	lower     entity.Selection // purchase: divided copy that buys its way up
	recommend entity.Selection // recommendation: one of the remaining copies
	passers   entity.Selection // exam: passers among the applicants

	st       systemsStage
	sampled  bool
	captions []*Caption
	depth    float64
}

func newSystems(spec story.SectionSpec) Section {
	s := &systems{base: base{spec: spec}}
	s.captions = []*Caption{
		newCaption(spec, "lottery", []string{
			"Lottery",
			"Selection by a random procedure that ignores differences between applicants.",
			"Everyone gets the same chance, e.g. by drawing lots.",
		}, []float64{0.8, 1.5, 2.0, 2.5}, []float64{0, 1, 1, 0}),
		newCaption(spec, "election", []string{
			"Election",
			"Members vote and the chosen candidate is selected.",
			"The result follows the vote count or the tallying rule.",
		}, []float64{2.5, 3.0, 4.2, 4.5}, []float64{0, 1, 1, 0}),
		newCaption(spec, "hereditary", []string{
			"Hereditary succession",
			"A position passes down a family line.",
			"The next holder is fixed by the family's rules of succession.",
		}, []float64{4.2, 4.5, 5.5, 5.8}, []float64{0, 1, 1, 0}),
		newCaption(spec, "purchase", []string{
			"Purchase of office",
			"Authority goes to whoever provides money or resources.",
			"Meeting the price settles the selection.",
		}, []float64{5.8, 6.2, 7.8, 8.2}, []float64{0, 1, 1, 0}),
		newCaption(spec, "recommendation", []string{
			"Recommendation",
			"A person or office with authority recommends suitable people.",
			"Selection happens only within the recommended pool.",
		}, []float64{7.8, 8.2, 9.5, 9.8}, []float64{0, 1, 1, 0}),
		newCaption(spec, "exam", []string{
			"Examination",
			"Selection by grades in a set and marked examination.",
		}, []float64{9.8, 10.2, 12.0, 12.3}, []float64{0, 1, 1, 0}),
	}
	return s
}

func (s *systems) Mount(env *Env) {
	s.mount(env)
	sp, sx, sy := s.geometry()
	hidden := s.vp.Height + 100

	s.grid = make([]*entity.Entity, systemsRows*systemsCols)
	for i := range s.grid {
		row, col := i/systemsCols, i%systemsCols
		e := entity.New(sx+float64(col)*sp, sy+float64(row)*sp+hidden, systemsBase, entity.GridDamping)
		e.Cur.Alpha, e.Target.Alpha = 0.4, 0.4
		e.Sprite = s.sprite(s.randomPortrait())
		s.grid[i] = e
	}

	s.divided = make([]*entity.Entity, len(fixedVotes))
	for i := range s.divided {
		e := entity.New(0, 0, systemsPicked, entity.GridDamping)
		e.Cur.Alpha, e.Target.Alpha = 0, 0
		e.Mode = entity.Silhouette
		s.divided[i] = e
	}

	examSprite := s.picture(s.spec.Option("exam", ""))
	if examSprite == nil {
		examSprite = s.sprite(1)
	}
	s.exam = make([]*examCircle, examRows*examCols)
	for i := range s.exam {
		e := entity.New(0, 0, systemsBase, entity.GridDamping)
		e.Cur.Alpha, e.Target.Alpha = 0, 0
		e.Sprite = examSprite
		s.exam[i] = &examCircle{Entity: e, row: i / examCols, col: i % examCols, rank: -1}
	}
}

// geometry returns the grid spacing and the top-left cell at rest
func (s *systems) geometry() (sp, x, y float64) {
	w, h := s.vp.Width, s.vp.Height
	sp = math.Min(w/float64(systemsCols+1), systemsSpacing)
	x = (w - float64(systemsCols-1)*sp) / 2
	y = (h-float64(systemsRows-1)*sp)/2 + h*0.1
	return sp, x, y
}

func (s *systems) Scroll(sample scroll.Sample) {
	s.sample = sample
	s.depth = sample.Depth()
	s.st = stageAt(s.depth)
	s.sampled = true
	if !s.mounted {
		return
	}
	s.choose()
	s.target()
}

func (s *systems) Resize(vp scroll.Viewport) {
	s.vp = vp
	if s.mounted && s.sampled {
		s.target()
	}
}

// choose makes each stage's random pick the first time the stage starts
func (s *systems) choose() {
	rng := s.env.Rand
	st := s.st
	if st.lottery > 0 {
		s.lottery.Choose(rng, len(fixedVotes), len(s.grid))
	}
	if st.election {
		s.order.Choose(rng, s.lottery.Len(), s.lottery.Len())
	}
	if st.merge > 0 {
		s.upper.Choose(rng, 1, len(fixedVotes))
		s.lower.Choose(rng, 1, len(fixedVotes))
	}
	if st.gather >= 1 {
		s.recommend.Choose(rng, 1, len(fixedVotes)-1)
	}
	if st.appear > 0 && !s.passers.Chosen() {
		s.passers.Choose(rng, examPassers, len(s.exam))
		for rank, i := range s.passers.Indices() {
			c := s.exam[i]
			c.rank = rank
			c.speed = 0.8 + rng.Float64()*0.2
			c.wiggle = (rng.Float64() - 0.5) * 40
		}
		for _, c := range s.exam {
			if c.rank >= 0 {
				continue
			}
			c.speed = 0.3 + rng.Float64()*0.3
			c.stop = rng.Float64()
			c.cluster = (rng.Float64() - 0.5) * 50
		}
	}
}

// candidates returns the grid indices of the election candidates in
// vote order, or nil before the election
func (s *systems) candidates() []int {
	if !s.st.election || !s.order.Chosen() {
		return nil
	}
	picks := s.lottery.Indices()
	out := make([]int, 0, len(picks))
	for _, k := range s.order.Indices() {
		out = append(out, picks[k])
	}
	return out
}

func (s *systems) target() {
	st := s.st
	w, h := s.vp.Width, s.vp.Height
	sp, sx, sy := s.geometry()

	for _, e := range s.divided {
		e.Target.Alpha = 0
	}

	if st.line > 0 {
		for _, e := range s.grid {
			e.Target.Alpha = 0
		}
		s.targetExam()
		return
	}
	for _, c := range s.exam {
		c.Target.Alpha = 0
	}

	offset := (h + 100) * (1 - st.rise)
	cands := s.candidates()
	slots := entity.Row(len(cands), w/2, h/2+offset, sp*2.5)

	for i, e := range s.grid {
		row, col := i/systemsCols, i%systemsCols
		home := gg.Pt(sx+float64(col)*sp, sy+float64(row)*sp+offset)

		switch {
		case cands != nil:
			if k := indexOf(cands, i); k >= 0 {
				s.candidate(e, k, home, slots[k], sp)
			} else {
				s.voter(e, i, home, slots, cands)
			}
		case st.lottery > 0 && s.lottery.Has(i):
			e.Place(home.X, home.Y)
			e.Mode = entity.Silhouette
			e.Set(systemsPicked, 1)
		default:
			e.Place(home.X, home.Y)
			e.Mode = entity.Normal
			e.Set(systemsBase, 0.4)
		}
	}
}

// candidate handles candidate k from the election on: it owns the grid
// circle and, from the hereditary stage on, its divided copy.
func (s *systems) candidate(e *entity.Entity, k int, home, slot gg.Point, sp float64) {
	st := s.st
	w, h := s.vp.Width, s.vp.Height
	win := k == 0

	e.Mode = entity.Silhouette
	pos := lerpPt(home, slot, st.move)
	e.Place(pos.X, pos.Y)

	ratio := float64(fixedVotes[k]) / float64(fixedVotes[0])
	voteR := systemsBase + (systemsPicked-systemsBase)*8*ratio*st.move
	r := voteR
	if st.resize > 0 {
		goal := systemsBase
		if win {
			goal = systemsBase + (systemsPicked-systemsBase)*6
		}
		r = progress.Lerp(voteR, goal, st.resize)
	}
	if st.candFade > 0 && st.reset == 0 {
		goal := systemsBase
		if win {
			goal = systemsPicked
		}
		r = progress.Lerp(r, goal, st.candFade)
	}

	alpha := 1.0
	switch {
	case st.resize < 1:
	case st.candFade >= 1 || st.candFade == 0:
		if !win {
			alpha = 0.4
		}
	case st.candFade >= 0.5:
		if !win {
			alpha = progress.Lerp(1, 0.4, (st.candFade-0.5)/0.5)
		}
	}

	if st.reset == 0 {
		e.Set(r, alpha)
		return
	}

	low := s.divided[k]
	low.Sprite = e.Sprite
	gap := sp * 1.5
	pairGap := sp * 2.5
	center := gg.Pt(w/2, h/2-h*0.1)
	pairLeft, pairRight := center.X-pairGap/2, center.X+pairGap/2
	upper := s.upper.Has(k)
	lower := s.lower.Has(k)

	switch {
	case st.gather > 0:
		if upper {
			e.Place(progress.Lerp(pairLeft, center.X, st.gather), progress.Lerp(slot.Y, center.Y, st.gather))
			e.Set(systemsPicked, 0.4)
		} else {
			e.Place(slot.X, slot.Y)
			e.Set(systemsPicked, 0)
		}
		if lower {
			low.Place(progress.Lerp(pairRight, center.X, st.gather), center.Y)
			low.Set(systemsPicked, 1)
			return
		}
		rank := s.remainingRank(k)
		x := center.X - 1.5*pairGap + float64(rank)*pairGap
		low.Place(progress.Lerp(slot.X, x, st.gather), slot.Y+gap)
		a := 0.4
		if st.light > 0 && s.recommend.Has(rank) {
			a = progress.Lerp(0.4, 1, st.light)
		}
		low.Set(systemsPicked, a)

	case st.merge > 0:
		if upper {
			if st.pick > 0 {
				e.Place(progress.Lerp(center.X, pairLeft, st.pick), center.Y)
			} else {
				p := lerpPt(slot, center, st.merge)
				e.Place(p.X, p.Y)
			}
			a := 1.0
			if st.swap > 0 {
				a = progress.Lerp(1, 0.4, st.swap)
			}
			e.Set(systemsPicked, a)
		} else {
			e.Place(slot.X, slot.Y)
			a := 1 - st.merge
			if st.pick > 0 || st.swap > 0 {
				a = 0
			}
			e.Set(systemsPicked, a)
		}
		below := gg.Pt(slot.X, slot.Y+gap)
		if lower && st.pick > 0 {
			p := lerpPt(below, gg.Pt(pairRight, center.Y), st.pick)
			low.Place(p.X, p.Y)
			low.Set(systemsPicked, 1)
			return
		}
		low.Place(below.X, below.Y)
		low.Set(systemsPicked, progress.Lerp(1, 0.4, st.merge))

	case st.division > 0:
		e.Place(slot.X, slot.Y)
		e.Set(systemsPicked, progress.Lerp(1, 0.4, st.division))
		low.Place(slot.X, slot.Y+gap*st.division)
		low.Set(systemsPicked, st.division)

	default:
		e.Place(slot.X, slot.Y)
		e.Set(progress.Lerp(r, systemsPicked, st.reset), progress.Lerp(alpha, 1, st.reset))
		low.Place(slot.X, slot.Y)
	}
}

// remainingRank is the position of candidate k among the divided copies
// that stayed below after the purchase
func (s *systems) remainingRank(k int) int {
	rank := 0
	for i := 0; i < k; i++ {
		if !s.lower.Has(i) {
			rank++
		}
	}
	return rank
}

// voter i gathers on the candidate its vote goes to
func (s *systems) voter(e *entity.Entity, i int, home gg.Point, slots []gg.Point, cands []int) {
	st := s.st
	e.Mode = entity.Normal
	if st.voterFade >= 1 {
		e.Set(0, 0)
		return
	}

	n := 0
	for j := 0; j < i; j++ {
		if indexOf(cands, j) < 0 {
			n++
		}
	}
	assigned, sum := 0, 0
	for k, v := range fixedVotes {
		if n >= sum && n < sum+v {
			assigned = k
			break
		}
		sum += v
	}

	p := lerpPt(home, slots[assigned], st.move)
	e.Place(p.X, p.Y)
	alpha := 0.4 * (1 - st.voterFade)
	if st.move >= 1 && assigned == 0 {
		alpha = 1
	}
	e.Set(systemsBase, alpha)
}

func (s *systems) targetExam() {
	st := s.st
	w, h := s.vp.Width, s.vp.Height
	sp := math.Min(w/float64(examCols+1), systemsSpacing)
	sx := (w - float64(examCols-1)*sp) / 2
	cy := h / 2
	n := float64(len(s.exam))
	finalX := w/2 - float64(examPassers-1)*examSpacing/2

	for i, c := range s.exam {
		start := gg.Pt(sx+float64(c.col)*sp, cy+50+float64(c.row)*sp)
		final := gg.Pt(finalX+float64(c.rank)*examSpacing, cy-150)
		stop := gg.Pt(start.X+c.cluster, cy+30+c.stop*80)

		switch {
		case st.appear <= 0:
			c.Place(start.X, start.Y)
			c.Set(systemsBase, 0)
		case st.climb == 0:
			at := float64(i+1) / n
			shown := 0.0
			if st.appear >= at {
				shown = math.Min(1, (st.appear-at)*n)
			}
			c.Mode = entity.Normal
			c.Place(start.X, start.Y)
			c.Set(systemsBase, 0.4*shown)
		case st.pass == 0:
			c.Mode = entity.Normal
			if c.rank >= 0 {
				x := start.X + (final.X-start.X)*c.speed*st.climb + c.wiggle*math.Sin(st.climb*math.Pi)
				y := start.Y + (final.Y-start.Y)*c.speed*st.climb
				c.MoveTo(x, y)
			} else {
				x := start.X + (stop.X-start.X)*st.climb
				y := start.Y + (stop.Y-start.Y)*c.speed*st.climb
				c.MoveTo(x, y)
			}
			c.Set(systemsBase, 0.4)
		default:
			if c.rank >= 0 {
				climbed := gg.Pt(start.X+(final.X-start.X)*c.speed, start.Y+(final.Y-start.Y)*c.speed)
				p := lerpPt(climbed, final, st.pass)
				c.Place(p.X, p.Y)
				c.Mode = entity.Silhouette
				c.Set(systemsBase, progress.Lerp(0.4, 1, st.pass))
				continue
			}
			c.MoveTo(stop.X, start.Y+(stop.Y-start.Y)*c.speed)
			c.Mode = entity.Normal
			c.Set(systemsBase, 0.4)
		}
	}
}

func (s *systems) Update(t Tick) {
	for _, e := range s.grid {
		e.Update()
	}
	for _, e := range s.divided {
		e.Update()
	}
	for _, c := range s.exam {
		c.Update()
	}
}

func (s *systems) Draw(dst surface.Surface) {
	if !s.mounted {
		return
	}
	layer := s.sticky(dst)
	for _, e := range s.grid {
		e.Draw(layer)
	}
	for _, e := range s.divided {
		e.Draw(layer)
	}
	if s.st.line > 0 {
		y := s.vp.Height / 2
		layer.Line(0, y, s.vp.Width*s.st.line, y, surface.Stroked(surface.Black, 2, 1))
	}
	for _, c := range s.exam {
		c.Draw(layer)
	}
	for _, c := range s.captions {
		c.Draw(layer, s.vp.Width/2, s.vp.Height*0.14, c.Opacity(s.depth))
	}
}

// Unmount drops the entities; a later mount makes fresh picks
func (s *systems) Unmount() {
	s.grid, s.divided, s.exam = nil, nil, nil
	for _, sel := range []*entity.Selection{&s.lottery, &s.order, &s.upper, &s.lower, &s.recommend, &s.passers} {
		sel.Reset()
	}
	s.sampled = false
	s.unmount()
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func lerpPt(a, b gg.Point, t float64) gg.Point {
	return gg.Pt(progress.Lerp(a.X, b.X, t), progress.Lerp(a.Y, b.Y, t))
}
