package section

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/progress"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Book is a two-page spread that turns one leaf at a time
type Book interface {
	FlipNext() bool
	FlipPrev() bool
	// Page is the left page of the visible spread, 0-based and even
	Page() int
}

// PageBook is the default Book. The turn animation runs on the clock
// passed to Advance.
type PageBook struct {
	Duration float64 // seconds per turn

	pages int
	page  int
	from  int
	turn  float64
}

func NewPageBook(pages int) *PageBook {
	if pages < 2 {
		pages = 2
	}
	return &PageBook{Duration: 0.8, pages: pages, turn: 1}
}

func (b *PageBook) Page() int  { return b.page }
func (b *PageBook) Pages() int { return b.pages }

// Last is the left page of the final spread
func (b *PageBook) Last() int { return (b.pages - 1) / 2 * 2 }

func (b *PageBook) FlipNext() bool {
	if b.page+2 > b.Last() {
		return false
	}
	b.from, b.page, b.turn = b.page, b.page+2, 0
	return true
}

func (b *PageBook) FlipPrev() bool {
	if b.page == 0 {
		return false
	}
	b.from, b.page, b.turn = b.page, b.page-2, 0
	return true
}

// Advance moves the running turn forward by dt seconds
func (b *PageBook) Advance(dt float64) {
	if b.turn >= 1 {
		return
	}
	if b.Duration <= 0 {
		b.turn = 1
		return
	}
	b.turn = math.Min(1, b.turn+dt/b.Duration)
}

// Turning reports the leaf in flight: the spread it left, the spread it
// goes to and the eased animation progress
func (b *PageBook) Turning() (from, to int, t float64, ok bool) {
	if b.turn >= 1 {
		return b.page, b.page, 1, false
	}
	return b.from, b.page, progress.EaseInOutCubic(b.turn), true
}

func (b *PageBook) Reset() {
	b.page, b.from, b.turn = 0, 0, 1
}

const (
	flipInterval = 2.0 // seconds between turns
	flipStart    = 0.28
	flipSpan     = 0.40
	leafW        = 400.0
	leafH        = 622.0
	quoteFade    = 0.5
)

type quote struct {
	Lines  []string
	Source string
}

// Quotes from the Annals, one per spread
var quotes = []quote{
	{[]string{"Sons of other families have no way into office.", "From now on, besides the sons of merit and protection,", "able sons of eighteen and over without rank may come forward."}, "Annals of Taejong, vol. 9, year 5, month 2, day 9"},
	{[]string{"Those in charge of the exam wanted to pick", "the people they knew first,", "and competed in doing what was improper."}, "Annals of Sejong, vol. 115, year 29, month 3, day 16"},
	{[]string{"Very many rose high", "by being granted a special rank."}, "Annals of Seongjong, vol. 4, year 1, month 3, day 4"},
	{[]string{"When talent is chosen in the provinces", "fraud is rife.", "How could that not be deplorable?"}, "Annals of Myeongjong, vol. 30, year 19, month 2, day 22"},
	{[]string{"How could the exam be held in the provinces?", "It goes against the whole order", "and fraud is bound to follow."}, "Annals of Seonjo, vol. 150, year 35, month 5, day 11"},
	{[]string{"Very many people of Yeongnam", "have passed the civil exam."}, "Annals of Yeongjo, vol. 13, year 3, month 9, day 14"},
	{[]string{"For thirty or forty years the abuses of the exam hall", "have grown by the day and by the month", "until they became an illness beyond cure."}, "Annals of Jeongjo, vol. 39, year 18, month 2, day 17"},
	{[]string{"Those who call themselves scholars do not study at all", "and busy themselves only with favours."}, "Annals of Gojong, vol. 22, year 22, month 2, day 17"},
}

var (
	leafEdge = surface.Stroked(surface.Slate, 1, 0.6)
	spine    = surface.Stroked(surface.Ink, 2, 0.4)
)

// flipbook turns the pages of a book of records as the reader scrolls,
// with a quote for every spread and two closing texts.
type flipbook struct {
	base
	book    *PageBook
	pattern string
	qr      string
	leaves  []entity.Sprite
	card    entity.Sprite

	intro, closing, question *Caption
	fade                     progress.Schedule
	overlay                  []float64

	p        float64
	visible  bool
	lastFlip float64
	flipped  bool
}

func newFlipbook(spec story.SectionSpec) Section {
	s := &flipbook{
		base:    base{spec: spec},
		book:    NewPageBook(spec.IntOption("count", 16)),
		pattern: spec.Option("pages", "gen:page:%d"),
		qr:      spec.Option("qr", ""),
		fade:    progress.New([]float64{0.2, 0.25, 0.7, 0.75}, []float64{0, 1, 1, 0}),
	}
	s.intro = newCaption(spec, "intro", []string{
		"New policies kept coming, yet the structure barely moved.",
		"The Annals point at the imbalance era after era,",
		"and record the attempts to fix it just as often.",
	}, []float64{0.05, 0.08, 0.12, 0.15}, []float64{0, 1, 1, 0})
	s.closing = newCaption(spec, "closing", []string{
		"Reading these records, the gaps in access and schooling",
		"between regions did not close as eras and rules changed.",
		"Old as they are, they meet today's regional imbalance",
		"and ask what we still have to think about.",
	}, []float64{0.75, 0.78, 0.83, 0.86}, []float64{0, 1, 1, 0})
	s.question = newCaption(spec, "question", []string{
		"The traces of imbalance left in the Annals live on today.",
		"What will those of us living in the coming era record?",
	}, []float64{0.86, 0.9}, []float64{0, 1})
	return s
}

func (s *flipbook) Book() Book { return s.book }

// leafID resolves page n (0-based) through the pages pattern
func (s *flipbook) leafID(n int) string {
	if !strings.Contains(s.pattern, "%") {
		return s.pattern
	}
	return fmt.Sprintf(s.pattern, n+1)
}

func (s *flipbook) Mount(env *Env) {
	s.mount(env)
	s.book.Reset()
	s.flipped = false
	s.overlay = make([]float64, len(quotes))
	s.leaves = make([]entity.Sprite, s.book.Pages())
	for n := range s.leaves {
		s.leaves[n] = s.picture(s.leafID(n))
	}
	s.card = nil
	if s.qr != "" {
		s.card = s.picture("qr:" + s.qr)
	}
}

func (s *flipbook) Scroll(sample scroll.Sample) {
	s.sample = sample
	s.p = sample.Progress(scroll.EnterExit)
	s.visible = sample.Visible()
}

// target is the spread the scroll position asks for
func (s *flipbook) target() int {
	adj := math.Min((s.p-flipStart)/flipSpan, 1)
	spreads := float64(s.book.Pages() / 2)
	return min(int(math.Floor(adj*spreads))*2, s.book.Last())
}

func (s *flipbook) Update(t Tick) {
	if !s.mounted {
		return
	}
	s.book.Advance(t.Delta)

	if s.p > flipStart && (!s.flipped || t.Time-s.lastFlip >= flipInterval) {
		target := s.target()
		var turned bool
		switch {
		case target > s.book.Page():
			turned = s.book.FlipNext()
		case target < s.book.Page():
			turned = s.book.FlipPrev()
		}
		if turned {
			s.lastFlip = t.Time
			s.flipped = true
			if s.env.OnFlip != nil {
				s.env.OnFlip(s.book.Page())
			}
		}
	}

	current := s.book.Page() / 2
	step := t.Delta / quoteFade
	for i := range s.overlay {
		if i == current {
			s.overlay[i] = math.Min(1, s.overlay[i]+step)
		} else {
			s.overlay[i] = math.Max(0, s.overlay[i]-step)
		}
	}
}

func (s *flipbook) Draw(dst surface.Surface) {
	if !s.mounted || !s.visible {
		return
	}
	layer := s.sticky(dst)
	w, h := s.vp.Width, s.vp.Height

	s.intro.Draw(layer, w/2, h/2, s.intro.Opacity(s.p))

	if a := progress.Clamp01(s.fade.Sample(s.p)); a > 0.001 {
		s.drawBook(layer, a)
	}

	s.closing.Draw(layer, w/2, h/2, s.closing.Opacity(s.p))
	q := s.question.Opacity(s.p)
	s.question.Draw(layer, w/2, h*0.4, q)
	if s.card != nil && s.card.Ready() && q > 0.001 {
		side := math.Min(160, h*0.2)
		layer.Image(s.card, w/2-side/2, h*0.55, side, side, surface.Style{Opacity: q})
	}
}

func (s *flipbook) drawBook(dst surface.Surface, a float64) {
	w, h := s.vp.Width, s.vp.Height
	scale := math.Min(w*0.85/(2*leafW), h*0.62/leafH)
	pw, ph := leafW*scale, leafH*scale
	cx, top := w/2, h*0.42-ph/2

	from, to, t, turning := s.book.Turning()
	left, right := to, to+1
	if turning {
		if to > from {
			left, right = from, to+1
		} else {
			left, right = to, from+1
		}
	}
	s.drawLeaf(dst, left, cx-pw, top, pw, ph, a)
	s.drawLeaf(dst, right, cx, top, pw, ph, a)

	// The turning leaf squashes toward the spine and opens on the other side
	if turning {
		forward := to > from
		if t < 0.5 {
			lw := (1 - 2*t) * pw
			if forward {
				s.drawLeaf(dst, from+1, cx, top, lw, ph, a)
			} else {
				s.drawLeaf(dst, from, cx-lw, top, lw, ph, a)
			}
		} else {
			lw := (2*t - 1) * pw
			if forward {
				s.drawLeaf(dst, to, cx-lw, top, lw, ph, a)
			} else {
				s.drawLeaf(dst, to+1, cx, top, lw, ph, a)
			}
		}
	}
	dst.Line(cx, top, cx, top+ph, surface.Style{Stroke: spine.Stroke, LineWidth: spine.LineWidth, Opacity: spine.Opacity * a})

	y := top + ph + math.Max(40, h*0.08)
	for i, q := range quotes {
		o := s.overlay[i] * a
		if o <= 0.001 {
			continue
		}
		lh := 27.0
		for k, line := range q.Lines {
			dst.Text(line, cx, y+float64(k)*lh, surface.Style{Fill: surface.Ink, Opacity: o, FontSize: 18})
		}
		dst.Text(q.Source, cx, y+float64(len(q.Lines))*lh+6, surface.Style{Fill: surface.Slate, Opacity: o, FontSize: 14})
	}
}

// drawLeaf paints page n into the box, or a blank sheet while the picture
// is not ready
func (s *flipbook) drawLeaf(dst surface.Surface, n int, x, y, w, h, a float64) {
	if w <= 0.5 || n < 0 || n >= len(s.leaves) {
		return
	}
	if pic := s.leaves[n]; pic != nil && pic.Ready() {
		dst.Image(pic, x, y, w, h, surface.Style{Opacity: a})
		return
	}
	box := []gg.Point{gg.Pt(x, y), gg.Pt(x+w, y), gg.Pt(x+w, y+h), gg.Pt(x, y+h)}
	dst.Path(box, true, surface.Style{
		Fill:      surface.Paper,
		Stroke:    leafEdge.Stroke,
		LineWidth: leafEdge.LineWidth,
		Opacity:   a,
	})
}

func (s *flipbook) Unmount() {
	s.leaves = nil
	s.card = nil
	s.overlay = nil
	s.unmount()
}
